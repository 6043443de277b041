package contract

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	VeryLowColor  = color.New(color.FgCyan)               // informational, nothing to do
	LowColor      = color.New(color.FgGreen)              // healthy
	MediumColor   = color.New(color.FgYellow)             // standard caution, not bold
	HighColor     = color.New(color.FgMagenta, color.Bold) // strong, distinct warning
	VeryHighColor = color.New(color.FgRed, color.Bold)    // standard danger
)

// GetRiskLabel returns the risk level, optionally colored for table output.
func GetRiskLabel(riskLevel string, useColors bool) string {
	if !useColors {
		return riskLevel
	}

	switch riskLevel {
	case "Very Low":
		return VeryLowColor.Sprint(riskLevel)
	case "Low":
		return LowColor.Sprint(riskLevel)
	case "Low–Medium", "Medium":
		return MediumColor.Sprint(riskLevel)
	case "High":
		return HighColor.Sprint(riskLevel)
	default: // "Very High"
		return VeryHighColor.Sprint(riskLevel)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. Empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses yes/no/true/false/1/0 into a bool.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no/true/false/1/0, got %q", s)
	}
}

// NormalizeDomain extracts the hostname from a URL and strips a leading www.
// Used wherever two URLs must be compared as "the same site".
func NormalizeDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		// Tolerate bare domains like "example.com/path"
		host := rawURL
		if i := strings.IndexAny(host, "/?#"); i >= 0 {
			host = host[:i]
		}
		return strings.TrimPrefix(strings.ToLower(host), "www.")
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)

// SafeFilename strips characters that are unsafe in filenames and lowercases
// the remainder with underscores for spaces.
func SafeFilename(text string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(text, "")
	cleaned = strings.Join(strings.Fields(cleaned), "_")
	return strings.ToLower(cleaned)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogStep logs collector/pipeline progress to stderr so it never pollutes
// structured stdout output.
func LogStep(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}
