package contract

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sitegrade/sitegrade/schema"
)

// Default values for configuration.
const (
	DefaultTimeout      = 20 * time.Second
	DefaultReportDir    = "reports"
	DefaultDataDir      = "data"
	DefaultPrecision    = 2
	DefaultMaxKeywords  = 10
	WeightSumTolerance  = 0.001
	DefaultSERPCountry  = "us"
	DefaultMaxPlaces    = 5
	DefaultMaxReviews   = 200
	DefaultSERPPages    = 4
	DefaultSERPPageSize = 20
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Collector names accepted by the --skip flag.
const (
	CollectorBusiness  = "business"
	CollectorTech      = "tech"
	CollectorPageSpeed = "pagespeed"
	CollectorGoogle    = "google"
	CollectorFacebook  = "facebook"
	CollectorSEO       = "seo"
)

// ValidCollectorNames lists all collector names accepted by --skip.
var ValidCollectorNames = map[string]struct{}{
	CollectorBusiness:  {},
	CollectorTech:      {},
	CollectorPageSpeed: {},
	CollectorGoogle:    {},
	CollectorFacebook:  {},
	CollectorSEO:       {},
}

// WeightsRawInput holds custom section weights from the YAML config file.
// Pointers distinguish "not set" from an explicit zero.
type WeightsRawInput struct {
	Business    *float64 `mapstructure:"business"`
	Tech        *float64 `mapstructure:"tech"`
	Performance *float64 `mapstructure:"performance"`
	Reputation  *float64 `mapstructure:"reputation"`
	SEO         *float64 `mapstructure:"seo"`
	Listings    *float64 `mapstructure:"listings"`
}

// Config holds the runtime configuration for an audit.
// This struct remains the "final, validated" config.
type Config struct {
	URL      string // Normalized website URL under audit
	Domain   string // Hostname of URL with www. stripped
	Keywords []string
	Country  string // SERP country code; empty means global search
	Timeout  time.Duration

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Explain    bool
	UseColors  bool
	Width      int // Terminal width override (0 = auto-detect)

	AI        bool
	HTML      bool
	Excel     bool
	ReportDir string
	DataDir   string

	Skip map[string]bool // Collector names to skip

	HistoryDBPath string // Empty disables history tracking

	// Weights is the validated per-section weight map (sums to 1.0).
	Weights map[schema.Section]float64

	// API credentials, read from environment (.env supported).
	PageSpeedAPIKey string
	ApifyToken      string
	OpenAIAPIKey    string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	URLStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`
	Width      int    `mapstructure:"width"`
	HistoryDB  string `mapstructure:"history-db"`

	// --- Fields from auditCmd.Flags() ---
	Keywords  string `mapstructure:"keywords"`
	Country   string `mapstructure:"country"`
	Timeout   string `mapstructure:"timeout"`
	Explain   bool   `mapstructure:"explain"`
	AI        bool   `mapstructure:"ai"`
	HTML      bool   `mapstructure:"html"`
	Excel     bool   `mapstructure:"excel"`
	ReportDir string `mapstructure:"report-dir"`
	DataDir   string `mapstructure:"data-dir"`
	Skip      string `mapstructure:"skip"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`

	// --- API credentials from env (SITEGRADE_* or .env passthrough) ---
	PageSpeedAPIKey string `mapstructure:"pagespeed-api-key"`
	ApifyToken      string `mapstructure:"apify-token"`
	OpenAIAPIKey    string `mapstructure:"openai-api-key"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Keywords != nil {
		clone.Keywords = make([]string, len(c.Keywords))
		copy(clone.Keywords, c.Keywords)
	}
	if c.Skip != nil {
		clone.Skip = make(map[string]bool, len(c.Skip))
		for k, v := range c.Skip {
			clone.Skip[k] = v
		}
	}
	if c.Weights != nil {
		clone.Weights = make(map[schema.Section]float64, len(c.Weights))
		for k, v := range c.Weights {
			clone.Weights[k] = v
		}
	}
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Weight misconfiguration is a startup
// error by design: weights are never silently renormalized.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := ProcessBaseConfig(cfg, input); err != nil {
		return err
	}
	return processURL(cfg, input)
}

// ProcessBaseConfig validates everything except the audit URL. The mcp and
// history commands run without a URL; run_audit supplies one per request via
// RevalidateAuditURL.
func ProcessBaseConfig(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	if err := processSkips(cfg, input); err != nil {
		return err
	}
	processCredentials(cfg, input)
	return nil
}

// validateSimpleInputs processes and validates all non-URL fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Explain = input.Explain
	cfg.AI = input.AI
	cfg.HTML = input.HTML
	cfg.Excel = input.Excel
	cfg.Width = input.Width
	cfg.HistoryDBPath = input.HistoryDB

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- Precision Validation ---
	if input.Precision < 0 || input.Precision > 2 {
		return fmt.Errorf("precision must be between 0 and 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- Timeout Validation ---
	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid --timeout value '%s': %w", input.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive (received %s)", d)
		}
		cfg.Timeout = d
	}

	// --- Directories ---
	cfg.ReportDir = input.ReportDir
	if cfg.ReportDir == "" {
		cfg.ReportDir = DefaultReportDir
	}
	cfg.DataDir = input.DataDir
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDataDir
	}

	// --- Keywords ---
	if input.Keywords != "" {
		for p := range strings.SplitSeq(input.Keywords, ",") {
			kw := strings.TrimSpace(p)
			if kw != "" {
				cfg.Keywords = append(cfg.Keywords, kw)
			}
		}
		if len(cfg.Keywords) > DefaultMaxKeywords {
			return fmt.Errorf("too many keywords: %d (maximum %d)", len(cfg.Keywords), DefaultMaxKeywords)
		}
	}

	// --- Country ---
	cfg.Country = strings.ToLower(strings.TrimSpace(input.Country))
	if cfg.Country != "" && len(cfg.Country) != 2 {
		return fmt.Errorf("country must be a 2-letter ISO code (received %q)", input.Country)
	}

	return nil
}

// processURL normalizes and validates the website URL under audit.
func processURL(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.URLStr)
	if raw == "" {
		return fmt.Errorf("a website URL is required")
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid website URL %q: %w", input.URLStr, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid website URL %q: missing host", input.URLStr)
	}

	cfg.URL = parsed.String()
	cfg.Domain = NormalizeDomain(cfg.URL)
	return nil
}

// processWeights merges custom weights over the defaults and enforces the
// sum-to-1.0 invariant (fail fast, never renormalize).
func processWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.DefaultWeights()

	custom := map[schema.Section]*float64{
		schema.SectionBusiness:    input.Weights.Business,
		schema.SectionTech:        input.Weights.Tech,
		schema.SectionPerformance: input.Weights.Performance,
		schema.SectionReputation:  input.Weights.Reputation,
		schema.SectionSEO:         input.Weights.SEO,
		schema.SectionListings:    input.Weights.Listings,
	}
	for section, w := range custom {
		if w == nil {
			continue
		}
		if *w < 0 || *w > 1 {
			return fmt.Errorf("weight for %s must be in [0,1], got %.3f", section, *w)
		}
		weights[section] = *w
	}

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum < 1.0-WeightSumTolerance || sum > 1.0+WeightSumTolerance {
		return fmt.Errorf("section weights must sum to 1.0, got %.3f", sum)
	}

	cfg.Weights = weights
	return nil
}

// processSkips parses the --skip collector list.
func processSkips(cfg *Config, input *ConfigRawInput) error {
	cfg.Skip = make(map[string]bool)
	if input.Skip == "" {
		return nil
	}
	for p := range strings.SplitSeq(input.Skip, ",") {
		name := strings.ToLower(strings.TrimSpace(p))
		if name == "" {
			continue
		}
		if _, ok := ValidCollectorNames[name]; !ok {
			return fmt.Errorf("invalid collector %q in --skip. must be one of business, tech, pagespeed, google, facebook, seo", name)
		}
		cfg.Skip[name] = true
	}
	return nil
}

// processCredentials pulls API keys from viper-bound env values, falling back
// to the conventional unprefixed environment variables.
func processCredentials(cfg *Config, input *ConfigRawInput) {
	cfg.PageSpeedAPIKey = firstNonEmpty(input.PageSpeedAPIKey, os.Getenv("PAGESPEED_API_KEY"))
	cfg.ApifyToken = firstNonEmpty(input.ApifyToken, os.Getenv("APIFY_API_TOKEN"))
	cfg.OpenAIAPIKey = firstNonEmpty(input.OpenAIAPIKey, os.Getenv("OPENAI_API_KEY"))
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// RevalidateAuditURL re-runs URL normalization for an override URL, for
// callers (the MCP server) that adjust a cloned Config after startup.
func RevalidateAuditURL(cfg *Config, urlStr string) error {
	return processURL(cfg, &ConfigRawInput{URLStr: urlStr})
}

// DefaultHistoryDBPath returns the default location of the audit history
// database, creating the parent directory if needed.
func DefaultHistoryDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	dir := filepath.Join(home, ".sitegrade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return filepath.Join(dir, "history.db"), nil
}
