// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAudit prints one audit result using the configured output format.
func (ow *OutWriter) WriteAudit(result *schema.AuditResult, cfg *contract.Config) error {
	return WriteAuditResult(result, cfg)
}

// WriteHistory prints stored audit summaries using the configured format.
func (ow *OutWriter) WriteHistory(entries []schema.HistoryEntry, cfg *contract.Config) error {
	return WriteHistoryEntries(entries, cfg)
}

// minTerminalWidth is the floor for text wrapping; anything narrower
// produces unreadable one-word columns.
const minTerminalWidth = 20

// getTerminalWidth returns the usable console width, honoring the --width
// override and falling back to 80 columns when detection fails (CI, pipes).
// The result is never below minTerminalWidth.
func getTerminalWidth(cfg *contract.Config) int {
	width := cfg.Width
	if width <= 0 {
		detected, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detected <= 0 {
			detected = 80
		}
		width = detected
	}
	return max(width, minTerminalWidth)
}
