package core

import (
	"context"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/internal/history"
	"github.com/sitegrade/sitegrade/internal/outwriter"
)

// ExecuteAuditCommand runs the full audit and handles everything the CLI
// command owns after scoring: writing output, optional report files, and
// history tracking. It serves as the main entry point for the 'audit' command.
func ExecuteAuditCommand(ctx context.Context, cfg *contract.Config, set contract.CollectorSet, summarizer contract.Summarizer, store *history.Store) error {
	result, err := ExecuteAudit(ctx, cfg, set, summarizer)
	if err != nil {
		return err
	}

	writer := outwriter.NewOutWriter()
	if err := writer.WriteAudit(result, cfg); err != nil {
		return err
	}

	if cfg.HTML {
		path, err := outwriter.WriteHTMLReport(result, cfg.ReportDir)
		if err != nil {
			contract.LogWarn("HTML report failed", err)
		} else {
			contract.LogStep("HTML report written to %s", path)
		}
	}
	if cfg.Excel {
		path, err := outwriter.WriteExcelExport(result, cfg.DataDir)
		if err != nil {
			contract.LogWarn("Excel export failed", err)
		} else {
			contract.LogStep("Excel export written to %s", path)
		}
	}

	if _, err := store.RecordAudit(cfg.Domain, result); err != nil {
		contract.LogWarn("History tracking failed", err)
	}
	return nil
}
