package history

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/sitegrade/sitegrade/schema"
)

// AuditRow is the Parquet row layout for exported audit history.
type AuditRow struct {
	// ID is the history row identifier
	ID int64 `parquet:"id,snappy"`

	// Domain is the audited site's hostname
	Domain string `parquet:"domain,snappy"`

	// URL is the full audited URL
	URL string `parquet:"url,snappy"`

	// AuditTime is when the audit ran
	AuditTime time.Time `parquet:"audit_time,snappy"`

	// FinalScore is the weighted 0-100 marketing score
	FinalScore float64 `parquet:"final_score,snappy"`

	// Grade is the letter grade band
	Grade string `parquet:"grade,snappy"`

	// RiskLevel is the risk label for the grade band
	RiskLevel string `parquet:"risk_level,snappy"`
}

// ConvertHistoryEntries maps stored entries onto Parquet rows.
func ConvertHistoryEntries(entries []schema.HistoryEntry) []AuditRow {
	rows := make([]AuditRow, len(entries))
	for i, e := range entries {
		rows[i] = AuditRow{
			ID:         e.ID,
			Domain:     e.Domain,
			URL:        e.URL,
			AuditTime:  e.AuditTime,
			FinalScore: e.FinalScore,
			Grade:      e.Grade,
			RiskLevel:  e.RiskLevel,
		}
	}
	return rows
}

// WriteAuditsParquet writes audit rows to a Parquet file using struct schema
// inference.
func WriteAuditsParquet(rows []AuditRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[AuditRow](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// ExecuteExport dumps the whole audit history to a Parquet file.
func ExecuteExport(store *Store, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export")
	}

	count, err := store.CountAudits()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if count == 0 {
		return errors.New("no audit history found to export")
	}

	entries, err := store.ListAudits("", 0)
	if err != nil {
		return fmt.Errorf("failed to retrieve audit history: %w", err)
	}

	rows := ConvertHistoryEntries(entries)
	if err := WriteAuditsParquet(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write audit history: %w", err)
	}
	fmt.Printf("Exported %d audits to: %s\n", len(rows), outputFile)
	return nil
}
