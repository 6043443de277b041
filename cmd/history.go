package cmd

import (
	"fmt"

	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/internal/history"
	"github.com/sitegrade/sitegrade/internal/outwriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd lists stored audit runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored audit results, newest first.",
	Long: `Show audits recorded in the local history database.

Every completed audit is stored with its final score, grade, and full result
payload. Use history to track how a site's marketing presence evolves across
repeated audits.

Subcommands:
  export - Export history to Parquet for analytics

Examples:
  # Show all stored audits
  sitegrade history

  # Show the last five audits of one site
  sitegrade history --domain acme-plumbing.com --limit 5

  # Machine-readable output
  sitegrade history --output json`,
	PreRunE: baseSetup,
	Run: func(_ *cobra.Command, _ []string) {
		domain := contract.NormalizeDomain(viper.GetString("domain"))
		entries, err := store.ListAudits(domain, viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Cannot read audit history", err)
		}
		writer := outwriter.NewOutWriter()
		if err := writer.WriteHistory(entries, cfg); err != nil {
			contract.LogFatal("Cannot write audit history", err)
		}
	},
}

// historyClearCmd removes all stored audit history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored audit history",
	Long: `Delete every stored audit run from the history database.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  sitegrade history export --output-file backup.parquet
  sitegrade history clear`,
	PreRunE: baseSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := store.ClearAudits(); err != nil {
			contract.LogFatal("Cannot clear audit history", err)
		}
		fmt.Println("Audit history cleared successfully.")
	},
}

// historyExportCmd exports history data to a Parquet file.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit history to Parquet for BI tools and analytics",
	Long: `Export all stored audit history to Parquet format.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools

Requires: --output-file parameter

Examples:
  # Export all history
  sitegrade history export --output-file audits.parquet

  # Query with DuckDB
  duckdb -c "SELECT domain, final_score FROM read_parquet('audits.parquet')"`,
	PreRunE: baseSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteExport(store, cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot export audit history", err)
		}
	},
}
