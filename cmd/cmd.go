// Package cmd defines the command-line interface for sitegrade.
package cmd

import (
	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", "text", "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-db", "", "Path to the audit history database (default: ~/.sitegrade/history.db)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of auditCmd to Viper
	auditCmd.Flags().StringP("keywords", "k", "", "Comma-separated keywords for SEO visibility (derived automatically when omitted)")
	auditCmd.Flags().String("country", "", "2-letter country code for search rankings")
	auditCmd.Flags().String("timeout", contract.DefaultTimeout.String(), "Per-request timeout for site collectors")
	auditCmd.Flags().Bool("explain", false, "Print per-section weight and contribution breakdown")
	auditCmd.Flags().Bool("ai", false, "Generate an AI narrative summary (requires OPENAI_API_KEY)")
	auditCmd.Flags().Bool("html", false, "Write an HTML report to the report directory")
	auditCmd.Flags().Bool("excel", false, "Write an Excel export to the data directory")
	auditCmd.Flags().String("report-dir", contract.DefaultReportDir, "Directory for HTML reports")
	auditCmd.Flags().String("data-dir", contract.DefaultDataDir, "Directory for Excel exports")
	auditCmd.Flags().String("skip", "", "Comma-separated collectors to skip (business, tech, pagespeed, google, facebook, seo)")
	if err := viper.BindPFlags(auditCmd.Flags()); err != nil {
		contract.LogFatal("Error binding audit flags", err)
	}

	// Bind all flags of historyCmd to Viper
	historyCmd.Flags().String("domain", "", "Filter history by domain")
	historyCmd.Flags().IntP("limit", "l", 0, "Maximum number of history entries to show (0 = all)")
	if err := viper.BindPFlags(historyCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history flags", err)
	}
}
