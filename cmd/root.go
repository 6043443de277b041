package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sitegrade/sitegrade/internal/collect"
	"github.com/sitegrade/sitegrade/internal/contract"
	"github.com/sitegrade/sitegrade/internal/history"
	"github.com/sitegrade/sitegrade/internal/narrative"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// collectors holds the wired collector set for the current run.
var collectors contract.CollectorSet

// summarizer produces the optional AI narrative; nil when no API key is set.
var summarizer contract.Summarizer

// store is the audit history store; nil when history tracking is disabled.
var store *history.Store

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "sitegrade",
	Short:              "Audit the digital marketing presence of a website.",
	Long:               `Sitegrade scores a business website across visibility, trust, and performance, and grades the result.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Load .env before viper reads the environment, so API keys in a local
	// .env file are picked up like exported variables.
	_ = godotenv.Load()

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".sitegrade") // Name of config file (without extension)
		viper.SetConfigType("yaml")       // We'll use YAML format
		viper.AddConfigPath(".")          // Look in the current directory
		viper.AddConfigPath("$HOME")      // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("SITEGRADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", "text")
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("color", "yes")
	viper.SetDefault("timeout", contract.DefaultTimeout.String())
	viper.SetDefault("report-dir", contract.DefaultReportDir)
	viper.SetDefault("data-dir", contract.DefaultDataDir)
	viper.SetDefault("history-db", "")
}

// loadConfigFile reads the config file if present. A missing file is fine;
// defaults, env, and flags still apply.
func loadConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config and runs validation for commands that audit a
// URL. The positional argument is the website URL.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// Handle positional arguments (which Viper doesn't do).
	if len(args) == 1 {
		input.URLStr = args[0]
	}

	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	if err := openHistoryStore(); err != nil {
		return err
	}
	buildCollectors()
	return nil
}

// baseSetup is sharedSetup without the URL requirement, for commands that
// operate per-request (mcp) or on stored data only (history).
func baseSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := contract.ProcessBaseConfig(cfg, input); err != nil {
		return err
	}
	if err := openHistoryStore(); err != nil {
		return err
	}
	buildCollectors()
	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// openHistoryStore opens the audit history database at the configured path,
// falling back to ~/.sitegrade/history.db. Failure to open the store disables
// tracking but never blocks the audit itself.
func openHistoryStore() error {
	dbPath := cfg.HistoryDBPath
	if dbPath == "" {
		defaultPath, err := contract.DefaultHistoryDBPath()
		if err != nil {
			contract.LogWarn("History tracking disabled", err)
			return nil
		}
		dbPath = defaultPath
	}

	s, err := history.Open(dbPath)
	if err != nil {
		contract.LogWarn("History tracking disabled", err)
		return nil
	}
	store = s
	return nil
}

// buildCollectors wires the collector set from the validated config. Collectors
// whose credentials are missing stay nil and are skipped by the pipeline.
func buildCollectors() {
	fetcher := collect.NewFetcher(cfg.Timeout)
	site := collect.NewSiteCollector(fetcher)

	collectors.Business = site
	collectors.Tech = site

	if cfg.PageSpeedAPIKey != "" {
		collectors.PageSpeed = collect.NewPageSpeedCollector(cfg.PageSpeedAPIKey)
	} else {
		contract.LogStep("PAGESPEED_API_KEY not set; skipping performance collector")
	}

	if cfg.ApifyToken != "" {
		apify := collect.NewApifyClient(cfg.ApifyToken)
		collectors.Google = collect.NewGooglePlacesCollector(apify)
		collectors.Facebook = collect.NewFacebookCollector(site, collect.NewFacebookReviewsCollector(apify))
		collectors.SEO = collect.NewSERPCollector(apify)
	} else {
		contract.LogStep("APIFY_API_TOKEN not set; skipping reputation and SEO collectors")
	}

	if cfg.OpenAIAPIKey != "" {
		summarizer = narrative.NewSummarizer(cfg.OpenAIAPIKey)
	}
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if err := store.Close(); err != nil {
			contract.LogWarn("Closing history store failed", err)
		}
	}()
	return rootCmd.Execute()
}
