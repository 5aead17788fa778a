package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kyleking/dwh-analyst/internal/config"
	"github.com/kyleking/dwh-analyst/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "dwh-analyst",
	Short: "Ask natural-language questions about the data warehouse",
	Long: `dwh-analyst turns plain-English questions into safe, bounded, read-only SQL
against the company data warehouse, using schema knowledge, curated business
rules, and validated example queries. When the warehouse or the language model
is unavailable the tool degrades to query templates and synthetic demo data
instead of failing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	ctx := context.Background()
	return rootCmd.ExecuteContext(ctx)
}

// loadConfig loads configuration and initializes logging for a command run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.SetupFallbackLogger()
		return nil, err
	}

	cfg.ExpandAllPaths()

	if err := logging.InitializeLogger(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
		File:   cfg.Logging.File,
	}); err != nil {
		logging.SetupFallbackLogger()
	}

	return cfg, nil
}
