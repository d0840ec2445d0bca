package main

import (
	"github.com/spf13/cobra"

	"newspulse/internal/app"
	"newspulse/internal/config"
	"newspulse/internal/logging"
)

var configPath string

// rootCmd assembles the stage subcommands. Each stage is a single-pass
// batch transform: it reads its declared input tables and writes its
// declared outputs, nothing else.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "newspulse",
		Short: "Scrape news sections and compare headline vs body sentiment",
		Long: `newspulse is a batch pipeline: collect scrapes section pages into a raw
metadata table, clean filters and balances it, score applies a VADER
lexicon to headlines and body previews, summarize aggregates by section
and day, and render draws the summary charts.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")

	cmd.AddCommand(
		collectCmd(),
		cleanCmd(),
		scoreCmd(),
		summarizeCmd(),
		renderCmd(),
	)
	return cmd
}

// newApp loads configuration and builds the application for one stage run.
func newApp() *app.Application {
	cfg := config.Load(configPath)
	logger := logging.New(cfg.Logging.Level)
	return app.New(cfg, logger)
}
