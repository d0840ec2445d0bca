package main

import (
	"github.com/spf13/cobra"

	"newspulse/internal/app"
	"newspulse/internal/config"
	"newspulse/internal/logging"
)

var (
	collectTarget   int
	collectMaxPages int
	collectDelay    string
)

// collectCmd creates the "collect" subcommand.
func collectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Scrape section pages and append accepted articles to the raw table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(configPath)
			if collectTarget > 0 {
				cfg.Collect.ArticlesPerSection = collectTarget
			}
			if collectMaxPages > 0 {
				cfg.Collect.MaxPagesPerSection = collectMaxPages
			}
			if collectDelay != "" {
				cfg.Collect.RequestDelay = collectDelay
			}

			application := app.New(cfg, logging.New(cfg.Logging.Level))
			return application.Collect(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&collectTarget, "target", 0, "articles to collect per section")
	cmd.Flags().IntVar(&collectMaxPages, "max-pages", 0, "page safety cap per section")
	cmd.Flags().StringVar(&collectDelay, "delay", "", "delay between requests, e.g. 1s")

	return cmd
}
