package main

import (
	"github.com/spf13/cobra"

	"newspulse/internal/app"
	"newspulse/internal/config"
	"newspulse/internal/logging"
)

var (
	cleanWindowStart   string
	cleanWindowEnd     string
	cleanMaxPerSection int
)

// cleanCmd creates the "clean" subcommand.
func cleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Filter, window, deduplicate, and cap the raw metadata table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load(configPath)
			if cleanWindowStart != "" {
				cfg.Clean.WindowStart = cleanWindowStart
			}
			if cleanWindowEnd != "" {
				cfg.Clean.WindowEnd = cleanWindowEnd
			}
			if cleanMaxPerSection > 0 {
				cfg.Clean.MaxPerSection = cleanMaxPerSection
			}

			application := app.New(cfg, logging.New(cfg.Logging.Level))
			return application.Clean(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cleanWindowStart, "window-start", "", "event window start, YYYY-MM-DD")
	cmd.Flags().StringVar(&cleanWindowEnd, "window-end", "", "event window end, YYYY-MM-DD (inclusive)")
	cmd.Flags().IntVar(&cleanMaxPerSection, "max-per-section", 0, "cap rows per section")

	return cmd
}
