package main

import (
	"github.com/spf13/cobra"
)

// renderCmd creates the "render" subcommand.
func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render summary charts into an HTML report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newApp().Render(cmd.Context())
		},
	}
}
