package main

import (
	"github.com/spf13/cobra"
)

// summarizeCmd creates the "summarize" subcommand.
func summarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Aggregate scored articles by section and by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newApp().Summarize(cmd.Context())
		},
	}
}
