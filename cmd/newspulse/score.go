package main

import (
	"github.com/spf13/cobra"
)

// scoreCmd creates the "score" subcommand.
func scoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Apply the VADER lexicon to headlines and body previews",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return newApp().Score(cmd.Context())
		},
	}
}
