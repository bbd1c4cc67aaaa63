package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linewar",
		Short:         "Line War leaderboard tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newScrapeCommand())
	rootCmd.AddCommand(newAssociateCommand())
	rootCmd.AddCommand(newLookupCommand())
	rootCmd.AddCommand(newShowCommand())

	return rootCmd
}
