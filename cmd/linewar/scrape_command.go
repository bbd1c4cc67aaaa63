package main

import (
	"context"

	"linewar-tracker/internal/database"
	"linewar-tracker/internal/service"

	"github.com/spf13/cobra"
)

func newScrapeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Fetch the current leaderboard and store it as a new scrape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc *service.ScrapeService
			var lock *database.RunLock
			return withApp(cmd.Context(), func(ctx context.Context) error {
				summary, err := svc.Run(ctx)
				if err != nil {
					return err
				}
				return writeJSON(cmd, summary)
			}, &lock, &svc)
		},
	}
}
