package main

import (
	"context"

	"linewar-tracker/internal/database"
	"linewar-tracker/internal/service"

	"github.com/spf13/cobra"
)

func newAssociateCommand() *cobra.Command {
	var searchDepth int

	cmd := &cobra.Command{
		Use:   "associate",
		Short: "Link unresolved leaderboard players to Steam ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var svc *service.AssociationService
			var lock *database.RunLock
			return withApp(cmd.Context(), func(ctx context.Context) error {
				summary, err := svc.Run(ctx, searchDepth)
				if err != nil {
					return err
				}
				return writeJSON(cmd, summary)
			}, &lock, &svc)
		},
	}

	cmd.Flags().IntVar(&searchDepth, "search-depth", 0, "Result pages to examine per player (default from SEARCH_DEPTH)")
	return cmd
}
