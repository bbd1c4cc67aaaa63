package main

import (
	"context"

	"linewar-tracker/internal/service"

	"github.com/spf13/cobra"
)

type lookupResult struct {
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
	Outcome string `json:"outcome"`
	SteamID uint64 `json:"steam_id,omitempty"`
}

func newLookupCommand() *cobra.Command {
	var searchDepth int

	cmd := &cobra.Command{
		Use:   "lookup NAME AVATAR_URL",
		Short: "Resolve one name and avatar pair to a Steam id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, avatarURL := args[0], args[1]

			var svc *service.LookupService
			return withApp(cmd.Context(), func(ctx context.Context) error {
				outcome, err := svc.Lookup(ctx, name, avatarURL, searchDepth)
				if err != nil {
					return err
				}
				return writeJSON(cmd, lookupResult{
					Name:    name,
					Avatar:  avatarURL,
					Outcome: outcome.Kind.String(),
					SteamID: outcome.SteamID,
				})
			}, &svc)
		},
	}

	cmd.Flags().IntVar(&searchDepth, "search-depth", 0, "Result pages to examine (default from SEARCH_DEPTH)")
	return cmd
}
