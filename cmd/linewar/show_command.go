package main

import (
	"context"
	"fmt"
	"time"

	"linewar-tracker/internal/domain"
	"linewar-tracker/internal/service"

	"github.com/spf13/cobra"
)

type leaderboardView struct {
	ScrapeID string      `json:"scrape_id"`
	At       time.Time   `json:"at"`
	Entries  []entryView `json:"entries"`
}

type entryView struct {
	Rank    int     `json:"rank"`
	Name    string  `json:"name"`
	Avatar  string  `json:"avatar"`
	Rating  float64 `json:"rating"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	SteamID *uint64 `json:"steam_id,omitempty"`
}

func newShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the latest stored leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "auto" {
				format = "json"
				if isTerminal(cmd.OutOrStdout()) {
					format = "table"
				}
			}
			if format != "json" && format != "table" {
				return fmt.Errorf("unknown format %q (want auto, json or table)", format)
			}

			var svc *service.ScrapeService
			return withApp(cmd.Context(), func(ctx context.Context) error {
				board, err := svc.Latest(ctx)
				if err != nil {
					return err
				}
				if format == "table" {
					fmt.Fprintln(cmd.OutOrStdout(), renderLeaderboard(board))
					return nil
				}
				return writeJSON(cmd, toLeaderboardView(board))
			}, &svc)
		},
	}

	cmd.Flags().StringVar(&format, "format", "auto", "Output format: auto, json or table")
	return cmd
}

func toLeaderboardView(board *domain.Leaderboard) leaderboardView {
	view := leaderboardView{
		ScrapeID: board.Scrape.ID,
		At:       board.Scrape.At,
		Entries:  make([]entryView, 0, len(board.Entries)),
	}
	for _, e := range board.Entries {
		view.Entries = append(view.Entries, entryView{
			Rank:    e.Rank,
			Name:    e.Name,
			Avatar:  e.Avatar,
			Rating:  e.Rating,
			Wins:    e.Wins,
			Losses:  e.Losses,
			SteamID: e.SteamID,
		})
	}
	return view
}
