package main

import (
	"io"
	"os"
	"strconv"

	"linewar-tracker/internal/domain"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

func renderLeaderboard(board *domain.Leaderboard) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("scrape " + board.Scrape.ID + " at " + board.Scrape.At.Format("2006-01-02 15:04 MST"))
	tw.AppendHeader(table.Row{"Rank", "Name", "Rating", "Wins", "Losses", "Steam ID"})

	for _, e := range board.Entries {
		steamID := ""
		if e.SteamID != nil {
			steamID = strconv.FormatUint(*e.SteamID, 10)
		}
		tw.AppendRow(table.Row{
			e.Rank,
			e.Name,
			strconv.FormatFloat(e.Rating, 'f', 2, 64),
			e.Wins,
			e.Losses,
			steamID,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
