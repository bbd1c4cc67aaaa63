package scrape

import (
	"strconv"
	"strings"

	"linewar-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// Leaderboard parses the rows of one leaderboard page. A page without the rank
// table is an error; malformed rows are logged and skipped.
func (e *Extractor) Leaderboard(html string) ([]domain.LeaderboardEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &MarkupError{What: "leaderboard document", Err: err}
	}

	table := doc.Find(leaderboardSelector).First()
	if table.Length() == 0 {
		return nil, &MarkupError{What: "rank table not found"}
	}

	var entries []domain.LeaderboardEntry
	table.Find(leaderboardRowSelector).Each(func(i int, row *goquery.Selection) {
		columns := row.Find("td")
		if columns.Length() == 0 {
			// header
			return
		}
		entry, err := parseLeaderboardRow(columns)
		if err != nil {
			e.logger.Error().Err(err).Int("row", i).Msg("leaderboard parse error")
			return
		}
		entries = append(entries, entry)
	})

	return entries, nil
}

func parseLeaderboardRow(columns *goquery.Selection) (domain.LeaderboardEntry, error) {
	if columns.Length() < 6 {
		return domain.LeaderboardEntry{}, &MarkupError{What: "expected 6 columns, got " + strconv.Itoa(columns.Length())}
	}
	text := func(i int) string {
		return strings.TrimSpace(columns.Eq(i).Text())
	}

	rank, err := strconv.Atoi(strings.TrimPrefix(text(0), "#"))
	if err != nil {
		return domain.LeaderboardEntry{}, &MarkupError{What: "rank column", Err: err}
	}

	avatar, ok := columns.Eq(1).Find("img").First().Attr("src")
	if !ok {
		return domain.LeaderboardEntry{}, &MarkupError{What: "avatar image missing"}
	}

	name := text(2)
	if name == "" {
		return domain.LeaderboardEntry{}, &MarkupError{What: "name column empty"}
	}

	rating, err := strconv.ParseFloat(text(3), 64)
	if err != nil {
		return domain.LeaderboardEntry{}, &MarkupError{What: "rating column", Err: err}
	}

	wins, err := strconv.Atoi(text(4))
	if err != nil {
		return domain.LeaderboardEntry{}, &MarkupError{What: "wins column", Err: err}
	}

	losses, err := strconv.Atoi(text(5))
	if err != nil {
		return domain.LeaderboardEntry{}, &MarkupError{What: "losses column", Err: err}
	}

	return domain.LeaderboardEntry{
		Rank:   rank,
		Avatar: avatar,
		Name:   name,
		Rating: rating,
		Wins:   wins,
		Losses: losses,
	}, nil
}
