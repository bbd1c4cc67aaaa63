package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"linewar-tracker/internal/constants"
	"linewar-tracker/internal/domain"
	"linewar-tracker/internal/metrics"

	"github.com/rs/zerolog"
)

var ErrEmptyLeaderboard = errors.New("leaderboard returned no entries")

type LeaderboardFetcher interface {
	FetchPage(ctx context.Context, page int) (string, error)
}

type LeaderboardParser interface {
	Leaderboard(html string) ([]domain.LeaderboardEntry, error)
}

type LeaderboardStore interface {
	StoreScrape(ctx context.Context, at time.Time, entries []domain.LeaderboardEntry) (*domain.LeaderboardScrape, error)
	Latest(ctx context.Context) (*domain.Leaderboard, error)
}

type ScrapeSummary struct {
	ScrapeID string    `json:"scrape_id"`
	At       time.Time `json:"at"`
	Pages    int       `json:"pages"`
	Entries  int       `json:"entries"`
}

type ScrapeService struct {
	fetcher LeaderboardFetcher
	parser  LeaderboardParser
	store   LeaderboardStore
	metrics *metrics.Recorder
	logger  zerolog.Logger
}

func NewScrapeService(fetcher LeaderboardFetcher, parser LeaderboardParser, store LeaderboardStore, recorder *metrics.Recorder, logger zerolog.Logger) *ScrapeService {
	return &ScrapeService{fetcher: fetcher, parser: parser, store: store, metrics: recorder, logger: logger}
}

// Run walks leaderboard pages from 1 until a page has no rows and stores the
// result as one scrape. Nothing is stored when a page fails.
func (s *ScrapeService) Run(ctx context.Context) (*ScrapeSummary, error) {
	at := time.Now()

	var entries []domain.LeaderboardEntry
	pages := 0
	for page := 1; page <= constants.MaxLeaderboardPages; page++ {
		html, err := s.fetcher.FetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch leaderboard page %d: %w", page, err)
		}

		rows, err := s.parser.Leaderboard(html)
		if err != nil {
			return nil, fmt.Errorf("failed to parse leaderboard page %d: %w", page, err)
		}
		if len(rows) == 0 {
			break
		}

		pages++
		entries = append(entries, rows...)
		s.logger.Debug().Int("page", page).Int("rows", len(rows)).Msg("leaderboard page scraped")

		if page == constants.MaxLeaderboardPages {
			s.logger.Warn().Int("max_pages", constants.MaxLeaderboardPages).Msg("leaderboard page limit reached")
		}
	}

	if len(entries) == 0 {
		return nil, ErrEmptyLeaderboard
	}

	scrape, err := s.store.StoreScrape(ctx, at, entries)
	if err != nil {
		return nil, err
	}
	stored := len(entries)

	s.metrics.ScrapedEntries(stored)
	s.metrics.RunFinished("scrape", at)
	s.logger.Info().
		Str("scrape_id", scrape.ID).
		Int("pages", pages).
		Int("entries", stored).
		Msg("leaderboard scrape stored")

	return &ScrapeSummary{ScrapeID: scrape.ID, At: scrape.At, Pages: pages, Entries: stored}, nil
}

// Latest returns the newest stored leaderboard.
func (s *ScrapeService) Latest(ctx context.Context) (*domain.Leaderboard, error) {
	return s.store.Latest(ctx)
}
