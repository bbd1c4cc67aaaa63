package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"linewar-tracker/internal/constants"
	"linewar-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var (
	ErrNoScrapes   = errors.New("no leaderboard scrapes recorded")
	ErrEmptyScrape = errors.New("scrape has no entries")
)

type LeaderboardRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewLeaderboardRepository(sqlDB *sql.DB, logger zerolog.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{db: sqlDB, logger: logger}
}

// StoreScrape writes a scrape row and all of its entries in one transaction,
// so a failed write leaves no partial scrape behind.
func (r *LeaderboardRepository) StoreScrape(ctx context.Context, at time.Time, entries []domain.LeaderboardEntry) (*domain.LeaderboardScrape, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyScrape
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate nanoid: %w", err)
	}
	scrape := &domain.LeaderboardScrape{ID: id, At: at.UTC()}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO leaderboard_scrape (id, at) VALUES (?, ?)`,
		scrape.ID, scrape.At,
	); err != nil {
		return nil, fmt.Errorf("failed to create scrape: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO leaderboard (leaderboard_scrape_id, rank, avatar, name, rating, wins, losses)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < len(entries); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(entries))

		for _, entry := range entries[i:end] {
			if _, err := stmt.ExecContext(ctx, scrape.ID, entry.Rank, entry.Avatar, entry.Name, entry.Rating, entry.Wins, entry.Losses); err != nil {
				return nil, fmt.Errorf("failed to insert entry rank %d: %w", entry.Rank, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit scrape: %w", err)
	}

	r.logger.Debug().Str("scrape_id", scrape.ID).Int("entries", len(entries)).Msg("scrape stored")
	return scrape, nil
}

// Latest returns the most recent scrape with associated Steam ids filled in.
func (r *LeaderboardRepository) Latest(ctx context.Context) (*domain.Leaderboard, error) {
	var scrape domain.LeaderboardScrape
	err := r.db.QueryRowContext(ctx,
		`SELECT id, at FROM leaderboard_scrape ORDER BY at DESC LIMIT 1`,
	).Scan(&scrape.ID, &scrape.At)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoScrapes
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest scrape: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT l.rank, l.avatar, l.name, l.rating, l.wins, l.losses, sa.steam_id
		FROM leaderboard l
		LEFT JOIN associated_leaderboard al ON al.leaderboard_id = l.id
		LEFT JOIN steam_association sa ON sa.id = al.steam_association_id
		WHERE l.leaderboard_scrape_id = ?
		ORDER BY l.rank`, scrape.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	board := &domain.Leaderboard{Scrape: scrape}
	for rows.Next() {
		var entry domain.LeaderboardEntry
		var steamID sql.NullString
		if err := rows.Scan(&entry.Rank, &entry.Avatar, &entry.Name, &entry.Rating, &entry.Wins, &entry.Losses, &steamID); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if steamID.Valid {
			id, err := strconv.ParseUint(steamID.String, 10, 64)
			if err != nil {
				r.logger.Warn().Err(err).Str("steam_id", steamID.String).Msg("stored steam id is not numeric")
			} else {
				entry.SteamID = &id
			}
		}
		board.Entries = append(board.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	return board, nil
}
