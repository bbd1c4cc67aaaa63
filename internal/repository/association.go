package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"linewar-tracker/internal/avatar"
	"linewar-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// AssociationRepository stores the links between leaderboard identities
// (name + avatar hash) and Steam ids.
type AssociationRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAssociationRepository(sqlDB *sql.DB, logger zerolog.Logger) *AssociationRepository {
	return &AssociationRepository{db: sqlDB, logger: logger}
}

// IndexNames records leaderboard names not yet present in names.
func (r *AssociationRepository) IndexNames(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO names (name)
		SELECT DISTINCT l.name
		FROM leaderboard l
		LEFT JOIN names n ON n.name = l.name
		WHERE n.id IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to index names: %w", err)
	}
	return res.RowsAffected()
}

// HashAvatarURLs fingerprints leaderboard avatar URLs that are not mapped yet.
// URLs without a recognizable fingerprint are skipped.
func (r *AssociationRepository) HashAvatarURLs(ctx context.Context) (int, error) {
	urls, err := r.unmappedAvatarURLs(ctx)
	if err != nil {
		return 0, err
	}
	if len(urls) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	mapped := 0
	for _, url := range urls {
		hash, ok := avatar.Fingerprint(url)
		if !ok {
			r.logger.Debug().Str("url", url).Msg("avatar url has no fingerprint, skipping")
			continue
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO avatar_hash (hash) VALUES (?) ON CONFLICT (hash) DO NOTHING`, hash); err != nil {
			return 0, fmt.Errorf("failed to insert avatar hash %s: %w", hash, err)
		}

		var hashID int64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM avatar_hash WHERE hash = ?`, hash).Scan(&hashID); err != nil {
			return 0, fmt.Errorf("failed to look up avatar hash %s: %w", hash, err)
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO avatar_map (url, avatar_hash_id) VALUES (?, ?)`, url, hashID); err != nil {
			return 0, fmt.Errorf("failed to map avatar url %s: %w", url, err)
		}
		mapped++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit avatar hashes: %w", err)
	}
	return mapped, nil
}

func (r *AssociationRepository) unmappedAvatarURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT l.avatar
		FROM leaderboard l
		LEFT JOIN avatar_map am ON am.url = l.avatar
		WHERE am.url IS NULL
		ORDER BY l.avatar`)
	if err != nil {
		return nil, fmt.Errorf("failed to query avatar urls: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan avatar url: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}

// ListUnresolvedPlayers returns every (name, avatar hash) pair seen on the
// leaderboard that has no association yet, in a stable order.
func (r *AssociationRepository) ListUnresolvedPlayers(ctx context.Context) ([]domain.UnresolvedPlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT n.name, ah.hash, n.id, ah.id
		FROM leaderboard l
		JOIN names n ON n.name = l.name
		JOIN avatar_map am ON am.url = l.avatar
		JOIN avatar_hash ah ON ah.id = am.avatar_hash_id
		LEFT JOIN steam_association sa ON sa.names_id = n.id AND sa.avatar_hash_id = ah.id
		WHERE sa.id IS NULL
		ORDER BY n.id, ah.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unresolved players: %w", err)
	}
	defer rows.Close()

	var players []domain.UnresolvedPlayer
	for rows.Next() {
		var p domain.UnresolvedPlayer
		if err := rows.Scan(&p.DisplayName, &p.AvatarFingerprint, &p.NamesID, &p.AvatarHashID); err != nil {
			return nil, fmt.Errorf("failed to scan unresolved player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unresolved players: %w", err)
	}
	return players, nil
}

func (r *AssociationRepository) RecordAssociation(ctx context.Context, player domain.UnresolvedPlayer, steamID uint64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO steam_association (names_id, avatar_hash_id, steam_id, created_at)
		VALUES (?, ?, ?, ?)`,
		player.NamesID, player.AvatarHashID, strconv.FormatUint(steamID, 10), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record association for %q: %w", player.DisplayName, err)
	}
	return nil
}

// AssociateLeaderboard links leaderboard rows to recorded associations.
func (r *AssociationRepository) AssociateLeaderboard(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO associated_leaderboard (steam_association_id, leaderboard_id)
		SELECT sa.id, l.id
		FROM leaderboard l
		JOIN names n ON n.name = l.name
		JOIN avatar_map am ON am.url = l.avatar
		JOIN steam_association sa ON sa.names_id = n.id AND sa.avatar_hash_id = am.avatar_hash_id`)
	if err != nil {
		return 0, fmt.Errorf("failed to associate leaderboard: %w", err)
	}
	return res.RowsAffected()
}
