package service

import (
	"context"
	"fmt"
	"time"

	"linewar-tracker/internal/config"
	"linewar-tracker/internal/constants"
	"linewar-tracker/internal/domain"
	"linewar-tracker/internal/metrics"
	"linewar-tracker/internal/resolver"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type AssociationStore interface {
	IndexNames(ctx context.Context) (int64, error)
	HashAvatarURLs(ctx context.Context) (int, error)
	ListUnresolvedPlayers(ctx context.Context) ([]domain.UnresolvedPlayer, error)
	RecordAssociation(ctx context.Context, player domain.UnresolvedPlayer, steamID uint64) error
	AssociateLeaderboard(ctx context.Context) (int64, error)
}

type Handshaker interface {
	Handshake(ctx context.Context) error
}

type PlayerResolver interface {
	Resolve(ctx context.Context, target domain.UnresolvedPlayer, depth int) (resolver.Outcome, error)
}

type AssociationSummary struct {
	RunID         string `json:"run_id"`
	NamesIndexed  int64  `json:"names_indexed"`
	AvatarsHashed int    `json:"avatars_hashed"`
	Players       int    `json:"players"`
	Resolved      int    `json:"resolved"`
	NotFound      int    `json:"not_found"`
	Aborted       int    `json:"aborted"`
	Failed        int    `json:"failed"`
	RowsLinked    int64  `json:"rows_linked"`
}

type AssociationService struct {
	store    AssociationStore
	session  Handshaker
	resolver PlayerResolver
	metrics  *metrics.Recorder
	depth    int
	logger   zerolog.Logger
}

func NewAssociationService(store AssociationStore, session Handshaker, resolver PlayerResolver, recorder *metrics.Recorder, cfg *config.Config, logger zerolog.Logger) *AssociationService {
	return &AssociationService{
		store:    store,
		session:  session,
		resolver: resolver,
		metrics:  recorder,
		depth:    cfg.SearchDepth,
		logger:   logger,
	}
}

// Run resolves every unresolved leaderboard identity one at a time. Individual
// player failures are logged and counted; only storage preparation, the
// handshake and cancellation end the run early.
func (s *AssociationService) Run(ctx context.Context, depth int) (*AssociationSummary, error) {
	if depth < 1 {
		depth = s.depth
	}

	started := time.Now()
	summary := &AssociationSummary{RunID: uuid.NewString()}
	logger := s.logger.With().Str("run_id", summary.RunID).Logger()
	logger.Info().Int("search_depth", depth).Msg("association run started")

	var err error
	summary.NamesIndexed, err = s.store.IndexNames(ctx)
	if err != nil {
		return summary, err
	}
	summary.AvatarsHashed, err = s.store.HashAvatarURLs(ctx)
	if err != nil {
		return summary, err
	}
	logger.Debug().
		Int64("names_indexed", summary.NamesIndexed).
		Int("avatars_hashed", summary.AvatarsHashed).
		Msg("storage prepared")

	var players []domain.UnresolvedPlayer
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		players, err = s.store.ListUnresolvedPlayers(gCtx)
		return err
	})

	g.Go(func() error {
		return s.session.Handshake(gCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("failed to start association run")
		return summary, fmt.Errorf("failed to start association run: %w", err)
	}

	summary.Players = len(players)
	s.metrics.UnresolvedPlayers(summary.Players)
	logger.Info().Int("players", summary.Players).Msg("resolving unresolved players")

	for _, player := range players {
		if err := ctx.Err(); err != nil {
			logger.Warn().Err(err).Msg("association run cancelled")
			return summary, err
		}
		s.resolvePlayer(ctx, logger, player, depth, summary)
	}

	summary.RowsLinked, err = s.store.AssociateLeaderboard(ctx)
	if err != nil {
		return summary, err
	}

	s.metrics.RunFinished("associate", started)
	logger.Info().
		Int("resolved", summary.Resolved).
		Int("not_found", summary.NotFound).
		Int("aborted", summary.Aborted).
		Int("failed", summary.Failed).
		Int64("rows_linked", summary.RowsLinked).
		Msg("association run finished")

	return summary, nil
}

func (s *AssociationService) resolvePlayer(ctx context.Context, logger zerolog.Logger, player domain.UnresolvedPlayer, depth int, summary *AssociationSummary) {
	log := logger.With().
		Str("name", player.DisplayName).
		Str("avatar", player.AvatarFingerprint).
		Logger()

	outcome, err := s.resolver.Resolve(ctx, player, depth)
	if err != nil {
		summary.Failed++
		s.metrics.Outcome("error")
		log.Error().Err(err).Msg("failed to resolve player")
		return
	}
	s.metrics.Outcome(outcome.Kind.String())

	switch outcome.Kind {
	case resolver.KindResolved:
		dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
		defer cancel()
		if err := s.store.RecordAssociation(dbCtx, player, outcome.SteamID); err != nil {
			summary.Failed++
			log.Error().Err(err).Uint64("steam_id", outcome.SteamID).Msg("failed to record association")
			return
		}
		summary.Resolved++
		log.Info().Uint64("steam_id", outcome.SteamID).Msg("player resolved")
	case resolver.KindNotFound:
		summary.NotFound++
		log.Warn().Err(outcome.Err()).Msg("player not found")
	case resolver.KindAborted:
		summary.Aborted++
		log.Warn().Err(outcome.Err()).Int("search_depth", depth).Msg("search depth exhausted")
	default:
		summary.Failed++
		log.Error().Stringer("outcome", outcome.Kind).Msg("unexpected resolution outcome")
	}
}
