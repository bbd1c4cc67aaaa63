package service

import (
	"context"
	"fmt"
	"time"

	"linewar-tracker/internal/avatar"
	"linewar-tracker/internal/config"
	"linewar-tracker/internal/constants"
	"linewar-tracker/internal/domain"
	"linewar-tracker/internal/resolver"

	"github.com/rs/zerolog"
)

// LookupService resolves a single name and avatar URL without touching storage.
type LookupService struct {
	session     Handshaker
	resolver    PlayerResolver
	depth       int
	httpTimeout time.Duration
	logger      zerolog.Logger
}

func NewLookupService(session Handshaker, resolver PlayerResolver, cfg *config.Config, logger zerolog.Logger) *LookupService {
	return &LookupService{
		session:     session,
		resolver:    resolver,
		depth:       cfg.SearchDepth,
		httpTimeout: cfg.HTTPTimeout,
		logger:      logger,
	}
}

// timeout budgets one request timeout for the handshake, each search page
// and the vanity call.
func (s *LookupService) timeout(depth int) time.Duration {
	perRequest := s.httpTimeout
	if perRequest <= 0 {
		perRequest = constants.ExternalAPITimeout
	}
	return perRequest * time.Duration(depth+2)
}

func (s *LookupService) Lookup(ctx context.Context, name, avatarURL string, depth int) (resolver.Outcome, error) {
	if depth < 1 {
		depth = s.depth
	}
	if depth < 1 {
		depth = constants.DefaultSearchDepth
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout(depth))
	defer cancel()

	fingerprint, ok := avatar.Fingerprint(avatarURL)
	if !ok {
		s.logger.Warn().Str("avatar_url", avatarURL).Msg("avatar url has no fingerprint")
		return resolver.NotFound(), nil
	}

	if err := s.session.Handshake(ctx); err != nil {
		return resolver.Outcome{}, fmt.Errorf("failed to establish search session: %w", err)
	}

	target := domain.UnresolvedPlayer{DisplayName: name, AvatarFingerprint: fingerprint}
	outcome, err := s.resolver.Resolve(ctx, target, depth)
	if err != nil {
		return resolver.Outcome{}, err
	}

	s.logger.Info().
		Str("name", name).
		Str("avatar", fingerprint).
		Stringer("outcome", outcome).
		Msg("lookup finished")
	return outcome, nil
}
