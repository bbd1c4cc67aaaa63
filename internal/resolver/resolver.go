package resolver

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"linewar-tracker/internal/api"
	"linewar-tracker/internal/avatar"
	"linewar-tracker/internal/domain"

	"github.com/rs/zerolog"
)

type Searcher interface {
	Search(ctx context.Context, text string, page int) (*domain.SearchPage, error)
}

type HandleResolver interface {
	ResolveHandle(ctx context.Context, handle string) (uint64, error)
}

type CandidateExtractor interface {
	Candidates(markup string) (iter.Seq[domain.CandidateUser], error)
}

// Resolver links a leaderboard identity to a numeric Steam id by paging
// through user search results.
type Resolver struct {
	searcher  Searcher
	handles   HandleResolver
	extractor CandidateExtractor
	logger    zerolog.Logger
}

func New(searcher Searcher, handles HandleResolver, extractor CandidateExtractor, logger zerolog.Logger) *Resolver {
	return &Resolver{searcher: searcher, handles: handles, extractor: extractor, logger: logger}
}

// Resolve examines up to depth result pages, always starting from the first.
// A zero-result page ends the search with NotFound; the first row matching
// both name and avatar fingerprint wins. Transport and session failures are
// returned as errors.
func (r *Resolver) Resolve(ctx context.Context, target domain.UnresolvedPlayer, depth int) (Outcome, error) {
	if depth < 1 {
		depth = 1
	}

	for page := range depth {
		result, err := r.searcher.Search(ctx, target.DisplayName, page)
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to search page %d for %q: %w", page, target.DisplayName, err)
		}

		if result.ResultCount == 0 {
			r.logger.Debug().Str("name", target.DisplayName).Int("page", page).Msg("provider reported no results")
			return NotFound(), nil
		}

		candidate, ok := r.firstMatch(target, result.RawMarkup, page)
		if !ok {
			continue
		}

		r.logger.Debug().
			Str("name", target.DisplayName).
			Int("page", page).
			Str("profile", candidate.ProfileRef.String()).
			Msg("candidate matched")
		return r.resolveReference(ctx, candidate.ProfileRef)
	}

	return Aborted(), nil
}

func (r *Resolver) firstMatch(target domain.UnresolvedPlayer, markup string, page int) (domain.CandidateUser, bool) {
	candidates, err := r.extractor.Candidates(markup)
	if err != nil {
		r.logger.Warn().Err(err).Str("name", target.DisplayName).Int("page", page).Msg("skipping unparseable result page")
		return domain.CandidateUser{}, false
	}

	for candidate := range candidates {
		if candidate.DisplayName != target.DisplayName {
			continue
		}
		fingerprint, ok := avatar.Fingerprint(candidate.AvatarURL)
		if ok && fingerprint == target.AvatarFingerprint {
			return candidate, true
		}
	}
	return domain.CandidateUser{}, false
}

func (r *Resolver) resolveReference(ctx context.Context, ref domain.ProfileReference) (Outcome, error) {
	switch ref := ref.(type) {
	case domain.NumericProfile:
		return Resolved(ref.ID), nil
	case domain.HandleProfile:
		id, err := r.handles.ResolveHandle(ctx, ref.Handle)
		if errors.Is(err, api.ErrUserNotFound) {
			return NotFound(), nil
		}
		if err != nil {
			return Outcome{}, fmt.Errorf("failed to resolve handle %q: %w", ref.Handle, err)
		}
		return Resolved(id), nil
	default:
		return Outcome{}, fmt.Errorf("unsupported profile reference %T", ref)
	}
}
