package service

import (
	"context"
	"fmt"
	"time"

	"linewar-tracker/internal/domain"
	"linewar-tracker/internal/resolver"
)

// ------------------------
// Fake Association Store
// ------------------------

type FakeAssociationStore struct {
	trace []string

	IndexNamesFunc            func(ctx context.Context) (int64, error)
	HashAvatarURLsFunc        func(ctx context.Context) (int, error)
	ListUnresolvedPlayersFunc func(ctx context.Context) ([]domain.UnresolvedPlayer, error)
	RecordAssociationFunc     func(ctx context.Context, player domain.UnresolvedPlayer, steamID uint64) error
	AssociateLeaderboardFunc  func(ctx context.Context) (int64, error)
}

func (f *FakeAssociationStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeAssociationStore) Trace() []string {
	return f.trace
}

func (f *FakeAssociationStore) IndexNames(ctx context.Context) (int64, error) {
	f.record("IndexNames")
	if f.IndexNamesFunc != nil {
		return f.IndexNamesFunc(ctx)
	}
	return 0, nil
}

func (f *FakeAssociationStore) HashAvatarURLs(ctx context.Context) (int, error) {
	f.record("HashAvatarURLs")
	if f.HashAvatarURLsFunc != nil {
		return f.HashAvatarURLsFunc(ctx)
	}
	return 0, nil
}

func (f *FakeAssociationStore) ListUnresolvedPlayers(ctx context.Context) ([]domain.UnresolvedPlayer, error) {
	f.record("ListUnresolvedPlayers")
	if f.ListUnresolvedPlayersFunc != nil {
		return f.ListUnresolvedPlayersFunc(ctx)
	}
	return nil, nil
}

func (f *FakeAssociationStore) RecordAssociation(ctx context.Context, player domain.UnresolvedPlayer, steamID uint64) error {
	f.record(fmt.Sprintf("RecordAssociation(%s,%d)", player.DisplayName, steamID))
	if f.RecordAssociationFunc != nil {
		return f.RecordAssociationFunc(ctx, player, steamID)
	}
	return nil
}

func (f *FakeAssociationStore) AssociateLeaderboard(ctx context.Context) (int64, error) {
	f.record("AssociateLeaderboard")
	if f.AssociateLeaderboardFunc != nil {
		return f.AssociateLeaderboardFunc(ctx)
	}
	return 0, nil
}

// ------------------------
// Fake Session
// ------------------------

type FakeHandshaker struct {
	calls int

	HandshakeFunc func(ctx context.Context) error
}

func (f *FakeHandshaker) Handshake(ctx context.Context) error {
	f.calls++
	if f.HandshakeFunc != nil {
		return f.HandshakeFunc(ctx)
	}
	return nil
}

// ------------------------
// Fake Resolver
// ------------------------

type FakePlayerResolver struct {
	trace []string

	ResolveFunc func(ctx context.Context, target domain.UnresolvedPlayer, depth int) (resolver.Outcome, error)
}

func (f *FakePlayerResolver) Resolve(ctx context.Context, target domain.UnresolvedPlayer, depth int) (resolver.Outcome, error) {
	f.trace = append(f.trace, fmt.Sprintf("Resolve(%s,%s,%d)", target.DisplayName, target.AvatarFingerprint, depth))
	if f.ResolveFunc != nil {
		return f.ResolveFunc(ctx, target, depth)
	}
	return resolver.Aborted(), nil
}

func (f *FakePlayerResolver) Trace() []string {
	return f.trace
}

// ------------------------
// Fake Leaderboard
// ------------------------

type FakeLeaderboardFetcher struct {
	pages []int

	FetchPageFunc func(ctx context.Context, page int) (string, error)
}

func (f *FakeLeaderboardFetcher) FetchPage(ctx context.Context, page int) (string, error) {
	f.pages = append(f.pages, page)
	if f.FetchPageFunc != nil {
		return f.FetchPageFunc(ctx, page)
	}
	return "", nil
}

// FakeLeaderboardParser treats html as a key into Pages.
type FakeLeaderboardParser struct {
	Pages map[string][]domain.LeaderboardEntry
	Err   error
}

func (f *FakeLeaderboardParser) Leaderboard(html string) ([]domain.LeaderboardEntry, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Pages[html], nil
}

type FakeLeaderboardStore struct {
	trace   []string
	entries []domain.LeaderboardEntry

	StoreScrapeFunc func(ctx context.Context, at time.Time, entries []domain.LeaderboardEntry) (*domain.LeaderboardScrape, error)
	LatestFunc      func(ctx context.Context) (*domain.Leaderboard, error)
}

func (f *FakeLeaderboardStore) StoreScrape(ctx context.Context, at time.Time, entries []domain.LeaderboardEntry) (*domain.LeaderboardScrape, error) {
	f.trace = append(f.trace, fmt.Sprintf("StoreScrape(%d)", len(entries)))
	if f.StoreScrapeFunc != nil {
		return f.StoreScrapeFunc(ctx, at, entries)
	}
	f.entries = append(f.entries, entries...)
	return &domain.LeaderboardScrape{ID: "scrape-1", At: at}, nil
}

func (f *FakeLeaderboardStore) Latest(ctx context.Context) (*domain.Leaderboard, error) {
	f.trace = append(f.trace, "Latest")
	if f.LatestFunc != nil {
		return f.LatestFunc(ctx)
	}
	return &domain.Leaderboard{}, nil
}
