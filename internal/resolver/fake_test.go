package resolver

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"linewar-tracker/internal/domain"
)

// ------------------------
// Fake Searcher
// ------------------------

type FakeSearcher struct {
	trace []string

	SearchFunc func(ctx context.Context, text string, page int) (*domain.SearchPage, error)
}

func (f *FakeSearcher) Search(ctx context.Context, text string, page int) (*domain.SearchPage, error) {
	f.trace = append(f.trace, fmt.Sprintf("Search(%s,%d)", text, page))
	if f.SearchFunc != nil {
		return f.SearchFunc(ctx, text, page)
	}
	return &domain.SearchPage{}, nil
}

func (f *FakeSearcher) Trace() []string { return f.trace }

// pages serves one canned page per page index; pages past the end report zero results.
func pages(results ...*domain.SearchPage) func(ctx context.Context, text string, page int) (*domain.SearchPage, error) {
	return func(_ context.Context, _ string, page int) (*domain.SearchPage, error) {
		if page >= len(results) {
			return &domain.SearchPage{}, nil
		}
		return results[page], nil
	}
}

// ------------------------
// Fake Handle Resolver
// ------------------------

type FakeHandleResolver struct {
	trace []string

	ResolveHandleFunc func(ctx context.Context, handle string) (uint64, error)
}

func (f *FakeHandleResolver) ResolveHandle(ctx context.Context, handle string) (uint64, error) {
	f.trace = append(f.trace, "ResolveHandle("+handle+")")
	if f.ResolveHandleFunc != nil {
		return f.ResolveHandleFunc(ctx, handle)
	}
	return 0, nil
}

func (f *FakeHandleResolver) Trace() []string { return f.trace }

// ------------------------
// Fake Extractor
// ------------------------

// FakeExtractor treats markup as a key into Pages.
type FakeExtractor struct {
	Pages map[string][]domain.CandidateUser
	Err   error
}

func (f *FakeExtractor) Candidates(markup string) (iter.Seq[domain.CandidateUser], error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return slices.Values(f.Pages[markup]), nil
}
