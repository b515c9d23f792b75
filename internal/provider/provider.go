// Package provider defines the content source contract used by the feed and
// the wrappers every source is composed with: static datasets, fallback to a
// static dataset, and a failure-isolating guard.
package provider

import (
	"context"

	"github.com/abelbrown/scroll/internal/content"
)

// Request asks a provider for up to Count items. Hint steers topical and
// related providers (a topic, or the title of a liked article); others ignore it.
type Request struct {
	Count int
	Hint  string
}

// Provider fetches content of one kind.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]content.Item, error)
}

// Searcher finds content matching a free-text query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]content.Item, error)
}

// Func adapts a function into a Provider.
type Func struct {
	ID string
	Fn func(ctx context.Context, req Request) ([]content.Item, error)
}

func (f Func) Name() string { return f.ID }

func (f Func) Fetch(ctx context.Context, req Request) ([]content.Item, error) {
	return f.Fn(ctx, req)
}

func truncate(items []content.Item, n int) []content.Item {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		return items[:n]
	}
	return items
}
