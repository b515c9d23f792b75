package provider

import (
	"context"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/logging"
)

// Fallback serves a primary provider and resolves with a static dataset when
// the primary errors or comes back empty. It never returns an error.
type Fallback struct {
	primary Provider
	static  *Static
}

// WithFallback wraps primary so failures resolve with static.
func WithFallback(primary Provider, static *Static) *Fallback {
	return &Fallback{primary: primary, static: static}
}

func (f *Fallback) Name() string { return f.primary.Name() }

func (f *Fallback) Fetch(ctx context.Context, req Request) ([]content.Item, error) {
	items, err := f.primary.Fetch(ctx, req)
	if err == nil && len(items) > 0 {
		return truncate(items, req.Count), nil
	}
	if err != nil {
		logging.Debug("provider fallback", "provider", f.primary.Name(), "error", err)
	}

	// The static dataset is in memory; a cancelled ctx should not starve it.
	items, _ = f.static.Fetch(context.WithoutCancel(ctx), req)
	return items, nil
}

// Search delegates to the primary when it can search and falls back to the
// static dataset.
func (f *Fallback) Search(ctx context.Context, query string, limit int) ([]content.Item, error) {
	if s, ok := f.primary.(Searcher); ok {
		items, err := s.Search(ctx, query, limit)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		if err != nil {
			logging.Debug("search fallback", "provider", f.primary.Name(), "error", err)
		}
	}
	items, _ := f.static.Search(context.WithoutCancel(ctx), query, limit)
	return items, nil
}
