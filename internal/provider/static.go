package provider

import (
	"context"

	"github.com/abelbrown/scroll/internal/content"
)

// Static serves a fixed dataset. Each fetch is a fresh uniform sample, so
// repeated batches do not always open with the same entries.
type Static struct {
	name  string
	items []content.Item
	rng   content.Rand
}

// NewStatic creates a static provider. A nil rng uses content.DefaultRand.
func NewStatic(name string, items []content.Item, rng content.Rand) *Static {
	if rng == nil {
		rng = content.DefaultRand
	}
	return &Static{name: name, items: items, rng: rng}
}

func (s *Static) Name() string { return s.name }

// Fetch returns up to req.Count items. It only fails when ctx is done.
func (s *Static) Fetch(ctx context.Context, req Request) ([]content.Item, error) {
	if err := ctx.Err(); err != nil {
		return []content.Item{}, err
	}
	return content.Sample(s.rng, s.items, req.Count), nil
}

// Search matches query terms against titles and bodies.
func (s *Static) Search(ctx context.Context, query string, limit int) ([]content.Item, error) {
	if err := ctx.Err(); err != nil {
		return []content.Item{}, err
	}
	out := make([]content.Item, 0)
	for _, item := range s.items {
		if content.Matches(item, query) {
			out = append(out, item)
		}
	}
	return truncate(out, limit), nil
}

// Len returns the dataset size.
func (s *Static) Len() int { return len(s.items) }
