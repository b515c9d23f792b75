package wiki

import (
	"context"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/provider"
)

// RandomProvider serves random articles for the regular wiki bucket.
type RandomProvider struct{ c *Client }

// TopicProvider serves articles matching req.Hint.
type TopicProvider struct{ c *Client }

// RelatedProvider serves articles similar to the title in req.Hint.
type RelatedProvider struct{ c *Client }

func NewRandomProvider(c *Client) *RandomProvider { return &RandomProvider{c: c} }
func NewTopicProvider(c *Client) *TopicProvider { return &TopicProvider{c: c} }
func NewRelatedProvider(c *Client) *RelatedProvider { return &RelatedProvider{c: c} }

func (p *RandomProvider) Name() string { return "wiki" }

func (p *RandomProvider) Fetch(ctx context.Context, req provider.Request) ([]content.Item, error) {
	return p.c.Random(ctx, req.Count)
}

func (p *RandomProvider) Search(ctx context.Context, query string, limit int) ([]content.Item, error) {
	return p.c.Search(ctx, query, limit)
}

func (p *TopicProvider) Name() string { return "topic" }

// Fetch returns nothing without a hint.
func (p *TopicProvider) Fetch(ctx context.Context, req provider.Request) ([]content.Item, error) {
	return p.c.Search(ctx, req.Hint, req.Count)
}

func (p *RelatedProvider) Name() string { return "related" }

// Fetch returns nothing without a hint.
func (p *RelatedProvider) Fetch(ctx context.Context, req provider.Request) ([]content.Item, error) {
	return p.c.Related(ctx, req.Hint, req.Count)
}
