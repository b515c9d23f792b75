// Package ranking scores feed candidates against a user's preference history.
//
// Rankers are stateless: (item, context) -> score. A Scorer combines the
// bucket prior, the user's affinity for the item's kind and a popularity
// bonus into the final score used to order pools before mixing.
package ranking

import (
	"sort"
	"time"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/plan"
	"github.com/abelbrown/scroll/internal/signals"
)

// Ranker scores items for ranking decisions.
// Implementations should be stateless and thread-safe.
type Ranker interface {
	Name() string
	Score(item *content.Item, ctx *Context) float64
}

// Context carries what rankers may need. Rankers take what they use.
type Context struct {
	Now    time.Time
	Bucket plan.Bucket

	// Preferences is a fixed snapshot; scoring never reads live state.
	Preferences []signals.Preference

	// Popular holds item keys (kind:id) with high engagement.
	Popular map[string]bool
}

// NewContext creates a context with an empty preference snapshot.
func NewContext(bucket plan.Bucket) *Context {
	return &Context{
		Now:     time.Now(),
		Bucket:  bucket,
		Popular: make(map[string]bool),
	}
}

// WithPreferences sets the preference snapshot.
func (c *Context) WithPreferences(prefs []signals.Preference) *Context {
	c.Preferences = prefs
	return c
}

// WithPopular marks items as popular.
func (c *Context) WithPopular(items []content.Item) *Context {
	if c.Popular == nil {
		c.Popular = make(map[string]bool, len(items))
	}
	for _, item := range items {
		c.Popular[item.Key()] = true
	}
	return c
}

// Score is a scored item. Reason is the item's kind tag. Ephemeral.
type Score struct {
	Item   content.Item
	Bucket plan.Bucket
	Score  float64
	Reason string
}

// Rank scores every item and returns them highest first. Equal scores keep
// input order. limit <= 0 means no truncation.
func Rank(items []content.Item, ranker Ranker, ctx *Context, limit int) []Score {
	results := make([]Score, len(items))
	for i := range items {
		results[i] = Score{
			Item:   items[i],
			Bucket: ctx.Bucket,
			Score:  ranker.Score(&items[i], ctx),
			Reason: string(items[i].Kind),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Items unwraps ranked results.
func Items(scored []Score) []content.Item {
	out := make([]content.Item, len(scored))
	for i, s := range scored {
		out[i] = s.Item
	}
	return out
}
