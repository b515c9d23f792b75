package ranking

import (
	"strings"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/plan"
	"github.com/abelbrown/scroll/internal/signals"
)

// PriorRanker scores by the bucket the item was planned for.
type PriorRanker struct {
	Priors  map[plan.Bucket]float64
	Default float64
}

// DefaultPriors are the per-bucket base scores.
func DefaultPriors() map[plan.Bucket]float64 {
	return map[plan.Bucket]float64{
		plan.BucketNews:                     0.7,
		plan.BucketRelated:                  0.8,
		plan.BucketTopic:                    0.7,
		plan.BucketWiki:                     0.5,
		plan.FillerBucket(content.KindFact): 0.6,
	}
}

func NewPriorRanker() *PriorRanker {
	return &PriorRanker{Priors: DefaultPriors(), Default: 0.5}
}

func (r *PriorRanker) Name() string { return "prior" }

func (r *PriorRanker) Score(item *content.Item, ctx *Context) float64 {
	bucket := ctx.Bucket
	if bucket == "" {
		bucket = plan.BucketFor(item.Kind)
	}
	if p, ok := r.Priors[bucket]; ok {
		return p
	}
	return r.Default
}

// ActionPoints maps each action to its affinity contribution.
var ActionPoints = map[signals.Action]float64{
	signals.ActionView:      0,
	signals.ActionLike:      1,
	signals.ActionSave:      1.5,
	signals.ActionShare:     1.2,
	signals.ActionDislike:   -1,
	signals.ActionNeverShow: -5,
}

// AffinityRanker scores how much the user engaged with the item's kind.
// Matching narrows to the category when both sides know it. No history
// scores a neutral 0.5.
type AffinityRanker struct{}

func NewAffinityRanker() *AffinityRanker { return &AffinityRanker{} }

func (r *AffinityRanker) Name() string { return "affinity" }

func (r *AffinityRanker) Score(item *content.Item, ctx *Context) float64 {
	var sum float64
	var n int
	for _, p := range ctx.Preferences {
		if p.Kind != item.Kind {
			continue
		}
		if p.Category != "" && item.Category != "" && !strings.EqualFold(p.Category, item.Category) {
			continue
		}
		sum += ActionPoints[p.Action]
		n++
	}
	if n == 0 {
		return 0.5
	}
	return clamp01((sum/float64(n) + 1) / 2)
}

// PopularityRanker awards a flat bonus to popular items.
type PopularityRanker struct {
	Bonus float64
}

func NewPopularityRanker() *PopularityRanker {
	return &PopularityRanker{Bonus: 0.2}
}

func (r *PopularityRanker) Name() string { return "popularity" }

func (r *PopularityRanker) Score(item *content.Item, ctx *Context) float64 {
	if ctx.Popular[item.Key()] {
		return r.Bonus
	}
	return 0
}

// ConstantRanker always returns the same score.
type ConstantRanker struct {
	score float64
}

func NewConstantRanker(score float64) *ConstantRanker {
	return &ConstantRanker{score: score}
}

func (r *ConstantRanker) Name() string { return "constant" }

func (r *ConstantRanker) Score(item *content.Item, ctx *Context) float64 {
	return r.score
}

// DefaultScorer returns (prior + affinity + popularity) / 2.
func DefaultScorer() Ranker {
	return NewComposite("personal").
		WithStrategy(StrategySum).
		WithScale(0.5).
		Add(NewPriorRanker(), 1).
		Add(NewAffinityRanker(), 1).
		Add(NewPopularityRanker(), 1)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
