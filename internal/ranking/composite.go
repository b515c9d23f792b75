package ranking

import (
	"github.com/abelbrown/scroll/internal/content"
)

// CombineStrategy defines how a composite merges its rankers' scores.
type CombineStrategy int

const (
	// StrategyWeightedAverage computes sum(score*weight) / sum(weight).
	StrategyWeightedAverage CombineStrategy = iota

	// StrategySum adds weighted scores without normalizing.
	StrategySum

	// StrategyMax takes the highest score from any ranker.
	StrategyMax
)

// CompositeRanker combines multiple rankers with weights.
type CompositeRanker struct {
	name     string
	rankers  []Ranker
	weights  []float64
	strategy CombineStrategy
	scale    float64
}

// NewComposite creates a composite ranker with weighted average strategy.
func NewComposite(name string) *CompositeRanker {
	return &CompositeRanker{
		name:     name,
		strategy: StrategyWeightedAverage,
		scale:    1,
	}
}

// Add adds a ranker with a weight.
func (c *CompositeRanker) Add(ranker Ranker, weight float64) *CompositeRanker {
	c.rankers = append(c.rankers, ranker)
	c.weights = append(c.weights, weight)
	return c
}

// WithStrategy sets the combination strategy.
func (c *CompositeRanker) WithStrategy(strategy CombineStrategy) *CompositeRanker {
	c.strategy = strategy
	return c
}

// WithScale multiplies the combined score.
func (c *CompositeRanker) WithScale(scale float64) *CompositeRanker {
	c.scale = scale
	return c
}

func (c *CompositeRanker) Name() string {
	return c.name
}

func (c *CompositeRanker) Score(item *content.Item, ctx *Context) float64 {
	if len(c.rankers) == 0 {
		return 0
	}

	scores := make([]float64, len(c.rankers))
	for i, ranker := range c.rankers {
		scores[i] = ranker.Score(item, ctx)
	}

	var combined float64
	switch c.strategy {
	case StrategySum:
		for i, s := range scores {
			combined += s * c.weights[i]
		}
	case StrategyMax:
		combined = scores[0]
		for _, s := range scores[1:] {
			combined = max(combined, s)
		}
	default:
		var weightSum float64
		for i, s := range scores {
			combined += s * c.weights[i]
			weightSum += c.weights[i]
		}
		if weightSum == 0 {
			return 0
		}
		combined /= weightSum
	}
	return combined * c.scale
}
