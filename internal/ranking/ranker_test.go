package ranking

import (
	"math"
	"testing"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/plan"
	"github.com/abelbrown/scroll/internal/signals"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCompositeWeightedAverage(t *testing.T) {
	composite := NewComposite("test").
		Add(NewConstantRanker(1.0), 3.0).
		Add(NewConstantRanker(0.0), 1.0)

	score := composite.Score(&content.Item{}, NewContext(plan.BucketWiki))
	if !near(score, 0.75) {
		t.Errorf("expected weighted average 0.75, got %f", score)
	}
}

func TestCompositeSumScaled(t *testing.T) {
	composite := NewComposite("test").
		WithStrategy(StrategySum).
		WithScale(0.5).
		Add(NewConstantRanker(0.8), 1).
		Add(NewConstantRanker(0.4), 1)

	if score := composite.Score(&content.Item{}, NewContext(plan.BucketWiki)); !near(score, 0.6) {
		t.Errorf("expected 0.6, got %f", score)
	}
}

func TestAffinityRanker(t *testing.T) {
	tests := []struct {
		name  string
		item  content.Item
		prefs []signals.Preference
		want  float64
	}{
		{
			name: "no history is neutral",
			item: content.Item{Kind: content.KindQuote},
			want: 0.5,
		},
		{
			name: "single like",
			item: content.Item{Kind: content.KindQuote},
			prefs: []signals.Preference{
				{Kind: content.KindQuote, Action: signals.ActionLike},
			},
			want: 1.0,
		},
		{
			name: "like and dislike cancel",
			item: content.Item{Kind: content.KindQuote},
			prefs: []signals.Preference{
				{Kind: content.KindQuote, Action: signals.ActionLike},
				{Kind: content.KindQuote, Action: signals.ActionDislike},
			},
			want: 0.5,
		},
		{
			name: "never show clamps to zero",
			item: content.Item{Kind: content.KindStock},
			prefs: []signals.Preference{
				{Kind: content.KindStock, Action: signals.ActionNeverShow},
			},
			want: 0,
		},
		{
			name: "other kinds ignored",
			item: content.Item{Kind: content.KindWiki},
			prefs: []signals.Preference{
				{Kind: content.KindStock, Action: signals.ActionNeverShow},
			},
			want: 0.5,
		},
		{
			name: "category narrows when both known",
			item: content.Item{Kind: content.KindWiki, Category: "Science"},
			prefs: []signals.Preference{
				{Kind: content.KindWiki, Category: "science", Action: signals.ActionLike},
				{Kind: content.KindWiki, Category: "sports", Action: signals.ActionDislike},
			},
			want: 1.0,
		},
		{
			name: "views count as zero",
			item: content.Item{Kind: content.KindMovie},
			prefs: []signals.Preference{
				{Kind: content.KindMovie, Action: signals.ActionLike},
				{Kind: content.KindMovie, Action: signals.ActionView},
			},
			want: 0.75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := NewContext(plan.BucketFor(tt.item.Kind)).WithPreferences(tt.prefs)
			if got := NewAffinityRanker().Score(&tt.item, ctx); !near(got, tt.want) {
				t.Errorf("affinity = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestDefaultScorer(t *testing.T) {
	scorer := DefaultScorer()
	item := content.Item{ID: "n1", Kind: content.KindNews}

	ctx := NewContext(plan.BucketNews)
	if got := scorer.Score(&item, ctx); !near(got, (0.7+0.5)/2) {
		t.Errorf("anonymous news score = %f, want 0.6", got)
	}

	ctx.WithPopular([]content.Item{item})
	if got := scorer.Score(&item, ctx); !near(got, (0.7+0.5+0.2)/2) {
		t.Errorf("popular news score = %f, want 0.7", got)
	}

	related := content.Item{ID: "w1", Kind: content.KindWiki}
	if got := scorer.Score(&related, NewContext(plan.BucketRelated)); !near(got, (0.8+0.5)/2) {
		t.Errorf("related score = %f, want 0.65", got)
	}
}

func TestScoringIsIdempotent(t *testing.T) {
	scorer := DefaultScorer()
	item := content.Item{ID: "q1", Kind: content.KindQuote, Category: "wit"}
	ctx := NewContext(plan.FillerBucket(content.KindQuote)).WithPreferences([]signals.Preference{
		{Kind: content.KindQuote, Action: signals.ActionSave},
		{Kind: content.KindQuote, Action: signals.ActionDislike},
		{Kind: content.KindQuote, Category: "wit", Action: signals.ActionShare},
	})

	first := scorer.Score(&item, ctx)
	second := scorer.Score(&item, ctx)
	if first != second {
		t.Errorf("scores differ: %f vs %f", first, second)
	}
}

func TestRankStableAndTruncated(t *testing.T) {
	items := []content.Item{
		{ID: "a", Kind: content.KindWiki},
		{ID: "b", Kind: content.KindWiki},
		{ID: "c", Kind: content.KindWiki},
		{ID: "d", Kind: content.KindWiki},
	}
	ctx := NewContext(plan.BucketWiki).WithPopular([]content.Item{items[2]})

	ranked := Rank(items, DefaultScorer(), ctx, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}

	got := []string{ranked[0].Item.ID, ranked[1].Item.ID, ranked[2].Item.ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if ranked[0].Bucket != plan.BucketWiki || ranked[0].Reason != string(content.KindWiki) {
		t.Errorf("unexpected metadata: %+v", ranked[0])
	}

	if all := Rank(items, DefaultScorer(), ctx, 0); len(all) != 4 {
		t.Errorf("limit 0 should keep all, got %d", len(all))
	}
}

func TestRankReasonIsKind(t *testing.T) {
	items := []content.Item{
		{ID: "q", Kind: content.KindQuote},
		{ID: "f", Kind: content.KindFact},
	}
	for _, r := range Rank(items, DefaultScorer(), NewContext(plan.FillerBucket(content.KindQuote)), 0) {
		if r.Reason != string(r.Item.Kind) {
			t.Errorf("%s: reason %q, want kind tag", r.Item.ID, r.Reason)
		}
	}
}
