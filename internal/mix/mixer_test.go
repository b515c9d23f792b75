package mix

import (
	"fmt"
	"testing"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/plan"
)

func makeItems(kind content.Kind, prefix string, n int) []content.Item {
	items := make([]content.Item, n)
	for i := range items {
		items[i] = content.Item{ID: fmt.Sprintf("%s%d", prefix, i), Kind: kind}
	}
	return items
}

func newsPositions(items []content.Item) []int {
	var pos []int
	for i, item := range items {
		if item.Kind == content.KindNews {
			pos = append(pos, i)
		}
	}
	return pos
}

func TestNewsSpacing(t *testing.T) {
	tests := []struct {
		total int
		news  int
	}{
		{20, 2},
		{20, 3},
		{30, 4},
		{12, 2},
		{50, 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_of_%d", tt.news, tt.total), func(t *testing.T) {
			for seed := uint64(0); seed < 25; seed++ {
				m := New(Options{Rand: content.NewSeededRand(seed)})
				pools := map[plan.Bucket][]content.Item{
					plan.BucketNews: makeItems(content.KindNews, "n", tt.news),
					plan.BucketWiki: makeItems(content.KindWiki, "w", tt.total),
				}
				p := plan.Plan{plan.BucketNews: tt.news, plan.BucketWiki: tt.total - tt.news}

				out := m.Mix(pools, p, tt.total)
				if len(out) != tt.total {
					t.Fatalf("expected %d items, got %d", tt.total, len(out))
				}

				pos := newsPositions(out)
				if len(pos) < 2 {
					continue
				}
				minGap := tt.total/(len(pos)+1) - 1
				for i := 1; i < len(pos); i++ {
					if gap := pos[i] - pos[i-1]; gap < minGap {
						t.Fatalf("seed %d: news at %v, gap %d < %d", seed, pos, gap, minGap)
					}
				}
			}
		})
	}
}

func TestSingleNewsLandsMidBatch(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		m := New(Options{Rand: content.NewSeededRand(seed)})
		pools := map[plan.Bucket][]content.Item{
			plan.BucketNews:    makeItems(content.KindNews, "n", 3),
			plan.BucketWiki:    makeItems(content.KindWiki, "w", 20),
			plan.BucketRelated: makeItems(content.KindWiki, "r", 2),
		}
		p := plan.Plan{plan.BucketNews: 1, plan.BucketWiki: 17, plan.BucketRelated: 2}

		out := m.Mix(pools, p, 20)
		pos := newsPositions(out)
		if len(pos) != 1 {
			t.Fatalf("expected exactly 1 news item, got %d", len(pos))
		}
		if pos[0] <= 1 || pos[0] >= 18 {
			t.Fatalf("news at index %d", pos[0])
		}
	}
}

func TestMixNeverPads(t *testing.T) {
	m := New(Options{Rand: content.NewSeededRand(1)})
	pools := map[plan.Bucket][]content.Item{
		plan.BucketWiki: makeItems(content.KindWiki, "w", 4),
	}

	out := m.Mix(pools, plan.Plan{plan.BucketWiki: 10}, 10)
	if len(out) != 4 {
		t.Errorf("expected 4 items, got %d", len(out))
	}
	if out := m.Mix(nil, nil, 5); len(out) != 0 {
		t.Errorf("empty pools should give empty batch, got %d", len(out))
	}
	if out := m.Mix(pools, nil, 0); out == nil || len(out) != 0 {
		t.Errorf("total 0 should give empty non-nil batch, got %v", out)
	}
}

func TestMixRespectsPlanCounts(t *testing.T) {
	m := New(Options{Rand: content.NewSeededRand(3)})
	quote := plan.FillerBucket(content.KindQuote)
	pools := map[plan.Bucket][]content.Item{
		plan.BucketWiki: makeItems(content.KindWiki, "w", 20),
		quote:           makeItems(content.KindQuote, "q", 20),
	}

	out := m.Mix(pools, plan.Plan{plan.BucketWiki: 8, quote: 2}, 10)
	if len(out) != 10 {
		t.Fatalf("expected 10 items, got %d", len(out))
	}
	if n := content.CountKind(out, content.KindQuote); n != 2 {
		t.Errorf("expected 2 quotes, got %d", n)
	}

	seen := make(map[string]bool)
	for _, item := range out {
		if seen[item.Key()] {
			t.Fatalf("duplicate item %s", item.Key())
		}
		seen[item.Key()] = true
	}
}

func TestOrderedKeepsPoolOrder(t *testing.T) {
	m := New(Options{Rand: content.NewSeededRand(9)}).Ordered()
	pools := map[plan.Bucket][]content.Item{
		plan.BucketWiki: makeItems(content.KindWiki, "w", 5),
	}

	out := m.Mix(pools, nil, 5)
	for i, item := range out {
		if want := fmt.Sprintf("w%d", i); item.ID != want {
			t.Fatalf("position %d: got %s, want %s", i, item.ID, want)
		}
	}
}

func TestLargestPoolDrainsFirst(t *testing.T) {
	m := New(Options{Rand: content.NewSeededRand(4)}).Ordered()
	pools := map[plan.Bucket][]content.Item{
		plan.BucketWiki:    makeItems(content.KindWiki, "w", 3),
		plan.BucketRelated: makeItems(content.KindWiki, "r", 3),
	}

	out := m.Mix(pools, nil, 6)
	got := ""
	for _, item := range out {
		got += item.ID[:1]
	}
	// Ties go to wiki, then the pools alternate as each shrinks.
	if got != "wrwrwr" {
		t.Errorf("fill order = %s, want wrwrwr", got)
	}
}

func TestNewsPastEndStaysUnplacedWhenOthersFill(t *testing.T) {
	m := New(Options{Rand: content.NewSeededRand(2)})
	pools := map[plan.Bucket][]content.Item{
		plan.BucketNews: makeItems(content.KindNews, "n", 3),
		plan.BucketWiki: makeItems(content.KindWiki, "w", 10),
	}

	// spacing is at least 3, so in 5 slots only the first news item fits
	// and wiki covers the rest.
	out := m.Mix(pools, nil, 5)
	if len(out) != 5 {
		t.Fatalf("expected 5 items, got %d", len(out))
	}
	if n := content.CountKind(out, content.KindNews); n != 1 {
		t.Errorf("expected 1 news item placed, got %d", n)
	}
}

func TestShortPoolsSpreadNews(t *testing.T) {
	tests := []struct {
		name        string
		wiki, news  int
		plan        plan.Plan
		total, want int
	}{
		{"no plan, large total", 4, 3, nil, 20, 7},
		{"no plan, total above available", 4, 3, nil, 10, 7},
		{"planned past spacing", 2, 3, plan.Plan{plan.BucketNews: 3, plan.BucketWiki: 2}, 5, 5},
		{"single news", 3, 1, nil, 20, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for seed := uint64(0); seed < 20; seed++ {
				m := New(Options{Rand: content.NewSeededRand(seed)})
				pools := map[plan.Bucket][]content.Item{
					plan.BucketNews: makeItems(content.KindNews, "n", tt.news),
					plan.BucketWiki: makeItems(content.KindWiki, "w", tt.wiki),
				}

				out := m.Mix(pools, tt.plan, tt.total)
				if len(out) != tt.want {
					t.Fatalf("seed %d: expected %d items, got %d", seed, tt.want, len(out))
				}
				if n := content.CountKind(out, content.KindNews); n != tt.news {
					t.Fatalf("seed %d: expected %d news items, got %d", seed, tt.news, n)
				}
				pos := newsPositions(out)
				for i := 1; i < len(pos); i++ {
					if pos[i]-pos[i-1] < 2 {
						t.Fatalf("seed %d: news clustered at %v", seed, pos)
					}
				}
				if last := pos[len(pos)-1]; len(pos) > 1 && last-pos[0] < len(pos) {
					t.Fatalf("seed %d: news packed at %v", seed, pos)
				}
			}
		})
	}
}
