package ledger

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/abelbrown/scroll/internal/content"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLedger(clock *fakeClock) *Ledger {
	return New(Options{Rand: content.NewSeededRand(7), Now: clock.Now})
}

func wikiItems(n int) []content.Item {
	items := make([]content.Item, n)
	for i := range items {
		items[i] = content.Item{ID: fmt.Sprintf("w%d", i), Kind: content.KindWiki}
	}
	return items
}

func TestMarkViewedIsIdempotent(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	l := newTestLedger(clock)

	l.MarkViewed(content.KindWiki, "a")
	l.MarkViewed(content.KindWiki, "a")

	if l.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", l.Len())
	}
	if !l.IsViewed(content.KindWiki, "a") {
		t.Error("a should be viewed")
	}
	if l.IsViewed(content.KindNews, "a") {
		t.Error("same ID under another kind should not be viewed")
	}
}

func TestEntriesExpireByKind(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	l := newTestLedger(clock)

	l.MarkViewed(content.KindNews, "n1")
	l.MarkViewed(content.KindWiki, "w1")

	clock.Advance(16 * time.Minute)
	if l.IsViewed(content.KindNews, "n1") {
		t.Error("news entry should expire after 15 minutes")
	}
	if !l.IsViewed(content.KindWiki, "w1") {
		t.Error("wiki entry should survive 16 minutes")
	}

	clock.Advance(3 * time.Hour)
	if l.IsViewed(content.KindWiki, "w1") {
		t.Error("wiki entry should expire after 3 hours")
	}
	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d", l.Len())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	l := New(Options{Capacity: 3, Now: clock.Now})

	for i := 0; i < 5; i++ {
		l.MarkViewed(content.KindWiki, fmt.Sprintf("w%d", i))
		clock.Advance(time.Second)
	}

	if l.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", l.Len())
	}
	for _, id := range []string{"w0", "w1"} {
		if l.IsViewed(content.KindWiki, id) {
			t.Errorf("%s should have been evicted", id)
		}
	}
	for _, id := range []string{"w2", "w3", "w4"} {
		if !l.IsViewed(content.KindWiki, id) {
			t.Errorf("%s should be kept", id)
		}
	}
}

func TestFilterUnviewed(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	l := newTestLedger(clock)
	items := wikiItems(4)
	l.MarkViewed(content.KindWiki, "w1")
	l.MarkViewed(content.KindWiki, "w3")

	unviewed, viewed := l.FilterUnviewed(items)
	if len(unviewed) != 2 || unviewed[0].ID != "w0" || unviewed[1].ID != "w2" {
		t.Errorf("unexpected unviewed partition: %+v", unviewed)
	}
	if len(viewed) != 2 || viewed[0].ID != "w1" || viewed[1].ID != "w3" {
		t.Errorf("unexpected viewed partition: %+v", viewed)
	}
}

// Eight of ten candidates seen: both fresh ones come first, the rest backfill.
func TestSelectPrefersUnviewed(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	l := newTestLedger(clock)
	items := wikiItems(10)
	for i := 2; i < 10; i++ {
		l.MarkViewed(content.KindWiki, fmt.Sprintf("w%d", i))
	}

	for run := 0; run < 20; run++ {
		got := l.Select(items, 5)
		if len(got) != 5 {
			t.Fatalf("expected 5 items, got %d", len(got))
		}

		first := map[string]bool{got[0].ID: true, got[1].ID: true}
		if !first["w0"] || !first["w1"] {
			t.Fatalf("unviewed items must be chosen first, got %s %s", got[0].ID, got[1].ID)
		}

		seen := make(map[string]bool)
		for _, item := range got[2:] {
			if item.ID == "w0" || item.ID == "w1" {
				t.Fatalf("unviewed item %s repeated", item.ID)
			}
			if seen[item.ID] {
				t.Fatalf("item %s sampled twice", item.ID)
			}
			seen[item.ID] = true
		}
	}
}

func TestSelectReturnsWholePoolWhenSmall(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	l := newTestLedger(clock)

	got := l.Select(wikiItems(3), 10)
	if len(got) != 3 {
		t.Errorf("expected 3 items, got %d", len(got))
	}

	if got := l.Select(nil, 5); len(got) != 0 {
		t.Errorf("expected no items from empty pool, got %d", len(got))
	}
	if got := l.Select(wikiItems(3), 0); len(got) != 0 {
		t.Errorf("want=0 should return nothing, got %d", len(got))
	}
}

func TestSelectSamplesUniformly(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	l := newTestLedger(clock)
	items := wikiItems(4)

	counts := make(map[string]int)
	const runs = 4000
	for i := 0; i < runs; i++ {
		for _, item := range l.Select(items, 1) {
			counts[item.ID]++
		}
	}

	for _, item := range items {
		share := float64(counts[item.ID]) / runs
		if share < 0.2 || share > 0.3 {
			t.Errorf("%s picked %.2f of the time, expected ~0.25", item.ID, share)
		}
	}
}

func TestLedgerConcurrentAccess(t *testing.T) {
	l := New(Options{})
	items := wikiItems(50)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.MarkItems(items[i%10 : i%10+5])
				_ = l.Select(items, 5)
			}
		}()
	}
	wg.Wait()

	if l.Len() > DefaultCapacity {
		t.Errorf("ledger exceeded capacity: %d", l.Len())
	}
}
