// Package mix interleaves per-bucket pools into one ordered batch.
//
// Spread buckets (news) are placed at evenly spaced slots first. Every
// other slot is filled from whichever pool has the most items left, so
// large pools drain evenly and small ones are not clumped together.
package mix

import (
	"sort"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/plan"
)

// DefaultMinSpacing is the smallest gap between spread items.
const DefaultMinSpacing = 3

// Options configures a Mixer.
type Options struct {
	// MinSpacing bounds the gap between spread items from below.
	MinSpacing int
	// Ordered pops pool heads instead of random items. Use when pools are
	// already ranked.
	Ordered bool
	// Spread lists buckets placed at fixed intervals. Defaults to news.
	Spread []plan.Bucket
	Rand   content.Rand
}

// Mixer builds batches. Safe for concurrent use if its Rand is.
type Mixer struct {
	minSpacing int
	ordered    bool
	spread     map[plan.Bucket]bool
	rng        content.Rand
}

// New creates a Mixer.
func New(opts Options) *Mixer {
	if opts.MinSpacing <= 0 {
		opts.MinSpacing = DefaultMinSpacing
	}
	if opts.Rand == nil {
		opts.Rand = content.DefaultRand
	}
	if len(opts.Spread) == 0 {
		opts.Spread = []plan.Bucket{plan.BucketNews}
	}
	spread := make(map[plan.Bucket]bool, len(opts.Spread))
	for _, b := range opts.Spread {
		spread[b] = true
	}
	return &Mixer{
		minSpacing: opts.MinSpacing,
		ordered:    opts.Ordered,
		spread:     spread,
		rng:        opts.Rand,
	}
}

// Ordered returns a copy of m that pops pool heads.
func (m *Mixer) Ordered() *Mixer {
	c := *m
	c.ordered = true
	return &c
}

// Mix returns min(total, available) items drawn from pools, where available
// counts each pool up to its planned count; a nil plan lets every pool
// contribute fully. The result is never padded.
func (m *Mixer) Mix(pools map[plan.Bucket][]content.Item, p plan.Plan, total int) []content.Item {
	if total <= 0 {
		return []content.Item{}
	}

	queues := make(map[plan.Bucket][]content.Item, len(pools))
	available := 0
	for b, items := range pools {
		n := len(items)
		if p != nil {
			n = min(n, p[b])
		}
		if n > 0 {
			queues[b] = append([]content.Item(nil), items[:n]...)
			available += n
		}
	}
	total = min(total, available)

	spare := 0
	for b, q := range queues {
		if !m.spread[b] {
			spare += len(q)
		}
	}

	slots := make([]*content.Item, total)
	for _, b := range m.spreadOrder(queues) {
		m.place(slots, queues[b], spare)
		delete(queues, b)
	}

	order := fillOrder(queues)
	for i := range slots {
		if slots[i] != nil {
			continue
		}
		b, ok := largest(queues, order)
		if !ok {
			break
		}
		item := m.pop(queues, b)
		slots[i] = &item
	}

	out := make([]content.Item, 0, total)
	for _, s := range slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// place puts items at spacing*(i+1)+jitter. One jitter is drawn per call so
// every gap equals spacing. Items landing past the end stay unplaced while
// spare items from other pools can fill the batch. When they cannot, every
// item is needed and they are spread evenly over the whole batch instead.
func (m *Mixer) place(slots []*content.Item, items []content.Item, spare int) {
	k := len(items)
	if k == 0 {
		return
	}
	total := len(slots)
	spacing := max(m.minSpacing, total/(k+1))
	jitter := m.rng.IntN(spacing/3 + 1)

	fit := 0
	for i := range k {
		if spacing*(i+1)+jitter < total {
			fit++
		}
	}
	if fit < k && spare < freeSlots(slots)-fit {
		for i := range items {
			pos := freeSlotNear(slots, (2*i+1)*total/(2*k))
			if pos < 0 {
				return
			}
			slots[pos] = &items[i]
		}
		return
	}

	for i := range items {
		pos := spacing*(i+1) + jitter
		for pos < total && slots[pos] != nil {
			pos++
		}
		if pos >= total {
			return
		}
		slots[pos] = &items[i]
	}
}

func freeSlots(slots []*content.Item) int {
	n := 0
	for _, s := range slots {
		if s == nil {
			n++
		}
	}
	return n
}

// freeSlotNear returns the first free slot at or after pos, else the last
// free one before it. -1 when the batch is full.
func freeSlotNear(slots []*content.Item, pos int) int {
	for i := pos; i < len(slots); i++ {
		if slots[i] == nil {
			return i
		}
	}
	for i := min(pos, len(slots)) - 1; i >= 0; i-- {
		if slots[i] == nil {
			return i
		}
	}
	return -1
}

func (m *Mixer) pop(queues map[plan.Bucket][]content.Item, b plan.Bucket) content.Item {
	q := queues[b]
	idx := 0
	if !m.ordered {
		idx = m.rng.IntN(len(q))
	}
	item := q[idx]
	queues[b] = append(q[:idx], q[idx+1:]...)
	return item
}

func (m *Mixer) spreadOrder(queues map[plan.Bucket][]content.Item) []plan.Bucket {
	var out []plan.Bucket
	for b := range queues {
		if m.spread[b] {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// fillOrder breaks ties between equally large pools: wiki, related, topic,
// fillers, then anything else by name.
func fillOrder(queues map[plan.Bucket][]content.Item) []plan.Bucket {
	order := []plan.Bucket{plan.BucketWiki, plan.BucketRelated, plan.BucketTopic}
	order = append(order, plan.FillerBuckets()...)

	known := make(map[plan.Bucket]bool, len(order))
	for _, b := range order {
		known[b] = true
	}
	var extra []plan.Bucket
	for b := range queues {
		if !known[b] {
			extra = append(extra, b)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(order, extra...)
}

func largest(queues map[plan.Bucket][]content.Item, order []plan.Bucket) (plan.Bucket, bool) {
	var best plan.Bucket
	bestLen := 0
	for _, b := range order {
		if n := len(queues[b]); n > bestLen {
			best, bestLen = b, n
		}
	}
	return best, bestLen > 0
}
