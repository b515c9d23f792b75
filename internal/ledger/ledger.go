// Package ledger tracks which items a feed has already served so later
// batches can prefer fresh content.
//
// Entries expire lazily: every read purges entries older than their kind's
// TTL before answering. Nothing is persisted; a restart starts clean.
package ledger

import (
	"sort"
	"sync"
	"time"

	"github.com/abelbrown/scroll/internal/content"
)

const (
	// DefaultTTL applies to every kind except news.
	DefaultTTL = 3 * time.Hour
	// DefaultNewsTTL is shorter because headlines turn over quickly.
	DefaultNewsTTL = 15 * time.Minute
	// DefaultCapacity bounds memory in long sessions.
	DefaultCapacity = 200
)

// Entry records one served item.
type Entry struct {
	Key       string
	Kind      content.Kind
	Timestamp time.Time
}

// Options configures a Ledger. Zero fields take the defaults.
type Options struct {
	TTL      time.Duration
	NewsTTL  time.Duration
	Capacity int
	Rand     content.Rand
	Now      func() time.Time
}

// Ledger is a TTL- and capacity-bounded record of served items.
// Safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	entries map[string]Entry

	ttl      time.Duration
	newsTTL  time.Duration
	capacity int
	rng      content.Rand
	now      func() time.Time
}

// New creates a Ledger.
func New(opts Options) *Ledger {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.NewsTTL <= 0 {
		opts.NewsTTL = DefaultNewsTTL
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Rand == nil {
		opts.Rand = content.DefaultRand
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Ledger{
		entries:  make(map[string]Entry),
		ttl:      opts.TTL,
		newsTTL:  opts.NewsTTL,
		capacity: opts.Capacity,
		rng:      opts.Rand,
		now:      opts.Now,
	}
}

func key(kind content.Kind, id string) string {
	return string(kind) + ":" + id
}

// MarkViewed records an item as served. Marking again refreshes its timestamp.
func (l *Ledger) MarkViewed(kind content.Kind, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(kind, id)
	l.entries[k] = Entry{Key: k, Kind: kind, Timestamp: l.now()}
	l.evictLocked()
}

// MarkItems records every item as served.
func (l *Ledger) MarkItems(items []content.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for _, item := range items {
		k := item.Key()
		l.entries[k] = Entry{Key: k, Kind: item.Kind, Timestamp: now}
	}
	l.evictLocked()
}

// IsViewed reports whether the item was served within its TTL.
func (l *Ledger) IsViewed(kind content.Kind, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purgeLocked()
	_, ok := l.entries[key(kind, id)]
	return ok
}

// FilterUnviewed partitions items into never-served and served. Order is kept.
func (l *Ledger) FilterUnviewed(items []content.Item) (unviewed, viewed []content.Item) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purgeLocked()
	unviewed = make([]content.Item, 0, len(items))
	viewed = make([]content.Item, 0)
	for _, item := range items {
		if _, ok := l.entries[item.Key()]; ok {
			viewed = append(viewed, item)
		} else {
			unviewed = append(unviewed, item)
		}
	}
	return unviewed, viewed
}

// SelectPreferringUnviewed draws want items, taking from unviewed first and
// backfilling from the rest of all. Both partitions are sampled uniformly
// without replacement. Fewer than want are returned only when all is smaller.
func (l *Ledger) SelectPreferringUnviewed(unviewed, all []content.Item, want int) []content.Item {
	if want <= 0 {
		return []content.Item{}
	}

	fresh := make(map[string]bool, len(unviewed))
	for _, item := range unviewed {
		fresh[item.Key()] = true
	}
	rest := make([]content.Item, 0, len(all))
	for _, item := range all {
		if !fresh[item.Key()] {
			rest = append(rest, item)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	picked := content.Sample(l.rng, unviewed, want)
	if len(picked) < want {
		picked = append(picked, content.Sample(l.rng, rest, want-len(picked))...)
	}
	return picked
}

// Select partitions items and returns want of them, unviewed first.
func (l *Ledger) Select(items []content.Item, want int) []content.Item {
	unviewed, _ := l.FilterUnviewed(items)
	return l.SelectPreferringUnviewed(unviewed, items, want)
}

// Len returns the number of live entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purgeLocked()
	return len(l.entries)
}

// Entries returns a snapshot of live entries, oldest first.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.purgeLocked()
	return l.sortedLocked()
}

func (l *Ledger) ttlFor(kind content.Kind) time.Duration {
	if kind == content.KindNews {
		return l.newsTTL
	}
	return l.ttl
}

// purgeLocked drops expired entries. Caller holds mu.
func (l *Ledger) purgeLocked() {
	now := l.now()
	for k, e := range l.entries {
		if now.Sub(e.Timestamp) > l.ttlFor(e.Kind) {
			delete(l.entries, k)
		}
	}
}

// evictLocked removes the oldest entries beyond capacity. Caller holds mu.
func (l *Ledger) evictLocked() {
	if len(l.entries) <= l.capacity {
		return
	}
	l.purgeLocked()
	excess := len(l.entries) - l.capacity
	if excess <= 0 {
		return
	}
	for _, e := range l.sortedLocked()[:excess] {
		delete(l.entries, e.Key)
	}
}

func (l *Ledger) sortedLocked() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Key < out[j].Key
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
