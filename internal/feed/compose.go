package feed

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/metrics"
	"github.com/abelbrown/scroll/internal/otel"
	"github.com/abelbrown/scroll/internal/plan"
	"github.com/abelbrown/scroll/internal/provider"
	"github.com/abelbrown/scroll/internal/ranking"
	"github.com/abelbrown/scroll/internal/signals"
)

// Mode selects the composition variant.
type Mode struct {
	// UseScoring ranks each bucket before mixing.
	UseScoring bool
	// UsePosition makes news and topic bursts follow the session position.
	UsePosition bool
}

func (m Mode) String() string {
	switch {
	case m.UseScoring && m.UsePosition:
		return "algorithmic"
	case m.UseScoring:
		return "scored"
	case m.UsePosition:
		return "mixed"
	}
	return "flat"
}

// Request asks for one batch.
type Request struct {
	Count  int
	UserID string // empty for anonymous
	Mode   Mode
}

// Batch outcomes.
const (
	outcomeOK       = "ok"
	outcomeShort    = "short"
	outcomeFallback = "fallback"
	outcomeEmpty    = "empty"
)

// GetMixedContent returns a positional batch without ranking.
func (f *Feed) GetMixedContent(ctx context.Context, sess *Session, count int, userID string) []content.Item {
	return f.Compose(ctx, sess, Request{Count: count, UserID: userID, Mode: Mode{UsePosition: true}})
}

// GetAlgorithmicContent returns a positional batch ranked per bucket.
func (f *Feed) GetAlgorithmicContent(ctx context.Context, sess *Session, count int, userID string) []content.Item {
	return f.Compose(ctx, sess, Request{Count: count, UserID: userID, Mode: Mode{UseScoring: true, UsePosition: true}})
}

// Compose builds one batch of at most req.Count items. It never fails: the
// worst case is an empty, non-nil slice. The session advances by req.Count
// unless the batch comes back empty.
func (f *Feed) Compose(ctx context.Context, sess *Session, req Request) []content.Item {
	if req.Count <= 0 {
		return []content.Item{}
	}
	if sess == nil {
		sess = NewSession()
	}
	start := time.Now()
	mode := req.Mode.String()
	position := sess.claim(req.Count)

	sig := f.resolveSignals(ctx, req.UserID)
	p := f.planner.Plan(req.Count, position, sig, req.Mode.UsePosition)
	f.events.Emit(otel.Event{
		Level:    otel.LevelDebug,
		Kind:     otel.KindPlan,
		Comp:     "feed",
		Session:  sess.ID,
		User:     req.UserID,
		Mode:     mode,
		Position: position,
		Count:    req.Count,
		Extra:    planExtra(p),
	})

	pools := f.fetchPools(ctx, sess, p, sig)
	selected, reserve := f.selectPools(ctx, pools, p, sig, req.Mode.UseScoring)
	counts := absorbDeficit(selected, reserve, p)

	mixer := f.mixer
	if req.Mode.UseScoring {
		mixer = mixer.Ordered()
	}
	batch := content.DropPlaceholders(mixer.Mix(selected, counts, req.Count))

	outcome := outcomeOK
	if len(batch) == 0 {
		batch = f.fallback(ctx, sess, req.Count)
		outcome = outcomeFallback
	}
	switch {
	case len(batch) == 0:
		outcome = outcomeEmpty
		sess.release(position, req.Count)
	case len(batch) < req.Count && outcome == outcomeOK:
		outcome = outcomeShort
	}

	f.ledger.MarkItems(batch)
	metrics.LedgerEntries.Set(float64(f.ledger.Len()))
	metrics.RecordBatch(mode, outcome, len(batch), time.Since(start))
	f.events.Emit(otel.Event{
		Level:    otel.LevelInfo,
		Kind:     otel.KindCompose,
		Comp:     "feed",
		Session:  sess.ID,
		User:     req.UserID,
		Mode:     mode,
		Position: position,
		Count:    len(batch),
		Dur:      time.Since(start),
		Msg:      outcome,
		Extra:    kindExtra(batch),
	})
	logging.Debug("composed batch", "mode", mode, "position", position, "want", req.Count, "got", len(batch), "outcome", outcome)
	return batch
}

// resolveSignals loads the user's signals. Any failure means no
// personalization this round.
func (f *Feed) resolveSignals(ctx context.Context, userID string) *signals.Set {
	if userID == "" || f.signals == nil {
		return nil
	}
	set := &signals.Set{}
	var err error
	if set.Interests, err = f.signals.Interests(ctx, userID); err == nil {
		if set.Preferences, err = f.signals.Preferences(ctx, userID); err == nil {
			if set.Filters, err = f.signals.ContentFilters(ctx, userID); err == nil {
				set.Views, err = f.signals.ViewCounts(ctx, userID)
			}
		}
	}
	if err != nil {
		logging.Warn("user signals unavailable", "user", userID, "error", err)
		f.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindStoreError, Comp: "feed", User: userID, Err: err.Error()})
		return nil
	}
	return set
}

// fetchPools queries every planned bucket concurrently, asking for the plan
// count plus the bucket's margin. A failed or cancelled fetch yields an empty
// pool. Placeholder images are dropped, as are items already claimed by an
// earlier bucket.
func (f *Feed) fetchPools(ctx context.Context, sess *Session, p plan.Plan, sig *signals.Set) map[plan.Bucket][]content.Item {
	buckets := p.Buckets()
	results := make([][]content.Item, len(buckets))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)
	for i, b := range buckets {
		src := f.source(b)
		if src == nil {
			continue
		}
		req := provider.Request{Count: p[b] + f.margins.For(b), Hint: f.hintFor(b, sig)}
		g.Go(func() error {
			results[i] = f.fetchOne(ctx, sess, src, b, req)
			return nil
		})
	}
	g.Wait()

	pools := make(map[plan.Bucket][]content.Item, len(buckets))
	seen := make(map[string]bool)
	for i, b := range buckets {
		pool := make([]content.Item, 0, len(results[i]))
		for _, item := range content.DropPlaceholders(results[i]) {
			if item.Kind == "" {
				item.Kind = b.Kind()
			}
			if seen[item.Key()] {
				continue
			}
			seen[item.Key()] = true
			pool = append(pool, item)
		}
		pools[b] = pool
	}
	return pools
}

func (f *Feed) fetchOne(ctx context.Context, sess *Session, src provider.Provider, b plan.Bucket, req provider.Request) []content.Item {
	start := time.Now()
	items, err := src.Fetch(ctx, req)
	ev := otel.Event{
		Kind:    otel.KindFetch,
		Comp:    "feed",
		Session: sess.ID,
		Source:  src.Name(),
		Query:   req.Hint,
		Count:   len(items),
		Dur:     time.Since(start),
		Extra:   map[string]any{"bucket": string(b), "want": req.Count},
	}
	if err != nil {
		ev.Kind, ev.Level, ev.Err = otel.KindFetchError, otel.LevelWarn, err.Error()
		logging.Debug("provider fetch failed", "bucket", b, "provider", src.Name(), "error", err)
		items = nil
	}
	f.events.Emit(ev)
	return items
}

// hintFor steers related and topic fetches.
func (f *Feed) hintFor(b plan.Bucket, sig *signals.Set) string {
	switch b {
	case plan.BucketRelated:
		return sig.LastLiked()
	case plan.BucketTopic:
		if topic := sig.TopInterest(); topic != "" {
			return topic
		}
		if len(f.topics) > 0 {
			return f.topics[f.intN(len(f.topics))]
		}
	}
	return ""
}

// selectPools picks each bucket's planned count, unviewed items first. In
// scoring mode candidates are ranked within the unviewed and viewed groups;
// otherwise the ledger samples uniformly. Leftovers go to reserve.
func (f *Feed) selectPools(ctx context.Context, pools map[plan.Bucket][]content.Item, p plan.Plan, sig *signals.Set, scoring bool) (selected, reserve map[plan.Bucket][]content.Item) {
	selected = make(map[plan.Bucket][]content.Item, len(pools))
	reserve = make(map[plan.Bucket][]content.Item, len(pools))

	var popular []content.Item
	if scoring {
		popular = f.popularSet(ctx, pools)
	}

	for b, pool := range pools {
		var ordered []content.Item
		if scoring {
			rctx := ranking.NewContext(b).WithPopular(popular)
			if sig != nil {
				rctx = rctx.WithPreferences(sig.Preferences)
			}
			unviewed, viewed := f.ledger.FilterUnviewed(pool)
			ordered = append(ranking.Items(ranking.Rank(unviewed, f.scorer, rctx, 0)),
				ranking.Items(ranking.Rank(viewed, f.scorer, rctx, 0))...)
		} else {
			ordered = f.ledger.Select(pool, len(pool))
		}
		n := min(p[b], len(ordered))
		selected[b] = ordered[:n]
		reserve[b] = ordered[n:]
	}
	return selected, reserve
}

// popularSet gathers the currently popular items for every kind in play.
// Lookups run concurrently; failures leave a kind without bonus.
func (f *Feed) popularSet(ctx context.Context, pools map[plan.Bucket][]content.Item) []content.Item {
	if f.popularity == nil {
		return nil
	}
	kinds := make(map[content.Kind]bool)
	for b, pool := range pools {
		if len(pool) > 0 {
			kinds[b.Kind()] = true
		}
	}

	var (
		mu  sync.Mutex
		out []content.Item
		g   errgroup.Group
	)
	for kind := range kinds {
		g.Go(func() error {
			items, err := f.popularity.PopularContent(ctx, kind, f.popularLimit)
			if err != nil {
				logging.Debug("popular content unavailable", "kind", kind, "error", err)
				return nil
			}
			mu.Lock()
			out = append(out, items...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return out
}

// absorbOrder is the order in which buckets with spare items cover for
// buckets that came up short. News goes last to keep it rare.
func absorbOrder(selected map[plan.Bucket][]content.Item) []plan.Bucket {
	order := []plan.Bucket{plan.BucketWiki, plan.BucketRelated, plan.BucketTopic}
	order = append(order, plan.FillerBuckets()...)
	known := make(map[plan.Bucket]bool, len(order)+1)
	for _, b := range order {
		known[b] = true
	}
	known[plan.BucketNews] = true
	for b := range selected {
		if !known[b] {
			order = append(order, b)
		}
	}
	return append(order, plan.BucketNews)
}

// absorbDeficit moves reserve items into selected until the planned total
// is met, and returns the per-bucket counts that were actually selected.
func absorbDeficit(selected, reserve map[plan.Bucket][]content.Item, p plan.Plan) plan.Plan {
	deficit := p.Total()
	for _, items := range selected {
		deficit -= len(items)
	}
	for _, b := range absorbOrder(selected) {
		if deficit <= 0 {
			break
		}
		n := min(deficit, len(reserve[b]))
		if n == 0 {
			continue
		}
		selected[b] = append(selected[b], reserve[b][:n]...)
		reserve[b] = reserve[b][n:]
		deficit -= n
	}

	counts := make(plan.Plan, len(selected))
	for b, items := range selected {
		if len(items) > 0 {
			counts[b] = len(items)
		}
	}
	return counts
}

// fallback is the last resort when nothing else produced items: a plain
// wiki fetch of count items.
func (f *Feed) fallback(ctx context.Context, sess *Session, count int) []content.Item {
	if f.wiki == nil {
		return []content.Item{}
	}
	items := content.DropPlaceholders(f.fetchOne(ctx, sess, f.wiki, plan.BucketWiki, provider.Request{Count: count}))
	items = f.ledger.Select(content.Dedup(items), count)
	f.events.Emit(otel.Event{
		Level:   otel.LevelWarn,
		Kind:    otel.KindFallback,
		Comp:    "feed",
		Session: sess.ID,
		Count:   len(items),
	})
	logging.Warn("feed fell back to wiki only", "items", len(items))
	return items
}

func planExtra(p plan.Plan) map[string]any {
	out := make(map[string]any, len(p))
	for b, n := range p {
		out[string(b)] = n
	}
	return out
}

func kindExtra(items []content.Item) map[string]any {
	if len(items) == 0 {
		return nil
	}
	out := make(map[string]any)
	for _, item := range items {
		n, _ := out[string(item.Kind)].(int)
		out[string(item.Kind)] = n + 1
	}
	return out
}
