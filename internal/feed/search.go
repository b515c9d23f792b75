package feed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/metrics"
	"github.com/abelbrown/scroll/internal/otel"
	"github.com/abelbrown/scroll/internal/provider"
)

// newsEvery is how many wiki results precede each news result.
const newsEvery = 3

// SearchMixedContent runs wiki and news search concurrently and interleaves
// the results, one news item after every third article. Queries shorter
// than three characters return nothing without touching any provider.
// Positions, plans and ranking are not involved.
func (f *Feed) SearchMixedContent(ctx context.Context, query string) []content.Item {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLen {
		metrics.SearchesTotal.WithLabelValues("short_query").Inc()
		f.events.Emit(otel.Event{Kind: otel.KindSearchSkip, Comp: "feed", Mode: "search", Query: query})
		return []content.Item{}
	}

	start := time.Now()
	f.events.Emit(otel.Event{Kind: otel.KindSearchStart, Comp: "feed", Mode: "search", Query: query})

	var wiki, news []content.Item
	var g errgroup.Group
	g.Go(func() error {
		wiki = f.search(ctx, "wiki", f.wikiSearch, query)
		return nil
	})
	g.Go(func() error {
		news = f.search(ctx, "news", f.newsSearch, query)
		return nil
	})
	g.Wait()

	out := content.Dedup(interleave(content.DropPlaceholders(wiki), content.DropPlaceholders(news), newsEvery))
	if len(out) > f.searchLimit {
		out = out[:f.searchLimit]
	}

	outcome := "ok"
	if len(out) == 0 {
		outcome = "empty"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	f.events.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindSearchComplete,
		Comp:  "feed",
		Mode:  "search",
		Query: query,
		Count: len(out),
		Dur:   time.Since(start),
	})
	return out
}

// search calls one searcher with the guard's timeout. Errors and panics
// yield no results.
func (f *Feed) search(ctx context.Context, name string, s provider.Searcher, query string) (items []content.Item) {
	if s == nil {
		return nil
	}
	if f.searchTO > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.searchTO)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			logging.Error("search panicked", "searcher", name, "panic", fmt.Sprint(r))
			items = nil
		}
	}()

	items, err := s.Search(ctx, query, f.searchLimit)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		logging.Debug("search failed", "searcher", name, "error", err)
		f.events.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindFetchError, Comp: "feed", Mode: "search", Source: name, Query: query, Err: err.Error()})
		return nil
	}
	return items
}

// interleave places one item of b after every n items of a. Once a runs
// out, the remaining b items follow.
func interleave(a, b []content.Item, n int) []content.Item {
	out := make([]content.Item, 0, len(a)+len(b))
	j := 0
	for i, item := range a {
		out = append(out, item)
		if (i+1)%n == 0 && j < len(b) {
			out = append(out, b[j])
			j++
		}
	}
	return append(out, b[j:]...)
}
