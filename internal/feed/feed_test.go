package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/ledger"
	"github.com/abelbrown/scroll/internal/otel"
	"github.com/abelbrown/scroll/internal/plan"
	"github.com/abelbrown/scroll/internal/provider"
	"github.com/abelbrown/scroll/internal/provider/curated"
	"github.com/abelbrown/scroll/internal/signals"
)

var errUpstream = errors.New("upstream down")

func makeItems(kind content.Kind, prefix string, n int) []content.Item {
	out := make([]content.Item, n)
	for i := range out {
		id := fmt.Sprintf("%s%d", prefix, i)
		out[i] = content.Item{
			ID:    id,
			Kind:  kind,
			Title: "Item " + id,
			Image: "https://img.example/" + id + ".jpg",
		}
	}
	return out
}

func static(name string, items []content.Item, seed uint64) *provider.Static {
	return provider.NewStatic(name, items, content.NewSeededRand(seed))
}

// recorder is a provider that remembers its requests.
type recorder struct {
	name  string
	items []content.Item
	err   error
	calls atomic.Int32

	mu   sync.Mutex
	reqs []provider.Request
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Fetch(ctx context.Context, req provider.Request) ([]content.Item, error) {
	r.calls.Add(1)
	r.mu.Lock()
	r.reqs = append(r.reqs, req)
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if len(r.items) > req.Count {
		return r.items[:req.Count], nil
	}
	return r.items, nil
}

func (r *recorder) lastRequest() provider.Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reqs) == 0 {
		return provider.Request{}
	}
	return r.reqs[len(r.reqs)-1]
}

type fakeSearcher struct {
	items []content.Item
	err   error
	calls atomic.Int32
}

func (s *fakeSearcher) Search(ctx context.Context, query string, limit int) ([]content.Item, error) {
	s.calls.Add(1)
	return s.items, s.err
}

type fakeSignals struct {
	interests []signals.Interest
	prefs     []signals.Preference
	filters   []signals.Filter
	views     map[content.Kind]int
	err       error
}

func (s *fakeSignals) Interests(ctx context.Context, userID string) ([]signals.Interest, error) {
	return s.interests, s.err
}

func (s *fakeSignals) Preferences(ctx context.Context, userID string) ([]signals.Preference, error) {
	return s.prefs, s.err
}

func (s *fakeSignals) ContentFilters(ctx context.Context, userID string) ([]signals.Filter, error) {
	return s.filters, s.err
}

func (s *fakeSignals) ViewCounts(ctx context.Context, userID string) (map[content.Kind]int, error) {
	return s.views, s.err
}

type fakePopularity struct {
	mu      sync.Mutex
	popular map[content.Kind][]content.Item
	actions []signals.Preference
	users   []string
	err     error
}

func (p *fakePopularity) PopularContent(ctx context.Context, kind content.Kind, limit int) ([]content.Item, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.popular[kind], nil
}

func (p *fakePopularity) RecordAction(ctx context.Context, userID string, pref signals.Preference) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.users = append(p.users, userID)
	p.actions = append(p.actions, pref)
	return nil
}

func newFeed(p Providers, opts Options) *Feed {
	if opts.Rand == nil {
		opts.Rand = content.NewSeededRand(7)
	}
	return New(p, opts)
}

// healthy wires every bucket to an in-memory source with disjoint IDs.
func healthy() Providers {
	fillers := curated.Fillers(content.DefaultRand)
	ps := make([]provider.Provider, len(fillers))
	for i, f := range fillers {
		ps[i] = f
	}
	return Providers{
		Wiki:    static("wiki", makeItems(content.KindWiki, "w", 60), 1),
		News:    static("news", makeItems(content.KindNews, "n", 6), 2),
		Related: static("related", makeItems(content.KindWiki, "r", 10), 3),
		Topic:   static("topic", makeItems(content.KindWiki, "t", 10), 4),
		Fillers: ps,
	}
}

func assertNoPlaceholders(t *testing.T, items []content.Item) {
	t.Helper()
	for i, item := range items {
		if !content.HasRealImage(item) {
			t.Errorf("item %d (%s) has no real image: %q", i, item.Key(), item.Image)
		}
	}
}

func TestScenarioWikiFallbackOnly(t *testing.T) {
	wiki := provider.WithFallback(
		&recorder{name: "wiki", err: errUpstream},
		static("wiki-static", makeItems(content.KindWiki, "s", 10), 1),
	)
	news := &recorder{name: "news"}
	f := newFeed(Providers{Wiki: wiki, News: news}, Options{})
	sess := NewSession()

	batch := f.GetMixedContent(context.Background(), sess, 10, "")

	if len(batch) != 10 {
		t.Fatalf("expected 10 items, got %d", len(batch))
	}
	for _, item := range batch {
		if item.Kind != content.KindWiki || item.ID[0] != 's' {
			t.Errorf("expected fallback wiki item, got %s", item.Key())
		}
	}
	if len(content.Dedup(batch)) != 10 {
		t.Error("batch contains duplicates")
	}
	if sess.Position() != 10 {
		t.Errorf("expected position 10, got %d", sess.Position())
	}
}

func TestScenarioSingleNewsMidBatch(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		f := newFeed(healthy(), Options{Rand: content.NewSeededRand(seed)})
		sess := NewSession()
		sess.claim(17)

		batch := f.GetMixedContent(context.Background(), sess, 20, "")
		if len(batch) != 20 {
			t.Fatalf("seed %d: expected 20 items, got %d", seed, len(batch))
		}
		newsAt := -1
		for i, item := range batch {
			if item.Kind == content.KindNews {
				if newsAt >= 0 {
					t.Fatalf("seed %d: more than one news item", seed)
				}
				newsAt = i
			}
		}
		if newsAt <= 1 || newsAt >= 18 {
			t.Errorf("seed %d: news at index %d, want strictly between 1 and 18", seed, newsAt)
		}
		if sess.Position() != 37 {
			t.Errorf("seed %d: expected position 37, got %d", seed, sess.Position())
		}
	}
}

func TestBlockedKindNeverServed(t *testing.T) {
	var prefs []signals.Preference
	for i := range 5 {
		prefs = append(prefs, signals.Preference{Kind: content.KindFact, Action: signals.ActionNeverShow, ContentID: fmt.Sprint(i)})
	}
	f := newFeed(healthy(), Options{Signals: &fakeSignals{prefs: prefs}})

	for range 3 {
		batch := f.Compose(context.Background(), NewSession(), Request{Count: 20, UserID: "u1"})
		if n := content.CountKind(batch, content.KindFact); n != 0 {
			t.Errorf("expected no facts, got %d", n)
		}
		if len(batch) != 20 {
			t.Errorf("expected 20 items, got %d", len(batch))
		}
	}
}

func TestNoPlaceholdersReachCaller(t *testing.T) {
	mixed := makeItems(content.KindWiki, "w", 30)
	for i := range mixed {
		if i%2 == 0 {
			mixed[i].Image = "https://img.example/placeholder.png"
		}
	}
	mixed[1].Image = ""
	news := makeItems(content.KindNews, "n", 4)
	news[0].Image = "https://cdn.example/PlaceHolder-news.jpg"

	f := newFeed(Providers{
		Wiki: static("wiki", mixed, 1),
		News: static("news", news, 2),
	}, Options{})
	sess := NewSession()
	for range 5 {
		assertNoPlaceholders(t, f.GetMixedContent(context.Background(), sess, 10, ""))
		assertNoPlaceholders(t, f.GetAlgorithmicContent(context.Background(), sess, 10, ""))
	}
}

func TestCountBound(t *testing.T) {
	tests := []struct {
		name  string
		wiki  int
		count int
		want  int
	}{
		{"plenty", 60, 20, 20},
		{"exact", 60, 1, 1},
		{"short pool", 4, 10, 4},
		{"empty pool", 0, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeed(Providers{Wiki: static("wiki", makeItems(content.KindWiki, "w", tt.wiki), 1)}, Options{})
			batch := f.GetMixedContent(context.Background(), NewSession(), tt.count, "")
			if len(batch) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(batch))
			}
			if batch == nil {
				t.Error("batch must not be nil")
			}
		})
	}
}

func TestHealthyBatchesAreFull(t *testing.T) {
	f := newFeed(healthy(), Options{})
	sess := NewSession()
	for i := range 10 {
		batch := f.GetMixedContent(context.Background(), sess, 20, "")
		if len(batch) != 20 {
			t.Fatalf("batch %d: expected 20 items, got %d", i, len(batch))
		}
		if len(content.Dedup(batch)) != 20 {
			t.Errorf("batch %d contains duplicates", i)
		}
	}
	if sess.Position() != 200 {
		t.Errorf("expected position 200, got %d", sess.Position())
	}
}

func TestShortWikiKeepsNewsSpread(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		f := newFeed(Providers{
			Wiki: static("wiki", makeItems(content.KindWiki, "w", 4), 1),
			News: static("news", makeItems(content.KindNews, "n", 3), 2),
		}, Options{Rand: content.NewSeededRand(seed)})

		batch := f.GetMixedContent(context.Background(), NewSession(), 20, "")
		news := content.CountKind(batch, content.KindNews)
		if len(batch) != 4+news {
			t.Fatalf("seed %d: expected every fetched item, got %d (%d news)", seed, len(batch), news)
		}
		for i := 1; i < len(batch); i++ {
			if batch[i].Kind == content.KindNews && batch[i-1].Kind == content.KindNews {
				t.Fatalf("seed %d: adjacent news at %d in %v", seed, i, kinds(batch))
			}
		}
	}
}

func kinds(items []content.Item) string {
	out := make([]byte, len(items))
	for i, item := range items {
		out[i] = string(item.Kind)[0]
	}
	return string(out)
}

func TestTotalFailureReturnsEmpty(t *testing.T) {
	failing := func(name string) *recorder { return &recorder{name: name, err: errUpstream} }
	f := newFeed(Providers{
		Wiki:    failing("wiki"),
		News:    failing("news"),
		Related: failing("related"),
		Topic:   failing("topic"),
	}, Options{})
	sess := NewSession()

	batch := f.GetMixedContent(context.Background(), sess, 10, "")
	if batch == nil || len(batch) != 0 {
		t.Fatalf("expected empty non-nil batch, got %v", batch)
	}
	if sess.Position() != 0 {
		t.Errorf("empty batch should not advance position, got %d", sess.Position())
	}
}

// flaky fails its first call and succeeds afterwards.
type flaky struct {
	items []content.Item
	calls atomic.Int32
}

func (f *flaky) Name() string { return "wiki" }

func (f *flaky) Fetch(ctx context.Context, req provider.Request) ([]content.Item, error) {
	if f.calls.Add(1) == 1 {
		return nil, errUpstream
	}
	return f.items[:min(req.Count, len(f.items))], nil
}

func TestWikiOnlyFallback(t *testing.T) {
	events := otel.NewNullLogger()
	ring := otel.NewRingBuffer(64)
	events.SetRingBuffer(ring)

	wiki := &flaky{items: makeItems(content.KindWiki, "w", 10)}
	f := newFeed(Providers{Wiki: wiki, News: &recorder{name: "news", err: errUpstream}}, Options{Events: events})
	sess := NewSession()
	sess.claim(40) // outside every cadence window

	batch := f.GetMixedContent(context.Background(), sess, 5, "")
	events.Close()

	if len(batch) != 5 {
		t.Fatalf("expected 5 fallback items, got %d", len(batch))
	}
	if wiki.calls.Load() != 2 {
		t.Errorf("expected 2 wiki calls, got %d", wiki.calls.Load())
	}
	ev, ok := ring.Latest(string(otel.KindFallback))
	if !ok || ev.Count != 5 {
		t.Errorf("expected fallback event with 5 items, got %+v (ok %v)", ev, ok)
	}
	if compose, ok := ring.Latest(string(otel.KindCompose)); !ok || compose.Msg != outcomeFallback {
		t.Errorf("expected compose event with fallback outcome, got %+v", compose)
	}
}

func TestViewsDiluteDislikes(t *testing.T) {
	var prefs []signals.Preference
	for i := range 3 {
		prefs = append(prefs, signals.Preference{Kind: content.KindQuote, Action: signals.ActionDislike, ContentID: fmt.Sprint(i)})
	}
	sig := &fakeSignals{prefs: prefs, views: map[content.Kind]int{content.KindQuote: 100}}
	f := newFeed(healthy(), Options{Signals: sig})

	set := f.resolveSignals(context.Background(), "u1")
	if set == nil || set.Views[content.KindQuote] != 100 {
		t.Fatalf("expected views in resolved signals, got %+v", set)
	}
	if _, blocked := set.Blocked()[content.KindQuote]; blocked {
		t.Error("3 dislikes over 100 views should not block quotes")
	}

	sig.views = nil
	if _, blocked := f.resolveSignals(context.Background(), "u1").Blocked()[content.KindQuote]; !blocked {
		t.Error("3 dislikes without views should block quotes")
	}
}

func TestCancelledContext(t *testing.T) {
	f := newFeed(healthy(), Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sess := NewSession()
	batch := f.GetMixedContent(ctx, sess, 10, "")
	if batch == nil || len(batch) != 0 {
		t.Errorf("expected empty batch for cancelled context, got %d items", len(batch))
	}
	if sess.Position() != 0 {
		t.Errorf("expected position 0, got %d", sess.Position())
	}
}

func TestSignalFailureIsNotFatal(t *testing.T) {
	f := newFeed(healthy(), Options{Signals: &fakeSignals{err: errUpstream}})
	batch := f.GetAlgorithmicContent(context.Background(), NewSession(), 20, "u1")
	if len(batch) != 20 {
		t.Errorf("expected 20 items despite signal failure, got %d", len(batch))
	}
}

func TestSecondBatchPrefersUnviewed(t *testing.T) {
	f := newFeed(Providers{Wiki: static("wiki", makeItems(content.KindWiki, "w", 20), 1)}, Options{})
	sess := NewSession()

	first := f.Compose(context.Background(), sess, Request{Count: 5})
	second := f.Compose(context.Background(), sess, Request{Count: 5})
	if len(first) != 5 || len(second) != 5 {
		t.Fatalf("expected two batches of 5, got %d and %d", len(first), len(second))
	}
	seen := make(map[string]bool)
	for _, item := range first {
		seen[item.Key()] = true
	}
	for _, item := range second {
		if seen[item.Key()] {
			t.Errorf("%s served twice while unviewed items remained", item.Key())
		}
	}
	if !f.Ledger().IsViewed(content.KindWiki, second[0].ID) {
		t.Error("served items should be marked viewed")
	}
}

func TestOverfetchMargins(t *testing.T) {
	wiki := &recorder{name: "wiki", items: makeItems(content.KindWiki, "w", 40)}
	news := &recorder{name: "news", items: makeItems(content.KindNews, "n", 5)}
	f := newFeed(Providers{Wiki: wiki, News: news}, Options{})
	sess := NewSession()
	sess.claim(17)

	f.GetMixedContent(context.Background(), sess, 20, "")

	// Plan at 17 for 20: news 1, related 2, two fillers, topic 2, wiki 13.
	if got := news.lastRequest().Count; got != 1+2 {
		t.Errorf("news request count = %d, want 3", got)
	}
	if got := wiki.lastRequest().Count; got != 13+5 {
		t.Errorf("wiki request count = %d, want 18", got)
	}
}

func TestTopicHint(t *testing.T) {
	topic := &recorder{name: "topic", items: makeItems(content.KindWiki, "t", 5)}
	wiki := static("wiki", makeItems(content.KindWiki, "w", 40), 1)

	f := newFeed(Providers{Wiki: wiki, Topic: topic}, Options{DefaultTopics: []string{"volcanoes"}})
	f.GetMixedContent(context.Background(), NewSession(), 10, "")
	if got := topic.lastRequest().Hint; got != "volcanoes" {
		t.Errorf("anonymous topic hint = %q, want default topic", got)
	}

	sig := &fakeSignals{interests: []signals.Interest{{Topic: "jazz", Weight: 2}, {Topic: "owls", Weight: 1}}}
	f = newFeed(Providers{Wiki: wiki, Topic: topic}, Options{Signals: sig, DefaultTopics: []string{"volcanoes"}})
	f.GetMixedContent(context.Background(), NewSession(), 10, "u1")
	if got := topic.lastRequest().Hint; got != "jazz" {
		t.Errorf("user topic hint = %q, want top interest", got)
	}
}

func TestRelatedHintUsesLastLiked(t *testing.T) {
	sig := &signals.Set{Preferences: []signals.Preference{
		{Kind: content.KindWiki, Action: signals.ActionLike, ContentID: "1", Title: "Octopus", At: time.Now().Add(-time.Hour)},
		{Kind: content.KindWiki, Action: signals.ActionSave, ContentID: "2", Title: "Squid", At: time.Now()},
		{Kind: content.KindWiki, Action: signals.ActionDislike, ContentID: "3", Title: "Eel", At: time.Now().Add(time.Minute)},
	}}
	f := newFeed(Providers{}, Options{})

	if got := f.hintFor(plan.BucketRelated, sig); got != "Squid" {
		t.Errorf("related hint = %q, want Squid", got)
	}
	if got := f.hintFor(plan.BucketRelated, nil); got != "" {
		t.Errorf("anonymous related hint = %q, want empty", got)
	}
	if got := f.hintFor(plan.BucketWiki, sig); got != "" {
		t.Errorf("wiki hint = %q, want empty", got)
	}
}

func TestAlgorithmicRanksPopularFirst(t *testing.T) {
	wikiItems := makeItems(content.KindWiki, "w", 10)
	pop := &fakePopularity{popular: map[content.Kind][]content.Item{
		content.KindWiki: {{ID: "w7", Kind: content.KindWiki}},
	}}
	f := newFeed(Providers{Wiki: static("wiki", wikiItems, 1)}, Options{Popularity: pop})

	batch := f.Compose(context.Background(), NewSession(), Request{Count: 5, Mode: Mode{UseScoring: true}})
	if len(batch) != 5 {
		t.Fatalf("expected 5 items, got %d", len(batch))
	}
	if batch[0].ID != "w7" {
		t.Errorf("expected popular item first, got %s", batch[0].ID)
	}
}

func TestSessionClaimsAreDisjoint(t *testing.T) {
	sess := NewSession()
	var wg sync.WaitGroup
	starts := make([]int, 50)
	for i := range starts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			starts[i] = sess.claim(10)
		}()
	}
	wg.Wait()

	seen := make(map[int]bool)
	for _, s := range starts {
		if s%10 != 0 || seen[s] {
			t.Fatalf("overlapping claim at %d", s)
		}
		seen[s] = true
	}
	if sess.Position() != 500 {
		t.Errorf("expected position 500, got %d", sess.Position())
	}

	start := sess.claim(5)
	sess.release(start, 5)
	if sess.Position() != 500 {
		t.Errorf("release should restore position, got %d", sess.Position())
	}
	a := sess.claim(5)
	sess.claim(5)
	sess.release(a, 5)
	if sess.Position() != 510 {
		t.Errorf("release under a later claim must be a no-op, got %d", sess.Position())
	}
}

func TestAbsorbDeficit(t *testing.T) {
	selected := map[plan.Bucket][]content.Item{
		plan.BucketWiki:    makeItems(content.KindWiki, "w", 3),
		plan.BucketRelated: {},
		plan.BucketNews:    makeItems(content.KindNews, "n", 1),
	}
	reserve := map[plan.Bucket][]content.Item{
		plan.BucketWiki: makeItems(content.KindWiki, "x", 1),
		plan.BucketNews: makeItems(content.KindNews, "m", 5),
	}
	p := plan.Plan{plan.BucketWiki: 3, plan.BucketRelated: 2, plan.BucketNews: 1, plan.BucketTopic: 1}

	counts := absorbDeficit(selected, reserve, p)

	// Deficit of 3: one from wiki, then news as the last resort.
	if counts[plan.BucketWiki] != 4 || counts[plan.BucketNews] != 3 {
		t.Errorf("unexpected counts: %v", counts)
	}
	if counts.Total() != p.Total() {
		t.Errorf("expected total %d, got %d", p.Total(), counts.Total())
	}
	if _, ok := counts[plan.BucketRelated]; ok {
		t.Error("empty buckets should be dropped")
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Mode{UsePosition: true}, "mixed"},
		{Mode{UseScoring: true, UsePosition: true}, "algorithmic"},
		{Mode{UseScoring: true}, "scored"},
		{Mode{}, "flat"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%+v = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestIgnoresUnknownFiller(t *testing.T) {
	f := newFeed(Providers{Fillers: []provider.Provider{
		&recorder{name: "news"},
		&recorder{name: "gossip"},
		&recorder{name: "quote"},
	}}, Options{})
	if len(f.fillers) != 1 {
		t.Errorf("expected only the quote filler, got %d", len(f.fillers))
	}
	if f.source(plan.BucketNews) != nil {
		t.Error("a filler must not take over the news bucket")
	}
}

func TestNewUsesLedgerOption(t *testing.T) {
	l := ledger.New(ledger.Options{Capacity: 3})
	f := newFeed(Providers{Wiki: static("wiki", makeItems(content.KindWiki, "w", 10), 1)}, Options{Ledger: l})
	f.Compose(context.Background(), NewSession(), Request{Count: 5})
	if l.Len() != 3 {
		t.Errorf("expected capacity-bounded ledger of 3, got %d", l.Len())
	}
}

func TestSearchShortQuerySkipsProviders(t *testing.T) {
	wiki := &fakeSearcher{items: makeItems(content.KindWiki, "w", 3)}
	news := &fakeSearcher{items: makeItems(content.KindNews, "n", 3)}
	f := newFeed(Providers{WikiSearch: wiki, NewsSearch: news}, Options{})

	for _, q := range []string{"", "ab", "  ab  ", "日本"} {
		out := f.SearchMixedContent(context.Background(), q)
		if out == nil || len(out) != 0 {
			t.Errorf("%q: expected empty result, got %d", q, len(out))
		}
	}
	if wiki.calls.Load() != 0 || news.calls.Load() != 0 {
		t.Errorf("short queries reached providers: wiki %d, news %d", wiki.calls.Load(), news.calls.Load())
	}

	f.SearchMixedContent(context.Background(), "abc")
	if wiki.calls.Load() != 1 || news.calls.Load() != 1 {
		t.Errorf("expected one call each, got wiki %d, news %d", wiki.calls.Load(), news.calls.Load())
	}
}

func TestSearchInterleaves(t *testing.T) {
	f := newFeed(Providers{
		WikiSearch: &fakeSearcher{items: makeItems(content.KindWiki, "w", 7)},
		NewsSearch: &fakeSearcher{items: makeItems(content.KindNews, "n", 3)},
	}, Options{})

	out := f.SearchMixedContent(context.Background(), "octopus")
	var pattern []byte
	for _, item := range out {
		pattern = append(pattern, string(item.Kind)[0])
	}
	if got := string(pattern); got != "wwwnwwwnwn" {
		t.Errorf("interleave pattern = %q, want wwwnwwwnwn", got)
	}
}

func TestSearchLimitsAndFilters(t *testing.T) {
	wiki := makeItems(content.KindWiki, "w", 30)
	wiki[0].Image = ""
	wiki[1] = wiki[2]
	f := newFeed(Providers{
		WikiSearch: &fakeSearcher{items: wiki},
		NewsSearch: &fakeSearcher{items: makeItems(content.KindNews, "n", 10)},
	}, Options{})

	out := f.SearchMixedContent(context.Background(), "octopus")
	if len(out) != defaultSearchLimit {
		t.Fatalf("expected %d results, got %d", defaultSearchLimit, len(out))
	}
	assertNoPlaceholders(t, out)
	if len(content.Dedup(out)) != len(out) {
		t.Error("search results contain duplicates")
	}
}

type panicSearcher struct{}

func (panicSearcher) Search(ctx context.Context, query string, limit int) ([]content.Item, error) {
	panic("boom")
}

func TestSearchSurvivesFailingSearcher(t *testing.T) {
	tests := []struct {
		name string
		news provider.Searcher
	}{
		{"error", &fakeSearcher{err: errUpstream}},
		{"panic", panicSearcher{}},
		{"missing", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeed(Providers{
				WikiSearch: &fakeSearcher{items: makeItems(content.KindWiki, "w", 4)},
				NewsSearch: tt.news,
			}, Options{})
			out := f.SearchMixedContent(context.Background(), "octopus")
			if len(out) != 4 {
				t.Errorf("expected the 4 wiki results, got %d", len(out))
			}
		})
	}
}

func TestInterleave(t *testing.T) {
	a := makeItems(content.KindWiki, "w", 2)
	b := makeItems(content.KindNews, "n", 2)
	out := interleave(a, b, 3)
	if len(out) != 4 || out[2].ID != "n0" || out[3].ID != "n1" {
		t.Errorf("leftover news should follow the articles: %v", out)
	}
	if got := interleave(nil, nil, 3); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
}

func TestRecordAction(t *testing.T) {
	pop := &fakePopularity{}
	f := newFeed(Providers{}, Options{Popularity: pop})

	f.RecordAction("u1", content.KindWiki, signals.ActionLike, "42", "Octopus")
	f.RecordAction("", content.KindQuote, signals.ActionSave, "q1", "")
	f.Flush()

	pop.mu.Lock()
	defer pop.mu.Unlock()
	if len(pop.actions) != 2 {
		t.Fatalf("expected 2 recorded actions, got %d", len(pop.actions))
	}
	for i, a := range pop.actions {
		if a.At.IsZero() {
			t.Errorf("action %d has no timestamp", i)
		}
		if pop.users[i] == "u1" && (a.ContentID != "42" || a.Title != "Octopus" || a.Action != signals.ActionLike) {
			t.Errorf("unexpected action for u1: %+v", a)
		}
	}
}

func TestRecordActionFailureIsSwallowed(t *testing.T) {
	pop := &fakePopularity{err: errUpstream}
	f := newFeed(Providers{}, Options{Popularity: pop})

	f.RecordAction("u1", content.KindWiki, "poke", "1", "")
	f.Flush()

	// Without a store nothing happens at all.
	newFeed(Providers{}, Options{}).RecordAction("u1", content.KindWiki, signals.ActionLike, "1", "")
}
