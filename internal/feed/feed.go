// Package feed composes scroll batches: it plans a batch, fans out to the
// content providers, prefers unseen items, optionally ranks them, and mixes
// everything into one ordered slice.
//
// Nothing in this package returns an error to its caller. Provider and
// signal failures are logged, recorded as events, and absorbed.
package feed

import (
	"context"
	"sync"
	"time"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/ledger"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/mix"
	"github.com/abelbrown/scroll/internal/otel"
	"github.com/abelbrown/scroll/internal/plan"
	"github.com/abelbrown/scroll/internal/provider"
	"github.com/abelbrown/scroll/internal/ranking"
	"github.com/abelbrown/scroll/internal/signals"
)

// SignalSource supplies per-user personalization inputs. Implementations
// return empty results for an empty userID.
type SignalSource interface {
	Interests(ctx context.Context, userID string) ([]signals.Interest, error)
	Preferences(ctx context.Context, userID string) ([]signals.Preference, error)
	ContentFilters(ctx context.Context, userID string) ([]signals.Filter, error)
	ViewCounts(ctx context.Context, userID string) (map[content.Kind]int, error)
}

// Popularity tracks engagement across users.
type Popularity interface {
	PopularContent(ctx context.Context, kind content.Kind, limit int) ([]content.Item, error)
	RecordAction(ctx context.Context, userID string, p signals.Preference) error
}

// Providers are the content sources a Feed draws from. Any of them may be
// nil; a nil source contributes nothing.
type Providers struct {
	Wiki    provider.Provider
	News    provider.Provider
	Related provider.Provider // Hint is the title of a liked article
	Topic   provider.Provider // Hint is a topic
	Fillers []provider.Provider

	WikiSearch provider.Searcher
	NewsSearch provider.Searcher
}

// Margins are extra items requested per bucket to absorb filtering losses.
type Margins struct {
	News, Wiki, Related, Topic, Filler int
}

// DefaultMargins returns the standard overfetch.
func DefaultMargins() Margins {
	return Margins{News: 2, Wiki: 5, Related: 2, Topic: 1, Filler: 1}
}

func (m Margins) For(b plan.Bucket) int {
	switch b {
	case plan.BucketNews:
		return m.News
	case plan.BucketWiki:
		return m.Wiki
	case plan.BucketRelated:
		return m.Related
	case plan.BucketTopic:
		return m.Topic
	}
	return m.Filler
}

// Options configures a Feed. Zero fields take defaults.
type Options struct {
	Planner    *plan.Planner
	Ledger     *ledger.Ledger
	Mixer      *mix.Mixer
	Scorer     ranking.Ranker
	Signals    SignalSource
	Popularity Popularity
	Events     *otel.Logger

	Margins       *Margins
	Guard         provider.GuardOptions
	SearchLimit   int
	ActionTimeout time.Duration
	// DefaultTopics seed the topic bucket for users without interests.
	DefaultTopics []string
	// PopularLimit bounds the popular set consulted while ranking.
	PopularLimit int
	Rand         content.Rand
}

const (
	defaultSearchLimit   = 20
	defaultActionTimeout = 5 * time.Second
	defaultPopularLimit  = 10
	minQueryLen          = 3
	maxConcurrentFetches = 8
)

// Feed is the composition entry point. Safe for concurrent use.
type Feed struct {
	wiki    provider.Provider
	news    provider.Provider
	related provider.Provider
	topic   provider.Provider
	fillers map[plan.Bucket]provider.Provider

	wikiSearch provider.Searcher
	newsSearch provider.Searcher
	searchTO   time.Duration

	planner    *plan.Planner
	ledger     *ledger.Ledger
	mixer      *mix.Mixer
	scorer     ranking.Ranker
	signals    SignalSource
	popularity Popularity
	events     *otel.Logger

	margins       Margins
	searchLimit   int
	actionTimeout time.Duration
	popularLimit  int
	topics        []string

	rngMu sync.Mutex
	rng   content.Rand

	pending sync.WaitGroup
}

// New builds a Feed. Every provider is wrapped in a Guard so panics, slow
// calls and repeated failures stay contained. A Fallback's static dataset
// sits outside its guard.
func New(p Providers, opts Options) *Feed {
	if opts.Planner == nil {
		opts.Planner = plan.New(plan.DefaultConfig())
	}
	if opts.Rand == nil {
		opts.Rand = content.DefaultRand
	}
	if opts.Ledger == nil {
		opts.Ledger = ledger.New(ledger.Options{Rand: opts.Rand})
	}
	if opts.Mixer == nil {
		opts.Mixer = mix.New(mix.Options{Rand: opts.Rand})
	}
	if opts.Scorer == nil {
		opts.Scorer = ranking.DefaultScorer()
	}
	if opts.Margins == nil {
		m := DefaultMargins()
		opts.Margins = &m
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = defaultActionTimeout
	}
	if opts.PopularLimit <= 0 {
		opts.PopularLimit = defaultPopularLimit
	}

	f := &Feed{
		wiki:          guard(p.Wiki, opts.Guard),
		news:          guard(p.News, opts.Guard),
		related:       guard(p.Related, opts.Guard),
		topic:         guard(p.Topic, opts.Guard),
		fillers:       make(map[plan.Bucket]provider.Provider, len(p.Fillers)),
		wikiSearch:    p.WikiSearch,
		newsSearch:    p.NewsSearch,
		searchTO:      opts.Guard.Timeout,
		planner:       opts.Planner,
		ledger:        opts.Ledger,
		mixer:         opts.Mixer,
		scorer:        opts.Scorer,
		signals:       opts.Signals,
		popularity:    opts.Popularity,
		events:        opts.Events,
		margins:       *opts.Margins,
		searchLimit:   opts.SearchLimit,
		actionTimeout: opts.ActionTimeout,
		popularLimit:  opts.PopularLimit,
		topics:        append([]string(nil), opts.DefaultTopics...),
		rng:           opts.Rand,
	}
	for _, fp := range p.Fillers {
		if fp == nil {
			continue
		}
		kind, ok := content.ParseKind(fp.Name())
		if !ok || !plan.FillerBucket(kind).IsFiller() {
			logging.Warn("ignoring filler provider", "name", fp.Name())
			continue
		}
		f.fillers[plan.FillerBucket(kind)] = guard(fp, opts.Guard)
	}
	return f
}

func guard(p provider.Provider, opts provider.GuardOptions) provider.Provider {
	if p == nil {
		return nil
	}
	return provider.Guarded(p, opts)
}

// Ledger exposes the view ledger, mainly for inspection.
func (f *Feed) Ledger() *ledger.Ledger { return f.ledger }

// Flush waits for fire-and-forget work such as RecordAction writes.
func (f *Feed) Flush() { f.pending.Wait() }

// source returns the provider serving bucket b.
func (f *Feed) source(b plan.Bucket) provider.Provider {
	switch b {
	case plan.BucketWiki:
		return f.wiki
	case plan.BucketNews:
		return f.news
	case plan.BucketRelated:
		return f.related
	case plan.BucketTopic:
		return f.topic
	}
	return f.fillers[b]
}

func (f *Feed) intN(n int) int {
	f.rngMu.Lock()
	defer f.rngMu.Unlock()
	return f.rng.IntN(n)
}
