package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abelbrown/scroll/internal/config"
	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/coord"
	"github.com/abelbrown/scroll/internal/feed"
	"github.com/abelbrown/scroll/internal/ledger"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/mix"
	"github.com/abelbrown/scroll/internal/otel"
	"github.com/abelbrown/scroll/internal/plan"
	"github.com/abelbrown/scroll/internal/provider"
	"github.com/abelbrown/scroll/internal/provider/curated"
	"github.com/abelbrown/scroll/internal/provider/news"
	"github.com/abelbrown/scroll/internal/provider/wiki"
	"github.com/abelbrown/scroll/internal/store"
)

// eventRingSize is how many recent events the viewer keeps for its status
// line and debug overlay.
const eventRingSize = 256

// runtime holds everything a command needs. Close releases it in reverse
// order of construction.
type runtime struct {
	cfg    *config.Config
	store  *store.Store
	feed   *feed.Feed
	news   *news.Provider // nil when offline
	events *otel.Logger
	ring   *otel.RingBuffer

	metrics *http.Server
}

// loadConfig applies command-line overrides on top of the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if offline {
		cfg.Feed.Offline = true
	}
	return cfg, nil
}

// setup loads config, opens the store and wires the feed. withEvents
// enables the event log and ring buffer even when log.events is off.
func setup(withEvents bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := logging.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	rt := &runtime{cfg: cfg}

	if cfg.Log.Events {
		rt.events, err = otel.OpenFile(cfg.Log.Dir)
		if err != nil {
			logging.Warn("event log disabled", "error", err)
		}
	}
	if rt.events == nil && withEvents {
		rt.events = otel.NewNullLogger()
	}
	if rt.events != nil {
		rt.ring = otel.NewRingBuffer(eventRingSize)
		rt.events.SetRingBuffer(rt.ring)
		rt.events.Info(otel.KindStartup, "main", "scroll "+version)
	}

	rt.store, err = store.Open(cfg.Store.Path)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}

	providers := rt.buildProviders()
	margins := feed.Margins{
		News:    cfg.Feed.NewsMargin,
		Wiki:    cfg.Feed.WikiMargin,
		Related: cfg.Feed.RelatedMargin,
		Topic:   cfg.Feed.TopicMargin,
		Filler:  cfg.Feed.FillerMargin,
	}
	rt.feed = feed.New(providers, feed.Options{
		Planner:       plan.New(cfg.PlanSettings()),
		Mixer:         mix.New(cfg.MixOptions()),
		Ledger:        ledger.New(cfg.LedgerOptions()),
		Signals:       rt.store,
		Popularity:    rt.store,
		Events:        rt.events,
		Margins:       &margins,
		Guard:         provider.GuardOptions{Timeout: cfg.Feed.FetchTimeout},
		SearchLimit:   cfg.Feed.SearchLimit,
		ActionTimeout: cfg.Feed.ActionTimeout,
		DefaultTopics: cfg.Feed.DefaultTopics,
	})

	if metricsAddr != "" {
		rt.serveMetrics(metricsAddr)
	}
	return rt, nil
}

// buildProviders wires live sources behind curated fallbacks, or the
// curated sets alone when offline.
func (rt *runtime) buildProviders() feed.Providers {
	rng := content.DefaultRand
	wikiStatic := curated.Wiki(rng)
	newsStatic := curated.News(rng)

	var fillers []provider.Provider
	for _, s := range curated.Fillers(rng) {
		fillers = append(fillers, s)
	}

	if rt.cfg.Feed.Offline {
		logging.Info("offline mode: serving built-in content only")
		return feed.Providers{
			Wiki:       wikiStatic,
			News:       newsStatic,
			Fillers:    fillers,
			WikiSearch: wikiStatic,
			NewsSearch: newsStatic,
		}
	}

	client := wiki.NewClient(
		wiki.WithBaseURL(rt.cfg.Wiki.BaseURL),
		wiki.WithUserAgent(rt.cfg.Wiki.UserAgent),
		wiki.WithRateLimit(rt.cfg.Wiki.RateEvery, rt.cfg.Wiki.RateBurst),
	)

	sources := make([]news.Source, 0, len(rt.cfg.News.Sources))
	for _, s := range rt.cfg.News.Sources {
		sources = append(sources, news.Source{Name: s.Name, URL: s.URL})
	}
	rt.news = news.New(news.Options{
		Sources:      sources,
		Timeout:      rt.cfg.News.Timeout,
		CacheTTL:     rt.cfg.News.CacheTTL,
		MaxAge:       rt.cfg.News.MaxAge,
		MaxPerSource: rt.cfg.News.MaxPerSource,
	})

	// feed.New guards the live side of each fallback; searches use them as is.
	wikiProvider := provider.WithFallback(wiki.NewRandomProvider(client), wikiStatic)
	newsProvider := provider.WithFallback(rt.news, newsStatic)
	return feed.Providers{
		Wiki:       wikiProvider,
		News:       newsProvider,
		Related:    wiki.NewRelatedProvider(client),
		Topic:      wiki.NewTopicProvider(client),
		Fillers:    fillers,
		WikiSearch: wikiProvider,
		NewsSearch: newsProvider,
	}
}

// startWarmer keeps the headline cache fresh until ctx is cancelled.
// Returns nil when there is nothing to warm.
func (rt *runtime) startWarmer(ctx context.Context) *coord.Coordinator {
	if rt.news == nil {
		return nil
	}
	interval := rt.cfg.News.CacheTTL * 4 / 5
	c := coord.New([]coord.Refresher{rt.news}, coord.Options{
		Interval: interval,
		Timeout:  rt.cfg.Feed.FetchTimeout,
		Events:   rt.events,
	})
	c.Start(ctx)
	return c
}

func (rt *runtime) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	rt.metrics = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := rt.metrics.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("metrics server failed", "addr", addr, "error", err)
			rt.events.Error(otel.KindError, "main", err)
		}
	}()
	logging.Info("serving metrics", "addr", addr)
}

// Close flushes pending actions and releases every resource. Safe on a
// partially built runtime.
func (rt *runtime) Close() {
	if rt.feed != nil {
		rt.feed.Flush()
	}
	if rt.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		rt.metrics.Shutdown(ctx)
		cancel()
	}
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			logging.Warn("close store", "error", err)
		}
	}
	if rt.events != nil {
		rt.events.Info(otel.KindShutdown, "main", "")
		rt.events.Close()
	}
	logging.Close()
}
