// Package coord keeps slow content sources warm in the background so feed
// loads are served from cache.
package coord

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/otel"
)

// DefaultInterval is the time between refresh cycles. It sits below the
// news cache TTL so readers rarely see a cold cache.
const DefaultInterval = 4 * time.Minute

// defaultTimeout bounds each refresh.
const defaultTimeout = 30 * time.Second

// maxConcurrentRefreshes limits parallel refresh operations.
const maxConcurrentRefreshes = 4

// Refresher is a source that can reload its cache on demand.
type Refresher interface {
	Name() string
	Refresh(ctx context.Context) (int, error)
}

// Result reports one refresh.
type Result struct {
	Source string
	Items  int
	Err    error
	Dur    time.Duration
}

// Options configures a Coordinator. Zero fields take the defaults.
type Options struct {
	Interval time.Duration
	Timeout  time.Duration
	Events   *otel.Logger
	// OnResult is called after every refresh, from the refreshing goroutine.
	OnResult func(Result)
}

// Coordinator refreshes its targets periodically.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	targets  []Refresher // IMMUTABLE: set at construction, never modified
	interval time.Duration
	timeout  time.Duration
	events   *otel.Logger
	onResult func(Result)
	wg       sync.WaitGroup
}

// New creates a Coordinator over targets. Nil targets are skipped.
func New(targets []Refresher, opts Options) *Coordinator {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	kept := make([]Refresher, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &Coordinator{
		targets:  kept,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		events:   opts.Events,
		onResult: opts.OnResult,
	}
}

// Start refreshes every target immediately and then once per interval
// until ctx is cancelled.
func (c *Coordinator) Start(ctx context.Context) {
	if len(c.targets) == 0 {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.RefreshAll(ctx)

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.RefreshAll(ctx)
			}
		}
	}()
}

// Wait blocks until the background goroutine exits.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// RefreshAll refreshes every target in parallel and returns the results in
// target order. A failing target never affects the others.
func (c *Coordinator) RefreshAll(ctx context.Context) []Result {
	results := make([]Result, len(c.targets))

	var g errgroup.Group
	g.SetLimit(maxConcurrentRefreshes)
	for i, t := range c.targets {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = Result{Source: t.Name(), Err: ctx.Err()}
				return nil
			}
			results[i] = c.refresh(ctx, t)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (c *Coordinator) refresh(ctx context.Context, t Refresher) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	n, err := t.Refresh(ctx)
	res := Result{Source: t.Name(), Items: n, Err: err, Dur: time.Since(start)}

	ev := otel.Event{Level: otel.LevelDebug, Kind: otel.KindRefresh, Comp: "coord", Source: res.Source, Count: n, Dur: res.Dur}
	if err != nil {
		ev.Level, ev.Kind, ev.Err = otel.LevelWarn, otel.KindRefreshError, err.Error()
		logging.Warn("background refresh failed", "source", res.Source, "error", err)
	}
	c.events.Emit(ev)

	if c.onResult != nil {
		c.onResult(res)
	}
	return res
}
