package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/abelbrown/scroll/internal/content"
	"github.com/abelbrown/scroll/internal/logging"
	"github.com/abelbrown/scroll/internal/metrics"
)

// ErrPanic wraps a recovered provider panic.
var ErrPanic = errors.New("provider panicked")

// GuardOptions tunes a Guard. Zero fields take the defaults.
type GuardOptions struct {
	// Timeout bounds a single call. 0 leaves the caller's deadline alone.
	Timeout time.Duration

	// Breaker opens after MinRequests calls with FailureRatio failing and
	// stays open for OpenFor.
	MinRequests  uint32
	FailureRatio float64
	OpenFor      time.Duration
}

func (o *GuardOptions) defaults() {
	if o.MinRequests == 0 {
		o.MinRequests = 5
	}
	if o.FailureRatio <= 0 {
		o.FailureRatio = 0.6
	}
	if o.OpenFor <= 0 {
		o.OpenFor = 30 * time.Second
	}
}

// Guard isolates one provider: panics become errors, repeated failures trip a
// circuit breaker, and every outcome is recorded. Fetch always returns a
// non-nil slice; the error is informational.
type Guard struct {
	p       Provider
	cb      *gobreaker.CircuitBreaker[[]content.Item]
	timeout time.Duration
}

// NewGuard wraps p.
func NewGuard(p Provider, opts GuardOptions) *Guard {
	opts.defaults()
	name := p.Name()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]content.Item](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < opts.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= opts.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			// The caller giving up says nothing about the provider's health.
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn("circuit breaker", "provider", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &Guard{p: p, cb: cb, timeout: opts.Timeout}
}

// Guarded wraps p in a Guard. A Fallback keeps its static dataset outside
// the guard, so a timed-out call or an open breaker still resolves with it.
func Guarded(p Provider, opts GuardOptions) Provider {
	if fb, ok := p.(*Fallback); ok {
		return &Fallback{primary: NewGuard(fb.primary, opts), static: fb.static}
	}
	return NewGuard(p, opts)
}

func (g *Guard) Name() string { return g.p.Name() }

// State reports the breaker state.
func (g *Guard) State() gobreaker.State { return g.cb.State() }

func (g *Guard) Fetch(ctx context.Context, req Request) ([]content.Item, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	items, err := g.cb.Execute(func() (items []content.Item, err error) {
		defer func() {
			if r := recover(); r != nil {
				items, err = nil, fmt.Errorf("%w: %s: %v", ErrPanic, g.p.Name(), r)
			}
		}()
		items, err = g.p.Fetch(ctx, req)
		// Items that made it back before the deadline are still served.
		if err == nil && len(items) == 0 && ctx.Err() != nil {
			err = ctx.Err()
		}
		return items, err
	})

	result := "ok"
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		result = "rejected"
	case errors.Is(err, ErrPanic):
		result = "panic"
	case err != nil:
		result = "error"
	}
	metrics.RecordProviderFetch(g.p.Name(), result, len(items), time.Since(start))

	if err != nil {
		return []content.Item{}, fmt.Errorf("%s: %w", g.p.Name(), err)
	}
	if items == nil {
		items = []content.Item{}
	}
	return items, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
