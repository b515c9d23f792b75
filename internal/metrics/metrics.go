// Package metrics registers the Prometheus collectors for feed composition.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feed batches
	BatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_batches_total",
			Help: "Composed feed batches by mode and outcome",
		},
		[]string{"mode", "outcome"}, // outcome: "ok", "short", "fallback", "empty"
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scroll_batch_items",
			Help:    "Items returned per composed batch",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 50},
		},
	)

	BatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scroll_batch_duration_seconds",
			Help:    "Time to compose one batch",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"mode"},
	)

	// Providers
	ProviderFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_provider_fetches_total",
			Help: "Provider calls by result",
		},
		[]string{"provider", "result"}, // result: "ok", "error", "rejected", "panic"
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scroll_provider_fetch_duration_seconds",
			Help:    "Provider call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ProviderItems = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_provider_items_total",
			Help: "Items returned by providers",
		},
		[]string{"provider"},
	)

	// Circuit breakers
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "scroll_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Ledger and search
	LedgerEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scroll_ledger_entries",
			Help: "Live entries in the view ledger",
		},
	)

	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_searches_total",
			Help: "Mixed searches by outcome",
		},
		[]string{"outcome"}, // "ok", "short_query", "empty"
	)

	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scroll_actions_total",
			Help: "Recorded user actions",
		},
		[]string{"action", "result"},
	)
)

// RecordProviderFetch records one guarded provider call.
func RecordProviderFetch(provider, result string, items int, duration time.Duration) {
	ProviderFetches.WithLabelValues(provider, result).Inc()
	ProviderLatency.WithLabelValues(provider).Observe(duration.Seconds())
	if items > 0 {
		ProviderItems.WithLabelValues(provider).Add(float64(items))
	}
}

// RecordBatch records one composed batch.
func RecordBatch(mode, outcome string, items int, duration time.Duration) {
	BatchesTotal.WithLabelValues(mode, outcome).Inc()
	BatchSize.Observe(float64(items))
	BatchDuration.WithLabelValues(mode).Observe(duration.Seconds())
}
