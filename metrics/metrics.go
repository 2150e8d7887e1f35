// Package metrics defines the Prometheus instrumentation for keybot: inbound
// event counts, suggestion lookup latency and outcomes, and per-strategy
// delivery attempts. A Set satisfies the observer interfaces of the router
// and the delivery adapter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set bundles all collectors. Construct with New against a registry; all
// methods are safe for concurrent use.
type Set struct {
	eventsTotal       *prometheus.CounterVec
	suggestLatency    prometheus.Histogram
	suggestCandidates prometheus.Counter
	suggestFailures   prometheus.Counter
	deliveryAttempts  *prometheus.CounterVec
}

// New registers the keybot collectors on reg and returns the Set.
func New(reg prometheus.Registerer) *Set {
	f := promauto.With(reg)
	return &Set{
		eventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "keybot_events_total",
			Help: "Inbound chat events handled, by kind.",
		}, []string{"kind"}),
		suggestLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "keybot_suggest_duration_seconds",
			Help:    "Latency of suggestion service lookups.",
			Buckets: prometheus.DefBuckets,
		}),
		suggestCandidates: f.NewCounter(prometheus.CounterOpts{
			Name: "keybot_suggest_candidates_total",
			Help: "Completion candidates returned by the suggestion service.",
		}),
		suggestFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "keybot_suggest_failures_total",
			Help: "Failed suggestion service lookups.",
		}),
		deliveryAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "keybot_delivery_attempts_total",
			Help: "Delivery attempts, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
	}
}

// NewNop returns a Set backed by a throwaway registry, for callers that do
// not scrape metrics.
func NewNop() *Set { return New(prometheus.NewRegistry()) }

// RecordEvent counts one handled inbound event of the given kind.
func (s *Set) RecordEvent(kind string) { s.eventsTotal.WithLabelValues(kind).Inc() }

// RecordSuggest observes one suggestion lookup.
func (s *Set) RecordSuggest(dur time.Duration, candidates int, err error) {
	s.suggestLatency.Observe(dur.Seconds())
	if err != nil {
		s.suggestFailures.Inc()
		return
	}
	s.suggestCandidates.Add(float64(candidates))
}

// RecordDeliveryAttempt counts one delivery attempt. Implements the delivery
// adapter's Recorder.
func (s *Set) RecordDeliveryAttempt(strategy string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.deliveryAttempts.WithLabelValues(strategy, outcome).Inc()
}
