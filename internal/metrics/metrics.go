// Package metrics holds the Prometheus collectors for feed fetches.
// A CLI run has no scrape endpoint, so the registry is written to a node-exporter textfile.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker/v2"
)

// Page fetch outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeStatus    = "status"
	OutcomeTransport = "transport"
	OutcomeParse     = "parse"
)

// Metrics groups the collectors and the registry they are registered with.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	pageFetches  *prometheus.CounterVec
	reviews      prometheus.Counter
	breakerState *prometheus.GaugeVec
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pageFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itunes_reviews_page_fetches_total",
				Help: "Total number of feed page fetches by outcome",
			},
			[]string{"country", "outcome"},
		),
		reviews: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "itunes_reviews_fetched_total",
				Help: "Total number of reviews parsed from feed pages",
			},
		),
		breakerState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "itunes_reviews_circuit_breaker_state",
				Help: "Current state of the circuit breaker (0=closed, 1=half-open, 2=open)",
			},
			[]string{"name"},
		),
	}
	m.registry.MustRegister(m.pageFetches, m.reviews, m.breakerState)
	return m
}

// ObservePage records one page fetch and the number of reviews it carried.
func (m *Metrics) ObservePage(country, outcome string, reviews int) {
	if m == nil {
		return
	}
	m.pageFetches.WithLabelValues(country, outcome).Inc()
	m.reviews.Add(float64(reviews))
}

// SetBreakerState records the current state of the named circuit breaker.
func (m *Metrics) SetBreakerState(name string, state gobreaker.State) {
	if m == nil {
		return
	}
	m.breakerState.WithLabelValues(name).Set(stateToFloat(state))
}

// WriteTextfile writes every collected metric to path in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
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
