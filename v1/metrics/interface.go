package metrics

import "github.com/prometheus/client_golang/prometheus"

// MetricsCollector is the contract consumed by the HTTP middleware, the
// scrape endpoint and the push scheduler.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// LabelNames returns the canonical label names in order.
	LabelNames() []string

	// Observe records one finished request. It panics with an error wrapping
	// ErrLabelMismatch if obs.Labels does not carry exactly LabelNames().
	Observe(obs Observation)

	// Gatherer exposes the aggregated state for scraping and pushing.
	Gatherer() prometheus.Gatherer

	// CreateCounter creates and registers an additional CounterVec.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates and registers an additional HistogramVec.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec
}
