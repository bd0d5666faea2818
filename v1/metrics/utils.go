package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observation is one finished request as seen by the instruments.
type Observation struct {
	// Labels must carry exactly the canonical label names.
	Labels Labels

	// Duration is the wall-clock time from request start to response end.
	Duration time.Duration

	// RequestLength and ResponseLength are body sizes in bytes. Negative
	// values mean unknown and are not observed.
	RequestLength  int64
	ResponseLength int64

	// TraceID, when set, is attached to the duration observation as a
	// trace_id exemplar.
	TraceID string
}

// LabelNames returns a copy of the canonical label names.
func (m *Metrics) LabelNames() []string {
	return append([]string(nil), m.labelNames...)
}

// Observe records obs into every active instrument.
func (m *Metrics) Observe(obs Observation) {
	checkLabels(m.labelNames, obs.Labels)

	m.requestsTotal.With(obs.Labels).Inc()

	seconds := obs.Duration.Seconds()
	h := m.requestDuration.With(obs.Labels)
	if eo, ok := h.(prometheus.ExemplarObserver); ok && obs.TraceID != "" {
		eo.ObserveWithExemplar(seconds, prometheus.Labels{"trace_id": obs.TraceID})
	} else {
		h.Observe(seconds)
	}

	if m.requestLength != nil && obs.RequestLength >= 0 {
		m.requestLength.With(obs.Labels).Observe(float64(obs.RequestLength))
	}
	if m.responseLength != nil && obs.ResponseLength >= 0 {
		m.responseLength.With(obs.Labels).Observe(float64(obs.ResponseLength))
	}
}

// RequestLengthActive reports whether request sizes are observed.
func (m *Metrics) RequestLengthActive() bool { return m.requestLength != nil }

// ResponseLengthActive reports whether response sizes are observed.
func (m *Metrics) ResponseLengthActive() bool { return m.responseLength != nil }

// Gatherer returns the registry as a prometheus.Gatherer.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.Registry
}

// CreateCounter creates a new CounterVec under the configured namespace and
// registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.registerer.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec under the configured namespace
// and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.registerer.MustRegister(hist)
	return hist
}

func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}
