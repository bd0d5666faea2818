package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the isolated Prometheus registry and the RED instruments.
type Metrics struct {
	// Registry is the registry every instrument is registered on. It is
	// the single source of truth for scraping and pushing.
	Registry *prometheus.Registry

	// GCMetricsAvailable is the result of the one-time GC capability check.
	GCMetricsAvailable bool

	registerer prometheus.Registerer
	namespace  string
	labelNames []string

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestLength   *prometheus.HistogramVec
	responseLength  *prometheus.HistogramVec
}

// NewMetrics builds the registry, the canonical label list and the
// instruments. Errors are configuration errors (bad label names or buckets)
// and are returned before anything is registered.
//
// Example:
//
//	m, err := metrics.NewMetrics(metrics.Config{
//	    Namespace:               "orders",
//	    EnableDefaultCollectors: true,
//	    LabelNames:              []string{"tenant"},
//	})
func NewMetrics(cfg Config) (*Metrics, error) {
	labelNames, err := CanonicalLabelNames(cfg.LabelNames)
	if err != nil {
		return nil, err
	}

	durationBuckets := cfg.DurationBuckets
	if len(durationBuckets) == 0 {
		durationBuckets = DefaultDurationBuckets
	}
	for name, buckets := range map[string][]float64{
		"duration_buckets":        durationBuckets,
		"request_length_buckets":  cfg.RequestLengthBuckets,
		"response_length_buckets": cfg.ResponseLengthBuckets,
	} {
		if err := validateBuckets(name, buckets); err != nil {
			return nil, err
		}
	}

	registry := prometheus.NewRegistry()

	// All metrics carry service="<ServiceName>" when a service name is set.
	var registerer prometheus.Registerer = registry
	if cfg.ServiceName != "" {
		registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)
	}

	m := &Metrics{
		Registry:           registry,
		GCMetricsAvailable: gcMetricsAvailable(),
		registerer:         registerer,
		namespace:          cfg.Namespace,
		labelNames:         labelNames,
	}

	m.requestsTotal = createCounterVec(cfg.Namespace, "http_requests_total", "Total number of HTTP requests by route, method and status.", labelNames)
	m.requestDuration = createHistogramVec(cfg.Namespace, "http_request_duration_seconds", "Duration of HTTP requests in seconds.", labelNames, durationBuckets)
	registerer.MustRegister(m.requestsTotal, m.requestDuration)

	if len(cfg.RequestLengthBuckets) > 0 {
		m.requestLength = createHistogramVec(cfg.Namespace, "http_request_length_bytes", "Size of HTTP request bodies in bytes.", labelNames, cfg.RequestLengthBuckets)
		registerer.MustRegister(m.requestLength)
	}
	if len(cfg.ResponseLengthBuckets) > 0 {
		m.responseLength = createHistogramVec(cfg.Namespace, "http_response_length_bytes", "Size of HTTP response bodies in bytes.", labelNames, cfg.ResponseLengthBuckets)
		registerer.MustRegister(m.responseLength)
	}

	if c := goCollector(cfg.EnableDefaultCollectors, cfg.EnableGCMetrics && m.GCMetricsAvailable); c != nil {
		registerer.MustRegister(c)
	}
	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	return m, nil
}

// Handler serves the registry in the Prometheus text or OpenMetrics format,
// negotiated from the Accept header. Content-Type is set by promhttp.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}
