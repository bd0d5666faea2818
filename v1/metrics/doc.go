// Package metrics owns the Prometheus registry and the RED instruments shared
// by the HTTP middleware, the scrape endpoint and the push scheduler.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: what the middleware and scheduler depend on
//   - Metrics struct: the registry plus the RED instruments
//   - NewMetrics constructor: returns *Metrics
//   - FXModule: provides both *Metrics and MetricsCollector
//
// A single *Metrics is built once at configuration time and passed to every
// component that needs it; nothing is registered on the global Prometheus
// registry.
//
// # Label model
//
// Every instrument uses the same ordered label names: route, method, status,
// then the configured custom names with duplicates removed. The names are
// fixed when NewMetrics returns. Observing a label set whose names differ
// from that list panics with an error wrapping ErrLabelMismatch, so a
// cardinality mistake surfaces in development instead of silently dropping
// data.
//
// # Instruments
//
//	<namespace>_http_requests_total               counter
//	<namespace>_http_request_duration_seconds     histogram
//	<namespace>_http_request_length_bytes         histogram, only with buckets
//	<namespace>_http_response_length_bytes        histogram, only with buckets
//
// Duration observations carrying a trace id get a trace_id exemplar, visible
// when the registry is scraped in the OpenMetrics format.
//
// # Default Collectors
//
// EnableDefaultCollectors registers the Go runtime, process and build info
// collectors. EnableGCMetrics adds the runtime/metrics GC series when the
// running Go version exposes them; the check runs once per process and a
// missing capability is silently skipped.
//
// # Configuration
//
//	METRICS_NAMESPACE=orders                   # prefix for all metric names
//	METRICS_SERVICE_NAME=orders-api            # constant service label
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_ENABLE_GC_METRICS=true
//	METRICS_LABEL_NAMES=tenant,region
//	METRICS_DURATION_BUCKETS=0.05,0.1,0.25,0.5,1,2.5
//
// # Thread Safety
//
// All methods are safe for concurrent use; the underlying Prometheus vectors
// aggregate atomically.
package metrics
