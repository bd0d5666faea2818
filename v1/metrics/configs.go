package metrics

import "github.com/prometheus/client_golang/prometheus"

// Config defines the registry and instrument settings.
type Config struct {
	// Namespace prefixes every metric name as "<namespace>_<name>".
	// Empty means no prefix.
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE" env:"METRICS_NAMESPACE"`

	// ServiceName, when set, is attached to every metric as a constant
	// service label.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME" env:"METRICS_SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go runtime, process and build
	// info collectors.
	//
	// Default: true
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS" env:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// EnableGCMetrics adds the runtime/metrics GC series if available.
	//
	// Default: true
	EnableGCMetrics bool `yaml:"enable_gc_metrics" envconfig:"METRICS_ENABLE_GC_METRICS" env:"METRICS_ENABLE_GC_METRICS"`

	// LabelNames are extra label names appended after route, method and
	// status. Duplicates, including duplicates of the mandatory names, are
	// dropped.
	LabelNames []string `yaml:"label_names" envconfig:"METRICS_LABEL_NAMES" env:"METRICS_LABEL_NAMES"`

	// DurationBuckets are the request duration bucket bounds in seconds.
	// Empty selects DefaultDurationBuckets.
	DurationBuckets []float64 `yaml:"duration_buckets" envconfig:"METRICS_DURATION_BUCKETS" env:"METRICS_DURATION_BUCKETS"`

	// RequestLengthBuckets are request body size bounds in bytes. The request
	// length histogram exists only when at least one bound is set.
	RequestLengthBuckets []float64 `yaml:"request_length_buckets" envconfig:"METRICS_REQUEST_LENGTH_BUCKETS" env:"METRICS_REQUEST_LENGTH_BUCKETS"`

	// ResponseLengthBuckets are response body size bounds in bytes, with the
	// same activation rule as RequestLengthBuckets.
	ResponseLengthBuckets []float64 `yaml:"response_length_buckets" envconfig:"METRICS_RESPONSE_LENGTH_BUCKETS" env:"METRICS_RESPONSE_LENGTH_BUCKETS"`
}

// DefaultDurationBuckets spans 50ms to 2.5s in 8 exponential steps.
var DefaultDurationBuckets = prometheus.ExponentialBucketsRange(0.05, 2.5, 8)

// DefaultConfig returns a Config with default collectors and GC metrics on.
func DefaultConfig() Config {
	return Config{
		EnableDefaultCollectors: true,
		EnableGCMetrics:         true,
	}
}
