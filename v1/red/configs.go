package red

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Aleph-Alpha/redmetrics/v1/metrics"
	"github.com/Aleph-Alpha/redmetrics/v1/pushgateway"
	"github.com/Aleph-Alpha/redmetrics/v1/route"
)

// DefaultMetricsPath is where the scrape endpoint is mounted by default.
const DefaultMetricsPath = "/metrics"

// Authenticator decides whether a scrape request may see the metrics.
// A returned error counts as "not authorized".
type Authenticator func(r *http.Request) (bool, error)

// LabelTransform may mutate labels in place before they are recorded, for
// example to fill a custom tenant label from a header. It runs synchronously
// after the response has been written and must not block on I/O. Adding or
// removing label names is a programming error that panics at observation.
type LabelTransform func(labels metrics.Labels, r *http.Request, resp Response) error

// ErrorHandler receives label-transform errors that cannot be returned to
// the caller: those of net/http handlers, and those of adapter requests whose
// handler already failed.
type ErrorHandler func(r *http.Request, err error)

// Response is what the middleware observed about the finished response.
type Response struct {
	StatusCode int
	Header     http.Header
	// Size is the number of body bytes written.
	Size int64
}

// Config defines the RED instrumentation. Function-valued fields cannot be
// loaded from files or the environment and are set in code.
type Config struct {
	// MetricsPath is the scrape endpoint path.
	//
	// Default: "/metrics"
	MetricsPath string `yaml:"metrics_path" envconfig:"RED_METRICS_PATH" env:"RED_METRICS_PATH"`

	// MetricsAddress, when set, serves the scrape endpoint on its own
	// http.Server (e.g. ":9090") instead of inside the instrumented handler.
	MetricsAddress string `yaml:"metrics_address" envconfig:"RED_METRICS_ADDRESS" env:"RED_METRICS_ADDRESS"`

	// NormalizeStatus records status classes ("2xx") instead of exact codes.
	NormalizeStatus bool `yaml:"normalize_status" envconfig:"RED_NORMALIZE_STATUS" env:"RED_NORMALIZE_STATUS"`

	// Masks are extra path masks applied in order after the built-in ones.
	Masks []route.Mask `yaml:"masks"`

	// ExcludePaths are routes that are never recorded, compared after
	// normalization. The scrape path is always excluded.
	ExcludePaths []string `yaml:"exclude_paths" envconfig:"RED_EXCLUDE_PATHS" env:"RED_EXCLUDE_PATHS"`

	// RouteCacheSize memoizes up to this many raw paths. 0 disables the cache.
	RouteCacheSize int64 `yaml:"route_cache_size" envconfig:"RED_ROUTE_CACHE_SIZE" env:"RED_ROUTE_CACHE_SIZE"`

	Metrics     metrics.Config     `yaml:"metrics"`
	Pushgateway pushgateway.Config `yaml:"pushgateway"`

	Authenticator  Authenticator        `yaml:"-"`
	LabelTransform LabelTransform       `yaml:"-"`
	ErrorHandler   ErrorHandler         `yaml:"-"`
	PushCallback   pushgateway.Callback `yaml:"-"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		MetricsPath:    DefaultMetricsPath,
		RouteCacheSize: route.DefaultCacheEntries,
		Metrics:        metrics.DefaultConfig(),
	}
}

// WithDefaults fills unset values.
func (c Config) WithDefaults() Config {
	if c.MetricsPath == "" {
		c.MetricsPath = DefaultMetricsPath
	}
	return c
}

// Validate reports configuration errors that would otherwise surface per
// request. Mask and label errors are reported by New.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("%w: metrics path %q must start with /", ErrInvalidConfig, c.MetricsPath)
	}
	for _, p := range c.ExcludePaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("%w: exclude path %q must start with /", ErrInvalidConfig, p)
		}
	}
	if c.RouteCacheSize < 0 {
		return fmt.Errorf("%w: route cache size %d", ErrInvalidConfig, c.RouteCacheSize)
	}
	return nil
}
