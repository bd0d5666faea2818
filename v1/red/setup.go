package red

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Aleph-Alpha/redmetrics/v1/metrics"
	"github.com/Aleph-Alpha/redmetrics/v1/pushgateway"
	"github.com/Aleph-Alpha/redmetrics/v1/route"
)

// Logger defines the logging methods used by the instrumentation.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Instrumentation ties the RED pieces together: the metrics registry, the
// route normalizer, the scrape gate and the optional push scheduler.
type Instrumentation struct {
	cfg    Config
	logger Logger

	metrics    *metrics.Metrics
	collector  metrics.MetricsCollector
	labelNames []string
	normalizer route.PathNormalizer
	cache      *route.CachedNormalizer

	scrapePath string
	excluded   map[string]struct{}
	gate       *ScrapeGate

	scheduler    *pushgateway.Scheduler
	scrapeServer *http.Server
}

// New validates cfg and builds the instrumentation. Every error it returns
// wraps ErrInvalidConfig. logger may be nil.
//
// Example:
//
//	inst, err := red.New(red.Config{
//	    MetricsPath: "/metrics",
//	    Masks:       []route.Mask{{Pattern: `^[a-z]{2}-[A-Z]{2}$`, Replacement: "#locale"}},
//	    Metrics:     metrics.DefaultConfig(),
//	}, log)
//	if err != nil {
//	    return err
//	}
//	inst.Start()
//	defer inst.Shutdown(context.Background())
//	http.ListenAndServe(":8080", inst.Middleware(mux))
func New(cfg Config, logger Logger) (*Instrumentation, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m, err := metrics.NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	base, err := route.NewNormalizer(cfg.Masks)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	inst := &Instrumentation{
		cfg:        cfg,
		logger:     logger,
		metrics:    m,
		collector:  m,
		labelNames: m.LabelNames(),
		normalizer: base,
		gate:       NewScrapeGate(cfg.Authenticator),
	}

	if cfg.RouteCacheSize > 0 {
		cache, err := route.NewCachedNormalizer(base, cfg.RouteCacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		inst.cache = cache
		inst.normalizer = cache
	}

	// The scrape path is compared against normalized request paths, so it
	// goes through the same normalizer once here.
	inst.scrapePath = base.Normalize(cfg.MetricsPath)
	inst.excluded = make(map[string]struct{}, len(cfg.ExcludePaths)+1)
	inst.excluded[inst.scrapePath] = struct{}{}
	for _, p := range cfg.ExcludePaths {
		inst.excluded[base.Normalize(p)] = struct{}{}
	}

	inst.scheduler = pushgateway.NewScheduler(cfg.Pushgateway, m.Gatherer(), logger)
	if cfg.PushCallback != nil {
		inst.scheduler.WithCallback(cfg.PushCallback)
	}

	if cfg.MetricsAddress != "" {
		inst.scrapeServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           inst.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return inst, nil
}

// Metrics returns the underlying registry owner, for registering additional
// application metrics that should be scraped and pushed alongside RED.
func (i *Instrumentation) Metrics() *metrics.Metrics {
	return i.metrics
}

// Scheduler returns the push scheduler. It is disabled when no Pushgateway
// is configured.
func (i *Instrumentation) Scheduler() *pushgateway.Scheduler {
	return i.scheduler
}

// MetricsPath returns the normalized scrape path.
func (i *Instrumentation) MetricsPath() string {
	return i.scrapePath
}

// Normalize maps a raw request path to its route label.
func (i *Instrumentation) Normalize(rawPath string) string {
	return i.normalizer.Normalize(rawPath)
}

// Start starts the push scheduler. The dedicated scrape server, if any, is
// started by ListenAndServeMetrics.
func (i *Instrumentation) Start() {
	i.scheduler.Start()
}

// ListenAndServeMetrics serves the scrape endpoint on MetricsAddress and
// blocks until the server stops. It returns nil if no address is configured
// or the server was shut down.
func (i *Instrumentation) ListenAndServeMetrics() error {
	if i.scrapeServer == nil {
		return nil
	}
	if err := i.scrapeServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("red: metrics server on %s: %w", i.cfg.MetricsAddress, err)
	}
	return nil
}

// Shutdown stops the push scheduler and the scrape server, then releases the
// route cache. In-flight pushes are waited for until ctx expires.
func (i *Instrumentation) Shutdown(ctx context.Context) error {
	var errs []error
	if err := i.scheduler.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	if i.scrapeServer != nil {
		if err := i.scrapeServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("red: shutdown metrics server: %w", err))
		}
	}
	if i.cache != nil {
		i.cache.Close()
	}
	return errors.Join(errs...)
}
