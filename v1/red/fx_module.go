package red

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/redmetrics/v1/logger"
	"github.com/Aleph-Alpha/redmetrics/v1/metrics"
)

// FXModule provides *Instrumentation together with the *metrics.Metrics and
// metrics.MetricsCollector it owns, and ties the push scheduler and the
// optional scrape server to the application lifecycle.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    red.FXModule,
//	    fx.Provide(func() (red.Config, error) { return red.LoadConfig("red.yaml") }),
//	    fx.Invoke(func(inst *red.Instrumentation, mux *http.ServeMux) {
//	        // wrap mux with inst.Middleware
//	    }),
//	)
//
// A red.Config must be available in the container. A logger.Logger is
// optional. Do not combine with metrics.FXModule, which provides its own
// *metrics.Metrics.
var FXModule = fx.Module("red",
	fx.Provide(
		NewInstrumentationWithDI,
		func(i *Instrumentation) *metrics.Metrics { return i.Metrics() },
		fx.Annotate(
			func(i *Instrumentation) metrics.MetricsCollector { return i.Metrics() },
			fx.As(new(metrics.MetricsCollector)),
		),
	),
	fx.Invoke(RegisterREDLifecycle),
)

// InstrumentationParams groups the dependencies for NewInstrumentationWithDI.
type InstrumentationParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewInstrumentationWithDI builds the instrumentation from the container.
func NewInstrumentationWithDI(p InstrumentationParams) (*Instrumentation, error) {
	var log Logger
	if p.Logger != nil {
		log = p.Logger
	}
	return New(p.Config, log)
}

// LifecycleParams groups the dependencies for RegisterREDLifecycle.
type LifecycleParams struct {
	fx.In

	Lifecycle       fx.Lifecycle
	Instrumentation *Instrumentation
	Logger          logger.Logger `optional:"true"`
}

// RegisterREDLifecycle starts the push scheduler and the scrape server on
// start, and stops both on shutdown.
func RegisterREDLifecycle(p LifecycleParams) {
	inst := p.Instrumentation
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			inst.Start()
			if inst.scrapeServer == nil {
				return nil
			}
			go func() {
				if p.Logger != nil {
					p.Logger.Info("Starting metrics server", nil, map[string]interface{}{
						"address": inst.cfg.MetricsAddress,
						"path":    inst.scrapePath,
					})
				}
				if err := inst.ListenAndServeMetrics(); err != nil && p.Logger != nil {
					p.Logger.Error("Metrics server stopped", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if p.Logger != nil {
				p.Logger.Info("Shutting down RED instrumentation", nil, nil)
			}
			return inst.Shutdown(ctx)
		},
	})
}
