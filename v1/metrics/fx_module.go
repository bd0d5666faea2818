package metrics

import "go.uber.org/fx"

// FXModule provides *Metrics and the MetricsCollector interface.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config { return metrics.DefaultConfig() }),
//	)
//
// A metrics.Config must be available in the container. The scrape endpoint
// and push scheduler live in the red and pushgateway packages.
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		fx.Annotate(
			func(m *Metrics) MetricsCollector { return m },
			fx.As(new(MetricsCollector)),
		),
	),
)
