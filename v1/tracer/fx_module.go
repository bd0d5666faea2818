package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/redmetrics/v1/logger"
)

// FXModule provides *Tracer and flushes it on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    fx.Provide(func() tracer.Config { return tracer.Config{ServiceName: "orders-api"} }),
//	)
//
// A tracer.Config must be available in the container. A logger.Logger is
// optional.
var FXModule = fx.Module("tracer",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies for NewClientWithDI.
type TracerParams struct {
	fx.In

	Config Config
	Logger logger.Logger `optional:"true"`
}

// NewClientWithDI builds the Tracer from the container.
func NewClientWithDI(p TracerParams) (*Tracer, error) {
	var log Logger
	if p.Logger != nil {
		log = p.Logger
	}
	return NewClient(p.Config, log)
}

// RegisterTracerLifecycle flushes pending spans when the application stops.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.logger != nil {
				tracer.logger.Info("Shutting down tracer", nil, nil)
			}
			return tracer.Shutdown(ctx)
		},
	})
}
