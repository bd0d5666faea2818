package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule provides *LoggerClient and the Logger interface and flushes the
// logger on shutdown.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    fx.Provide(func() logger.Config { return logger.Config{Level: logger.Info} }),
//	)
//
// A logger.Config must be available in the container.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
		fx.Annotate(
			func(l *LoggerClient) Logger { return l },
			fx.As(new(Logger)),
		),
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle syncs the zap logger when the application stops so
// buffered entries are not lost.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *LoggerClient) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr returns EINVAL/ENOTTY on Sync on some platforms; not actionable.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
