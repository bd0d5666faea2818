package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Logger defines the logging methods used by the tracer.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer wraps an OpenTelemetry TracerProvider. Spans started through it,
// including the server spans of Middleware, are what the RED duration
// histogram links to through trace_id exemplars.
type Tracer struct {
	provider   *trace.TracerProvider
	propagator propagation.TextMapPropagator
	logger     Logger
}

// NewClient builds the provider, installs it and the W3C propagators as
// the OpenTelemetry globals, and returns the Tracer.
//
// Example:
//
//	tr, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "orders-api",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	    SampleRatio:  0.1,
//	}, log)
func NewClient(cfg Config, logger Logger) (*Tracer, error) {
	return newTracer(cfg, logger)
}

func newTracer(cfg Config, logger Logger, extra ...trace.TracerProviderOption) (*Tracer, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("tracer: create otlp exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	options = append(options,
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
		trace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.DeploymentEnvironment(cfg.AppEnv),
			attribute.String("environment", cfg.AppEnv),
		)),
	)
	options = append(options, extra...)

	tp := trace.NewTracerProvider(options...)
	propagator := propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagator)

	if logger != nil {
		logger.Info("Tracer initialized", nil, map[string]interface{}{
			"service":      cfg.ServiceName,
			"export":       cfg.EnableExport,
			"sample_ratio": ratio,
		})
	}

	return &Tracer{provider: tp, propagator: propagator, logger: logger}, nil
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}
