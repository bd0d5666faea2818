package tracer

import (
	"context"
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	traceSpan "go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/Aleph-Alpha/redmetrics/v1/tracer"

// StartSpan starts a span as a child of any span in ctx.
//
//	ctx, span := tr.StartSpan(ctx, "load-user")
//	defer span.End()
func (t *Tracer) StartSpan(ctx context.Context, name string, opts ...traceSpan.SpanStartOption) (context.Context, traceSpan.Span) {
	return t.provider.Tracer(instrumentationName).Start(ctx, name, opts...)
}

// RecordErrorOnSpan records err on span and marks the span failed.
func (t *Tracer) RecordErrorOnSpan(span traceSpan.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Middleware starts a server span per request, continuing any trace
// propagated in the request headers. spanName maps a request to the span
// name; pass red.Instrumentation.Normalize-based naming to keep span names
// low-cardinality. nil uses the method alone.
//
// Install it outside the RED middleware so the request context already
// carries the span when the observation is recorded.
func (t *Tracer) Middleware(spanName func(*http.Request) string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := t.propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		name := r.Method
		if spanName != nil {
			name = r.Method + " " + spanName(r)
		}
		ctx, span := t.StartSpan(ctx, name,
			traceSpan.WithSpanKind(traceSpan.SpanKindServer),
			traceSpan.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
			),
		)
		defer span.End()

		m := httpsnoop.CaptureMetricsFn(w, func(ww http.ResponseWriter) {
			next.ServeHTTP(ww, r.WithContext(ctx))
		})

		span.SetAttributes(
			attribute.Int("http.response.status_code", m.Code),
			attribute.Int64("http.response.body.size", m.Written),
		)
		if m.Code >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, strconv.Itoa(m.Code))
		}
	})
}

// GetCarrier returns the W3C trace headers for ctx, for propagating the
// trace across service boundaries.
func (t *Tracer) GetCarrier(ctx context.Context) map[string]string {
	carrier := propagation.MapCarrier{}
	t.propagator.Inject(ctx, carrier)
	return carrier
}

// SetCarrierOnContext returns ctx continuing the trace found in carrier.
func (t *Tracer) SetCarrierOnContext(ctx context.Context, carrier map[string]string) context.Context {
	return t.propagator.Extract(ctx, propagation.MapCarrier(carrier))
}
