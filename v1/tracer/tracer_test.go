package tracer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	traceSpan "go.opentelemetry.io/otel/trace"
)

func newTestTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tr, err := newTracer(Config{ServiceName: "red-test"}, nil, sdktrace.WithSpanProcessor(recorder))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tr.Shutdown(context.Background()) })
	return tr, recorder
}

func attr(span sdktrace.ReadOnlySpan, key string) attribute.Value {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value
		}
	}
	return attribute.Value{}
}

func TestMiddleware_ServerSpan(t *testing.T) {
	tr, recorder := newTestTracer(t)

	var inner traceSpan.SpanContext
	h := tr.Middleware(func(r *http.Request) string { return "/users/#val" },
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inner = traceSpan.SpanContextFromContext(r.Context())
			w.WriteHeader(http.StatusCreated)
		}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/users/7", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "POST /users/#val", span.Name())
	assert.Equal(t, traceSpan.SpanKindServer, span.SpanKind())
	assert.Equal(t, int64(http.StatusCreated), attr(span, "http.response.status_code").AsInt64())
	assert.Equal(t, "/users/7", attr(span, "url.path").AsString())
	assert.Equal(t, span.SpanContext().TraceID(), inner.TraceID())
	assert.True(t, inner.IsSampled())
}

func TestMiddleware_ContinuesPropagatedTrace(t *testing.T) {
	tr, recorder := newTestTracer(t)
	h := tr.Middleware(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	h.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spans[0].SpanContext().TraceID().String())
	assert.Equal(t, "00f067aa0ba902b7", spans[0].Parent().SpanID().String())
	assert.Equal(t, "GET", spans[0].Name())
}

func TestMiddleware_ServerErrorStatus(t *testing.T) {
	tr, recorder := newTestTracer(t)
	h := tr.Middleware(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestCarrierRoundTrip(t *testing.T) {
	tr, _ := newTestTracer(t)
	ctx, span := tr.StartSpan(context.Background(), "outgoing")
	defer span.End()

	carrier := tr.GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	restored := traceSpan.SpanContextFromContext(tr.SetCarrierOnContext(context.Background(), carrier))
	assert.Equal(t, span.SpanContext().TraceID(), restored.TraceID())
}

func TestRecordErrorOnSpan(t *testing.T) {
	tr, recorder := newTestTracer(t)
	_, span := tr.StartSpan(context.Background(), "push")
	tr.RecordErrorOnSpan(span, assert.AnError)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Len(t, spans[0].Events(), 1)
}
