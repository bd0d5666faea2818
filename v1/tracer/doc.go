// Package tracer sets up OpenTelemetry tracing for services instrumented
// with the red package.
//
// Tracer.Middleware starts one server span per request. When it wraps the
// RED middleware, every sampled request's duration observation carries a
// trace_id exemplar pointing at that span:
//
//	tr, err := tracer.NewClient(tracer.Config{ServiceName: "orders-api"}, log)
//	if err != nil {
//	    return err
//	}
//	defer tr.Shutdown(context.Background())
//
//	handler := tr.Middleware(func(r *http.Request) string {
//	    return inst.Normalize(r.URL.Path)
//	}, inst.Middleware(mux))
//
// Spans are exported over OTLP/HTTP when EnableExport is set; the endpoint
// comes from the standard OTEL_EXPORTER_OTLP_ENDPOINT variable.
package tracer
