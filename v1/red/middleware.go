package red

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/redmetrics/v1/metrics"
)

// Middleware records one observation per finished request on next.
//
// The route label is the normalized request path. Requests for the scrape
// path and for ExcludePaths are passed through unrecorded. Unless
// MetricsAddress moves the scrape endpoint to its own server, authorized
// scrapes are answered here and never reach next.
//
// A panicking handler is recorded with status 500 (unless it already wrote
// a status) and the panic is re-raised.
func (i *Instrumentation) Middleware(next http.Handler) http.Handler {
	instrumented := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		routeLabel := i.normalizer.Normalize(r.URL.Path)
		if i.skip(routeLabel) {
			next.ServeHTTP(w, r)
			return
		}

		rec := newResponseRecorder()
		completed := false
		defer func() {
			if completed {
				return
			}
			p := recover()
			if p == nil {
				return
			}
			if !rec.wroteHeader {
				rec.status = http.StatusInternalServerError
			}
			i.finish(routeLabel, r, w.Header(), rec, start)
			panic(p)
		}()

		next.ServeHTTP(rec.wrap(w), r)
		completed = true
		rec.commit()
		i.finish(routeLabel, r, w.Header(), rec, start)
	})

	if i.scrapeServer != nil {
		return instrumented
	}
	return i.ScrapeHandler(instrumented)
}

// Record observes a finished request for adapters that capture the response
// themselves. It returns the LabelTransform error, in which case nothing was
// recorded.
func (i *Instrumentation) Record(r *http.Request, resp Response, elapsed time.Duration) error {
	routeLabel := i.normalizer.Normalize(r.URL.Path)
	if i.skip(routeLabel) {
		return nil
	}
	return i.record(routeLabel, r, resp, elapsed)
}

func (i *Instrumentation) finish(routeLabel string, r *http.Request, header http.Header, rec *responseRecorder, start time.Time) {
	resp := Response{
		StatusCode: rec.status,
		Header:     header,
		Size:       rec.written,
	}
	if err := i.record(routeLabel, r, resp, time.Since(start)); err != nil {
		i.handleError(r, err)
	}
}

func (i *Instrumentation) record(routeLabel string, r *http.Request, resp Response, elapsed time.Duration) error {
	labels := metrics.NewLabels(
		i.labelNames,
		routeLabel,
		r.Method,
		statusLabel(resp.StatusCode, i.cfg.NormalizeStatus),
	)

	if i.cfg.LabelTransform != nil {
		if err := i.cfg.LabelTransform(labels, r, resp); err != nil {
			return err
		}
	}

	obs := metrics.Observation{
		Labels:         labels,
		Duration:       elapsed,
		RequestLength:  requestLength(r),
		ResponseLength: responseLength(resp),
	}
	if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() && sc.IsSampled() {
		obs.TraceID = sc.TraceID().String()
	}

	i.collector.Observe(obs)
	return nil
}

func (i *Instrumentation) skip(routeLabel string) bool {
	_, ok := i.excluded[routeLabel]
	return ok
}

// ReportError hands a label-transform error returned by Record to
// ErrorHandler, or logs it when none is configured. Adapters use it when the
// error cannot travel through their own error path.
func (i *Instrumentation) ReportError(r *http.Request, err error) {
	i.handleError(r, err)
}

func (i *Instrumentation) handleError(r *http.Request, err error) {
	if i.cfg.ErrorHandler != nil {
		i.cfg.ErrorHandler(r, err)
		return
	}
	if i.logger == nil {
		return
	}
	i.logger.Error("Label transform failed, request not recorded", err, map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
	})
}
