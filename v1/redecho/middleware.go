package redecho

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Aleph-Alpha/redmetrics/v1/red"
)

// Middleware records one RED observation per request. The route label is
// the normalized raw request path, not echo's route template, so behaviour
// matches the net/http middleware.
func Middleware(inst *red.Instrumentation) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			resp := c.Response()
			recordErr := inst.Record(c.Request(), red.Response{
				StatusCode: statusCode(resp, err),
				Header:     resp.Header(),
				Size:       resp.Size,
			}, time.Since(start))

			// The handler error wins the echo error path; a transform error
			// next to it goes to the instrumentation's sink.
			if err != nil {
				if recordErr != nil {
					inst.ReportError(c.Request(), recordErr)
				}
				return err
			}
			return recordErr
		}
	}
}

// statusCode is the status the client sees. A handler error has not been
// written yet when the response is uncommitted; echo's error handler will
// write the HTTPError code or 500.
func statusCode(resp *echo.Response, err error) int {
	if err == nil || resp.Committed {
		return resp.Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

// RegisterScrapeRoute serves the metrics on GET at the instrumentation's
// scrape path. Denied scrapes get echo.ErrNotFound, which is what an
// unregistered route produces.
func RegisterScrapeRoute(e *echo.Echo, inst *red.Instrumentation) {
	metricsHandler := echo.WrapHandler(inst.Metrics().Handler())
	e.GET(inst.MetricsPath(), func(c echo.Context) error {
		if !inst.Authorize(c.Request()) {
			return echo.ErrNotFound
		}
		return metricsHandler(c)
	})
}
