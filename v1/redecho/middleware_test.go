package redecho_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/redmetrics/v1/metrics"
	"github.com/Aleph-Alpha/redmetrics/v1/red"
	"github.com/Aleph-Alpha/redmetrics/v1/redecho"
)

func newInstrumentation(t *testing.T, mutate func(*red.Config)) *red.Instrumentation {
	t.Helper()
	cfg := red.DefaultConfig()
	cfg.Metrics.EnableDefaultCollectors = false
	if mutate != nil {
		mutate(&cfg)
	}
	inst, err := red.New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })
	return inst
}

func newEcho(inst *red.Instrumentation) *echo.Echo {
	e := echo.New()
	e.Use(redecho.Middleware(inst), middleware.Recover())
	redecho.RegisterScrapeRoute(e, inst)

	e.GET("/users/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "user "+c.Param("id"))
	})
	e.GET("/teapot", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})
	e.GET("/fail", func(c echo.Context) error {
		return errors.New("database unavailable")
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	return e
}

func do(e *echo.Echo, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func count(t *testing.T, inst *red.Instrumentation, route, status string) float64 {
	t.Helper()
	families, err := inst.Metrics().Registry.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != "http_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			if label(m, "route") == route && label(m, "status") == status {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestMiddleware_StatusCodes(t *testing.T) {
	inst := newInstrumentation(t, nil)
	e := newEcho(inst)

	assert.Equal(t, http.StatusOK, do(e, "/users/17", nil).Code)
	assert.Equal(t, http.StatusTeapot, do(e, "/teapot", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, do(e, "/fail", nil).Code)
	assert.Equal(t, http.StatusInternalServerError, do(e, "/panic", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(e, "/nope", nil).Code)

	assert.Equal(t, 1.0, count(t, inst, "/users/#val", "200"))
	assert.Equal(t, 1.0, count(t, inst, "/teapot", "418"))
	assert.Equal(t, 1.0, count(t, inst, "/fail", "500"))
	assert.Equal(t, 1.0, count(t, inst, "/panic", "500"))
	assert.Equal(t, 1.0, count(t, inst, "/nope", "404"))
}

func TestMiddleware_TransformErrorReachesErrorHandler(t *testing.T) {
	errNoTenant := errors.New("no tenant header")
	inst := newInstrumentation(t, func(c *red.Config) {
		c.LabelTransform = func(metrics.Labels, *http.Request, red.Response) error { return errNoTenant }
	})
	e := newEcho(inst)

	var handled error
	e.HTTPErrorHandler = func(err error, c echo.Context) { handled = err }

	rec := do(e, "/users/1", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user 1", rec.Body.String())
	assert.ErrorIs(t, handled, errNoTenant)
	assert.Zero(t, count(t, inst, "/users/#val", "200"))
}

func TestMiddleware_TransformErrorBesideHandlerError(t *testing.T) {
	errNoTenant := errors.New("no tenant header")
	var reported []error
	inst := newInstrumentation(t, func(c *red.Config) {
		c.LabelTransform = func(metrics.Labels, *http.Request, red.Response) error { return errNoTenant }
		c.ErrorHandler = func(_ *http.Request, err error) { reported = append(reported, err) }
	})
	e := newEcho(inst)

	var handled error
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		handled = err
		_ = c.NoContent(http.StatusInternalServerError)
	}

	rec := do(e, "/fail", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.EqualError(t, handled, "database unavailable")
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], errNoTenant)
}

func TestRegisterScrapeRoute(t *testing.T) {
	inst := newInstrumentation(t, func(c *red.Config) {
		c.Authenticator = func(r *http.Request) (bool, error) {
			return r.Header.Get("Authorization") == "Bearer s3cret", nil
		}
	})
	e := newEcho(inst)
	do(e, "/users/1", nil)

	denied := do(e, "/metrics", nil)
	unknown := do(e, "/does-not-exist", nil)
	assert.Equal(t, unknown.Code, denied.Code)
	assert.Equal(t, unknown.Body.String(), denied.Body.String())

	allowed := do(e, "/metrics", http.Header{"Authorization": {"Bearer s3cret"}})
	require.Equal(t, http.StatusOK, allowed.Code)
	assert.Contains(t, allowed.Body.String(), `http_requests_total{method="GET",route="/users/#val",status="200"} 1`)

	assert.Zero(t, count(t, inst, "/metrics", "404"))
	assert.Zero(t, count(t, inst, "/metrics", "200"))
}
