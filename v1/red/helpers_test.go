package red

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func newTestInstrumentation(t *testing.T, mutate func(*Config)) *Instrumentation {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Metrics.EnableDefaultCollectors = false
	cfg.Metrics.EnableGCMetrics = false
	if mutate != nil {
		mutate(&cfg)
	}
	inst, err := New(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.Shutdown(context.Background()) })
	return inst
}

// appMux is a small application: /users/{id} answers 200, everything else
// is the mux's own 404.
func appMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "user "+r.PathValue("id"))
	})
	return mux
}

func serve(h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func family(t *testing.T, inst *Instrumentation, name string) *dto.MetricFamily {
	t.Helper()
	families, err := inst.Metrics().Registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

// requestCount sums http_requests_total over the series matching want.
func requestCount(t *testing.T, inst *Instrumentation, want map[string]string) float64 {
	t.Helper()
	mf := family(t, inst, "http_requests_total")
	if mf == nil {
		return 0
	}
	var total float64
	for _, m := range mf.GetMetric() {
		if labelsMatch(m, want) {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func labelsMatch(m *dto.Metric, want map[string]string) bool {
	got := make(map[string]string, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		got[lp.GetName()] = lp.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}
