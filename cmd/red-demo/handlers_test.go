package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Aleph-Alpha/redmetrics/v1/logger"
)

func TestMux(t *testing.T) {
	served := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "served"}, []string{"found"})
	mux := newMux(served, logger.NewFromZap(zaptest.NewLogger(t), false))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body userResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 42, body.ID)
	assert.NotEmpty(t, body.RequestID)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(served.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(served.WithLabelValues("false")))

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/orders/14", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
