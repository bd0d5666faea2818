package red

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/Aleph-Alpha/redmetrics/v1/logger"
	"github.com/Aleph-Alpha/redmetrics/v1/metrics"
	"github.com/Aleph-Alpha/redmetrics/v1/pushgateway"
)

func TestFXModule(t *testing.T) {
	var (
		inst      *Instrumentation
		m         *metrics.Metrics
		collector metrics.MetricsCollector
	)

	app := fxtest.New(t,
		logger.FXModule,
		FXModule,
		fx.Provide(
			func() logger.Config { return logger.Config{Level: logger.Error, ServiceName: "red-test"} },
			func() Config {
				cfg := DefaultConfig()
				cfg.Metrics.EnableDefaultCollectors = false
				return cfg
			},
		),
		fx.Populate(&inst, &m, &collector),
	)
	app.RequireStart()

	assert.Same(t, inst.Metrics(), m)
	assert.Equal(t, []string{"route", "method", "status"}, collector.LabelNames())
	assert.Equal(t, pushgateway.StateDisabled, inst.Scheduler().State())

	serve(inst.Middleware(appMux()), http.MethodGet, "/users/5", nil)
	assert.Equal(t, 1.0, requestCount(t, inst, map[string]string{"route": "/users/#val"}))

	app.RequireStop()
	assert.Equal(t, pushgateway.StateStopped, inst.Scheduler().State())
}
