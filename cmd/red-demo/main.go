// Command red-demo is a small HTTP service instrumented with RED metrics.
//
// Configuration:
//
//	RED_CONFIG         optional YAML file for the red package (see red.LoadConfig)
//	DEMO_ADDR          listen address, default ":8080"
//	DEMO_SCRAPE_TOKEN  bearer token required on the scrape endpoint
//	ZAP_LOGGER_LEVEL   debug, info, warning or error
//	TRACER_*           see tracer.Config
//
// Try:
//
//	curl localhost:8080/users/42
//	curl -H 'Authorization: Bearer $DEMO_SCRAPE_TOKEN' localhost:8080/metrics
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/redmetrics/v1/logger"
	"github.com/Aleph-Alpha/redmetrics/v1/metrics"
	"github.com/Aleph-Alpha/redmetrics/v1/red"
	"github.com/Aleph-Alpha/redmetrics/v1/scrapeauth"
	"github.com/Aleph-Alpha/redmetrics/v1/tracer"
)

type serverConfig struct {
	Addr        string `env:"DEMO_ADDR" envDefault:":8080"`
	ScrapeToken string `env:"DEMO_SCRAPE_TOKEN"`
}

func main() {
	fx.New(
		fx.Provide(
			env.ParseAs[serverConfig],
			env.ParseAs[logger.Config],
			env.ParseAs[tracer.Config],
			loadREDConfig,
		),
		logger.FXModule,
		tracer.FXModule,
		red.FXModule,
		fx.Invoke(registerServer),
	).Run()
}

func loadREDConfig(sc serverConfig) (red.Config, error) {
	var (
		cfg red.Config
		err error
	)
	if path := os.Getenv("RED_CONFIG"); path != "" {
		cfg, err = red.LoadConfig(path)
	} else {
		cfg, err = red.LoadConfigFromEnv()
	}
	if err != nil {
		return red.Config{}, err
	}

	if sc.ScrapeToken != "" {
		cfg.Authenticator = scrapeauth.BearerToken(sc.ScrapeToken)
	}
	if slices.Contains(cfg.Metrics.LabelNames, "tenant") {
		cfg.LabelTransform = func(labels metrics.Labels, r *http.Request, _ red.Response) error {
			labels["tenant"] = r.Header.Get("X-Tenant")
			return nil
		}
	}
	return cfg, nil
}

func registerServer(lc fx.Lifecycle, sc serverConfig, inst *red.Instrumentation, tr *tracer.Tracer, log logger.Logger) {
	served := inst.Metrics().CreateCounter("demo_users_served_total", "Number of user lookups answered.", []string{"found"})

	handler := tr.Middleware(
		func(r *http.Request) string { return inst.Normalize(r.URL.Path) },
		inst.Middleware(newMux(served, log)),
	)

	srv := &http.Server{
		Addr:              sc.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server", nil, map[string]interface{}{
					"address":      sc.Addr,
					"metrics_path": inst.MetricsPath(),
				})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server failed", err, nil)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down HTTP server", nil, nil)
			return srv.Shutdown(ctx)
		},
	})
}
