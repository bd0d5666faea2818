// Package red records RED (rate, errors, duration) metrics for HTTP
// services.
//
// An Instrumentation wraps an http.Handler and records, for every finished
// request, a request counter and a duration histogram labelled with the
// normalized route, the method and the status code. Request and response
// size histograms are added when their buckets are configured. Route labels
// come from the route package, so "/users/42" and "/users/43" share the
// series route="/users/#val".
//
// The same registry is exposed on a scrape endpoint guarded by an optional
// Authenticator and, when a Pushgateway is configured, pushed periodically
// by a pushgateway.Scheduler.
//
// Basic usage:
//
//	inst, err := red.New(red.DefaultConfig(), log)
//	if err != nil {
//	    return err
//	}
//	inst.Start()
//	defer inst.Shutdown(context.Background())
//
//	srv := &http.Server{Addr: ":8080", Handler: inst.Middleware(mux)}
//
// Custom labels:
//
//	cfg := red.DefaultConfig()
//	cfg.Metrics.LabelNames = []string{"tenant"}
//	cfg.LabelTransform = func(l metrics.Labels, r *http.Request, _ red.Response) error {
//	    l["tenant"] = r.Header.Get("X-Tenant")
//	    return nil
//	}
//
// A transform may only change values. Adding or removing a label panics on
// the observation, since Prometheus requires a fixed label set per metric.
//
// Scrape protection:
//
//	cfg.Authenticator = scrapeauth.BearerToken(os.Getenv("SCRAPE_TOKEN"))
//
// Unauthorized scrapes fall through to the wrapped handler as if the
// endpoint did not exist.
//
// Configuration can be loaded with LoadConfig (YAML file plus environment)
// or LoadConfigFromEnv. With Fx, use FXModule.
package red
