package red

import "net/http"

// ScrapeGate decides which requests may read the metrics. Denied requests
// are handed to the next handler exactly as if no metrics endpoint existed,
// so an unauthorized caller cannot tell the endpoint apart from an unknown
// route.
type ScrapeGate struct {
	authenticate Authenticator
}

// NewScrapeGate returns a gate using authenticate. nil allows every request.
func NewScrapeGate(authenticate Authenticator) *ScrapeGate {
	return &ScrapeGate{authenticate: authenticate}
}

// Authorize reports whether r may scrape. Authenticator errors and panics
// count as a denial.
func (g *ScrapeGate) Authorize(r *http.Request) (ok bool) {
	if g == nil || g.authenticate == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	allowed, err := g.authenticate(r)
	return err == nil && allowed
}

// Authorize applies the configured scrape gate to r.
func (i *Instrumentation) Authorize(r *http.Request) bool {
	return i.gate.Authorize(r)
}

// ScrapeHandler answers GET and HEAD requests for the scrape path with the
// registry contents when the gate allows them, and delegates everything else
// to next.
func (i *Instrumentation) ScrapeHandler(next http.Handler) http.Handler {
	metricsHandler := i.metrics.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.isScrape(r) || !i.gate.Authorize(r) {
			next.ServeHTTP(w, r)
			return
		}
		metricsHandler.ServeHTTP(w, r)
	})
}

// Handler serves only the scrape endpoint; every other request, including
// denied scrapes, gets 404.
func (i *Instrumentation) Handler() http.Handler {
	return i.ScrapeHandler(http.NotFoundHandler())
}

func (i *Instrumentation) isScrape(r *http.Request) bool {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}
	return i.normalizer.Normalize(r.URL.Path) == i.scrapePath
}
