package metrics

import (
	rtmetrics "runtime/metrics"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// gcMetricsAvailable reports whether the running Go runtime publishes GC
// series through runtime/metrics. Evaluated once per process.
var gcMetricsAvailable = sync.OnceValue(func() bool {
	for _, d := range rtmetrics.All() {
		if strings.HasPrefix(d.Name, "/gc/") {
			return true
		}
	}
	return false
})

// goCollector picks the Go collector variant for the requested combination.
// It returns nil when neither default collectors nor GC metrics apply.
func goCollector(defaults, gc bool) prometheus.Collector {
	switch {
	case defaults && gc:
		return collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsGC),
		)
	case defaults:
		return collectors.NewGoCollector()
	case gc:
		return collectors.NewGoCollector(
			collectors.WithGoCollectorMemStatsMetricsDisabled(),
			collectors.WithGoCollectorRuntimeMetrics(collectors.MetricsGC),
		)
	default:
		return nil
	}
}
