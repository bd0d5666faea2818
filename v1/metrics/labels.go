package metrics

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	LabelRoute  = "route"
	LabelMethod = "method"
	LabelStatus = "status"
)

// Labels maps label names to values for one observation.
type Labels = prometheus.Labels

var labelNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// CanonicalLabelNames returns route, method, status followed by custom in
// insertion order, dropping any name already present.
func CanonicalLabelNames(custom []string) ([]string, error) {
	names := []string{LabelRoute, LabelMethod, LabelStatus}
	for _, name := range custom {
		if !labelNamePattern.MatchString(name) || strings.HasPrefix(name, "__") {
			return nil, fmt.Errorf("%w: %q", ErrReservedLabel, name)
		}
		if slices.Contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// NewLabels returns a label set with every canonical name present and the
// mandatory values filled in. Custom labels start out empty.
func NewLabels(names []string, route, method, status string) Labels {
	labels := make(Labels, len(names))
	for _, name := range names {
		labels[name] = ""
	}
	labels[LabelRoute] = route
	labels[LabelMethod] = method
	labels[LabelStatus] = status
	return labels
}

// checkLabels panics unless labels has exactly the canonical names.
func checkLabels(names []string, labels Labels) {
	if len(labels) != len(names) {
		panic(fmt.Errorf("%w: got %d labels %v, want %v", ErrLabelMismatch, len(labels), sortedKeys(labels), names))
	}
	for _, name := range names {
		if _, ok := labels[name]; !ok {
			panic(fmt.Errorf("%w: missing %q in %v, want %v", ErrLabelMismatch, name, sortedKeys(labels), names))
		}
	}
}

func sortedKeys(labels Labels) []string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func validateBuckets(name string, buckets []float64) error {
	for i := 1; i < len(buckets); i++ {
		if buckets[i] <= buckets[i-1] {
			return fmt.Errorf("%w: %s %v", ErrInvalidBuckets, name, buckets)
		}
	}
	return nil
}
