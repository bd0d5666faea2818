package pushgateway

import (
	"time"

	"golang.org/x/time/rate"
)

// Kind classifies a push attempt.
type Kind int

const (
	// KindSuccess means the gateway accepted the snapshot.
	KindSuccess Kind = iota
	// KindError means the push failed before a response arrived, including
	// timeouts.
	KindError
	// KindStatus means the gateway answered with a non-2xx status.
	KindStatus
	// KindSkipped means the tick was dropped because pushes were in flight.
	KindSkipped
	// KindPanic means the push panicked and was recovered.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	case KindStatus:
		return "status"
	case KindSkipped:
		return "skipped"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Result describes one push attempt.
type Result struct {
	// Attempt numbers ticks from 1, skipped ones included.
	Attempt uint64
	Start   time.Time
	// Duration is zero for skipped attempts.
	Duration time.Duration
	// StatusCode is the gateway's HTTP status, or 0 without a response.
	StatusCode int
	Kind       Kind
	// Timeout is set when the push hit RequestTimeout.
	Timeout bool
	Err     error
}

// OK reports whether the gateway accepted the push.
func (r Result) OK() bool { return r.Kind == KindSuccess }

// Callback receives every Result. Calls are serialized by the Scheduler.
type Callback func(Result)

// NopCallback discards results.
func NopCallback(Result) {}

// DefaultCallback logs successes at debug level and failures at warn level.
// Failure logs are rate limited so an unreachable gateway with a short
// interval does not flood the log.
func DefaultCallback(logger Logger) Callback {
	if logger == nil {
		return NopCallback
	}
	limiter := rate.NewLimiter(rate.Every(10*time.Second), 3)

	return func(r Result) {
		fields := map[string]interface{}{
			"attempt":     r.Attempt,
			"kind":        r.Kind.String(),
			"status_code": r.StatusCode,
			"duration_ms": r.Duration.Milliseconds(),
			"timeout":     r.Timeout,
		}
		if r.OK() {
			logger.Debug("Pushed metrics to pushgateway", nil, fields)
			return
		}
		if limiter.Allow() {
			logger.Warn("Failed to push metrics to pushgateway", r.Err, fields)
		}
	}
}
