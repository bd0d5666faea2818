package pushgateway

import "errors"

var (
	// ErrPushInFlight is reported for a tick skipped because MaxSockets
	// pushes were still running.
	ErrPushInFlight = errors.New("pushgateway: previous pushes still in flight")

	// ErrUnexpectedStatus wraps non-2xx gateway responses.
	ErrUnexpectedStatus = errors.New("pushgateway: unexpected response status")

	// ErrPanic wraps a panic recovered while pushing.
	ErrPanic = errors.New("pushgateway: panic during push")

	// ErrInvalidGrouping is the setup error for grouping label names the
	// gateway would reject.
	ErrInvalidGrouping = errors.New("pushgateway: invalid grouping label")
)

// IsInFlightError reports whether err marks a skipped tick.
func IsInFlightError(err error) bool {
	return errors.Is(err, ErrPushInFlight)
}

// IsStatusError reports whether err is a non-2xx gateway response.
func IsStatusError(err error) bool {
	return errors.Is(err, ErrUnexpectedStatus)
}
