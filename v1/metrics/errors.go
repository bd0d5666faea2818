package metrics

import "errors"

var (
	// ErrLabelMismatch is the cause of the panic raised when an observation's
	// label names differ from the canonical list.
	ErrLabelMismatch = errors.New("metrics: label names do not match the canonical label set")

	// ErrReservedLabel is returned for custom label names that are not valid
	// Prometheus label names or use the reserved "__" prefix.
	ErrReservedLabel = errors.New("metrics: invalid or reserved label name")

	// ErrInvalidBuckets is returned for bucket bounds that are not strictly
	// increasing.
	ErrInvalidBuckets = errors.New("metrics: bucket bounds must be strictly increasing")
)

// IsLabelMismatchError reports whether err (or a recovered panic value)
// signals a label-name mismatch.
func IsLabelMismatchError(err error) bool {
	return errors.Is(err, ErrLabelMismatch)
}
