package route

import "errors"

var (
	// ErrInvalidMask is returned when a mask pattern does not compile, is
	// empty, or its replacement contains a path separator.
	ErrInvalidMask = errors.New("route: invalid mask")

	// ErrMaskNotIdempotent is returned when a literal replacement or the
	// placeholder would be rewritten again by the mask chain.
	ErrMaskNotIdempotent = errors.New("route: mask replacement is not stable under normalization")
)

// IsInvalidMaskError reports whether err was caused by a malformed mask.
func IsInvalidMaskError(err error) bool {
	return errors.Is(err, ErrInvalidMask) || errors.Is(err, ErrMaskNotIdempotent)
}
