package red

import "errors"

// ErrInvalidConfig wraps every configuration-time failure returned by New.
var ErrInvalidConfig = errors.New("red: invalid configuration")

// IsInvalidConfigError reports whether err is a configuration error.
func IsInvalidConfigError(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
