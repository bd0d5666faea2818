package scrapeauth

import "errors"

var (
	// ErrMissingCredentials is returned when the request carries no usable
	// Authorization header.
	ErrMissingCredentials = errors.New("scrapeauth: missing credentials")

	// ErrEmptySecret is returned by constructors given no secret.
	ErrEmptySecret = errors.New("scrapeauth: empty secret")

	// ErrMissingScope is returned when a valid token lacks the required scope.
	ErrMissingScope = errors.New("scrapeauth: missing scope")
)
