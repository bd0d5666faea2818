package scrapeauth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/Aleph-Alpha/redmetrics/v1/red"
)

// BearerToken accepts requests with "Authorization: Bearer <token>". An
// empty token denies everything.
func BearerToken(token string) red.Authenticator {
	want := []byte(token)
	return func(r *http.Request) (bool, error) {
		if len(want) == 0 {
			return false, ErrEmptySecret
		}
		got, ok := bearer(r)
		if !ok {
			return false, ErrMissingCredentials
		}
		return subtle.ConstantTimeCompare([]byte(got), want) == 1, nil
	}
}

// BasicAuth accepts requests with matching HTTP basic credentials.
func BasicAuth(username, password string) red.Authenticator {
	wantUser, wantPass := []byte(username), []byte(password)
	return func(r *http.Request) (bool, error) {
		if len(wantPass) == 0 {
			return false, ErrEmptySecret
		}
		user, pass, ok := r.BasicAuth()
		if !ok {
			return false, ErrMissingCredentials
		}
		userOK := subtle.ConstantTimeCompare([]byte(user), wantUser) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), wantPass) == 1
		return userOK && passOK, nil
	}
}

// Any allows a request if one of auths does. Errors from individual
// authenticators are ignored unless none allows the request, in which case
// the last error is returned.
func Any(auths ...red.Authenticator) red.Authenticator {
	return func(r *http.Request) (bool, error) {
		var lastErr error
		for _, auth := range auths {
			ok, err := auth(r)
			if err == nil && ok {
				return true, nil
			}
			if err != nil {
				lastErr = err
			}
		}
		return false, lastErr
	}
}

func bearer(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
