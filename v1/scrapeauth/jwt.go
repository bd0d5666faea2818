package scrapeauth

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Aleph-Alpha/redmetrics/v1/red"
)

// JWTConfig configures HMAC-signed JWT scrape authentication.
type JWTConfig struct {
	// Secret is the HS256 signing key.
	Secret []byte

	// Issuer and Audience, when set, must match the token's iss and aud.
	Issuer   string
	Audience string

	// Scope, when set, must be one of the space-separated values of the
	// token's "scope" claim.
	Scope string

	// Leeway tolerates clock skew on exp, nbf and iat.
	Leeway time.Duration
}

type scrapeClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

// JWT accepts requests whose bearer token is a valid HS256 JWT signed with
// cfg.Secret. Expired tokens and tokens signed with any other algorithm are
// rejected.
func JWT(cfg JWTConfig) (red.Authenticator, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.Leeway > 0 {
		options = append(options, jwt.WithLeeway(cfg.Leeway))
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}
	parser := jwt.NewParser(options...)
	secret := slices.Clone(cfg.Secret)

	return func(r *http.Request) (bool, error) {
		tokenStr, ok := bearer(r)
		if !ok {
			return false, ErrMissingCredentials
		}

		claims := &scrapeClaims{}
		token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil {
			return false, fmt.Errorf("scrapeauth: %w", err)
		}
		if !token.Valid {
			return false, jwt.ErrTokenInvalidClaims
		}

		if cfg.Scope != "" && !slices.Contains(strings.Fields(claims.Scope), cfg.Scope) {
			return false, ErrMissingScope
		}
		return true, nil
	}, nil
}
