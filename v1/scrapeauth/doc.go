// Package scrapeauth provides red.Authenticator implementations for the
// scrape endpoint: a static bearer token, HTTP basic auth and HMAC-signed
// JWTs.
//
//	cfg.Authenticator = scrapeauth.BearerToken(os.Getenv("SCRAPE_TOKEN"))
//
// Authenticators never distinguish "no credentials" from "wrong
// credentials" towards the client; red.ScrapeGate turns both into the
// fall-through response.
package scrapeauth
