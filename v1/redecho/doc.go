// Package redecho adapts red.Instrumentation to the echo framework.
//
// Register the middleware before middleware.Recover so recovered panics
// are seen as errors and recorded with status 500:
//
//	e := echo.New()
//	e.Use(redecho.Middleware(inst), middleware.Recover())
//	redecho.RegisterScrapeRoute(e, inst)
//
// Label-transform errors are returned through echo's error path once the
// response is complete, so they reach e.HTTPErrorHandler without changing
// what the client received.
package redecho
