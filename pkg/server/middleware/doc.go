// Package middleware provides the HTTP middleware chain of the exporter.
//
// The chain, outermost first:
//
//	RecoveryMiddleware   -> 500 instead of a dropped connection on panic
//	LoggingMiddleware    -> one structured log line per request
//	RequestIDMiddleware  -> X-Request-ID header and request-scoped logs
//	PoweredByMiddleware  -> X-Powered-By header
//
// Each middleware is a func(http.Handler) http.Handler or wraps a handler
// directly, and can be used on its own:
//
//	handler = RequestIDMiddleware(handler)
//	handler = LoggingMiddleware(handler)
//	handler = RecoveryMiddleware(handler)
package middleware
