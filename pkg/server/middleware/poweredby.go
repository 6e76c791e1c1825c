package middleware

import "net/http"

// PoweredByHeader identifies the exporter in responses.
const PoweredByHeader = "X-Powered-By"

// PoweredByMiddleware sets the X-Powered-By header on every response. An
// empty value disables it.
func PoweredByMiddleware(value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if value == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(PoweredByHeader, value)
			next.ServeHTTP(w, r)
		})
	}
}
