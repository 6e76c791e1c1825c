package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"mercator-hq/nginx-exporter/pkg/telemetry/logging"
)

const (
	// RequestIDHeader is the HTTP header for request ID.
	RequestIDHeader = "X-Request-ID"

	// maxRequestIDLength bounds client-supplied IDs echoed into logs.
	maxRequestIDLength = 128
)

// RequestIDMiddleware assigns every request an ID. A client-provided
// X-Request-ID is reused when present; otherwise a UUID is generated.
//
// The request ID is:
//   - Stored in the request context, where log calls pick it up
//   - Echoed in the X-Request-ID response header
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		ctx := logging.WithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	return logging.GetRequestID(ctx)
}
