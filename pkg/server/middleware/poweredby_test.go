package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPoweredByMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name  string
		value string
	}{
		{"sets header", "nginx-prometheus-exporter"},
		{"disabled", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			PoweredByMiddleware(tt.value)(ok).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			if got := w.Header().Get(PoweredByHeader); got != tt.value {
				t.Errorf("%s = %q, want %q", PoweredByHeader, got, tt.value)
			}
		})
	}
}
