package server

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"mercator-hq/nginx-exporter/pkg/config"
	sectls "mercator-hq/nginx-exporter/pkg/security/tls"
	"mercator-hq/nginx-exporter/pkg/server/middleware"
	"mercator-hq/nginx-exporter/pkg/telemetry/health"
)

func testServerConfig() *config.ServerConfig {
	cfg := config.Default().Server
	cfg.ListenAddress = "127.0.0.1:0"
	cfg.ShutdownTimeout = 2 * time.Second
	return &cfg
}

var metricsStub = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = io.WriteString(w, "stub_metric 1\n")
})

func TestServer_Routes(t *testing.T) {
	srv := NewServer(testServerConfig(), metricsStub, nil)
	handler := srv.Handler()

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"metrics", "/metrics", http.StatusOK, "stub_metric 1\n"},
		{"health", "/health", http.StatusOK, ""},
		{"ready", "/ready", http.StatusOK, ""},
		{"unknown", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && w.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.wantBody)
			}
			if got := w.Header().Get(middleware.PoweredByHeader); got != config.DefaultPoweredBy {
				t.Errorf("%s = %q", middleware.PoweredByHeader, got)
			}
			if w.Header().Get(middleware.RequestIDHeader) == "" {
				t.Error("request ID header missing")
			}
		})
	}
}

func TestServer_PoweredByDisabled(t *testing.T) {
	cfg := testServerConfig()
	cfg.PoweredBy = "-"

	w := httptest.NewRecorder()
	NewServer(cfg, metricsStub, nil).Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if _, ok := w.Header()[middleware.PoweredByHeader]; ok {
		t.Errorf("header should be omitted, got %q", w.Header().Get(middleware.PoweredByHeader))
	}
}

func TestServer_CustomMetricsPath(t *testing.T) {
	cfg := testServerConfig()
	cfg.MetricsPath = "/stats"
	handler := NewServer(cfg, metricsStub, nil).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("old path status = %d, want 404", w.Code)
	}
}

func TestServer_MetricsMethods(t *testing.T) {
	var scrapes int
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scrapes++
		metricsStub(w, r)
	})
	handler := NewServer(testServerConfig(), counting, nil).Handler()

	tests := []struct {
		method string
		want   int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodHead, http.StatusOK},
		{http.MethodPost, http.StatusMethodNotAllowed},
		{http.MethodPut, http.StatusMethodNotAllowed},
		{http.MethodDelete, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, "/metrics", nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}

	if scrapes != 2 {
		t.Errorf("scrapes = %d, want 2 (GET and HEAD only)", scrapes)
	}
}

func TestServer_Probes(t *testing.T) {
	checker := health.New(0)
	checker.RegisterCheck("log_files", func(context.Context) error { return errors.New("no files") })
	handler := NewServer(testServerConfig(), metricsStub, checker).Handler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, HealthPath, nil))

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if w.Code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health = %d %v, want 200 ok", w.Code, body["status"])
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, HealthPath, nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, ReadyPath, nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", w.Code)
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	srv := NewServer(testServerConfig(), metricsStub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for srv.Addr() == nil || !srv.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "stub_metric 1\n" {
		t.Errorf("response = %d %q", resp.StatusCode, body)
	}

	if err := srv.Start(ctx); err == nil {
		t.Error("second Start should fail while running")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	if srv.IsRunning() {
		t.Error("server still reports running")
	}
}

func TestServer_TLS(t *testing.T) {
	certPath, keyPath, err := sectls.WriteSelfSigned(t.TempDir(), sectls.GenerateOptions{Hosts: []string{"127.0.0.1"}})
	if err != nil {
		t.Fatalf("WriteSelfSigned: %v", err)
	}
	certPEM, err := os.ReadFile(certPath)
	if err != nil {
		t.Fatalf("read cert: %v", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(certPEM)

	cfg := testServerConfig()
	cfg.TLS = config.TLSConfig{
		Enabled:        true,
		CertFile:       certPath,
		KeyFile:        keyPath,
		MinVersion:     "1.2",
		ClientAuthType: "require",
	}
	srv := NewServer(cfg, metricsStub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for srv.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not start")
		}
		time.Sleep(10 * time.Millisecond)
	}

	client := &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: pool}}}
	resp, err := client.Get(fmt.Sprintf("https://%s/metrics", srv.Addr()))
	if err != nil {
		t.Fatalf("GET over TLS: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "stub_metric 1\n" {
		t.Errorf("body = %q", body)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Start returned %v", err)
	}
}

func TestServer_TLSMissingCertificate(t *testing.T) {
	cfg := testServerConfig()
	cfg.TLS = config.TLSConfig{Enabled: true, CertFile: "/nonexistent/cert.pem", KeyFile: "/nonexistent/key.pem"}

	if err := NewServer(cfg, metricsStub, nil).Start(context.Background()); err == nil {
		t.Fatal("expected TLS configuration error")
	}
}

func TestServer_ListenError(t *testing.T) {
	cfg := testServerConfig()
	cfg.ListenAddress = "256.0.0.1:bad"

	if err := NewServer(cfg, metricsStub, nil).Start(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
