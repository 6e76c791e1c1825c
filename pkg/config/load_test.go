package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"NGINX_EXPORTER_LOG_PATH",
		"NGINX_EXPORTER_LISTEN_ADDRESS",
		"NGINX_EXPORTER_PORT",
		"NGINX_EXPORTER_MODE",
		"NGINX_EXPORTER_STATUS_GROUPING",
		"NGINX_EXPORTER_SELF_METRICS",
		"NGINX_EXPORTER_LOG_LEVEL",
		"NGINX_EXPORTER_LOG_FORMAT",
		"LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_address: "127.0.0.1:9100"
  read_timeout: "10s"
source:
  log_path: "/srv/logs/*.json"
  fields:
    method: request.method
exporter:
  mode: summary
  quantiles: [0.5, 0.99]
  self_metrics: false
telemetry:
  logging:
    level: debug
    format: text
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.ListenAddress != "127.0.0.1:9100" {
		t.Errorf("expected listen address %q, got %q", "127.0.0.1:9100", cfg.Server.ListenAddress)
	}
	if cfg.Server.ReadTimeout != 10*time.Second {
		t.Errorf("expected read timeout 10s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Source.LogPath != "/srv/logs/*.json" {
		t.Errorf("expected log path %q, got %q", "/srv/logs/*.json", cfg.Source.LogPath)
	}
	if cfg.Source.Fields.Method != "request.method" {
		t.Errorf("expected method field %q, got %q", "request.method", cfg.Source.Fields.Method)
	}
	if cfg.Source.Fields.Host != DefaultFieldHost {
		t.Errorf("expected default host field, got %q", cfg.Source.Fields.Host)
	}
	if cfg.Exporter.Mode != ModeSummary {
		t.Errorf("expected summary mode, got %q", cfg.Exporter.Mode)
	}
	if cfg.Exporter.StatusGrouping != GroupingExact {
		t.Errorf("expected exact grouping, got %q", cfg.Exporter.StatusGrouping)
	}
	if cfg.Exporter.SelfMetricsEnabled() {
		t.Error("expected self metrics disabled")
	}
	if cfg.Telemetry.Logging.Format != "text" {
		t.Errorf("expected text format, got %q", cfg.Telemetry.Logging.Format)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected ErrNotExist, got %v", err)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [unclosed")
		if _, err := LoadConfig(path); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeConfig(t, `
exporter:
  mode: gauge
`)
		_, err := LoadConfig(path)
		var verr ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestLoadConfigWithEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
source:
  log_path: /var/log/nginx/access.log
`)

	t.Setenv("NGINX_EXPORTER_LOG_PATH", "/tmp/*.log")
	t.Setenv("NGINX_EXPORTER_PORT", "9200")
	t.Setenv("NGINX_EXPORTER_MODE", "summary")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("NGINX_EXPORTER_SELF_METRICS", "false")

	cfg, err := LoadConfigWithEnvOverrides(path, false)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Source.LogPath != "/tmp/*.log" {
		t.Errorf("expected env log path, got %q", cfg.Source.LogPath)
	}
	if cfg.Server.ListenAddress != "0.0.0.0:9200" {
		t.Errorf("expected listen address 0.0.0.0:9200, got %q", cfg.Server.ListenAddress)
	}
	if cfg.Exporter.Mode != ModeSummary {
		t.Errorf("expected summary mode, got %q", cfg.Exporter.Mode)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected warn level, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Exporter.SelfMetricsEnabled() {
		t.Error("expected self metrics disabled")
	}
}

func TestLoadConfigWithEnvOverrides_OptionalMissingFile(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfigWithEnvOverrides(missing, true)
	if err != nil {
		t.Fatalf("optional missing file should fall back to defaults: %v", err)
	}
	if cfg.Source.LogPath != DefaultLogPath {
		t.Errorf("expected default log path, got %q", cfg.Source.LogPath)
	}

	if _, err := LoadConfigWithEnvOverrides(missing, false); err == nil {
		t.Fatal("expected error for required missing file")
	}
}

func TestListenAddressForPort(t *testing.T) {
	tests := []struct {
		addr string
		port int
		want string
	}{
		{"0.0.0.0:9090", 8080, "0.0.0.0:8080"},
		{"127.0.0.1:9090", 9100, "127.0.0.1:9100"},
		{"", 9090, "0.0.0.0:9090"},
		{"[::1]:9090", 9091, "[::1]:9091"},
	}

	for _, tt := range tests {
		if got := ListenAddressForPort(tt.addr, tt.port); got != tt.want {
			t.Errorf("ListenAddressForPort(%q, %d) = %q, want %q", tt.addr, tt.port, got, tt.want)
		}
	}
}

func TestInitialize(t *testing.T) {
	clearEnv(t)
	SetConfig(nil)
	t.Cleanup(func() { SetConfig(nil) })

	first := writeConfig(t, "source:\n  log_path: /first.log\n")
	second := writeConfig(t, "source:\n  log_path: /second.log\n")

	if err := Initialize(first, false); err != nil {
		t.Fatalf("failed to initialize config: %v", err)
	}
	if err := Initialize(second, false); err != nil {
		t.Fatalf("second Initialize should be ignored, got %v", err)
	}

	if got := GetConfig().Source.LogPath; got != "/first.log" {
		t.Errorf("expected /first.log, got %q", got)
	}

	cfg, err := ReloadConfig(second)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cfg.Source.LogPath != "/second.log" || GetConfig() != cfg {
		t.Errorf("reload did not replace global config")
	}

	if _, err := ReloadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected reload error")
	}
	if GetConfig() != cfg {
		t.Error("failed reload must keep the previous config")
	}
}
