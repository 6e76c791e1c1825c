package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention NGINX_EXPORTER_FIELD (e.g., NGINX_EXPORTER_LOG_PATH).
// Environment variables always take precedence over file-based configuration.
//
// When optional is true and the file does not exist, loading starts from
// the defaults instead of failing.
func LoadConfigWithEnvOverrides(path string, optional bool) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		if !optional || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("NGINX_EXPORTER_LOG_PATH"); val != "" {
		cfg.Source.LogPath = val
	}
	if val := os.Getenv("NGINX_EXPORTER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("NGINX_EXPORTER_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			cfg.Server.ListenAddress = ListenAddressForPort(cfg.Server.ListenAddress, port)
		}
	}
	if val := os.Getenv("NGINX_EXPORTER_MODE"); val != "" {
		cfg.Exporter.Mode = val
	}
	if val := os.Getenv("NGINX_EXPORTER_STATUS_GROUPING"); val != "" {
		cfg.Exporter.StatusGrouping = val
	}
	if val := os.Getenv("NGINX_EXPORTER_SELF_METRICS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Exporter.SelfMetrics = &b
		}
	}

	// LOG_LEVEL is honoured for compatibility with earlier deployments.
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("NGINX_EXPORTER_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("NGINX_EXPORTER_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("NGINX_EXPORTER_TRACING_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("NGINX_EXPORTER_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
}

// ListenAddressForPort replaces the port of addr, keeping its host. An
// unparsable addr yields "0.0.0.0:<port>".
func ListenAddressForPort(addr string, port int) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = "0.0.0.0"
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}
