package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input Config
		check func(*testing.T, *Config)
	}{
		{
			name:  "empty config gets all defaults",
			input: Config{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.ListenAddress != DefaultListenAddress {
					t.Errorf("expected listen address %q, got %q", DefaultListenAddress, cfg.Server.ListenAddress)
				}
				if cfg.Server.ShutdownTimeout != DefaultShutdownTimeout {
					t.Errorf("expected shutdown timeout %v, got %v", DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
				}
				if cfg.Server.MetricsPath != DefaultMetricsPath {
					t.Errorf("expected metrics path %q, got %q", DefaultMetricsPath, cfg.Server.MetricsPath)
				}
				if cfg.Source.LogPath != DefaultLogPath {
					t.Errorf("expected log path %q, got %q", DefaultLogPath, cfg.Source.LogPath)
				}
				if cfg.Source.Fields.RequestTime != DefaultFieldRequestTime {
					t.Errorf("expected request_time field %q, got %q", DefaultFieldRequestTime, cfg.Source.Fields.RequestTime)
				}
				if cfg.Exporter.Mode != ModeHistogram {
					t.Errorf("expected mode %q, got %q", ModeHistogram, cfg.Exporter.Mode)
				}
				if cfg.Exporter.StatusGrouping != GroupingClass {
					t.Errorf("expected grouping %q, got %q", GroupingClass, cfg.Exporter.StatusGrouping)
				}
				if len(cfg.Exporter.Quantiles) != 4 {
					t.Errorf("expected 4 default quantiles, got %v", cfg.Exporter.Quantiles)
				}
				if !cfg.Exporter.SelfMetricsEnabled() {
					t.Error("expected self metrics enabled by default")
				}
				if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
					t.Errorf("expected logging level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
				}
			},
		},
		{
			name:  "summary mode groups by exact status",
			input: Config{Exporter: ExporterConfig{Mode: ModeSummary}},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Exporter.StatusGrouping != GroupingExact {
					t.Errorf("expected grouping %q, got %q", GroupingExact, cfg.Exporter.StatusGrouping)
				}
			},
		},
		{
			name: "existing values are preserved",
			input: Config{
				Server: ServerConfig{ListenAddress: "127.0.0.1:9999", ReadTimeout: 5 * time.Second},
				Source: SourceConfig{LogPath: "/tmp/access.log", Fields: FieldsConfig{Method: "method"}},
				Exporter: ExporterConfig{
					Mode:           ModeSummary,
					StatusGrouping: GroupingClass,
					Quantiles:      []float64{0.75},
				},
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Server.ListenAddress != "127.0.0.1:9999" {
					t.Errorf("listen address overwritten: %q", cfg.Server.ListenAddress)
				}
				if cfg.Server.ReadTimeout != 5*time.Second {
					t.Errorf("read timeout overwritten: %v", cfg.Server.ReadTimeout)
				}
				if cfg.Source.Fields.Method != "method" {
					t.Errorf("method field overwritten: %q", cfg.Source.Fields.Method)
				}
				if cfg.Source.Fields.Path != DefaultFieldPath {
					t.Errorf("expected default path field, got %q", cfg.Source.Fields.Path)
				}
				if cfg.Exporter.StatusGrouping != GroupingClass {
					t.Errorf("grouping overwritten: %q", cfg.Exporter.StatusGrouping)
				}
				if len(cfg.Exporter.Quantiles) != 1 || cfg.Exporter.Quantiles[0] != 0.75 {
					t.Errorf("quantiles overwritten: %v", cfg.Exporter.Quantiles)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)

			// Idempotent
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)
		})
	}
}

func TestDefault_IsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestApplyDefaults_Tracing(t *testing.T) {
	cfg := Default()
	tr := cfg.Telemetry.Tracing
	if tr.Enabled {
		t.Error("tracing should be off by default")
	}
	if tr.Endpoint != DefaultTracingEndpoint || tr.Sampler != DefaultTracingSampler || tr.SampleRatio != 1.0 {
		t.Errorf("tracing defaults = %+v", tr)
	}

	// Disabled tracing is not validated.
	cfg.Telemetry.Tracing.Endpoint = "nonsense"
	if err := Validate(cfg); err != nil {
		t.Errorf("disabled tracing should not be validated: %v", err)
	}
}

func TestDefaultQuantiles_NotShared(t *testing.T) {
	cfg := Default()
	cfg.Exporter.Quantiles[0] = 0.1

	if DefaultQuantiles[0] != 0.5 {
		t.Fatalf("DefaultQuantiles mutated through config: %v", DefaultQuantiles)
	}
}
