package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "0.0.0.0:9090"
	DefaultPort            = 9090
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 15 * time.Second
	DefaultMetricsPath     = "/metrics"
	DefaultPoweredBy       = "nginx-prometheus-exporter"

	DefaultTLSMinVersion     = "1.2"
	DefaultTLSClientAuthType = "require"
	DefaultTLSReloadInterval = 5 * time.Minute

	// Source defaults
	DefaultLogPath      = "/var/log/nginx/*.log"
	DefaultMaxLineBytes = 1048576 // 1MB

	DefaultFieldMethod      = "nginx.access.method"
	DefaultFieldPath        = "nginx.access.url"
	DefaultFieldHost        = "nginx.access.host"
	DefaultFieldStatusCode  = "http.response.status_code"
	DefaultFieldRequestTime = "nginx.time.request"

	// Exporter defaults
	ModeHistogram     = "histogram"
	ModeSummary       = "summary"
	GroupingClass     = "class"
	GroupingExact     = "exact"
	DefaultMode       = ModeHistogram
	DefaultMetricName = "nginx_http_request_duration_seconds"

	// Telemetry defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingTimeout     = 10 * time.Second
	DefaultTracingServiceName = "nginx-exporter"
	DefaultTracingSampler     = "always"
	DefaultTracingSampleRatio = 1.0
)

// DefaultQuantiles are the summary ranks reported when none are configured.
var DefaultQuantiles = []float64{0.5, 0.9, 0.95, 0.99}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MetricsPath == "" {
		cfg.Server.MetricsPath = DefaultMetricsPath
	}
	if cfg.Server.PoweredBy == "" {
		cfg.Server.PoweredBy = DefaultPoweredBy
	}
	if cfg.Server.TLS.MinVersion == "" {
		cfg.Server.TLS.MinVersion = DefaultTLSMinVersion
	}
	if cfg.Server.TLS.ClientAuthType == "" {
		cfg.Server.TLS.ClientAuthType = DefaultTLSClientAuthType
	}
	if cfg.Server.TLS.ReloadInterval == 0 {
		cfg.Server.TLS.ReloadInterval = DefaultTLSReloadInterval
	}

	// Source defaults
	if cfg.Source.LogPath == "" {
		cfg.Source.LogPath = DefaultLogPath
	}
	if cfg.Source.MaxLineBytes == 0 {
		cfg.Source.MaxLineBytes = DefaultMaxLineBytes
	}
	applyFieldDefaults(&cfg.Source.Fields)

	// Exporter defaults
	if cfg.Exporter.Mode == "" {
		cfg.Exporter.Mode = DefaultMode
	}
	if cfg.Exporter.StatusGrouping == "" {
		if cfg.Exporter.Mode == ModeSummary {
			cfg.Exporter.StatusGrouping = GroupingExact
		} else {
			cfg.Exporter.StatusGrouping = GroupingClass
		}
	}
	if cfg.Exporter.MetricName == "" {
		cfg.Exporter.MetricName = DefaultMetricName
	}
	if len(cfg.Exporter.Quantiles) == 0 {
		cfg.Exporter.Quantiles = append([]float64(nil), DefaultQuantiles...)
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	applyTracingDefaults(&cfg.Telemetry.Tracing)
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = DefaultTracingEndpoint
	}
	if t.Timeout == 0 {
		t.Timeout = DefaultTracingTimeout
	}
	if t.ServiceName == "" {
		t.ServiceName = DefaultTracingServiceName
	}
	if t.Sampler == "" {
		t.Sampler = DefaultTracingSampler
	}
	// A zero ratio is indistinguishable from unset; "never" drops everything.
	if t.SampleRatio == 0 {
		t.SampleRatio = DefaultTracingSampleRatio
	}
}

func applyFieldDefaults(f *FieldsConfig) {
	if f.Method == "" {
		f.Method = DefaultFieldMethod
	}
	if f.Path == "" {
		f.Path = DefaultFieldPath
	}
	if f.Host == "" {
		f.Host = DefaultFieldHost
	}
	if f.StatusCode == "" {
		f.StatusCode = DefaultFieldStatusCode
	}
	if f.RequestTime == "" {
		f.RequestTime = DefaultFieldRequestTime
	}
}
