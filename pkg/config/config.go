package config

import "time"

// Config is the root configuration structure for the nginx exporter.
// It contains the HTTP server settings, the access log source, the
// exposition mode, and telemetry settings.
type Config struct {
	// Server contains HTTP server configuration including listen address,
	// timeouts, and the metrics path.
	Server ServerConfig `yaml:"server"`

	// Source describes which access log files are tailed and how their
	// JSON records map onto request fields.
	Source SourceConfig `yaml:"source"`

	// Exporter selects the exposition mode and metric naming.
	Exporter ExporterConfig `yaml:"exporter"`

	// Telemetry contains configuration for the exporter's own logging.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Watch enables reloading the logging settings when the configuration
	// file changes on disk.
	// Default: false
	Watch bool `yaml:"watch"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "0.0.0.0:9090").
	// Default: "0.0.0.0:9090"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Scrapes hold a lock while tailing, so this should be larger
	// than the slowest expected scrape.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MetricsPath is the HTTP path serving the exposition text.
	// Default: "/metrics"
	MetricsPath string `yaml:"metrics_path"`

	// PoweredBy is the value of the X-Powered-By response header.
	// Set to "-" to omit the header.
	// Default: "nginx-prometheus-exporter"
	PoweredBy string `yaml:"powered_by"`

	// TLS serves the endpoints over HTTPS when enabled.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains HTTPS settings for the metrics endpoint.
type TLSConfig struct {
	// Enabled switches the listener to TLS.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile and KeyFile are PEM-encoded and re-read when they change
	// on disk.
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`

	// MinVersion is the lowest accepted protocol version.
	// Options: "1.2", "1.3"
	// Default: "1.2"
	MinVersion string `yaml:"min_version"`

	// ClientCAFile enables client certificate authentication against the
	// given PEM bundle.
	ClientCAFile string `yaml:"client_ca_file"`

	// ClientAuthType applies when ClientCAFile is set.
	// Options: "require", "verify_if_given"
	// Default: "require"
	ClientAuthType string `yaml:"client_auth_type"`

	// ReloadInterval is how often the certificate files are checked for
	// changes.
	// Default: 5m
	ReloadInterval time.Duration `yaml:"reload_interval"`
}

// SourceConfig describes the tailed access logs.
type SourceConfig struct {
	// LogPath is a glob pattern resolved on every scrape.
	// Default: "/var/log/nginx/*.log"
	LogPath string `yaml:"log_path"`

	// MaxLineBytes bounds the size of a single unterminated line held
	// between scrapes. Longer lines are dropped.
	// Default: 1048576 (1MB)
	MaxLineBytes int `yaml:"max_line_bytes"`

	// Fields maps request attributes onto dotted JSON paths.
	Fields FieldsConfig `yaml:"fields"`
}

// FieldsConfig maps each required request attribute onto a dotted JSON
// path inside a log record (e.g., "nginx.time.request").
type FieldsConfig struct {
	// Default: "nginx.access.method"
	Method string `yaml:"method"`

	// Default: "nginx.access.url"
	Path string `yaml:"path"`

	// Default: "nginx.access.host"
	Host string `yaml:"host"`

	// Default: "http.response.status_code"
	StatusCode string `yaml:"status_code"`

	// Default: "nginx.time.request"
	RequestTime string `yaml:"request_time"`
}

// ExporterConfig selects how request durations are exposed.
type ExporterConfig struct {
	// Mode is the exposition variant.
	// Options: "histogram" (cumulative buckets), "summary" (per-scrape quantiles)
	// Default: "histogram"
	Mode string `yaml:"mode"`

	// StatusGrouping controls the status_code label.
	// Options: "class" ("2xx"), "exact" ("200")
	// Default: "class" in histogram mode, "exact" in summary mode
	StatusGrouping string `yaml:"status_grouping"`

	// MetricName is the exposed metric family name.
	// Default: "nginx_http_request_duration_seconds"
	MetricName string `yaml:"metric_name"`

	// Quantiles are the ranks reported in summary mode.
	// Default: [0.5, 0.9, 0.95, 0.99]
	Quantiles []float64 `yaml:"quantiles"`

	// SelfMetrics appends the exporter's own counters to every scrape.
	// Default: true
	SelfMetrics *bool `yaml:"self_metrics"`
}

// SelfMetricsEnabled reports whether exporter self-metrics are exposed.
func (e ExporterConfig) SelfMetricsEnabled() bool {
	return e.SelfMetrics == nil || *e.SelfMetrics
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Tracing contains OpenTelemetry span export configuration.
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains configuration for structured logging.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// TracingConfig contains configuration for OpenTelemetry tracing. Every
// scrape becomes a span exported over OTLP gRPC.
type TracingConfig struct {
	// Enabled turns span export on.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address ("host:port").
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	// Default: false
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export call.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "nginx-exporter"
	ServiceName string `yaml:"service_name"`

	// Sampler selects the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces kept by the "ratio" sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`
}
