package config

import (
	"fmt"
	"net"
	"path/filepath"
	"regexp"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

var metricNameRE = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateSource(&cfg.Source)...)
	errs = append(errs, validateExporter(&cfg.Exporter)...)
	errs = append(errs, validateLogging(&cfg.Telemetry.Logging)...)
	errs = append(errs, validateTracing(&cfg.Telemetry.Tracing)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "must not be empty"})
	} else if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid address %q: %v", cfg.ListenAddress, err),
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "must not be negative"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "must not be negative"})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.idle_timeout", Message: "must not be negative"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "must not be negative"})
	}

	if !strings.HasPrefix(cfg.MetricsPath, "/") {
		errs = append(errs, FieldError{Field: "server.metrics_path", Message: "must start with /"})
	}

	errs = append(errs, validateTLS(&cfg.TLS)...)

	return errs
}

func validateTLS(cfg *TLSConfig) []FieldError {
	if !cfg.Enabled {
		return nil
	}
	var errs []FieldError

	if cfg.CertFile == "" {
		errs = append(errs, FieldError{Field: "server.tls.cert_file", Message: "required when TLS is enabled"})
	}
	if cfg.KeyFile == "" {
		errs = append(errs, FieldError{Field: "server.tls.key_file", Message: "required when TLS is enabled"})
	}

	switch cfg.MinVersion {
	case "1.2", "1.3":
	default:
		errs = append(errs, FieldError{
			Field:   "server.tls.min_version",
			Message: fmt.Sprintf("must be \"1.2\" or \"1.3\", got %q", cfg.MinVersion),
		})
	}

	switch cfg.ClientAuthType {
	case "require", "verify_if_given":
	default:
		errs = append(errs, FieldError{
			Field:   "server.tls.client_auth_type",
			Message: fmt.Sprintf("must be \"require\" or \"verify_if_given\", got %q", cfg.ClientAuthType),
		})
	}

	if cfg.ReloadInterval < 0 {
		errs = append(errs, FieldError{Field: "server.tls.reload_interval", Message: "must not be negative"})
	}

	return errs
}

func validateSource(cfg *SourceConfig) []FieldError {
	var errs []FieldError

	if cfg.LogPath == "" {
		errs = append(errs, FieldError{Field: "source.log_path", Message: "must not be empty"})
	} else if _, err := filepath.Match(cfg.LogPath, ""); err != nil {
		errs = append(errs, FieldError{
			Field:   "source.log_path",
			Message: fmt.Sprintf("invalid glob pattern %q: %v", cfg.LogPath, err),
		})
	}

	if cfg.MaxLineBytes <= 0 {
		errs = append(errs, FieldError{Field: "source.max_line_bytes", Message: "must be positive"})
	}

	fields := []struct{ name, path string }{
		{"source.fields.method", cfg.Fields.Method},
		{"source.fields.path", cfg.Fields.Path},
		{"source.fields.host", cfg.Fields.Host},
		{"source.fields.status_code", cfg.Fields.StatusCode},
		{"source.fields.request_time", cfg.Fields.RequestTime},
	}
	for _, f := range fields {
		if f.path == "" || strings.HasPrefix(f.path, ".") || strings.HasSuffix(f.path, ".") || strings.Contains(f.path, "..") {
			errs = append(errs, FieldError{Field: f.name, Message: fmt.Sprintf("invalid JSON path %q", f.path)})
		}
	}

	return errs
}

func validateExporter(cfg *ExporterConfig) []FieldError {
	var errs []FieldError

	switch cfg.Mode {
	case ModeHistogram, ModeSummary:
	default:
		errs = append(errs, FieldError{
			Field:   "exporter.mode",
			Message: fmt.Sprintf("must be %q or %q, got %q", ModeHistogram, ModeSummary, cfg.Mode),
		})
	}

	switch cfg.StatusGrouping {
	case GroupingClass, GroupingExact:
	default:
		errs = append(errs, FieldError{
			Field:   "exporter.status_grouping",
			Message: fmt.Sprintf("must be %q or %q, got %q", GroupingClass, GroupingExact, cfg.StatusGrouping),
		})
	}

	if !metricNameRE.MatchString(cfg.MetricName) {
		errs = append(errs, FieldError{
			Field:   "exporter.metric_name",
			Message: fmt.Sprintf("invalid metric name %q", cfg.MetricName),
		})
	}

	for i, q := range cfg.Quantiles {
		if q <= 0 || q > 1 {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("exporter.quantiles[%d]", i),
				Message: fmt.Sprintf("must be in (0, 1], got %v", q),
			})
		}
	}

	return errs
}

func validateLogging(cfg *LoggingConfig) []FieldError {
	var errs []FieldError

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q", cfg.Level),
		})
	}

	switch strings.ToLower(cfg.Format) {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q", cfg.Format),
		})
	}

	return errs
}

func validateTracing(cfg *TracingConfig) []FieldError {
	if !cfg.Enabled {
		return nil
	}
	var errs []FieldError

	if _, _, err := net.SplitHostPort(cfg.Endpoint); err != nil {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.endpoint",
			Message: fmt.Sprintf("must be host:port, got %q", cfg.Endpoint),
		})
	}

	switch cfg.Sampler {
	case "always", "never":
	case "ratio":
		if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
			errs = append(errs, FieldError{
				Field:   "telemetry.tracing.sample_ratio",
				Message: fmt.Sprintf("must be in [0, 1], got %v", cfg.SampleRatio),
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("unknown sampler %q (expected always, never, or ratio)", cfg.Sampler),
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.timeout",
			Message: "must not be negative",
		})
	}

	return errs
}
