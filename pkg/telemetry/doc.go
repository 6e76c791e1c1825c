// Package telemetry groups the exporter's own observability.
//
// # Components
//
//   - logging: structured slog logging with request and trace correlation
//   - metrics: self-metrics about tailing, parsing, and scrape latency
//   - tracing: OpenTelemetry spans for scrapes and HTTP requests
//   - health: liveness and readiness probes
//
// Self-metrics live on their own registry so they never mix with the
// request duration family built from the access logs.
package telemetry
