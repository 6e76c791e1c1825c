// Package tracing exports OpenTelemetry spans for scrapes.
//
// Tracing is off by default. When enabled, every scrape request produces a
// server span with a child "scrape" span carrying the pass statistics
// (lines read, records, parse errors, file errors, rotations, series).
// Rotations and unreadable files are recorded as span events.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: otel-collector:4317
//	    insecure: true
//	    sampler: ratio
//	    sample_ratio: 0.1
//
// Spans are exported over OTLP gRPC. Samplers are parent-based, so a
// scrape arriving with a sampled traceparent header is always recorded.
//
// # Log correlation
//
// The logging package adds trace_id and span_id to every record logged
// with a context that carries a span.
package tracing
