// Package metrics provides the nginx exporter's own Prometheus metrics.
//
// # Overview
//
// The request duration family is derived from the access logs on every
// scrape. This package covers the exporter itself: lines read, lines
// rejected, unreadable files, rotations, tracked files and series, and
// the time spent tailing.
//
// # Metrics
//
//	nginx_exporter_lines_read_total             counter
//	nginx_exporter_parse_errors_total{reason}   counter
//	nginx_exporter_file_errors_total            counter
//	nginx_exporter_rotations_total              counter
//	nginx_exporter_files_tracked                gauge
//	nginx_exporter_series                       gauge
//	nginx_exporter_scrape_duration_seconds      histogram
//
// # Usage
//
//	collector := metrics.NewCollector(metrics.Config{Enabled: true}, nil)
//	collector.RecordLines(42)
//	collector.RecordParseError("invalid_json")
//	families, err := collector.Gather()
//
// A disabled collector records nothing and gathers no families.
package metrics
