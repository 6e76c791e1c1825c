// Package config provides configuration loading for the nginx exporter.
//
// # Overview
//
// Configuration comes from three layers, later layers winning:
//
//  1. A YAML file (optional when the path was not given explicitly)
//  2. Environment variables prefixed with NGINX_EXPORTER_
//  3. Command-line flags, applied by the caller
//
// Defaults are applied by ApplyDefaults and the result is checked by
// Validate, which collects every FieldError instead of stopping at the
// first one.
//
// # Example
//
//	server:
//	  listen_address: "0.0.0.0:9090"
//	source:
//	  log_path: "/var/log/nginx/*.log"
//	exporter:
//	  mode: histogram
//	telemetry:
//	  logging:
//	    level: info
//
// # Environment Variables
//
//   - NGINX_EXPORTER_LOG_PATH
//   - NGINX_EXPORTER_LISTEN_ADDRESS
//   - NGINX_EXPORTER_PORT
//   - NGINX_EXPORTER_MODE
//   - NGINX_EXPORTER_STATUS_GROUPING
//   - NGINX_EXPORTER_SELF_METRICS
//   - NGINX_EXPORTER_LOG_LEVEL (LOG_LEVEL is also accepted)
//   - NGINX_EXPORTER_LOG_FORMAT
//
// # Hot Reload
//
// When watch is enabled, Watcher observes the file with fsnotify and
// hands each successfully reloaded Config to a callback. Only logging
// settings are applied at runtime; source and exporter changes need a
// restart because they shape the aggregation state.
package config
