// nginx-exporter turns nginx JSON access logs into Prometheus request
// duration metrics.
//
// On every scrape it reads the lines appended to the matched log files
// since the previous scrape, aggregates their request times by method,
// path, status, and host, and answers with the Prometheus text format.
//
// Usage:
//
//	# Tail /var/log/nginx/*.log and serve on 0.0.0.0:9090
//	nginx-exporter
//
//	# Custom log pattern and port
//	nginx-exporter --log-path '/srv/logs/*.json' --port 9113
//
//	# Per-scrape quantiles instead of histogram buckets
//	nginx-exporter --mode summary
//
//	# Check a configuration file
//	nginx-exporter validate --config /etc/nginx-exporter.yaml
//
//	# Show version information
//	nginx-exporter version
package main

func main() {
	Execute()
}
