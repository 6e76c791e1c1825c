package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ScrapeMetrics tracks the tail-parse-aggregate pipeline.
//
// Metrics:
//   - nginx_exporter_lines_read_total: Complete lines read from the logs
//   - nginx_exporter_parse_errors_total: Lines rejected, by reason
//   - nginx_exporter_series: Label combinations held in memory
//   - nginx_exporter_scrape_duration_seconds: Duration of each pass
type ScrapeMetrics struct {
	linesRead   prometheus.Counter
	parseErrors *prometheus.CounterVec
	series      prometheus.Gauge
	duration    prometheus.Histogram
}

// NewScrapeMetrics creates and registers scrape metrics with the provided registry.
func NewScrapeMetrics(cfg Config, registry *prometheus.Registry) *ScrapeMetrics {
	sm := &ScrapeMetrics{
		linesRead: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "lines_read_total",
				Help:      "Total number of complete access log lines read",
			},
		),

		parseErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_errors_total",
				Help:      "Total number of access log lines rejected",
			},
			[]string{"reason"},
		),

		series: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "series",
				Help:      "Number of request label combinations held in memory",
			},
		),

		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "scrape_duration_seconds",
				Help:      "Duration of reading and aggregating the access logs per scrape",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8), // 0.5ms to ~8s
			},
		),
	}

	registry.MustRegister(
		sm.linesRead,
		sm.parseErrors,
		sm.series,
		sm.duration,
	)

	return sm
}
