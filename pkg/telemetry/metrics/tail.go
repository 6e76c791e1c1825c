package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TailMetrics tracks access to the monitored files.
//
// Metrics:
//   - nginx_exporter_file_errors_total: Files that could not be read
//   - nginx_exporter_rotations_total: Rotations and truncations detected
//   - nginx_exporter_files_tracked: Files with a stored offset
type TailMetrics struct {
	fileErrors   prometheus.Counter
	rotations    prometheus.Counter
	filesTracked prometheus.Gauge
}

// NewTailMetrics creates and registers file metrics with the provided registry.
func NewTailMetrics(cfg Config, registry *prometheus.Registry) *TailMetrics {
	tm := &TailMetrics{
		fileErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "file_errors_total",
				Help:      "Total number of failed attempts to read a monitored file",
			},
		),

		rotations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rotations_total",
				Help:      "Total number of log rotations or truncations detected",
			},
		),

		filesTracked: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "files_tracked",
				Help:      "Number of access log files currently tailed",
			},
		),
	}

	registry.MustRegister(
		tm.fileErrors,
		tm.rotations,
		tm.filesTracked,
	)

	return tm
}
