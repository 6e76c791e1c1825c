package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Config contains configuration for the exporter's own metrics.
type Config struct {
	// Enabled turns recording and gathering on.
	Enabled bool

	// Namespace and Subsystem prefix every metric name.
	// Defaults: "nginx", "exporter"
	Namespace string
	Subsystem string
}

// Collector records the exporter's own health: how many lines were read
// and rejected, file access problems, rotations, and scrape latency.
//
// Metrics live on a private registry so they never mix with the request
// duration family, which is built fresh on every scrape.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	scrapeMetrics *ScrapeMetrics
	tailMetrics   *TailMetrics
}

// NewCollector creates a collector. If registry is nil a new one is
// created.
//
// Example:
//
//	collector := metrics.NewCollector(metrics.Config{Enabled: true}, nil)
//	collector.RecordLines(120)
//	families, err := collector.Gather()
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "nginx"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "exporter"
	}

	return &Collector{
		config:        cfg,
		registry:      registry,
		scrapeMetrics: NewScrapeMetrics(cfg, registry),
		tailMetrics:   NewTailMetrics(cfg, registry),
	}
}

// RecordLines adds n complete lines read from the access logs.
func (c *Collector) RecordLines(n int) {
	if !c.config.Enabled || n <= 0 {
		return
	}
	c.scrapeMetrics.linesRead.Add(float64(n))
}

// RecordParseError counts one rejected line.
//
// Parameters:
//   - reason: "invalid_json", "missing_field", "invalid_field", or
//     "line_too_long"
func (c *Collector) RecordParseError(reason string) {
	if !c.config.Enabled {
		return
	}
	c.scrapeMetrics.parseErrors.WithLabelValues(reason).Inc()
}

// RecordParseErrors counts n rejected lines with the same reason.
func (c *Collector) RecordParseErrors(reason string, n int) {
	if !c.config.Enabled || n <= 0 {
		return
	}
	c.scrapeMetrics.parseErrors.WithLabelValues(reason).Add(float64(n))
}

// ObserveScrape records the duration of one tail-aggregate pass.
func (c *Collector) ObserveScrape(d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.scrapeMetrics.duration.Observe(d.Seconds())
}

// SetSeries sets the number of label combinations held in memory.
func (c *Collector) SetSeries(n int) {
	if !c.config.Enabled {
		return
	}
	c.scrapeMetrics.series.Set(float64(n))
}

// RecordFileError counts one file that could not be read.
func (c *Collector) RecordFileError() {
	if !c.config.Enabled {
		return
	}
	c.tailMetrics.fileErrors.Inc()
}

// RecordRotation counts one detected rotation or truncation.
func (c *Collector) RecordRotation() {
	if !c.config.Enabled {
		return
	}
	c.tailMetrics.rotations.Inc()
}

// SetFilesTracked sets the number of files with a stored offset.
func (c *Collector) SetFilesTracked(n int) {
	if !c.config.Enabled {
		return
	}
	c.tailMetrics.filesTracked.Set(float64(n))
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Gather returns the current metric families, or nil when disabled.
func (c *Collector) Gather() ([]*dto.MetricFamily, error) {
	if !c.config.Enabled {
		return nil, nil
	}
	return c.registry.Gather()
}
