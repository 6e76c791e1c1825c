package exposition

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/nginx-exporter/pkg/aggregate"
)

// DefaultHelp is the HELP text of the request duration family.
const DefaultHelp = "Duration of HTTP requests in seconds, as logged by nginx."

// LabelNames are the variable labels of every request duration series.
var LabelNames = []string{"method", "path", "status_code", "host"}

// Source provides the aggregated state to expose.
type Source interface {
	Mode() aggregate.Mode
	Snapshot() []aggregate.Series
}

// Collector exposes a Source as a single histogram or summary family.
type Collector struct {
	desc *prometheus.Desc
	src  Source
}

// NewCollector creates a collector for the metric family name. An empty
// help falls back to DefaultHelp.
func NewCollector(name, help string, src Source) *Collector {
	if help == "" {
		help = DefaultHelp
	}
	return &Collector{
		desc: prometheus.NewDesc(name, help, LabelNames, nil),
		src:  src,
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector. A series that cannot be
// represented is reported as an invalid metric so gathering surfaces the
// error while the remaining series are still exposed.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	mode := c.src.Mode()
	for _, s := range c.src.Snapshot() {
		labels := []string{s.Key.Method, s.Key.Path, s.Key.Status, s.Key.Host}

		var (
			m   prometheus.Metric
			err error
		)
		switch mode {
		case aggregate.ModeSummary:
			m, err = prometheus.NewConstSummary(c.desc, s.Count, s.Sum, s.Quantiles, labels...)
		default:
			m, err = prometheus.NewConstHistogram(c.desc, s.Count, s.Sum, s.Buckets, labels...)
		}
		if err != nil {
			ch <- prometheus.NewInvalidMetric(c.desc, fmt.Errorf("series %+v: %w", s.Key, err))
			continue
		}
		ch <- m
	}
}
