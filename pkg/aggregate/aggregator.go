package aggregate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"mercator-hq/nginx-exporter/pkg/accesslog"
)

// Bounds are the histogram upper bounds in seconds, excluding +Inf:
// 0.005, 0.01, 0.02 ... 2.56.
var Bounds = prometheus.ExponentialBuckets(0.005, 2, 10)

// LabelKey identifies one series.
type LabelKey struct {
	Method string
	Path   string
	Status string
	Host   string
}

// Compare orders keys by method, then path, status, and host.
func (k LabelKey) Compare(o LabelKey) int {
	if c := strings.Compare(k.Method, o.Method); c != 0 {
		return c
	}
	if c := strings.Compare(k.Path, o.Path); c != 0 {
		return c
	}
	if c := strings.Compare(k.Status, o.Status); c != 0 {
		return c
	}
	return strings.Compare(k.Host, o.Host)
}

// LabelStats is the state accumulated for one key.
type LabelStats struct {
	Sum   float64
	Count uint64

	// Buckets holds cumulative counts aligned with Bounds. Histogram mode
	// only.
	Buckets []uint64

	// samples are the request times observed since the last EndScrape.
	// Summary mode only.
	samples []float64
}

// Series is a read-only view of one key's state at the time of Snapshot.
type Series struct {
	Key   LabelKey
	Sum   float64
	Count uint64

	// Buckets maps each bound to its cumulative count. Histogram mode only.
	Buckets map[float64]uint64

	// Quantiles maps each configured quantile to its value over the
	// current window. Empty when no samples arrived since the last scrape.
	Quantiles map[float64]float64
}

// Config contains configuration for an Aggregator.
type Config struct {
	Mode Mode

	// ExactStatus labels series with the exact status code ("404")
	// instead of its class ("4xx").
	ExactStatus bool

	// Quantiles reported in summary mode. Defaults to DefaultQuantiles.
	Quantiles []float64
}

// Aggregator holds the AggregateState.
type Aggregator struct {
	mode      Mode
	exact     bool
	quantiles []float64
	state     map[LabelKey]*LabelStats
}

// New creates an empty Aggregator.
func New(cfg Config) (*Aggregator, error) {
	mode := cfg.Mode
	if mode == "" {
		mode = ModeHistogram
	}
	if mode != ModeHistogram && mode != ModeSummary {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	quantiles := slices.Clone(cfg.Quantiles)
	if len(quantiles) == 0 {
		quantiles = slices.Clone(DefaultQuantiles)
	}
	for _, q := range quantiles {
		if math.IsNaN(q) || q <= 0 || q > 1 {
			return nil, fmt.Errorf("quantile %v out of range (0, 1]", q)
		}
	}
	slices.Sort(quantiles)

	return &Aggregator{
		mode:      mode,
		exact:     cfg.ExactStatus,
		quantiles: quantiles,
		state:     make(map[LabelKey]*LabelStats),
	}, nil
}

// Mode returns the aggregation mode.
func (a *Aggregator) Mode() Mode {
	return a.mode
}

// Quantiles returns the quantiles reported in summary mode.
func (a *Aggregator) Quantiles() []float64 {
	return slices.Clone(a.quantiles)
}

// Len returns the number of distinct label keys seen.
func (a *Aggregator) Len() int {
	return len(a.state)
}

// Key returns the label key rec is counted under.
func (a *Aggregator) Key(rec accesslog.Record) LabelKey {
	return LabelKey{
		Method: rec.Method,
		Path:   rec.Path,
		Status: accesslog.StatusLabel(rec.StatusCode, a.exact),
		Host:   rec.Host,
	}
}

// Apply adds one record to the state.
func (a *Aggregator) Apply(rec accesslog.Record) {
	key := a.Key(rec)
	st, ok := a.state[key]
	if !ok {
		st = &LabelStats{}
		if a.mode == ModeHistogram {
			st.Buckets = make([]uint64, len(Bounds))
		}
		a.state[key] = st
	}

	st.Sum += rec.RequestTime
	st.Count++

	switch a.mode {
	case ModeHistogram:
		for i, bound := range Bounds {
			if rec.RequestTime <= bound {
				st.Buckets[i]++
			}
		}
	case ModeSummary:
		st.samples = append(st.samples, rec.RequestTime)
	}
}

// Snapshot returns every key's state sorted by key. In summary mode the
// quantiles are computed over the samples collected since the last
// EndScrape; Snapshot itself does not consume them.
func (a *Aggregator) Snapshot() []Series {
	keys := make([]LabelKey, 0, len(a.state))
	for k := range a.state {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, LabelKey.Compare)

	out := make([]Series, 0, len(keys))
	for _, k := range keys {
		st := a.state[k]
		s := Series{Key: k, Sum: st.Sum, Count: st.Count}

		switch a.mode {
		case ModeHistogram:
			s.Buckets = make(map[float64]uint64, len(Bounds))
			for i, bound := range Bounds {
				s.Buckets[bound] = st.Buckets[i]
			}
		case ModeSummary:
			s.Quantiles = make(map[float64]float64, len(a.quantiles))
			if len(st.samples) > 0 {
				sorted := slices.Clone(st.samples)
				slices.Sort(sorted)
				for _, q := range a.quantiles {
					s.Quantiles[q] = Quantile(sorted, q)
				}
			}
		}

		out = append(out, s)
	}
	return out
}

// EndScrape discards the per-scrape sample windows. Sums and counts are
// kept.
func (a *Aggregator) EndScrape() {
	for _, st := range a.state {
		st.samples = nil
	}
}
