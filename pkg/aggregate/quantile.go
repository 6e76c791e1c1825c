package aggregate

import "math"

// DefaultQuantiles are reported in summary mode when none are configured.
var DefaultQuantiles = []float64{0.5, 0.9, 0.95, 0.99}

// Quantile returns the nearest-rank quantile of an ascending slice: the
// element at index ceil(q*n)-1, clamped to the slice. It returns NaN for
// an empty slice.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	idx := int(math.Ceil(q*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}
