package aggregate

import (
	"fmt"
	"strings"
)

// Mode selects how request durations are exposed.
type Mode string

const (
	// ModeHistogram exposes cumulative buckets over Bounds.
	ModeHistogram Mode = "histogram"

	// ModeSummary exposes quantiles over the current scrape's samples.
	ModeSummary Mode = "summary"
)

// ParseMode parses a mode name. The empty string selects ModeHistogram.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeHistogram):
		return ModeHistogram, nil
	case string(ModeSummary):
		return ModeSummary, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected histogram or summary)", s)
	}
}

func (m Mode) String() string {
	return string(m)
}
