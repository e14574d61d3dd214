package periods

import (
	"fmt"
	"time"

	"volumeProfiler/internal/domain"
	"volumeProfiler/internal/ports"
)

// AnchorMode selects which swing extreme FindHighLowAnchor locates.
type AnchorMode int8

const (
	AnchorHigh AnchorMode = iota
	AnchorLow
)

// Anchor is a single swing point within a lookback window.
type Anchor struct {
	Time  time.Time
	Price float64
}

// FindHighLowAnchor scans only the trailing lookbackLength bars for the
// extreme high or low. Empty input yields the zero Anchor sentinel with no
// error so callers can treat "no anchor" as "draw nothing".
func FindHighLowAnchor(bars []*domain.Bar, lookbackLength int, mode AnchorMode) (Anchor, error) {
	if lookbackLength <= 0 {
		return Anchor{}, fmt.Errorf("%w: lookbackLength must be positive, got %d", ports.ErrInvalidArgument, lookbackLength)
	}
	if len(bars) == 0 {
		return Anchor{}, nil
	}

	start := len(bars) - lookbackLength
	if start < 0 {
		start = 0
	}
	window := bars[start:]

	best := Anchor{Time: window[0].Time}
	if mode == AnchorLow {
		best.Price = window[0].Low
		for _, bar := range window[1:] {
			if bar.Low < best.Price {
				best = Anchor{Time: bar.Time, Price: bar.Low}
			}
		}
	} else {
		best.Price = window[0].High
		for _, bar := range window[1:] {
			if bar.High > best.Price {
				best = Anchor{Time: bar.Time, Price: bar.High}
			}
		}
	}
	return best, nil
}
