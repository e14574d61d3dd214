package profile

import (
	"fmt"
	"math"

	"volumeProfiler/internal/ports"
)

// RoundRowSize snaps a raw row size (price units per histogram row) to a
// whole number of ticks.
//
// The fractional tick count rounds up only when it exceeds 0.25; a fraction
// of exactly 0.25 rounds down. Renderers depend on this exact boundary, so it
// must not be replaced with conventional half-up rounding. The result is
// clamped to a minimum of one tick.
func RoundRowSize(rawRowSize, tickSize float64) (float64, error) {
	if tickSize <= 0 {
		return 0, fmt.Errorf("%w: tickSize must be positive, got %v", ports.ErrInvalidArgument, tickSize)
	}

	ticksPerRow := rawRowSize / tickSize
	whole := math.Floor(ticksPerRow)
	frac := ticksPerRow - whole

	rounded := whole
	if frac > 0.25 {
		rounded = whole + 1
	}
	if rounded < 1 {
		rounded = 1
	}
	return rounded * tickSize, nil
}
