package periods

import (
	"fmt"
	"time"

	"volumeProfiler/internal/domain"
	"volumeProfiler/internal/ports"
)

// Period is a contiguous, time-ascending bar slice bounded by anchor-period
// boundaries, profiled independently in multi-period display mode.
type Period struct {
	Bars       []*domain.Bar
	AnchorTime time.Time
}

// Split partitions time-ascending bars into anchor periods, starting a new
// period at every boundary crossing (UTC calendar day, month, quarter or
// year depending on the anchor).
//
// The total row budget caps how many periods are returned: once another
// period would push periodCount*rowsPerPeriod past maxTotalRows, the walk
// stops and the remaining (latest) periods are silently dropped to bound
// render cost. Empty input yields an empty slice.
func Split(bars []*domain.Bar, anchor domain.AnchorPeriod, maxTotalRows, rowsPerPeriod int) ([]Period, error) {
	if rowsPerPeriod <= 0 {
		return nil, fmt.Errorf("%w: rowsPerPeriod must be positive, got %d", ports.ErrInvalidArgument, rowsPerPeriod)
	}
	if len(bars) == 0 {
		return []Period{}, nil
	}

	periods := make([]Period, 0, 4)
	current := Period{AnchorTime: bars[0].Time}
	currentKey := periodKey(bars[0].Time, anchor)

	flush := func() bool {
		if (len(periods)+1)*rowsPerPeriod > maxTotalRows {
			return false
		}
		periods = append(periods, current)
		return true
	}

	for _, bar := range bars {
		key := periodKey(bar.Time, anchor)
		if key != currentKey {
			if !flush() {
				return periods, nil
			}
			current = Period{AnchorTime: bar.Time}
			currentKey = key
		}
		current.Bars = append(current.Bars, bar)
	}
	flush()

	return periods, nil
}

// periodKey collapses a timestamp to its containing anchor period.
func periodKey(t time.Time, anchor domain.AnchorPeriod) int {
	u := t.UTC()
	switch anchor {
	case domain.AnchorMonth:
		return u.Year()*100 + int(u.Month())
	case domain.AnchorQuarter:
		return u.Year()*10 + (int(u.Month())-1)/3
	case domain.AnchorYear:
		return u.Year()
	default: // Session: one trading day
		return u.Year()*10000 + int(u.Month())*100 + u.Day()
	}
}
