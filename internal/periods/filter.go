package periods

import (
	"sort"
	"time"

	"volumeProfiler/internal/domain"
)

// FilterVisibleRange returns the inclusive sub-sequence of bars with time in
// [from, to]. Input must already be sorted time-ascending; a disjoint range
// yields an empty slice.
func FilterVisibleRange(bars []*domain.Bar, from, to time.Time) []*domain.Bar {
	if len(bars) == 0 || to.Before(from) {
		return nil
	}

	start := sort.Search(len(bars), func(i int) bool {
		return !bars[i].Time.Before(from)
	})
	end := sort.Search(len(bars), func(i int) bool {
		return bars[i].Time.After(to)
	})
	if start >= end {
		return nil
	}
	return bars[start:end]
}
