package timeframe

import (
	"time"
)

// ltfCandidates are the lower-timeframe resolutions considered for intrabar
// volume aggregation, ordered finest first.
var ltfCandidates = []Timeframe{"1", "3", "5", "15", "60", "240", "1D"}

// maxLTFBars bounds the estimated bar count of the selected lower timeframe,
// which in turn bounds the fetch and aggregation cost of a profile build.
const maxLTFBars = 5000

// SelectLTF picks the finest candidate timeframe whose estimated bar count
// over [start, end] stays within maxLTFBars, falling back to the coarsest
// candidate when even that is too fine.
//
// For futures symbols the chart's own timeframe stepped one notch finer acts
// as an additional floor on granularity: intrabar volume for futures is only
// fetched one resolution below the chart, clamped at one minute.
func SelectLTF(start, end time.Time, chartTF Timeframe, isFutures bool) Timeframe {
	windowMinutes := end.Sub(start).Minutes()
	if windowMinutes < 0 {
		windowMinutes = 0
	}

	selected := ltfCandidates[len(ltfCandidates)-1]
	for _, candidate := range ltfCandidates {
		m, err := candidate.Minutes()
		if err != nil {
			continue
		}
		if windowMinutes/float64(m) <= maxLTFBars {
			selected = candidate
			break
		}
	}

	if isFutures {
		if floor := stepFiner(chartTF); coarser(floor, selected) {
			selected = floor
		}
	}
	return selected
}

// stepFiner returns the coarsest candidate strictly finer than tf,
// clamped at one minute.
func stepFiner(tf Timeframe) Timeframe {
	tfMinutes, err := tf.Minutes()
	if err != nil {
		return ltfCandidates[0]
	}
	for i := len(ltfCandidates) - 1; i >= 0; i-- {
		m, err := ltfCandidates[i].Minutes()
		if err != nil {
			continue
		}
		if m < tfMinutes {
			return ltfCandidates[i]
		}
	}
	return ltfCandidates[0]
}

func coarser(a, b Timeframe) bool {
	am, errA := a.Minutes()
	bm, errB := b.Minutes()
	return errA == nil && errB == nil && am > bm
}
