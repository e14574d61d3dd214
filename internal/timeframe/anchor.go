package timeframe

import (
	"strings"

	"volumeProfiler/internal/domain"
)

// quarterAnchorMaxDays is the largest multi-day bar size still mapped to the
// Quarter anchor bucket. The threshold is a tunable constant rather than a
// hard invariant; only the 1D -> Month and intraday -> Session mappings are
// pinned by the platform behavior.
const quarterAnchorMaxDays = 10

// AutoAnchorPeriod maps a chart timeframe to the anchor period used when the
// profile is configured for automatic anchoring: intraday charts anchor per
// session, daily charts per month, multi-day charts per quarter, and weekly
// or coarser charts per year.
func AutoAnchorPeriod(chartTF Timeframe) domain.AnchorPeriod {
	s := strings.ToUpper(strings.TrimSpace(string(chartTF)))
	if strings.HasSuffix(s, "W") || strings.HasSuffix(s, "M") {
		return domain.AnchorYear
	}

	m, err := chartTF.Minutes()
	if err != nil {
		return domain.AnchorSession
	}
	switch {
	case m < minutesPerDay:
		return domain.AnchorSession
	case m == minutesPerDay:
		return domain.AnchorMonth
	case m <= quarterAnchorMaxDays*minutesPerDay:
		return domain.AnchorQuarter
	default:
		return domain.AnchorYear
	}
}
