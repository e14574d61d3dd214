package domain

import "strings"

// AnchorPeriod is the time boundary used to segment bars for
// multi-period profile display.
type AnchorPeriod string

const (
	AnchorSession AnchorPeriod = "Session"
	AnchorMonth   AnchorPeriod = "Month"
	AnchorQuarter AnchorPeriod = "Quarter"
	AnchorYear    AnchorPeriod = "Year"

	// AnchorAuto defers the choice to the chart timeframe.
	AnchorAuto AnchorPeriod = "Auto"
)

// ParseAnchorPeriod converts a string to an AnchorPeriod, defaulting to Auto.
func ParseAnchorPeriod(s string) AnchorPeriod {
	switch strings.ToLower(s) {
	case "session":
		return AnchorSession
	case "month":
		return AnchorMonth
	case "quarter":
		return AnchorQuarter
	case "year":
		return AnchorYear
	default:
		return AnchorAuto
	}
}
