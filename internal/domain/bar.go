package domain

import (
	"math"
	"time"
)

// Bar represents a single OHLCV candlestick data point.
type Bar struct {
	Time     time.Time // Start time of the interval
	Symbol   string    // Trading symbol
	Interval string    // Bar interval (e.g., "1", "60", "1D")
	Open     float64   // Opening price
	High     float64   // Highest price
	Low      float64   // Lowest price
	Close    float64   // Closing price
	Volume   float64   // Traded volume
}

// IsFinite reports whether every OHLCV field is a finite number.
// Malformed bars must be rejected before they reach any price comparison,
// otherwise NaN propagates silently through min/max logic.
func (b *Bar) IsFinite() bool {
	for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
