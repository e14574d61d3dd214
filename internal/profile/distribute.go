package profile

import (
	"math"

	"volumeProfiler/internal/domain"
)

// DistributeVolume spreads one bar's volume across every bin its [low, high]
// range touches.
//
// The split is equal per touched bin (by bin count, not by geometric overlap
// length); this matches the charting platform the profile imitates. A bar
// with high == low lands entirely in its single bin. Up bars feed UpVolume,
// Down bars feed DownVolume, and Neutral bars split each bin's share 50/50.
func DistributeVolume(bar *domain.Bar, direction domain.BarDirection, bins []Bin, rangeLow, rowSize float64, numRows int) {
	if numRows <= 0 || bar.Volume <= 0 {
		return
	}

	firstBin := clampBinIndex(int(math.Floor((bar.Low-rangeLow)/rowSize)), numRows)
	lastBin := clampBinIndex(int(math.Floor((bar.High-rangeLow)/rowSize)), numRows)

	binCount := lastBin - firstBin + 1
	share := bar.Volume / float64(binCount)

	for i := firstBin; i <= lastBin; i++ {
		switch direction {
		case domain.DirectionUp:
			bins[i].UpVolume += share
		case domain.DirectionDown:
			bins[i].DownVolume += share
		default:
			bins[i].UpVolume += share / 2
			bins[i].DownVolume += share / 2
		}
		bins[i].TotalVolume = bins[i].UpVolume + bins[i].DownVolume
		bins[i].DeltaVolume = bins[i].UpVolume - bins[i].DownVolume
	}
}

func clampBinIndex(idx, numRows int) int {
	if idx < 0 {
		return 0
	}
	if idx > numRows-1 {
		return numRows - 1
	}
	return idx
}
