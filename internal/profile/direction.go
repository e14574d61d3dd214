package profile

import (
	"volumeProfiler/internal/domain"
)

// ClassifyBarDirection determines the direction of a single bar for
// up/down volume attribution.
//
// A bar closing above its open is Up, below is Down. A doji (close == open)
// is classified against the previous bar's close; if that is also equal, the
// previous direction carries forward so doji chains inherit the last real move.
// A doji with no previous bar is Neutral.
func ClassifyBarDirection(bar, prevBar *domain.Bar, prevDirection domain.BarDirection) domain.BarDirection {
	if bar.Close > bar.Open {
		return domain.DirectionUp
	}
	if bar.Close < bar.Open {
		return domain.DirectionDown
	}

	// Doji: infer direction from context.
	if prevBar == nil {
		return domain.DirectionNeutral
	}
	if bar.Close > prevBar.Close {
		return domain.DirectionUp
	}
	if bar.Close < prevBar.Close {
		return domain.DirectionDown
	}
	return prevDirection
}

// ClassifyAllBars folds ClassifyBarDirection over the sequence,
// seeded with no previous bar and a Neutral direction.
func ClassifyAllBars(bars []*domain.Bar) []domain.BarDirection {
	directions := make([]domain.BarDirection, len(bars))
	var prevBar *domain.Bar
	prevDirection := domain.DirectionNeutral

	for i, bar := range bars {
		dir := ClassifyBarDirection(bar, prevBar, prevDirection)
		directions[i] = dir
		prevBar = bar
		prevDirection = dir
	}
	return directions
}
