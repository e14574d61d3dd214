package domain

// BarDirection classifies a bar for up/down volume attribution.
type BarDirection int8

const (
	DirectionUp      BarDirection = 1
	DirectionDown    BarDirection = -1
	DirectionNeutral BarDirection = 0
)

// String returns the string representation of the BarDirection.
func (d BarDirection) String() string {
	switch d {
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	default:
		return "NEUTRAL"
	}
}
