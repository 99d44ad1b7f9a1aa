package draft

import "math"

const (
	MainMultiplier = 1.0
	SubMultiplier  = 0.8
	FillMultiplier = 0.6
)

// Classify reports how the assigned lane relates to a player's preferences.
func Classify(assigned, primary, secondary Lane) PositionType {
	switch assigned {
	case primary:
		return PositionMain
	case secondary:
		return PositionSub
	default:
		return PositionFill
	}
}

func Multiplier(assigned, primary, secondary Lane) float64 {
	switch Classify(assigned, primary, secondary) {
	case PositionMain:
		return MainMultiplier
	case PositionSub:
		return SubMultiplier
	default:
		return FillMultiplier
	}
}

// AdjustedScore scales base by the lane multiplier. Any lane value is accepted;
// one that matches neither preference takes the fill multiplier.
func AdjustedScore(base int, primary, secondary, assigned Lane) int {
	return Round(float64(base) * Multiplier(assigned, primary, secondary))
}

// Round rounds half up, so -2.5 becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}
