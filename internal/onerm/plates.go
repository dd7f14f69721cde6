package onerm

import "math"

// DefaultIncrement is the smallest load step on a standard kg barbell.
const DefaultIncrement = 2.5

// RoundToPlate rounds weight to the nearest multiple of increment. A
// non-positive increment falls back to DefaultIncrement.
func RoundToPlate(weight, increment float64) float64 {
	increment = normalizeIncrement(increment)
	return math.Round(weight/increment) * increment
}

// RoundDownToPlate floors weight to a multiple of increment, for conservative
// estimates.
func RoundDownToPlate(weight, increment float64) float64 {
	increment = normalizeIncrement(increment)
	// The epsilon keeps values that are already multiples from dropping a step
	// through float error (e.g. 0.3/0.1).
	return math.Floor(weight/increment+1e-9) * increment
}

func normalizeIncrement(increment float64) float64 {
	if increment <= 0 {
		return DefaultIncrement
	}
	return increment
}
