// Package onerm estimates one-rep maxima and converts between loads,
// percentages and rep counts.
package onerm

// brzyckiPole is the rep count at which the Brzycki denominator reaches zero.
const brzyckiPole = 37

// Estimate1RM estimates a one-rep maximum from a submaximal set.
//
// 2-5 reps use Epley, 6-10 the mean of Epley and Brzycki, above 10 Brzycki.
// Degenerate input returns 0 rather than an error.
func Estimate1RM(weight float64, reps int) float64 {
	switch {
	case reps <= 0 || weight <= 0:
		return 0
	case reps == 1:
		return weight
	case reps <= 5:
		return Epley(weight, reps)
	case reps <= 10:
		return (Epley(weight, reps) + Brzycki(weight, reps)) / 2
	default:
		return Brzycki(weight, reps)
	}
}

func Epley(weight float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	return weight * (1 + float64(reps)/30)
}

// Brzycki is capped at weight*2 from the pole on.
func Brzycki(weight float64, reps int) float64 {
	if reps <= 0 {
		return 0
	}
	if reps >= brzyckiPole {
		return weight * 2
	}
	return weight * 36 / float64(brzyckiPole-reps)
}
