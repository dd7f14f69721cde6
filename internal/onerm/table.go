package onerm

import "sort"

const (
	minTablePercentage = 0.47
	minReversePercent  = 0.40
	maxReversePercent  = 1.00
)

type anchor struct {
	reps       int
	percentage float64
}

// percentageTable maps rep maxima to %1RM. Sorted by reps, non-increasing in
// percentage.
var percentageTable = []anchor{
	{1, 1.00},
	{2, 0.97},
	{3, 0.94},
	{4, 0.92},
	{5, 0.89},
	{6, 0.86},
	{7, 0.83},
	{8, 0.81},
	{9, 0.78},
	{10, 0.75},
	{11, 0.73},
	{12, 0.71},
	{13, 0.70},
	{14, 0.68},
	{15, 0.67},
	{20, 0.60},
	{25, 0.55},
	{30, 0.50},
}

// PercentageForReps returns the %1RM a lifter can move for reps repetitions.
// Between anchors it interpolates linearly; past the last anchor it keeps the
// final slope and is clamped to [0.47, 1.0].
func PercentageForReps(reps int) float64 {
	if reps <= percentageTable[0].reps {
		return percentageTable[0].percentage
	}

	i := sort.Search(len(percentageTable), func(i int) bool {
		return percentageTable[i].reps >= reps
	})
	if i < len(percentageTable) && percentageTable[i].reps == reps {
		return percentageTable[i].percentage
	}

	var lo, hi anchor
	if i == len(percentageTable) {
		lo, hi = percentageTable[i-2], percentageTable[i-1]
	} else {
		lo, hi = percentageTable[i-1], percentageTable[i]
	}
	slope := (hi.percentage - lo.percentage) / float64(hi.reps-lo.reps)
	p := lo.percentage + slope*float64(reps-lo.reps)
	return clamp(p, minTablePercentage, 1.0)
}

// RepsForPercentage is the reverse lookup: the lowest anchored rep count whose
// percentage is at or below p.
func RepsForPercentage(p float64) int {
	p = clamp(p, minReversePercent, maxReversePercent)
	for _, a := range percentageTable {
		if a.percentage <= p {
			return a.reps
		}
	}
	return percentageTable[len(percentageTable)-1].reps
}

// WeightForReps is the load, rounded to increment, prescribed for reps
// repetitions off a one-rep maximum.
func WeightForReps(max float64, reps int, increment float64) float64 {
	return RoundToPlate(max*PercentageForReps(reps), increment)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
