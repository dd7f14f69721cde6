package calibration

import (
	"github.com/misterclayt0n/prescribe/internal/onerm"
	"github.com/misterclayt0n/prescribe/internal/relation"
)

type WarmupSet struct {
	Percentage float64
	Reps       int
	WeightKg   float64
}

var warmupScheme = []struct {
	percentage float64
	reps       int
}{
	{0.50, 8},
	{0.60, 5},
	{0.70, 3},
	{0.80, 2},
}

// GenerateWarmupSets returns the ramp performed before an AMRAP at
// testWeight, each load rounded to increment.
func GenerateWarmupSets(testWeight, increment float64) []WarmupSet {
	sets := make([]WarmupSet, 0, len(warmupScheme))
	for _, step := range warmupScheme {
		sets = append(sets, WarmupSet{
			Percentage: step.percentage,
			Reps:       step.reps,
			WeightKg:   onerm.RoundToPlate(testWeight*step.percentage, increment),
		})
	}
	return sets
}

// IsEligibleForTest reports whether an exercise may be offered for automatic
// retesting. Isolation, machine and unilateral movements never are.
func IsEligibleForTest(name string) bool {
	return !relation.New().IsNoCorrelation(name)
}
