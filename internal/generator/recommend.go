package generator

import (
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/onerm"
	"github.com/misterclayt0n/prescribe/internal/relation"
)

// RecommendWeight suggests a working weight for reps repetitions of an
// arbitrary exercise. It returns nil when the exercise has no relation to a
// base lift or the profile lacks that lift's maximum.
func RecommendWeight(profile *models.StrengthProfile, exerciseName string, reps int, r *relation.Resolver, increment float64) *float64 {
	rel := r.Resolve(exerciseName)
	if rel == nil {
		return nil
	}
	base, err := profile.Current.For(rel.Lift)
	if err != nil {
		return nil
	}
	w := onerm.WeightForReps(base*rel.Multiplier, reps, increment)
	return &w
}
