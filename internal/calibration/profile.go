package calibration

import (
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/relation"
)

// ApplyToProfile propagates retest results into the profile's current base
// maxima. For every exercise the best AMRAP is taken; if the exercise resolves
// to a base lift, that lift's maximum becomes newMax / multiplier. It returns
// the lifts that were updated, in the order they were first touched.
func ApplyToProfile(profile *models.StrengthProfile, results []models.ILBTestResult, r *relation.Resolver) []models.BaseLift {
	var order []string
	byExercise := make(map[string][]models.ILBTestResult)
	for _, res := range results {
		if _, seen := byExercise[res.ExerciseID]; !seen {
			order = append(order, res.ExerciseID)
		}
		byExercise[res.ExerciseID] = append(byExercise[res.ExerciseID], res)
	}

	var updated []models.BaseLift
	touched := make(map[models.BaseLift]bool)
	for _, id := range order {
		best := SelectBestAMRAP(byExercise[id])
		name := best.ExerciseName
		if name == "" {
			name = best.ExerciseID
		}
		rel := r.Resolve(name)
		if rel == nil || rel.Multiplier <= 0 {
			continue
		}
		profile.Current = profile.Current.With(rel.Lift, best.NewMax/rel.Multiplier)
		if !touched[rel.Lift] {
			touched[rel.Lift] = true
			updated = append(updated, rel.Lift)
		}
	}
	return updated
}
