// Package autoreg maps load to expected bar velocity and turns a measured
// velocity into a load adjustment.
package autoreg

import "github.com/misterclayt0n/prescribe/internal/models"

const (
	largeDiff = 0.08 // m/s
	smallDiff = 0.04
)

// velocityBands is the reference load-velocity curve: upper %1RM bound to
// expected mean concentric velocity in m/s.
var velocityBands = []struct {
	upTo     float64
	velocity float64
}{
	{0.50, 1.30},
	{0.60, 1.10},
	{0.70, 0.90},
	{0.80, 0.70},
	{0.85, 0.50},
	{0.90, 0.40},
	{0.95, 0.30},
}

const maxEffortVelocity = 0.20

// ExpectedVelocity returns the reference velocity for a fraction of 1RM.
func ExpectedVelocity(percentage float64) float64 {
	for _, b := range velocityBands {
		if percentage <= b.upTo {
			return b.velocity
		}
	}
	return maxEffortVelocity
}

type Action int

const (
	Hold Action = iota
	IncreaseSmall
	IncreaseLarge
	DecreaseSmall
	DecreaseLarge
)

var actionNames = []string{"hold", "increase_small", "increase_large", "decrease_small", "decrease_large"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// Suggestion is the outcome of comparing a measured rep against the curve.
type Suggestion struct {
	Action           Action
	VelocityDiff     float64 // measured - expected, m/s
	PercentDelta     float64 // change to apply to the target percentage
	TargetPercentage float64 // adjusted percentage
}

// Steps are the %1RM changes for small and large adjustments.
type Steps struct {
	Small float64
	Large float64
}

var (
	defaultSteps  = Steps{Small: 0.025, Large: 0.05}
	advancedSteps = Steps{Small: 0.015, Large: 0.03}
)

// StepsFor returns the adjustment steps for an athlete. Advanced and elite
// lifters sit closer to their ceiling and get finer steps.
func StepsFor(profile *models.StrengthProfile) Steps {
	if profile == nil {
		return defaultSteps
	}
	switch profile.Experience {
	case models.ExperienceAdvanced, models.ExperienceElite:
		return advancedSteps
	default:
		return defaultSteps
	}
}

// SuggestAdjustment compares a measured velocity with the expected velocity
// at targetPercentage. Faster than expected means the load is light.
func SuggestAdjustment(targetPercentage, measuredVelocity float64, profile *models.StrengthProfile) Suggestion {
	diff := measuredVelocity - ExpectedVelocity(targetPercentage)
	steps := StepsFor(profile)

	s := Suggestion{Action: Hold, VelocityDiff: diff}
	switch {
	case diff > largeDiff:
		s.Action, s.PercentDelta = IncreaseLarge, steps.Large
	case diff > smallDiff:
		s.Action, s.PercentDelta = IncreaseSmall, steps.Small
	case diff < -largeDiff:
		s.Action, s.PercentDelta = DecreaseLarge, -steps.Large
	case diff < -smallDiff:
		s.Action, s.PercentDelta = DecreaseSmall, -steps.Small
	}
	s.TargetPercentage = targetPercentage + s.PercentDelta
	return s
}
