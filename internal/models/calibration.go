package models

import "time"

// StableTolerancePercent is how far a retest may drop before it counts as a
// decline. Smaller drops are within estimation noise.
const StableTolerancePercent = 2.0

// Outcome classifies a retest against the previous maximum.
type Outcome int

const (
	OutcomeNoHistory Outcome = iota + 1
	OutcomeImproved
	OutcomeStable
	OutcomeDeclined
)

var outcomeNames = []string{"", "no_history", "improved", "stable", "declined"}

func (o Outcome) String() string { return enumName(outcomeNames, int(o)) }

// ILBTestResult is one processed max-effort retest. Immutable once created.
type ILBTestResult struct {
	ID             string    `json:"id" toml:"id"`
	ExerciseID     string    `json:"exercise_id" toml:"exercise_id"`
	ExerciseName   string    `json:"exercise_name" toml:"exercise_name"`
	TestWeight     float64   `json:"test_weight" toml:"test_weight"`
	Reps           int       `json:"reps" toml:"reps"`
	PreviousMax    *float64  `json:"previous_max,omitempty" toml:"previous_max,omitempty"`
	NewMax         float64   `json:"new_max" toml:"new_max"`
	ChangeAbsolute *float64  `json:"change_absolute,omitempty" toml:"change_absolute,omitempty"`
	ChangePercent  *float64  `json:"change_percent,omitempty" toml:"change_percent,omitempty"`
	TestedAt       time.Time `json:"tested_at" toml:"tested_at"`
}

func (r ILBTestResult) Outcome() Outcome {
	switch {
	case r.ChangePercent == nil:
		return OutcomeNoHistory
	case *r.ChangePercent > 0:
		return OutcomeImproved
	case *r.ChangePercent < -StableTolerancePercent:
		return OutcomeDeclined
	default:
		return OutcomeStable
	}
}
