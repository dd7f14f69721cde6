package models

import (
	"errors"
	"fmt"
	"time"
)

// OverheadFromBench derives an absent overhead maximum from the bench maximum.
const OverheadFromBench = 0.65

var (
	ErrMissingBaseMaximum = errors.New("missing base maximum")
	ErrInvalidProfile     = errors.New("invalid profile")
)

// MissingBaseMaximumError is returned when a prescription needs a base
// maximum the profile does not carry.
type MissingBaseMaximumError struct {
	Lift BaseLift
}

func (e *MissingBaseMaximumError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingBaseMaximum, e.Lift)
}

func (e *MissingBaseMaximumError) Unwrap() error { return ErrMissingBaseMaximum }

// Maxima holds a one-rep maximum per base lift in kg. Zero means unknown.
type Maxima struct {
	Squat    float64  `json:"squat" toml:"squat"`
	Bench    float64  `json:"bench" toml:"bench"`
	Deadlift float64  `json:"deadlift" toml:"deadlift"`
	Overhead *float64 `json:"overhead,omitempty" toml:"overhead,omitempty"`
}

// For returns the maximum for lift. The overhead maximum falls back to
// bench * 0.65 when it was never recorded; the other lifts have no fallback.
func (m Maxima) For(lift BaseLift) (float64, error) {
	var v float64
	switch lift {
	case LiftSquat:
		v = m.Squat
	case LiftBench:
		v = m.Bench
	case LiftDeadlift:
		v = m.Deadlift
	case LiftOverhead:
		if m.Overhead != nil {
			v = *m.Overhead
		} else {
			v = m.Bench * OverheadFromBench
		}
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownLift, lift)
	}
	if v <= 0 {
		return 0, &MissingBaseMaximumError{Lift: lift}
	}
	return v, nil
}

// With returns a copy of m with lift set to v.
func (m Maxima) With(lift BaseLift, v float64) Maxima {
	switch lift {
	case LiftSquat:
		m.Squat = v
	case LiftBench:
		m.Bench = v
	case LiftDeadlift:
		m.Deadlift = v
	case LiftOverhead:
		m.Overhead = &v
	}
	return m
}

// Total is squat + bench + deadlift, the powerlifting total used for Wilks.
func (m Maxima) Total() float64 {
	return m.Squat + m.Bench + m.Deadlift
}

func (m Maxima) validate() error {
	if m.Squat < 0 || m.Bench < 0 || m.Deadlift < 0 || (m.Overhead != nil && *m.Overhead < 0) {
		return fmt.Errorf("%w: maxima must be non-negative", ErrInvalidProfile)
	}
	return nil
}

type Commitment struct {
	SessionsPerWeek int `json:"sessions_per_week" toml:"sessions_per_week"`
	Effort          int `json:"effort" toml:"effort"` // 1-10
}

// StrengthProfile is the athlete record the engine prescribes against.
type StrengthProfile struct {
	UserID       string         `json:"user_id" toml:"user_id"`
	Name         string         `json:"name" toml:"name"`
	Gender       Gender         `json:"gender,omitempty" toml:"gender,omitempty"`
	BodyweightKg float64        `json:"bodyweight_kg" toml:"bodyweight_kg"`
	Experience   ExperienceTier `json:"experience,omitempty" toml:"experience,omitempty"`
	Current      Maxima         `json:"current" toml:"current"`
	Goal         Maxima         `json:"goal" toml:"goal"`
	Commitment   Commitment     `json:"commitment" toml:"commitment"`
	UpdatedAt    time.Time      `json:"updated_at" toml:"-"`
}

// Validate checks the invariants a stored profile must hold.
func (p *StrengthProfile) Validate() error {
	if p.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidProfile)
	}
	if p.BodyweightKg < 0 {
		return fmt.Errorf("%w: bodyweight must be non-negative", ErrInvalidProfile)
	}
	if err := p.Current.validate(); err != nil {
		return err
	}
	if err := p.Goal.validate(); err != nil {
		return err
	}
	if e := p.Commitment.Effort; e != 0 && (e < 1 || e > 10) {
		return fmt.Errorf("%w: effort must be between 1 and 10", ErrInvalidProfile)
	}
	return nil
}
