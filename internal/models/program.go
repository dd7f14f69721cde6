package models

import (
	"errors"
	"fmt"
	"time"
)

const (
	MilestonePhaseComplete   = "phase complete"
	MilestoneProgramComplete = "program complete"
)

var (
	ErrWorkoutNotFound   = errors.New("workout not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrProgramNotActive  = errors.New("program is not active")
)

// PersonalizedProgram is a template expanded for one athlete.
type PersonalizedProgram struct {
	ID             string                `json:"id"`
	UserID         string                `json:"user_id"`
	TemplateID     string                `json:"template_id"`
	TemplateName   string                `json:"template_name"`
	StartingMaxima Maxima                `json:"starting_maxima"` // Frozen at generation time.
	CurrentWeek    int                   `json:"current_week"`
	CurrentDay     int                   `json:"current_day"`
	Status         ProgramStatus         `json:"status"`
	Workouts       []PersonalizedWorkout `json:"workouts"`
	Milestones     []Milestone           `json:"milestones"`
	CreatedAt      time.Time             `json:"created_at"`
}

type PersonalizedWorkout struct {
	Week        int                    `json:"week"` // Absolute, starting at 1.
	Day         int                    `json:"day"`
	PhaseName   string                 `json:"phase_name"`
	WeekType    WeekType               `json:"week_type"`
	IsDeload    bool                   `json:"is_deload"`
	Exercises   []PersonalizedExercise `json:"exercises"`
	Completed   bool                   `json:"completed"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
}

type PersonalizedExercise struct {
	Name           string         `json:"name"`
	Sets           int            `json:"sets"`
	TargetReps     int            `json:"target_reps"`
	Percentage     *float64       `json:"percentage,omitempty"`
	WeightKg       *float64       `json:"weight_kg,omitempty"`
	TargetRPE      *float64       `json:"target_rpe,omitempty"`
	TargetVelocity *float64       `json:"target_velocity,omitempty"`
	RestSeconds    int            `json:"rest_seconds"`
	Tempo          string         `json:"tempo,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	Performed      []PerformedSet `json:"performed,omitempty"`
}

type PerformedSet struct {
	WeightKg float64  `json:"weight_kg"`
	Reps     int      `json:"reps"`
	RPE      *float64 `json:"rpe,omitempty"`
	Velocity *float64 `json:"velocity,omitempty"`
}

type Milestone struct {
	Week  int    `json:"week"`
	Label string `json:"label"`
	Phase string `json:"phase"`
}

// Workout returns the workout scheduled for an absolute week and day.
func (p *PersonalizedProgram) Workout(week, day int) (*PersonalizedWorkout, error) {
	for i := range p.Workouts {
		if p.Workouts[i].Week == week && p.Workouts[i].Day == day {
			return &p.Workouts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: week %d day %d", ErrWorkoutNotFound, week, day)
}

// NextWorkout returns the first workout that is not completed yet, or nil.
func (p *PersonalizedProgram) NextWorkout() *PersonalizedWorkout {
	for i := range p.Workouts {
		if !p.Workouts[i].Completed {
			return &p.Workouts[i]
		}
	}
	return nil
}

// CompleteWorkout records performed sets per exercise (indexed like the
// workout's exercises), then moves the cursor to the next open workout.
func (p *PersonalizedProgram) CompleteWorkout(week, day int, performed [][]PerformedSet, at time.Time) error {
	if p.Status != StatusActive {
		return ErrProgramNotActive
	}
	w, err := p.Workout(week, day)
	if err != nil {
		return err
	}
	for i := range w.Exercises {
		if i < len(performed) {
			w.Exercises[i].Performed = performed[i]
		}
	}
	w.Completed = true
	w.CompletedAt = &at

	if next := p.NextWorkout(); next != nil {
		p.CurrentWeek, p.CurrentDay = next.Week, next.Day
	} else {
		p.Status = StatusCompleted
	}
	return nil
}

func (p *PersonalizedProgram) Pause() error {
	return p.transition(StatusActive, StatusPaused)
}

func (p *PersonalizedProgram) Resume() error {
	return p.transition(StatusPaused, StatusActive)
}

func (p *PersonalizedProgram) Abandon() error {
	if p.Status == StatusCompleted || p.Status == StatusAbandoned {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, StatusAbandoned)
	}
	p.Status = StatusAbandoned
	return nil
}

func (p *PersonalizedProgram) transition(from, to ProgramStatus) error {
	if p.Status != from {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p.Status, to)
	}
	p.Status = to
	return nil
}
