package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidTemplate = errors.New("invalid template")

// ProgramTemplate is immutable reference data: phases of weeks of days of
// exercises.
type ProgramTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Progression ProgressionScheme `json:"progression"`
	Phases      []Phase           `json:"phases"`
}

type ProgressionScheme struct {
	Type            ProgressionType `json:"type"`
	WeeklyIncrement *float64        `json:"weekly_increment,omitempty"`
	VelocityBased   bool            `json:"velocity_based"`
}

// IntensityBand is the %1RM band a phase is meant to live in.
type IntensityBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Phase struct {
	Name           string         `json:"name"`
	Intensity      IntensityBand  `json:"intensity"`
	VolumeModifier float64        `json:"volume_modifier"`
	DurationWeeks  int            `json:"duration_weeks,omitempty"`
	Weeks          []WeekTemplate `json:"weeks"`
}

// WeekCount is the phase length used for absolute week numbering. An explicit
// duration wins over the number of authored weeks.
func (p Phase) WeekCount() int {
	if p.DurationWeeks > 0 {
		return p.DurationWeeks
	}
	return len(p.Weeks)
}

type WeekTemplate struct {
	WeekNumber int           `json:"week_number"` // Relative to the phase, starting at 1.
	IsDeload   bool          `json:"is_deload"`
	Type       WeekType      `json:"type"`
	Days       []DayTemplate `json:"days"`
}

type DayTemplate struct {
	DayNumber   int                `json:"day_number"`
	Name        string             `json:"name"`
	PrimaryLift BaseLift           `json:"primary_lift,omitempty"`
	Exercises   []ExerciseTemplate `json:"exercises"`
}

type RepRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Midpoint is the rounded average of the range, halves rounding up.
func (r RepRange) Midpoint() int {
	return (r.Min + r.Max + 1) / 2
}

type PercentRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PercentRange) Midpoint() float64 {
	return (r.Min + r.Max) / 2
}

type ExerciseTemplate struct {
	Name           string        `json:"name"`
	Sets           int           `json:"sets"`
	Reps           RepRange      `json:"reps"`
	Percentage     *PercentRange `json:"percentage,omitempty"`
	TargetRPE      *float64      `json:"target_rpe,omitempty"`
	TargetVelocity *float64      `json:"target_velocity,omitempty"` // m/s
	RestSeconds    int           `json:"rest_seconds"`
	Tempo          string        `json:"tempo,omitempty"`
	IsMainLift     bool          `json:"is_main_lift"`
	LiftType       BaseLift      `json:"lift_type,omitempty"`
	Notes          string        `json:"notes,omitempty"`
}

// TotalWeeks is the number of weeks the whole template spans.
func (t *ProgramTemplate) TotalWeeks() int {
	total := 0
	for _, p := range t.Phases {
		total += p.WeekCount()
	}
	return total
}

// Validate checks the structural invariants of a template.
func (t *ProgramTemplate) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTemplate)
	}
	for _, phase := range t.Phases {
		for _, week := range phase.Weeks {
			if week.WeekNumber < 1 || week.WeekNumber > phase.WeekCount() {
				return fmt.Errorf("%w: phase %q has week %d outside 1..%d",
					ErrInvalidTemplate, phase.Name, week.WeekNumber, phase.WeekCount())
			}
			for _, day := range week.Days {
				for _, ex := range day.Exercises {
					if err := ex.validate(); err != nil {
						return fmt.Errorf("%w: phase %q week %d day %d: %v",
							ErrInvalidTemplate, phase.Name, week.WeekNumber, day.DayNumber, err)
					}
				}
			}
		}
	}
	return nil
}

func (e ExerciseTemplate) validate() error {
	if e.Name == "" {
		return errors.New("exercise name is required")
	}
	if e.Sets < 1 {
		return fmt.Errorf("%s: sets must be positive", e.Name)
	}
	if e.Reps.Min < 1 || e.Reps.Max < e.Reps.Min {
		return fmt.Errorf("%s: invalid rep range %d-%d", e.Name, e.Reps.Min, e.Reps.Max)
	}
	if p := e.Percentage; p != nil && (p.Min < 0 || p.Max > 1.5 || p.Max < p.Min) {
		return fmt.Errorf("%s: invalid percentage range %.2f-%.2f", e.Name, p.Min, p.Max)
	}
	if e.IsMainLift && e.LiftType != 0 && !e.LiftType.Valid() {
		return fmt.Errorf("%s: invalid lift type", e.Name)
	}
	return nil
}

//
// For TOML parsing only
//

type TemplateTOML struct {
	Name            string      `toml:"name"`
	Description     string      `toml:"description"`
	Progression     string      `toml:"progression"`
	WeeklyIncrement *float64    `toml:"weekly_increment,omitempty"`
	VelocityBased   bool        `toml:"velocity_based"`
	Phases          []PhaseTOML `toml:"phase"`
}

type PhaseTOML struct {
	Name           string     `toml:"name"`
	IntensityMin   float64    `toml:"intensity_min"`
	IntensityMax   float64    `toml:"intensity_max"`
	VolumeModifier float64    `toml:"volume_modifier"`
	DurationWeeks  int        `toml:"duration_weeks,omitempty"`
	Weeks          []WeekTOML `toml:"week"`
}

type WeekTOML struct {
	Week   int       `toml:"week"`
	Deload bool      `toml:"deload"`
	Type   string    `toml:"type,omitempty"`
	Days   []DayTOML `toml:"day"`
}

type DayTOML struct {
	Day         int                    `toml:"day"`
	Name        string                 `toml:"name"`
	PrimaryLift string                 `toml:"primary_lift,omitempty"`
	Exercises   []ExerciseTemplateTOML `toml:"exercise"`
}

type ExerciseTemplateTOML struct {
	Name           string   `toml:"name"`
	Sets           int      `toml:"sets"`
	Reps           string   `toml:"reps"`    // "5" or "3-5"
	Percent        string   `toml:"percent"` // "75" or "70-80", in %1RM
	TargetRPE      *float64 `toml:"target_rpe,omitempty"`
	TargetVelocity *float64 `toml:"target_velocity,omitempty"`
	RestSeconds    int      `toml:"rest_seconds"`
	Tempo          string   `toml:"tempo,omitempty"`
	MainLift       bool     `toml:"main_lift"`
	LiftType       string   `toml:"lift_type,omitempty"`
	Notes          string   `toml:"notes,omitempty"`
}

// ToTemplate converts the authored TOML form into a validated template.
func (t TemplateTOML) ToTemplate(id string) (*ProgramTemplate, error) {
	tmpl := &ProgramTemplate{
		ID:          id,
		Name:        t.Name,
		Description: t.Description,
		Progression: ProgressionScheme{
			Type:            ProgressionLinear,
			WeeklyIncrement: t.WeeklyIncrement,
			VelocityBased:   t.VelocityBased,
		},
	}
	if t.Progression != "" {
		if err := tmpl.Progression.Type.UnmarshalText([]byte(t.Progression)); err != nil {
			return nil, err
		}
	}

	for _, pt := range t.Phases {
		phase := Phase{
			Name:           pt.Name,
			Intensity:      IntensityBand{Min: pt.IntensityMin, Max: pt.IntensityMax},
			VolumeModifier: pt.VolumeModifier,
			DurationWeeks:  pt.DurationWeeks,
		}
		if phase.VolumeModifier == 0 {
			phase.VolumeModifier = 1
		}
		for _, wt := range pt.Weeks {
			week := WeekTemplate{WeekNumber: wt.Week, IsDeload: wt.Deload, Type: WeekNormal}
			if wt.Type != "" {
				if err := week.Type.UnmarshalText([]byte(wt.Type)); err != nil {
					return nil, err
				}
			} else if wt.Deload {
				week.Type = WeekDeload
			}
			for _, dt := range wt.Days {
				day := DayTemplate{DayNumber: dt.Day, Name: dt.Name}
				if dt.PrimaryLift != "" {
					lift, err := ParseBaseLift(dt.PrimaryLift)
					if err != nil {
						return nil, err
					}
					day.PrimaryLift = lift
				}
				for _, et := range dt.Exercises {
					ex, err := et.toExercise()
					if err != nil {
						return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTemplate, et.Name, err)
					}
					day.Exercises = append(day.Exercises, ex)
				}
				week.Days = append(week.Days, day)
			}
			phase.Weeks = append(phase.Weeks, week)
		}
		tmpl.Phases = append(tmpl.Phases, phase)
	}

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (e ExerciseTemplateTOML) toExercise() (ExerciseTemplate, error) {
	ex := ExerciseTemplate{
		Name:           e.Name,
		Sets:           e.Sets,
		TargetRPE:      e.TargetRPE,
		TargetVelocity: e.TargetVelocity,
		RestSeconds:    e.RestSeconds,
		Tempo:          e.Tempo,
		IsMainLift:     e.MainLift,
		Notes:          e.Notes,
	}

	lo, hi, err := parseRange(e.Reps)
	if err != nil {
		return ex, fmt.Errorf("reps: %w", err)
	}
	ex.Reps = RepRange{Min: int(lo), Max: int(hi)}

	if e.Percent != "" {
		lo, hi, err := parseRange(e.Percent)
		if err != nil {
			return ex, fmt.Errorf("percent: %w", err)
		}
		ex.Percentage = &PercentRange{Min: lo / 100, Max: hi / 100}
	}

	if e.LiftType != "" {
		lift, err := ParseBaseLift(e.LiftType)
		if err != nil {
			return ex, err
		}
		ex.LiftType = lift
	}
	return ex, nil
}

// parseRange reads "5" or "3-5".
func parseRange(s string) (float64, float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, errors.New("empty range")
	}
	lo, hi, found := strings.Cut(s, "-")
	a, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, 0, err
	}
	if !found {
		return a, a, nil
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
