package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownLift        = errors.New("unknown base lift")
	ErrUnknownProgression = errors.New("unknown progression type")
	ErrUnknownWeekType    = errors.New("unknown week type")
	ErrUnknownStatus      = errors.New("unknown program status")
	ErrUnknownGender      = errors.New("unknown gender")
	ErrUnknownExperience  = errors.New("unknown experience tier")
)

// Each enum starts at 1 so the zero value means "not set".

// BaseLift is one of the four reference lifts every variant is scaled from.
type BaseLift int

const (
	LiftSquat BaseLift = iota + 1
	LiftBench
	LiftDeadlift
	LiftOverhead
)

// AllLifts lists the base lifts in their canonical order.
var AllLifts = []BaseLift{LiftSquat, LiftBench, LiftDeadlift, LiftOverhead}

var liftNames = []string{"", "squat", "bench", "deadlift", "overhead"}

func (l BaseLift) String() string { return enumName(liftNames, int(l)) }

func (l BaseLift) Valid() bool { return l >= LiftSquat && l <= LiftOverhead }

func (l BaseLift) MarshalText() ([]byte, error) {
	return marshalEnum(liftNames, int(l), ErrUnknownLift)
}

func (l *BaseLift) UnmarshalText(b []byte) error {
	v, err := ParseBaseLift(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseBaseLift accepts the canonical names plus the usual shorthands.
func ParseBaseLift(s string) (BaseLift, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "squat", "back squat":
		return LiftSquat, nil
	case "bench", "bench press", "bench_press":
		return LiftBench, nil
	case "deadlift":
		return LiftDeadlift, nil
	case "overhead", "overhead press", "overhead_press", "ohp", "press":
		return LiftOverhead, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLift, s)
}

// ProgressionType decides how a main lift's percentage moves across weeks.
type ProgressionType int

const (
	ProgressionLinear ProgressionType = iota + 1
	ProgressionPercentageWave
	ProgressionDoubleProgression
	ProgressionRPE
	ProgressionUndulating
)

var progressionNames = []string{"", "linear", "percentage_wave", "double_progression", "rpe", "undulating"}

func (p ProgressionType) String() string { return enumName(progressionNames, int(p)) }

func (p ProgressionType) MarshalText() ([]byte, error) {
	return marshalEnum(progressionNames, int(p), ErrUnknownProgression)
}

func (p *ProgressionType) UnmarshalText(b []byte) error {
	v, err := parseEnum(progressionNames, string(b), ErrUnknownProgression)
	if err != nil {
		return err
	}
	*p = ProgressionType(v)
	return nil
}

// WeekType classifies a template week.
type WeekType int

const (
	WeekNormal WeekType = iota + 1
	WeekDeload
	WeekMaxTest
)

var weekTypeNames = []string{"", "normal", "deload", "max_test"}

func (w WeekType) String() string { return enumName(weekTypeNames, int(w)) }

func (w WeekType) Valid() bool { return w >= WeekNormal && w <= WeekMaxTest }

func (w WeekType) MarshalText() ([]byte, error) {
	return marshalEnum(weekTypeNames, int(w), ErrUnknownWeekType)
}

func (w *WeekType) UnmarshalText(b []byte) error {
	v, err := parseEnum(weekTypeNames, string(b), ErrUnknownWeekType)
	if err != nil {
		return err
	}
	*w = WeekType(v)
	return nil
}

// ProgramStatus is the lifecycle state of a personalized program.
type ProgramStatus int

const (
	StatusActive ProgramStatus = iota + 1
	StatusPaused
	StatusCompleted
	StatusAbandoned
)

var statusNames = []string{"", "active", "paused", "completed", "abandoned"}

func (s ProgramStatus) String() string { return enumName(statusNames, int(s)) }

func (s ProgramStatus) MarshalText() ([]byte, error) {
	return marshalEnum(statusNames, int(s), ErrUnknownStatus)
}

func (s *ProgramStatus) UnmarshalText(b []byte) error {
	v, err := parseEnum(statusNames, string(b), ErrUnknownStatus)
	if err != nil {
		return err
	}
	*s = ProgramStatus(v)
	return nil
}

// Gender selects the Wilks coefficient set.
type Gender int

const (
	GenderMale Gender = iota + 1
	GenderFemale
)

var genderNames = []string{"", "male", "female"}

func (g Gender) String() string { return enumName(genderNames, int(g)) }

func (g Gender) MarshalText() ([]byte, error) {
	return marshalEnum(genderNames, int(g), ErrUnknownGender)
}

func (g *Gender) UnmarshalText(b []byte) error {
	v, err := parseEnum(genderNames, string(b), ErrUnknownGender)
	if err != nil {
		return err
	}
	*g = Gender(v)
	return nil
}

type ExperienceTier int

const (
	ExperienceBeginner ExperienceTier = iota + 1
	ExperienceIntermediate
	ExperienceAdvanced
	ExperienceElite
)

var experienceNames = []string{"", "beginner", "intermediate", "advanced", "elite"}

func (e ExperienceTier) String() string { return enumName(experienceNames, int(e)) }

func (e ExperienceTier) MarshalText() ([]byte, error) {
	return marshalEnum(experienceNames, int(e), ErrUnknownExperience)
}

func (e *ExperienceTier) UnmarshalText(b []byte) error {
	v, err := parseEnum(experienceNames, string(b), ErrUnknownExperience)
	if err != nil {
		return err
	}
	*e = ExperienceTier(v)
	return nil
}

func enumName(names []string, v int) string {
	if v <= 0 || v >= len(names) {
		return "unknown"
	}
	return names[v]
}

func marshalEnum(names []string, v int, sentinel error) ([]byte, error) {
	if v <= 0 || v >= len(names) {
		return nil, fmt.Errorf("%w: %d", sentinel, v)
	}
	return []byte(names[v]), nil
}

func parseEnum(names []string, s string, sentinel error) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", sentinel, s)
}
