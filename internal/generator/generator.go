// Package generator expands a program template into a personalized program
// for one athlete.
package generator

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/misterclayt0n/prescribe/internal/autoreg"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/onerm"
)

const (
	DefaultPercentage      = 0.75
	DefaultWeeklyIncrement = 0.02
)

type Config struct {
	Increment              float64 // Load rounding step in kg.
	DefaultPercentage      float64 // Main lifts without a percentage range.
	DefaultWeeklyIncrement float64 // Percentage-wave step when the template has none.
}

func (c Config) withDefaults() Config {
	if c.Increment <= 0 {
		c.Increment = onerm.DefaultIncrement
	}
	if c.DefaultPercentage <= 0 {
		c.DefaultPercentage = DefaultPercentage
	}
	if c.DefaultWeeklyIncrement <= 0 {
		c.DefaultWeeklyIncrement = DefaultWeeklyIncrement
	}
	return c
}

type Generator struct {
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Generator)

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

func WithIDs(newID func() string) Option {
	return func(g *Generator) { g.newID = newID }
}

func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{
		cfg:    cfg.withDefaults(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate walks phases, weeks, days and exercises in template order and
// prescribes every exercise against the profile's current maxima. The
// profile's maxima are copied into the program and not read again.
func (g *Generator) Generate(profile *models.StrengthProfile, tmpl *models.ProgramTemplate) (*models.PersonalizedProgram, error) {
	program := &models.PersonalizedProgram{
		ID:             g.newID(),
		UserID:         profile.UserID,
		TemplateID:     tmpl.ID,
		TemplateName:   tmpl.Name,
		StartingMaxima: profile.Current,
		Status:         models.StatusActive,
		CreatedAt:      g.now(),
	}
	if profile.Current.Overhead != nil {
		v := *profile.Current.Overhead
		program.StartingMaxima.Overhead = &v
	}

	offset := 0
	for i, phase := range tmpl.Phases {
		for _, week := range phase.Weeks {
			absWeek := offset + week.WeekNumber
			for _, day := range week.Days {
				workout := models.PersonalizedWorkout{
					Week:      absWeek,
					Day:       day.DayNumber,
					PhaseName: phase.Name,
					WeekType:  weekType(week),
					IsDeload:  week.IsDeload,
				}
				for _, ex := range day.Exercises {
					pe, err := g.prescribe(program.StartingMaxima, tmpl.Progression, ex, absWeek)
					if err != nil {
						return nil, fmt.Errorf("phase %q week %d day %d: %w", phase.Name, absWeek, day.DayNumber, err)
					}
					workout.Exercises = append(workout.Exercises, pe)
				}
				program.Workouts = append(program.Workouts, workout)
			}
		}

		offset += phase.WeekCount()
		label := models.MilestonePhaseComplete
		if i == len(tmpl.Phases)-1 {
			label = models.MilestoneProgramComplete
		}
		program.Milestones = append(program.Milestones, models.Milestone{Week: offset, Label: label, Phase: phase.Name})
	}

	if len(program.Workouts) > 0 {
		program.CurrentWeek = program.Workouts[0].Week
		program.CurrentDay = program.Workouts[0].Day
	}

	g.logger.Debug("program generated",
		"user", profile.UserID,
		"template", tmpl.Name,
		"weeks", offset,
		"workouts", len(program.Workouts),
	)
	return program, nil
}

func (g *Generator) prescribe(maxima models.Maxima, scheme models.ProgressionScheme, ex models.ExerciseTemplate, absWeek int) (models.PersonalizedExercise, error) {
	pe := models.PersonalizedExercise{
		Name:           ex.Name,
		Sets:           ex.Sets,
		TargetReps:     ex.Reps.Midpoint(),
		TargetRPE:      ex.TargetRPE,
		TargetVelocity: ex.TargetVelocity,
		RestSeconds:    ex.RestSeconds,
		Tempo:          ex.Tempo,
		Notes:          ex.Notes,
	}
	if !ex.IsMainLift || !ex.LiftType.Valid() {
		return pe, nil
	}

	pct := g.cfg.DefaultPercentage
	if ex.Percentage != nil {
		pct = ex.Percentage.Midpoint()
	}
	pct = g.progress(pct, scheme, absWeek)

	base, err := maxima.For(ex.LiftType)
	if err != nil {
		return pe, err
	}
	weight := onerm.RoundToPlate(base*pct, g.cfg.Increment)
	pe.Percentage = &pct
	pe.WeightKg = &weight

	if scheme.VelocityBased {
		v := autoreg.ExpectedVelocity(pct)
		pe.TargetVelocity = &v
	}
	return pe, nil
}

// weekType defaults an unset week classification from the deload flag.
func weekType(w models.WeekTemplate) models.WeekType {
	switch {
	case w.Type.Valid():
		return w.Type
	case w.IsDeload:
		return models.WeekDeload
	default:
		return models.WeekNormal
	}
}

// progress applies the progression scheme to a week's base percentage.
// Schemes other than percentage-wave leave it unchanged.
func (g *Generator) progress(pct float64, scheme models.ProgressionScheme, absWeek int) float64 {
	switch scheme.Type {
	case models.ProgressionPercentageWave:
		inc := g.cfg.DefaultWeeklyIncrement
		if scheme.WeeklyIncrement != nil {
			inc = *scheme.WeeklyIncrement
		}
		return pct + float64(absWeek-1)*inc
	default:
		return pct
	}
}
