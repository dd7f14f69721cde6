package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := NewStorage("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func ptr(v float64) *float64 { return &v }

func testProfile() *models.StrengthProfile {
	return &models.StrengthProfile{
		UserID:       "athlete-1",
		Name:         "Ana",
		Gender:       models.GenderFemale,
		BodyweightKg: 63.5,
		Experience:   models.ExperienceIntermediate,
		Current:      models.Maxima{Squat: 120, Bench: 70, Deadlift: 150, Overhead: ptr(45)},
		Goal:         models.Maxima{Squat: 140, Bench: 80, Deadlift: 170},
		Commitment:   models.Commitment{SessionsPerWeek: 4, Effort: 8},
	}
}

func TestNewStorageRejectsEmptyConnection(t *testing.T) {
	_, err := NewStorage("")
	assert.Error(t, err)
}

func TestDriverFor(t *testing.T) {
	assert.Equal(t, "sqlite3", driverFor("file:./local.db?cache=shared&mode=rwc"))
	assert.Equal(t, "sqlite3", driverFor(":memory:"))
	assert.Equal(t, "libsql", driverFor("libsql://prescribe.turso.io?authToken=x"))
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	_, err := st.GetProfile(ctx, "athlete-1")
	assert.ErrorIs(t, err, ErrNotFound)

	p := testProfile()
	require.NoError(t, st.PutProfile(ctx, p))
	assert.False(t, p.UpdatedAt.IsZero())

	got, err := st.GetProfile(ctx, "athlete-1")
	require.NoError(t, err)
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}

	p.Current.Squat = 125
	require.NoError(t, st.PutProfile(ctx, p))
	got, err = st.GetProfile(ctx, "athlete-1")
	require.NoError(t, err)
	assert.Equal(t, 125.0, got.Current.Squat)
}

func TestPutProfileValidates(t *testing.T) {
	st := newTestStorage(t)
	p := testProfile()
	p.Current.Bench = -1
	assert.ErrorIs(t, st.PutProfile(context.Background(), p), models.ErrInvalidProfile)
}

func TestMaxima(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	got, err := st.LoadMaxima(ctx, "athlete-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, st.SaveMaxima(ctx, "athlete-1", map[string]float64{"back squat": 150, "bench press": 100}))
	require.NoError(t, st.SaveMaximum(ctx, "athlete-1", "back squat", 155))

	got, err = st.LoadMaxima(ctx, "athlete-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"back squat": 155, "bench press": 100}, got)
}

func TestMaximaAreKeptPerUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	require.NoError(t, st.SaveMaxima(ctx, "athlete-a", map[string]float64{"back squat": 220}))
	require.NoError(t, st.SaveMaxima(ctx, "athlete-b", map[string]float64{"bench press": 90}))

	a, err := st.LoadMaxima(ctx, "athlete-a")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"back squat": 220}, a)

	b, err := st.LoadMaxima(ctx, "athlete-b")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"bench press": 90}, b)

	none, err := st.LoadMaxima(ctx, "athlete-c")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTestResultsArePerUser(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	at := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, st.SaveTestResults(ctx, "athlete-a", []models.ILBTestResult{{
		ID: "a1", ExerciseID: "back squat", TestWeight: 180, Reps: 5, NewMax: 210, TestedAt: at,
	}}))
	require.NoError(t, st.SaveTestResults(ctx, "athlete-b", []models.ILBTestResult{{
		ID: "b1", ExerciseID: "back squat", TestWeight: 100, Reps: 5, NewMax: 116.7, TestedAt: at,
	}}))

	b, err := st.ListTestResults(ctx, "athlete-b", "back squat", 0)
	require.NoError(t, err)
	require.Len(t, b, 1)
	assert.Equal(t, "b1", b[0].ID)

	c, err := st.ListTestResults(ctx, "athlete-c", "", 0)
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestTestResults(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)
	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	first := models.ILBTestResult{
		ID: "r1", ExerciseID: "squat", ExerciseName: "Back Squat",
		TestWeight: 140, Reps: 5, NewMax: 157.5, TestedAt: day,
	}
	second := models.ILBTestResult{
		ID: "r2", ExerciseID: "squat", ExerciseName: "Back Squat",
		TestWeight: 145, Reps: 5, PreviousMax: ptr(157.5), NewMax: 163.1,
		ChangeAbsolute: ptr(5.6), ChangePercent: ptr(3.56), TestedAt: day.Add(7 * 24 * time.Hour),
	}
	bench := models.ILBTestResult{
		ID: "r3", ExerciseID: "bench", ExerciseName: "Bench Press",
		TestWeight: 90, Reps: 3, NewMax: 95.4, TestedAt: day,
	}
	require.NoError(t, st.SaveTestResults(ctx, "athlete-1", []models.ILBTestResult{first, second, bench}))
	// Saving the same ids again is a no-op.
	require.NoError(t, st.SaveTestResults(ctx, "athlete-1", []models.ILBTestResult{first}))

	squat, err := st.ListTestResults(ctx, "athlete-1", "squat", 0)
	require.NoError(t, err)
	if diff := cmp.Diff([]models.ILBTestResult{second, first}, squat); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}

	all, err := st.ListTestResults(ctx, "athlete-1", "", 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "r2", all[0].ID)
}

const templateTOML = `
name = "Wave"
progression = "percentage_wave"

[[phase]]
name = "Accumulation"

  [[phase.week]]
  week = 1

    [[phase.week.day]]
    day = 1
    primary_lift = "squat"

      [[phase.week.day.exercise]]
      name = "Back Squat"
      sets = 5
      reps = "5"
      percent = "70"
      main_lift = true
      lift_type = "squat"
`

func TestTemplates(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	tmpl, err := st.ImportTemplate(ctx, []byte(templateTOML))
	require.NoError(t, err)
	assert.NotEmpty(t, tmpl.ID)

	byName, err := st.GetTemplate(ctx, "Wave")
	require.NoError(t, err)
	if diff := cmp.Diff(tmpl, byName); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}

	byID, err := st.GetTemplate(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Wave", byID.Name)

	again, err := st.ImportTemplate(ctx, []byte(templateTOML))
	require.NoError(t, err)
	assert.Equal(t, tmpl.ID, again.ID)

	list, err := st.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Wave", list[0].Name)

	_, err = st.GetTemplate(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.ImportTemplate(ctx, []byte(`name = "Bad"
progression = "sideways"`))
	assert.ErrorIs(t, err, models.ErrUnknownProgression)
}

func testProgram() *models.PersonalizedProgram {
	return &models.PersonalizedProgram{
		ID:           "prog-1",
		UserID:       "athlete-1",
		TemplateID:   "tmpl-1",
		TemplateName: "Wave",
		StartingMaxima: models.Maxima{
			Squat: 150, Bench: 100, Deadlift: 180,
		},
		CurrentWeek: 1,
		CurrentDay:  1,
		Status:      models.StatusActive,
		Workouts: []models.PersonalizedWorkout{{
			Week: 1, Day: 1, PhaseName: "Accumulation", WeekType: models.WeekNormal,
			Exercises: []models.PersonalizedExercise{{Name: "Back Squat", Sets: 5, TargetReps: 5, Percentage: ptr(0.7), WeightKg: ptr(105)}},
		}},
		Milestones: []models.Milestone{{Week: 1, Label: models.MilestoneProgramComplete, Phase: "Accumulation"}},
		CreatedAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPrograms(t *testing.T) {
	ctx := context.Background()
	st := newTestStorage(t)

	p := testProgram()
	require.NoError(t, st.SaveProgram(ctx, p))

	got, err := st.GetProgram(ctx, "prog-1")
	require.NoError(t, err)
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}

	active, err := st.GetActiveProgram(ctx, "athlete-1")
	require.NoError(t, err)
	assert.Equal(t, "prog-1", active.ID)

	require.NoError(t, p.Pause())
	require.NoError(t, st.SaveProgram(ctx, p))
	_, err = st.GetActiveProgram(ctx, "athlete-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExportAndRebuild(t *testing.T) {
	ctx := context.Background()
	src := newTestStorage(t)

	require.NoError(t, src.PutProfile(ctx, testProfile()))
	require.NoError(t, src.SaveMaxima(ctx, "athlete-1", map[string]float64{"back squat": 150}))
	require.NoError(t, src.SaveTestResults(ctx, "athlete-1", []models.ILBTestResult{{
		ID: "r1", ExerciseID: "back squat", TestWeight: 140, Reps: 5, NewMax: 157.5,
		TestedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}}))
	_, err := src.ImportTemplate(ctx, []byte(templateTOML))
	require.NoError(t, err)
	require.NoError(t, src.SaveProgram(ctx, testProgram()))

	path := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, src.ExportDBToTOML(ctx, path))

	dst := newTestStorage(t)
	require.NoError(t, dst.SaveMaximum(ctx, "athlete-1", "stale", 1))
	require.NoError(t, dst.ImportDBFromTOML(ctx, path))

	wantDump, err := src.Dump(ctx)
	require.NoError(t, err)
	gotDump, err := dst.Dump(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(wantDump, gotDump); diff != "" {
		t.Errorf("dump mismatch (-want +got):\n%s", diff)
	}

	results, err := dst.ListTestResults(ctx, "athlete-1", "back squat", 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].PreviousMax)
}

func TestRestoreRejectsUnknownTable(t *testing.T) {
	st := newTestStorage(t)
	err := st.Restore(context.Background(), map[string][]map[string]any{"users": nil})
	assert.Error(t, err)
}
