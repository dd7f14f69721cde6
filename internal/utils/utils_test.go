package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_ilb.toml")
	assert.False(t, sessionExists(path))

	prev, abs, pct := 150.0, 7.5, 5.0
	state := &SessionState{
		UserID:    "athlete-1",
		StartedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		Results: []models.ILBTestResult{
			{
				ID: "r1", ExerciseID: "back squat", ExerciseName: "Back Squat",
				TestWeight: 140, Reps: 5, PreviousMax: &prev, NewMax: 157.5,
				ChangeAbsolute: &abs, ChangePercent: &pct,
				TestedAt: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
			},
			{
				ID: "r2", ExerciseID: "bench press", ExerciseName: "Bench Press",
				TestWeight: 90, Reps: 3, NewMax: 95.4,
				TestedAt: time.Date(2025, 3, 1, 9, 45, 0, 0, time.UTC),
			},
		},
	}
	require.NoError(t, saveSessionState(path, state))
	assert.True(t, sessionExists(path))

	got, err := loadSessionState(path)
	require.NoError(t, err)
	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTemplateFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tmpl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Minimal"

[[phase]]
name = "Only"
duration_weeks = 2
`), 0644))

	tmpl, err := ParseTemplateFromTOML(path)
	require.NoError(t, err)
	assert.Equal(t, "Minimal", tmpl.Name)
	assert.Equal(t, models.ProgressionLinear, tmpl.Progression.Type)
	assert.Equal(t, 2, tmpl.TotalWeeks())
}

func TestParseProfileFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
user_id = "me"
[current]
squat = 100
bench = -3
`), 0644))

	_, err := ParseProfileFromTOML(path)
	assert.ErrorIs(t, err, models.ErrInvalidProfile)
}

func TestExerciseID(t *testing.T) {
	assert.Equal(t, "back squat", ExerciseID("  Back   Squat "))
	assert.Equal(t, "ohp", ExerciseID("OHP"))
}
