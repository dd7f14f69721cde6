package calibration

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/misterclayt0n/prescribe/internal/onerm"
	"github.com/misterclayt0n/prescribe/internal/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *MaxStore) *Service {
	n := 0
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return NewService(store,
		WithClock(func() time.Time { return fixed }),
		WithIDs(func() string {
			n++
			return fmt.Sprintf("result-%d", n)
		}),
	)
}

func TestProcessAMRAPResultWithoutHistory(t *testing.T) {
	store := NewMaxStore()
	svc := newTestService(store)
	svc.StartSession()

	first, err := svc.ProcessAMRAPResult(Attempt{ExerciseID: "squat", ExerciseName: "Back Squat", Weight: 120, Reps: 5})
	require.NoError(t, err)
	assert.Nil(t, first.PreviousMax)
	assert.Nil(t, first.ChangeAbsolute)
	assert.Nil(t, first.ChangePercent)
	assert.Equal(t, models.OutcomeNoHistory, first.Outcome())
	assert.InDelta(t, 140.0, first.NewMax, 1e-9)

	cached, ok := store.Get("squat")
	require.True(t, ok)
	assert.Equal(t, first.NewMax, cached)

	second, err := svc.ProcessAMRAPResult(Attempt{ExerciseID: "squat", Weight: 125, Reps: 5})
	require.NoError(t, err)
	require.NotNil(t, second.PreviousMax)
	assert.Equal(t, first.NewMax, *second.PreviousMax)
	require.NotNil(t, second.ChangeAbsolute)
	assert.InDelta(t, onerm.Estimate1RM(125, 5)-140, *second.ChangeAbsolute, 1e-9)
	assert.Equal(t, models.OutcomeImproved, second.Outcome())

	assert.Len(t, svc.Results(), 2)
}

func TestMaxStoreKeepsOnlyPositiveMaxima(t *testing.T) {
	store := NewMaxStore()
	store.Load(map[string]float64{"squat": 0, "bench": -5, "deadlift": 200})
	_, ok := store.Get("squat")
	assert.False(t, ok)
	_, ok = store.Get("bench")
	assert.False(t, ok)
	assert.Equal(t, 1, store.Len())

	store.Set("deadlift", 0)
	_, ok = store.Get("deadlift")
	assert.False(t, ok)
}

func TestZeroMaximumReportsNoHistory(t *testing.T) {
	store := NewMaxStore()
	store.Load(map[string]float64{"squat": 0})
	svc := newTestService(store)
	svc.StartSession()

	res, err := svc.ProcessAMRAPResult(Attempt{ExerciseID: "squat", Weight: 100, Reps: 5})
	require.NoError(t, err)
	assert.Nil(t, res.PreviousMax)
	assert.Equal(t, models.OutcomeNoHistory, res.Outcome())
}

func TestOutcomeToleranceBand(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		outcome models.Outcome
	}{
		{"improved", 102.5, models.OutcomeImproved},
		{"unchanged", 100, models.OutcomeStable},
		{"small drop", 98.5, models.OutcomeStable},
		{"decline", 97.5, models.OutcomeDeclined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMaxStore()
			store.Set("bench", 100)
			svc := newTestService(store)
			svc.StartSession()

			res, err := svc.ProcessAMRAPResult(Attempt{ExerciseID: "bench", Weight: tt.weight, Reps: 1})
			require.NoError(t, err)
			assert.Equal(t, tt.outcome, res.Outcome())
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(NewMaxStore())
	assert.Equal(t, StateIdle, svc.State())

	_, err := svc.ProcessAMRAPResult(Attempt{ExerciseID: "squat", Weight: 100, Reps: 3})
	assert.ErrorIs(t, err, ErrSessionNotActive)

	_, err = svc.EndSession()
	assert.ErrorIs(t, err, ErrSessionNotActive)

	svc.StartSession()
	assert.Equal(t, StateActive, svc.State())
	_, err = svc.ProcessAMRAPResult(Attempt{ExerciseID: "squat", Weight: 100, Reps: 3})
	require.NoError(t, err)

	results, err := svc.EndSession()
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, StateClosed, svc.State())

	_, err = svc.ProcessAMRAPResult(Attempt{ExerciseID: "squat", Weight: 100, Reps: 3})
	assert.ErrorIs(t, err, ErrSessionNotActive)

	svc.StartSession()
	assert.Empty(t, svc.Results(), "a new session starts empty")
}

func TestProcessAMRAPResultRejectsInvalidAttempts(t *testing.T) {
	store := NewMaxStore()
	svc := newTestService(store)
	svc.StartSession()

	for _, a := range []Attempt{
		{ExerciseID: "squat", Weight: 0, Reps: 5},
		{ExerciseID: "squat", Weight: 100, Reps: 0},
		{ExerciseID: "", Weight: 100, Reps: 5},
	} {
		_, err := svc.ProcessAMRAPResult(a)
		assert.ErrorIs(t, err, ErrInvalidAttempt)
	}
	assert.Equal(t, 0, store.Len())
}

func TestResume(t *testing.T) {
	svc := newTestService(NewMaxStore())
	prior := []models.ILBTestResult{{ID: "a", ExerciseID: "bench", NewMax: 100}}

	require.NoError(t, svc.Resume(prior))
	assert.Equal(t, StateActive, svc.State())
	assert.Equal(t, prior, svc.Results())
	assert.ErrorIs(t, svc.Resume(prior), ErrSessionActive)
}

func TestSelectBestAMRAP(t *testing.T) {
	assert.Nil(t, SelectBestAMRAP(nil))

	results := []models.ILBTestResult{
		{ID: "a", NewMax: 150},
		{ID: "b", NewMax: 162},
		{ID: "c", NewMax: 140},
	}
	orders := [][]int{{0, 1, 2}, {1, 0, 2}, {2, 0, 1}, {2, 1, 0}}
	for _, order := range orders {
		var shuffled []models.ILBTestResult
		for _, i := range order {
			shuffled = append(shuffled, results[i])
		}
		best := SelectBestAMRAP(shuffled)
		require.NotNil(t, best)
		assert.Equal(t, "b", best.ID)
		assert.Equal(t, 162.0, best.NewMax)
	}
}

func TestGenerateWarmupSets(t *testing.T) {
	sets := GenerateWarmupSets(143, 2.5)
	require.Len(t, sets, 4)

	want := []WarmupSet{
		{Percentage: 0.50, Reps: 8, WeightKg: 72.5},
		{Percentage: 0.60, Reps: 5, WeightKg: 85},
		{Percentage: 0.70, Reps: 3, WeightKg: 100},
		{Percentage: 0.80, Reps: 2, WeightKg: 115},
	}
	for i := range want {
		assert.Equal(t, want[i].Percentage, sets[i].Percentage)
		assert.Equal(t, want[i].Reps, sets[i].Reps)
		assert.InDelta(t, want[i].WeightKg, sets[i].WeightKg, 1e-9)
	}
}

func TestIsEligibleForTest(t *testing.T) {
	assert.True(t, IsEligibleForTest("Back Squat"))
	assert.True(t, IsEligibleForTest("Paused Bench"))
	assert.False(t, IsEligibleForTest("Bicep Curl"))
	assert.False(t, IsEligibleForTest("Leg Press"))
	assert.False(t, IsEligibleForTest("Bulgarian Split Squat"))
}

func TestApplyToProfile(t *testing.T) {
	profile := &models.StrengthProfile{
		UserID:  "u1",
		Current: models.Maxima{Squat: 140, Bench: 100, Deadlift: 180},
	}
	results := []models.ILBTestResult{
		{ExerciseID: "fs", ExerciseName: "Front Squat", NewMax: 127.5},
		{ExerciseID: "fs", ExerciseName: "Front Squat", NewMax: 119},
		{ExerciseID: "bp", ExerciseName: "Bench Press", NewMax: 105},
		{ExerciseID: "curl", ExerciseName: "Bicep Curl", NewMax: 50},
	}

	updated := ApplyToProfile(profile, results, relation.New())
	assert.Equal(t, []models.BaseLift{models.LiftSquat, models.LiftBench}, updated)
	assert.InDelta(t, 150.0, profile.Current.Squat, 1e-9)
	assert.Equal(t, 105.0, profile.Current.Bench)
	assert.Equal(t, 180.0, profile.Current.Deadlift)
}

func TestConcurrentAttempts(t *testing.T) {
	store := NewMaxStore()
	svc := NewService(store)
	svc.StartSession()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.ProcessAMRAPResult(Attempt{ExerciseID: "squat", Weight: 100 + float64(i), Reps: 1})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	results, err := svc.EndSession()
	require.NoError(t, err)
	require.Len(t, results, 50)

	// Every result except the first saw exactly one predecessor's value.
	var withoutHistory int
	for _, r := range results {
		if r.PreviousMax == nil {
			withoutHistory++
		}
	}
	assert.Equal(t, 1, withoutHistory)
}
