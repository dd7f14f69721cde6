package autoreg

import (
	"testing"

	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestExpectedVelocity(t *testing.T) {
	tests := []struct {
		pct  float64
		want float64
	}{
		{0.30, 1.30},
		{0.50, 1.30},
		{0.55, 1.10},
		{0.70, 0.90},
		{0.75, 0.70},
		{0.85, 0.50},
		{0.88, 0.40},
		{0.95, 0.30},
		{0.96, 0.20},
		{1.05, 0.20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpectedVelocity(tt.pct), "pct=%.2f", tt.pct)
	}
}

func TestExpectedVelocityNonIncreasing(t *testing.T) {
	prev := ExpectedVelocity(0)
	for p := 0.0; p <= 1.2; p += 0.01 {
		v := ExpectedVelocity(p)
		assert.LessOrEqual(t, v, prev)
		prev = v
	}
}

func TestSuggestAdjustment(t *testing.T) {
	// Expected at 0.75 is 0.70 m/s.
	tests := []struct {
		name     string
		measured float64
		action   Action
		delta    float64
	}{
		{"much faster", 0.80, IncreaseLarge, 0.05},
		{"faster", 0.76, IncreaseSmall, 0.025},
		{"on target", 0.72, Hold, 0},
		{"slightly slow", 0.67, Hold, 0},
		{"slower", 0.64, DecreaseSmall, -0.025},
		{"much slower", 0.55, DecreaseLarge, -0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SuggestAdjustment(0.75, tt.measured, nil)
			assert.Equal(t, tt.action, s.Action)
			assert.InDelta(t, tt.delta, s.PercentDelta, 1e-9)
			assert.InDelta(t, 0.75+tt.delta, s.TargetPercentage, 1e-9)
			assert.InDelta(t, tt.measured-0.70, s.VelocityDiff, 1e-9)
		})
	}
}

func TestSuggestAdjustmentAdvancedSteps(t *testing.T) {
	profile := &models.StrengthProfile{Experience: models.ExperienceAdvanced}
	s := SuggestAdjustment(0.75, 0.90, profile)
	assert.Equal(t, IncreaseLarge, s.Action)
	assert.InDelta(t, 0.03, s.PercentDelta, 1e-9)

	beginner := &models.StrengthProfile{Experience: models.ExperienceBeginner}
	assert.Equal(t, defaultSteps, StepsFor(beginner))
}
