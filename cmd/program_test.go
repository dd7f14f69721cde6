package cmd

import (
	"testing"

	"github.com/misterclayt0n/prescribe/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePerformedSets(t *testing.T) {
	got, err := parsePerformedSets([]string{"1:140x5@8", "1:140X5", "3:60x12"}, 3)
	require.NoError(t, err)

	rpe := 8.0
	assert.Equal(t, [][]models.PerformedSet{
		{{WeightKg: 140, Reps: 5, RPE: &rpe}, {WeightKg: 140, Reps: 5}},
		nil,
		{{WeightKg: 60, Reps: 12}},
	}, got)
}

func TestParsePerformedSetsEmpty(t *testing.T) {
	got, err := parsePerformedSets(nil, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParsePerformedSetsRejects(t *testing.T) {
	for _, entry := range []string{"140x5", "0:140x5", "4:140x5", "1:140", "1:abcx5", "1:140x0", "1:140x5@11"} {
		_, err := parsePerformedSets([]string{entry}, 3)
		assert.Error(t, err, entry)
	}
}
