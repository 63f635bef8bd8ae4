package core

import (
	"context"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sdphc/sdphc/core/algo"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPCA(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig(t)
	sv := loadTestSurvey(t, cfg)
	sv.Boundary = orb.MultiPolygon{{{{0, 0}, {100, 0}, {100, 100}, {0, 100}, {0, 0}}}}

	result, err := RunPCA(context.Background(), cfg, sv)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, sv.Columns, result.Columns)
	require.Len(t, result.VarianceRatio, 3)
	require.Len(t, result.Loadings, len(sv.Columns))
	require.Len(t, result.Scores, 5)
	assert.Equal(t, "P1", result.Scores[0].PointID)
	assert.InDelta(t, 10.0, result.Scores[0].X, 0)

	// Standardized scores are centred.
	sum := 0.0
	for _, s := range result.Scores {
		sum += s.PCs[0]
	}
	assert.InDelta(t, 0, sum, 1e-9)

	for _, method := range []schema.InterpolationMethod{schema.NearestInterp, schema.IDWInterp} {
		grid, ok := result.Surfaces[method]
		require.True(t, ok, method)
		assert.Len(t, grid.Xs, 100)
		assert.False(t, math.IsNaN(grid.Z[50][50]))
	}
}

func TestRunPCADropsIncompleteRows(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig(t)
	sv := loadTestSurvey(t, cfg)
	sv.Points[1].Values[schema.CO2] = nil

	result, err := RunPCA(context.Background(), cfg, sv)
	require.NoError(t, err)
	require.Len(t, result.Scores, 4)
	for _, s := range result.Scores {
		assert.NotEqual(t, "P2", s.PointID)
	}
}

func TestRunPCAInsufficientData(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig(t)

	tests := []struct {
		name string
		sv   schema.Survey
	}{
		{
			name: "one column",
			sv: schema.Survey{
				Columns: []schema.Indicator{schema.Radon},
				Points: []schema.SamplePoint{
					{ID: "A", Values: map[schema.Indicator]*float64{schema.Radon: schema.FloatPtr(1)}},
					{ID: "B", Values: map[schema.Indicator]*float64{schema.Radon: schema.FloatPtr(2)}},
				},
			},
		},
		{
			name: "one complete row",
			sv: schema.Survey{
				Columns: []schema.Indicator{schema.Radon, schema.VOCs},
				Points: []schema.SamplePoint{
					{ID: "A", Values: map[schema.Indicator]*float64{schema.Radon: schema.FloatPtr(1), schema.VOCs: schema.FloatPtr(3)}},
					{ID: "B", Values: map[schema.Indicator]*float64{schema.Radon: schema.FloatPtr(2)}},
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RunPCA(context.Background(), cfg, tt.sv)
			assert.ErrorIs(t, err, algo.ErrInsufficientData)
		})
	}
}
