package core

import (
	"context"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestSurvey(t *testing.T, cfg *contract.Config) schema.Survey {
	t.Helper()
	sv, err := LoadSurvey(cfg)
	require.NoError(t, err)
	return sv
}

func TestScorePoint(t *testing.T) {
	p := schema.SamplePoint{
		ID: "S1",
		Values: map[schema.Indicator]*float64{
			schema.VOCs: schema.FloatPtr(10_000),
			schema.CO2:  schema.FloatPtr(300_000),
			schema.FG:   schema.FloatPtr(42),
		},
	}
	result := ScorePoint(p)

	assert.InDelta(t, 10_000.0, *p.Values[schema.VOCs], 0, "input values are not modified")
	assert.InDelta(t, 10.0, *result.Value(schema.VOCs), 1e-9)
	assert.InDelta(t, 0.3, *result.Value(schema.CO2), 1e-9)
	assert.InDelta(t, 42.0, *result.Value(schema.FG), 0)

	require.NotNil(t, result.Score(schema.VOCs))
	assert.Equal(t, 2, *result.Score(schema.VOCs)) // 10 sits on a right-closed boundary
	assert.Equal(t, 22, *result.Score(schema.CO2))
	assert.Nil(t, result.Score(schema.Radon))
	assert.Equal(t, 24, result.OtherSoilGasScore)
	assert.Nil(t, result.AllIndicatorScore, "radon was not measured")
	assert.Equal(t, schema.BelowThresholdLabel, result.Label)
	assert.True(t, result.Exceedance)
}

func TestRunThreshold(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig(t)
	sv := loadTestSurvey(t, cfg)

	result, err := RunThreshold(context.Background(), cfg, sv)
	require.NoError(t, err)

	ids := make([]string, len(result.Points))
	for i, p := range result.Points {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"P1", "P2", "P3", "P4", "P5"}, ids)

	s := result.Summary
	assert.Equal(t, 5, s.TotalPoints)
	assert.Equal(t, 1, s.LabelCounts[schema.SourceLabel])
	assert.Equal(t, 1, s.LabelCounts[schema.SuspectedSourceLabel])
	assert.Equal(t, 3, s.LabelCounts[schema.BelowThresholdLabel])
	assert.Equal(t, 2, s.ExceedanceCount)
	assert.Equal(t, 28, s.MaxOtherSoilGas)
	require.NotNil(t, s.MaxAllIndicator)
	assert.Equal(t, 39, *s.MaxAllIndicator)

	assert.Nil(t, result.Level, "no boundary, no level surface")
	assert.Empty(t, s.InterpolationUsed)
}

func TestRunThresholdLevelSurface(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig(t)
	sv := loadTestSurvey(t, cfg)
	sv.Boundary = orb.MultiPolygon{{{{0, 0}, {100, 0}, {100, 100}, {0, 0}}}}

	for _, method := range []schema.InterpolationMethod{schema.NearestInterp, schema.IDWInterp} {
		t.Run(string(method), func(t *testing.T) {
			cfg.Interpolation = method
			result, err := RunThreshold(context.Background(), cfg, sv)
			require.NoError(t, err)
			require.NotNil(t, result.Level)
			assert.Equal(t, method, result.Summary.InterpolationUsed)
			assert.Len(t, result.Level.Xs, 300)
			assert.Len(t, result.Level.Ys, 300)

			// Upper-left triangle lies outside the boundary.
			assert.True(t, math.IsNaN(result.Level.Z[299][0]))
			assert.False(t, math.IsNaN(result.Level.Z[10][290]))
		})
	}
}

func TestRunThresholdKrigingFallback(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig(t)
	cfg.Interpolation = schema.KrigingInterp

	// No measurements, so every point has the same level value.
	sv := schema.Survey{
		Points: []schema.SamplePoint{
			{ID: "A", X: 10, Y: 10},
			{ID: "B", X: 90, Y: 10},
			{ID: "C", X: 50, Y: 90},
			{ID: "D", X: 60, Y: 40},
		},
		Boundary: orb.MultiPolygon{{{{0, 0}, {100, 0}, {100, 100}, {0, 100}, {0, 0}}}},
	}

	result, err := RunThreshold(context.Background(), cfg, sv)
	require.NoError(t, err)
	require.NotNil(t, result.Level)
	assert.Equal(t, schema.IDWInterp, result.Summary.InterpolationUsed)
	assert.InDelta(t, 0, result.Level.Z[150][150], 1e-9)
}

func TestRunThresholdCanceled(t *testing.T) {
	quietHeaders(t)
	cfg := testConfig(t)
	sv := loadTestSurvey(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunThreshold(ctx, cfg, sv)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(nil, 3)
	assert.Equal(t, 0, s.TotalPoints)
	assert.Equal(t, 3, s.DroppedPoints)
	assert.Nil(t, s.MaxAllIndicator)
	assert.Len(t, s.LabelCounts, 3)
}
