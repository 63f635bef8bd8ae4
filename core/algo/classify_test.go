package algo

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(pairs map[schema.Indicator]float64) map[schema.Indicator]*float64 {
	out := make(map[schema.Indicator]*float64, len(pairs))
	for ind, v := range pairs {
		out[ind] = schema.FloatPtr(v)
	}
	return NormalizeValues(out)
}

func TestEvaluateAllMissing(t *testing.T) {
	rec := Evaluate(map[schema.Indicator]*float64{schema.Radon: schema.FloatPtr(10)})
	assert.Equal(t, 0, rec.OtherSoilGasScore)
	assert.Nil(t, rec.AllIndicatorScore)
	assert.Equal(t, schema.BelowThresholdLabel, rec.Label)
	assert.False(t, rec.ScopeOfContamination)
	assert.False(t, rec.Exceedance)
}

func TestEvaluateTinyVOCs(t *testing.T) {
	rec := Evaluate(raw(map[schema.Indicator]float64{schema.VOCs: 0.00015}))
	require.NotNil(t, rec.Score(schema.VOCs))
	assert.Equal(t, 0, *rec.Score(schema.VOCs))
}

func TestEvaluateScopeOnly(t *testing.T) {
	rec := Evaluate(raw(map[schema.Indicator]float64{
		schema.Radon: 10,
		schema.VOCs:  150, // 0.15 ppm
	}))
	assert.Equal(t, 1, *rec.Score(schema.VOCs))
	assert.Equal(t, 1, rec.OtherSoilGasScore)
	assert.Nil(t, rec.AllIndicatorScore)
	assert.Equal(t, schema.BelowThresholdLabel, rec.Label)
	assert.True(t, rec.ScopeOfContamination)
}

func TestEvaluateSource(t *testing.T) {
	rec := Evaluate(raw(map[schema.Indicator]float64{
		schema.Radon: 10,
		schema.CO2:   120000,
		schema.VOCs:  50000, // 50 ppm
	}))
	assert.Equal(t, 11, *rec.Score(schema.Radon))
	assert.Equal(t, 22, *rec.Score(schema.CO2))
	assert.Equal(t, 6, *rec.Score(schema.VOCs))
	assert.Equal(t, 28, rec.OtherSoilGasScore)
	require.NotNil(t, rec.AllIndicatorScore)
	assert.Equal(t, 39, *rec.AllIndicatorScore)
	assert.Equal(t, schema.SourceLabel, rec.Label)
	assert.True(t, rec.Exceedance)
}

func TestEvaluateIdempotent(t *testing.T) {
	values := raw(map[schema.Indicator]float64{
		schema.Radon: 200,
		schema.VOCs:  2000,
		schema.CH4:   0.02,
	})
	first := Evaluate(values)
	second := Evaluate(values)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Evaluate mismatch (-first +second):\n%s", diff)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		all      *int
		radon    *int
		vocs     *int
		expected schema.ContaminationLabel
	}{
		{"no composite", nil, schema.IntPtr(11), schema.IntPtr(6), schema.BelowThresholdLabel},
		{"source", schema.IntPtr(17), schema.IntPtr(1), nil, schema.SourceLabel},
		{"high composite without radon score falls to suspect", schema.IntPtr(20), schema.IntPtr(0), schema.IntPtr(1), schema.SuspectedSourceLabel},
		{"suspect", schema.IntPtr(8), schema.IntPtr(0), schema.IntPtr(2), schema.SuspectedSourceLabel},
		{"suspect needs vocs", schema.IntPtr(8), schema.IntPtr(0), schema.IntPtr(0), schema.BelowThresholdLabel},
		{"suspect with missing vocs", schema.IntPtr(8), schema.IntPtr(0), nil, schema.BelowThresholdLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.all, tt.radon, tt.vocs))
		})
	}
}

func TestAllIndicatorScore(t *testing.T) {
	assert.Nil(t, AllIndicatorScore(5, schema.IntPtr(11)))
	assert.Nil(t, AllIndicatorScore(6, nil))
	assert.Equal(t, 9, *AllIndicatorScore(6, schema.IntPtr(3)))
}
