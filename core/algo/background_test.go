package algo

import (
	"testing"

	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECDF(t *testing.T) {
	got := ECDF([]float64{3, 1, 2, 4})
	require.Len(t, got, 4)
	assert.Equal(t, schema.ECDFPoint{Value: 1, Probability: 0.25}, got[0])
	assert.Equal(t, schema.ECDFPoint{Value: 4, Probability: 1}, got[3])
}

func TestKMeans2(t *testing.T) {
	t.Run("two clear groups", func(t *testing.T) {
		centers, ok := KMeans2([]float64{1, 2, 3, 10, 11, 12})
		require.True(t, ok)
		assert.InDelta(t, 2, centers[0], 1e-9)
		assert.InDelta(t, 11, centers[1], 1e-9)
	})
	t.Run("identical values", func(t *testing.T) {
		centers, ok := KMeans2([]float64{5, 5, 5})
		require.True(t, ok)
		assert.Equal(t, [2]float64{5, 5}, centers)
	})
	t.Run("too few values", func(t *testing.T) {
		_, ok := KMeans2([]float64{5})
		assert.False(t, ok)
	})
}

func TestBackgroundCutoff(t *testing.T) {
	values := []*float64{schema.FloatPtr(1), nil, schema.FloatPtr(3), schema.FloatPtr(10), schema.FloatPtr(12)}
	c := BackgroundCutoff(schema.VOCs, values)
	assert.Equal(t, 4, c.Count)
	require.NotNil(t, c.Value)
	assert.InDelta(t, 6.5, *c.Value, 1e-9)

	empty := BackgroundCutoff(schema.FG, []*float64{schema.FloatPtr(1)})
	assert.Nil(t, empty.Value)
	assert.Equal(t, 1, empty.Count)
}

func TestMark(t *testing.T) {
	cut := schema.FloatPtr(5)
	tests := []struct {
		name     string
		ind      schema.Indicator
		value    *float64
		cutoff   *float64
		expected schema.AnomalyMark
	}{
		{"radon low", schema.Radon, schema.FloatPtr(5), cut, schema.AnomalousMark},
		{"radon high", schema.Radon, schema.FloatPtr(6), cut, schema.NormalMark},
		{"vocs equal is normal", schema.VOCs, schema.FloatPtr(5), cut, schema.NormalMark},
		{"vocs high", schema.VOCs, schema.FloatPtr(5.1), cut, schema.AnomalousMark},
		{"co2 equal is anomalous", schema.CO2, schema.FloatPtr(5), cut, schema.AnomalousMark},
		{"o2 low", schema.O2, schema.FloatPtr(1), cut, schema.AnomalousMark},
		{"ch4 low", schema.CH4, schema.FloatPtr(1), cut, schema.NormalMark},
		{"fg high", schema.FG, schema.FloatPtr(9), cut, schema.AnomalousMark},
		{"missing value", schema.FG, nil, cut, schema.MissingMark},
		{"missing cutoff", schema.FG, schema.FloatPtr(9), nil, schema.MissingMark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Mark(tt.ind, tt.value, tt.cutoff))
		})
	}
}

func TestAnomalyHeader(t *testing.T) {
	assert.Equal(t, "Abnormally Low Radon", AnomalyHeader(schema.Radon))
	assert.Equal(t, "Abnormally High Functional Genes", AnomalyHeader(schema.FG))
	assert.Len(t, AnomalyRules(), len(schema.BackgroundIndicators()))
}
