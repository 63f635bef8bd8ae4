package algo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardizedPCA(t *testing.T) {
	rows := [][]float64{
		{1, 2, 0.5},
		{2, 4.1, 0.4},
		{3, 6.2, 0.9},
		{4, 7.9, 0.1},
		{5, 10.1, 0.6},
	}
	out, err := StandardizedPCA(rows)
	require.NoError(t, err)

	require.Len(t, out.VarianceRatio, 3)
	sum := 0.0
	for i, r := range out.VarianceRatio {
		sum += r
		if i > 0 {
			assert.LessOrEqual(t, r, out.VarianceRatio[i-1])
		}
	}
	assert.InDelta(t, 1, sum, 1e-9)
	// The first two columns are almost collinear.
	assert.Greater(t, out.VarianceRatio[0], 0.6)

	require.Len(t, out.Loadings, 3)
	for j := range 3 {
		best := 0
		for i := range out.Loadings {
			if math.Abs(out.Loadings[i][j]) > math.Abs(out.Loadings[best][j]) {
				best = i
			}
		}
		assert.Positive(t, out.Loadings[best][j])
	}

	require.Len(t, out.Scores, len(rows))
	mean := 0.0
	for _, s := range out.Scores {
		mean += s[0]
	}
	assert.InDelta(t, 0, mean/float64(len(rows)), 1e-9)
}

func TestStandardizedPCAInsufficient(t *testing.T) {
	_, err := StandardizedPCA([][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrInsufficientData)
	_, err = StandardizedPCA([][]float64{{1}, {2}})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestStandardizeConstantColumn(t *testing.T) {
	m := Standardize([][]float64{{1, 3}, {1, 5}})
	assert.Equal(t, 0.0, m.At(0, 0))
	assert.InDelta(t, -1, m.At(0, 1), 1e-12)
	assert.InDelta(t, 1, m.At(1, 1), 1e-12)
}
