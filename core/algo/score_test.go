package algo

import (
	"testing"

	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreIndicator(t *testing.T) {
	tests := []struct {
		name      string
		indicator schema.Indicator
		value     *float64
		expected  *int
	}{
		{name: "nil value", indicator: schema.Radon, value: nil, expected: nil},
		{name: "radon below first breakpoint", indicator: schema.Radon, value: schema.FloatPtr(14.999), expected: schema.IntPtr(11)},
		{name: "radon at inclusive breakpoint", indicator: schema.Radon, value: schema.FloatPtr(15), expected: schema.IntPtr(3)},
		{name: "radon at 150", indicator: schema.Radon, value: schema.FloatPtr(150), expected: schema.IntPtr(1)},
		{name: "radon above all", indicator: schema.Radon, value: schema.FloatPtr(2000), expected: schema.IntPtr(0)},
		{name: "vocs at exclusive breakpoint", indicator: schema.VOCs, value: schema.FloatPtr(10), expected: schema.IntPtr(2)},
		{name: "vocs just above 10", indicator: schema.VOCs, value: schema.FloatPtr(10.0001), expected: schema.IntPtr(6)},
		{name: "vocs at 100", indicator: schema.VOCs, value: schema.FloatPtr(100), expected: schema.IntPtr(6)},
		{name: "vocs above 100", indicator: schema.VOCs, value: schema.FloatPtr(101), expected: schema.IntPtr(22)},
		{name: "co2 above 0.1", indicator: schema.CO2, value: schema.FloatPtr(0.12), expected: schema.IntPtr(22)},
		{name: "o2 at 0.19", indicator: schema.O2, value: schema.FloatPtr(0.19), expected: schema.IntPtr(0)},
		{name: "o2 tiny", indicator: schema.O2, value: schema.FloatPtr(0.001), expected: schema.IntPtr(11)},
		{name: "ch4 at 0.0025", indicator: schema.CH4, value: schema.FloatPtr(0.0025), expected: schema.IntPtr(1)},
		{name: "h2 above 1000", indicator: schema.H2, value: schema.FloatPtr(1200), expected: schema.IntPtr(11)},
		{name: "h2s between 5 and 10", indicator: schema.H2S, value: schema.FloatPtr(7), expected: schema.IntPtr(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreIndicator(tt.indicator, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScoreIndicatorWithoutTable(t *testing.T) {
	_, err := ScoreIndicator(schema.FG, schema.FloatPtr(1))
	assert.ErrorIs(t, err, ErrNoScoreTable)
}

func TestNormalizeValue(t *testing.T) {
	assert.Nil(t, NormalizeValue(schema.VOCs, nil))
	assert.InDelta(t, 1.5e-7, *NormalizeValue(schema.VOCs, schema.FloatPtr(0.00015)), 1e-15)
	assert.InDelta(t, 0.12, *NormalizeValue(schema.CO2, schema.FloatPtr(120000)), 1e-12)
	assert.Equal(t, 10.0, *NormalizeValue(schema.Radon, schema.FloatPtr(10)))
}

// TestScoreMonotonic walks each table over a dense range and checks the polarity.
func TestScoreMonotonic(t *testing.T) {
	decreasing := map[schema.Indicator]bool{schema.Radon: true, schema.O2: true}
	for _, ind := range schema.ScoredIndicators() {
		t.Run(string(ind), func(t *testing.T) {
			table, ok := schema.LookupScoreTable(ind)
			require.True(t, ok)
			last := table.Breakpoints[len(table.Breakpoints)-1].Value
			step := last / 1000
			prev := *ScoreValue(table, schema.FloatPtr(0))
			for v := step; v <= last*1.5; v += step {
				cur := *ScoreValue(table, schema.FloatPtr(v))
				if decreasing[ind] {
					assert.LessOrEqual(t, cur, prev, "value %g", v)
				} else {
					assert.GreaterOrEqual(t, cur, prev, "value %g", v)
				}
				prev = cur
			}
		})
	}
}

func BenchmarkEvaluate(b *testing.B) {
	values := map[schema.Indicator]*float64{
		schema.Radon: schema.FloatPtr(10),
		schema.VOCs:  schema.FloatPtr(50),
		schema.CO2:   schema.FloatPtr(0.12),
	}
	for b.Loop() {
		Evaluate(values)
	}
}
