// Package algo has the pure scoring, classification and statistics routines.
package algo

import (
	"errors"
	"fmt"
	"math"

	"github.com/sdphc/sdphc/schema"
)

// ErrNoScoreTable is returned when an indicator has no breakpoint table.
var ErrNoScoreTable = errors.New("indicator has no score table")

// ScoreValue maps a measurement onto the discrete score of a table.
// A nil or NaN value has no score.
func ScoreValue(table schema.ScoreTable, v *float64) *int {
	if v == nil || math.IsNaN(*v) {
		return nil
	}
	x := *v
	for i, bp := range table.Breakpoints {
		if x < bp.Value || (x == bp.Value && !bp.InclusiveLeft) {
			s := table.Scores[i]
			return &s
		}
	}
	s := table.Scores[len(table.Breakpoints)]
	return &s
}

// ScoreIndicator scores an already-normalized value of an indicator.
func ScoreIndicator(ind schema.Indicator, v *float64) (*int, error) {
	table, ok := schema.LookupScoreTable(ind)
	if !ok {
		return nil, fmt.Errorf("%s: %w", ind, ErrNoScoreTable)
	}
	return ScoreValue(table, v), nil
}

// NormalizeValue converts a raw survey value into the unit of its score table.
func NormalizeValue(ind schema.Indicator, v *float64) *float64 {
	if v == nil {
		return nil
	}
	n := *v / schema.UnitDivisor(ind)
	return &n
}

// NormalizeValues applies NormalizeValue to every entry of a value map.
func NormalizeValues(values map[schema.Indicator]*float64) map[schema.Indicator]*float64 {
	out := make(map[schema.Indicator]*float64, len(values))
	for ind, v := range values {
		out[ind] = NormalizeValue(ind, v)
	}
	return out
}
