package schema

import "fmt"

// Breakpoint is one boundary of a score table.
// InclusiveLeft means a value equal to the boundary belongs to the bracket above it.
type Breakpoint struct {
	Value         float64 `json:"value" yaml:"value"`
	InclusiveLeft bool    `json:"inclusive_left" yaml:"inclusive_left"`
}

// ScoreTable maps a continuous measurement onto a discrete score.
// len(Scores) is always len(Breakpoints)+1.
type ScoreTable struct {
	Breakpoints []Breakpoint `json:"breakpoints" yaml:"breakpoints"`
	Scores      []int        `json:"scores" yaml:"scores"`
	Unit        string       `json:"unit" yaml:"unit"` // unit after normalization
}

// Validate checks the ordering and length invariants of the table.
func (t ScoreTable) Validate() error {
	if len(t.Scores) != len(t.Breakpoints)+1 {
		return fmt.Errorf("score table has %d scores for %d breakpoints", len(t.Scores), len(t.Breakpoints))
	}
	for i := 1; i < len(t.Breakpoints); i++ {
		if t.Breakpoints[i].Value <= t.Breakpoints[i-1].Value {
			return fmt.Errorf("breakpoint %d (%g) is not greater than breakpoint %d (%g)",
				i, t.Breakpoints[i].Value, i-1, t.Breakpoints[i-1].Value)
		}
	}
	return nil
}

var scoreTables = map[Indicator]ScoreTable{
	Radon: {
		Breakpoints: []Breakpoint{{15, true}, {150, true}, {1500, true}},
		Scores:      []int{11, 3, 1, 0},
		Unit:        "Bq/m³",
	},
	VOCs: {
		Breakpoints: []Breakpoint{{0.1, false}, {1, false}, {10, false}, {100, false}},
		Scores:      []int{0, 1, 2, 6, 22},
		Unit:        "ppm",
	},
	CO2: {
		Breakpoints: []Breakpoint{{0.01, false}, {0.05, false}, {0.1, false}},
		Scores:      []int{0, 2, 6, 22},
		Unit:        "%",
	},
	O2: {
		Breakpoints: []Breakpoint{{0.01, true}, {0.1, true}, {0.19, true}},
		Scores:      []int{11, 3, 1, 0},
		Unit:        "%",
	},
	CH4: {
		Breakpoints: []Breakpoint{{0.0001, false}, {0.0025, false}, {0.01, false}, {0.05, false}},
		Scores:      []int{0, 1, 2, 6, 22},
		Unit:        "%",
	},
	H2: {
		Breakpoints: []Breakpoint{{100, false}, {500, false}, {1000, false}},
		Scores:      []int{0, 1, 3, 11},
		Unit:        "ppm",
	},
	H2S: {
		Breakpoints: []Breakpoint{{1, false}, {5, false}, {10, false}},
		Scores:      []int{0, 1, 3, 11},
		Unit:        "ppm",
	},
}

// unitDivisors converts raw survey units into the units of the score tables.
var unitDivisors = map[Indicator]float64{
	VOCs: 1000,      // ppb -> ppm
	CO2:  1_000_000, // ppm -> fraction
}

// LookupScoreTable returns the score table of an indicator.
// The returned table shares no memory with the package tables.
func LookupScoreTable(ind Indicator) (ScoreTable, bool) {
	t, ok := scoreTables[ind]
	if !ok {
		return ScoreTable{}, false
	}
	return ScoreTable{
		Breakpoints: append([]Breakpoint(nil), t.Breakpoints...),
		Scores:      append([]int(nil), t.Scores...),
		Unit:        t.Unit,
	}, true
}

// ScoredIndicators returns the indicators that carry a score table, in catalogue order.
func ScoredIndicators() []Indicator {
	var out []Indicator
	for _, ind := range AllIndicators() {
		if _, ok := scoreTables[ind]; ok {
			out = append(out, ind)
		}
	}
	return out
}

// UnitDivisor returns the divisor applied to raw values before scoring (1 when none).
func UnitDivisor(ind Indicator) float64 {
	if d, ok := unitDivisors[ind]; ok {
		return d
	}
	return 1
}
