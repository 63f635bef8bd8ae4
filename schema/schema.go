// Package schema has models, constants and the indicator tables for all parts of sdphc.
package schema

import (
	"time"

	"github.com/paulmach/orb"
)

// SamplePoint is one surveyed location with its optional measurements.
// A nil value means the indicator was not measured at the point.
type SamplePoint struct {
	ID     string                 `json:"id" yaml:"id"`
	X      float64                `json:"x" yaml:"x"`
	Y      float64                `json:"y" yaml:"y"`
	Values map[Indicator]*float64 `json:"values" yaml:"values"`
}

// Value returns the measurement of an indicator, or nil.
func (p SamplePoint) Value(ind Indicator) *float64 {
	if p.Values == nil {
		return nil
	}
	return p.Values[ind]
}

// ScoreRecord holds the per-indicator scores and composites of a point.
type ScoreRecord struct {
	Scores               map[Indicator]*int `json:"scores" yaml:"scores"`
	OtherSoilGasScore    int                `json:"other_soil_gas_score" yaml:"other_soil_gas_score"`
	AllIndicatorScore    *int               `json:"all_indicator_score" yaml:"all_indicator_score"`
	Label                ContaminationLabel `json:"label" yaml:"label"`
	ScopeOfContamination bool               `json:"scope_of_contamination" yaml:"scope_of_contamination"`
	Exceedance           bool               `json:"exceedance" yaml:"exceedance"`
}

// Score returns the score of an indicator, or nil.
func (r ScoreRecord) Score(ind Indicator) *int {
	if r.Scores == nil {
		return nil
	}
	return r.Scores[ind]
}

// LevelValue is the composite used for pollution level surfaces:
// AllIndicatorScore when defined, OtherSoilGasScore otherwise.
func (r ScoreRecord) LevelValue() float64 {
	if r.AllIndicatorScore != nil {
		return float64(*r.AllIndicatorScore)
	}
	return float64(r.OtherSoilGasScore)
}

// PointResult pairs a sample point (with normalized values) and its score record.
type PointResult struct {
	SamplePoint `yaml:",inline"`
	ScoreRecord `yaml:",inline"`
}

// Survey is the input of an analysis run.
type Survey struct {
	Name     string           `json:"name" yaml:"name"`
	Points   []SamplePoint    `json:"points" yaml:"points"`
	Columns  []Indicator      `json:"columns" yaml:"columns"` // indicators mapped to a source column
	Dropped  int              `json:"dropped" yaml:"dropped"` // points removed as incomplete
	Boundary orb.MultiPolygon `json:"-" yaml:"-"`
}

// HasBoundary reports whether a boundary polygon came with the survey.
func (s Survey) HasBoundary() bool {
	return len(s.Boundary) > 0
}

// Grid is a regular interpolation surface. Z is indexed [row][col] with rows along Y.
// Cells outside the boundary hold NaN.
type Grid struct {
	Xs []float64   `json:"xs" yaml:"xs"`
	Ys []float64   `json:"ys" yaml:"ys"`
	Z  [][]float64 `json:"z" yaml:"z"`
}

// ThresholdSummary aggregates the labels of a threshold run.
type ThresholdSummary struct {
	TotalPoints       int                        `json:"total_points" yaml:"total_points"`
	DroppedPoints     int                        `json:"dropped_points" yaml:"dropped_points"`
	LabelCounts       map[ContaminationLabel]int `json:"label_counts" yaml:"label_counts"`
	ScopeCount        int                        `json:"scope_count" yaml:"scope_count"`
	ExceedanceCount   int                        `json:"exceedance_count" yaml:"exceedance_count"`
	MaxOtherSoilGas   int                        `json:"max_other_soil_gas" yaml:"max_other_soil_gas"`
	MaxAllIndicator   *int                       `json:"max_all_indicator" yaml:"max_all_indicator"`
	InterpolationUsed InterpolationMethod        `json:"interpolation,omitempty" yaml:"interpolation,omitempty"`
}

// ThresholdResult is the output of the empirical threshold method.
type ThresholdResult struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	AnalyzedAt time.Time        `json:"analyzed_at" yaml:"analyzed_at"`
	Points     []PointResult    `json:"points" yaml:"points"`
	Exceedance []PointResult    `json:"exceedance" yaml:"exceedance"` // ranked by composite score
	Summary    ThresholdSummary `json:"summary" yaml:"summary"`
	Level      *Grid            `json:"-" yaml:"-"`
}

// ECDFPoint is one step of an empirical cumulative distribution.
type ECDFPoint struct {
	Value       float64 `json:"value" yaml:"value"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// Cutoff is the background cut-off of one indicator.
type Cutoff struct {
	Indicator  Indicator   `json:"indicator" yaml:"indicator"`
	Count      int         `json:"count" yaml:"count"`
	Value      *float64    `json:"cutoff" yaml:"cutoff"`
	Centers    []float64   `json:"centers,omitempty" yaml:"centers,omitempty"`
	Overridden bool        `json:"overridden" yaml:"overridden"`
	ECDF       []ECDFPoint `json:"-" yaml:"-"`
	Values     []float64   `json:"-" yaml:"-"`
}

// AnomalyRow holds the background verdicts of one point.
type AnomalyRow struct {
	PointID string                    `json:"point_id" yaml:"point_id"`
	X       float64                   `json:"x" yaml:"x"`
	Y       float64                   `json:"y" yaml:"y"`
	Marks   map[Indicator]AnomalyMark `json:"marks" yaml:"marks"`
}

// BackgroundResult is the output of the background level method.
type BackgroundResult struct {
	RunID   string       `json:"run_id" yaml:"run_id"`
	Cutoffs []Cutoff     `json:"cutoffs" yaml:"cutoffs"`
	Rows    []AnomalyRow `json:"rows" yaml:"rows"`
}

// PCAScore holds the component scores of one complete point.
type PCAScore struct {
	PointID string    `json:"point_id" yaml:"point_id"`
	X       float64   `json:"x" yaml:"x"`
	Y       float64   `json:"y" yaml:"y"`
	PCs     []float64 `json:"pcs" yaml:"pcs"`
}

// PCAResult is the output of the principal component method.
type PCAResult struct {
	RunID         string                        `json:"run_id" yaml:"run_id"`
	Columns       []Indicator                   `json:"columns" yaml:"columns"`
	Loadings      [][]float64                   `json:"loadings" yaml:"loadings"` // [column][component]
	VarianceRatio []float64                     `json:"variance_ratio" yaml:"variance_ratio"`
	Scores        []PCAScore                    `json:"scores" yaml:"scores"`
	Surfaces      map[InterpolationMethod]*Grid `json:"-" yaml:"-"`
}

// ComponentNames returns "PC1".."PCk" for the result.
func (r PCAResult) ComponentNames() []string {
	names := make([]string, len(r.VarianceRatio))
	for i := range names {
		names[i] = "PC" + string(rune('1'+i))
	}
	return names
}
