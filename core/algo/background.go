package algo

import (
	"math"
	"slices"

	"github.com/sdphc/sdphc/schema"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MaxKMeansIterations bounds the Lloyd iterations of KMeans2.
const MaxKMeansIterations = 300

// ECDF returns the empirical cumulative distribution of values.
// The i-th smallest value (1-based) has probability i/n.
func ECDF(values []float64) []schema.ECDFPoint {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := float64(len(sorted))
	out := make([]schema.ECDFPoint, len(sorted))
	for i, v := range sorted {
		out[i] = schema.ECDFPoint{Value: v, Probability: float64(i+1) / n}
	}
	return out
}

// KMeans2 clusters one-dimensional values into two groups.
// Centers start at the minimum and maximum and are refined with Lloyd iterations.
// It returns the ascending centers and false when fewer than two values are given.
func KMeans2(values []float64) ([2]float64, bool) {
	if len(values) < 2 {
		return [2]float64{}, false
	}
	centers := [2]float64{floats.Min(values), floats.Max(values)}
	groups := [2][]float64{}
	for range MaxKMeansIterations {
		groups[0], groups[1] = groups[0][:0], groups[1][:0]
		for _, v := range values {
			// Ties go to the lower cluster.
			if math.Abs(v-centers[0]) <= math.Abs(v-centers[1]) {
				groups[0] = append(groups[0], v)
			} else {
				groups[1] = append(groups[1], v)
			}
		}
		next := centers
		for k := range groups {
			if len(groups[k]) > 0 {
				next[k] = stat.Mean(groups[k], nil)
			}
		}
		if next == centers {
			break
		}
		centers = next
	}
	if centers[0] > centers[1] {
		centers[0], centers[1] = centers[1], centers[0]
	}
	return centers, true
}

// BackgroundCutoff computes the ECDF and the K-means cut-off of an indicator.
// Nil and NaN values are skipped. The cut-off is nil when fewer than two values remain.
func BackgroundCutoff(ind schema.Indicator, values []*float64) schema.Cutoff {
	var present []float64
	for _, v := range values {
		if v != nil && !math.IsNaN(*v) {
			present = append(present, *v)
		}
	}
	c := schema.Cutoff{
		Indicator: ind,
		Count:     len(present),
		Values:    present,
		ECDF:      ECDF(present),
	}
	if centers, ok := KMeans2(present); ok {
		cut := (centers[0] + centers[1]) / 2
		c.Value = &cut
		c.Centers = centers[:]
	}
	return c
}

// AnomalyRule describes how a value is compared with the background cut-off.
type AnomalyRule struct {
	Indicator schema.Indicator
	Header    string
	Anomalous func(v, cutoff float64) bool
}

var anomalyRules = []AnomalyRule{
	{schema.Radon, "Abnormally Low Radon", func(v, c float64) bool { return v <= c }},
	{schema.VOCs, "Abnormally High VOCs", func(v, c float64) bool { return v > c }},
	{schema.CO2, "Abnormally High CO2", func(v, c float64) bool { return v >= c }},
	{schema.O2, "Abnormally Low O2", func(v, c float64) bool { return v <= c }},
	{schema.CH4, "Abnormally High CH4", func(v, c float64) bool { return v >= c }},
	{schema.FG, "Abnormally High Functional Genes", func(v, c float64) bool { return v >= c }},
}

// AnomalyRules returns the rules of the background indicators, in column order.
func AnomalyRules() []AnomalyRule {
	return slices.Clone(anomalyRules)
}

// AnomalyHeader returns the column header used for an indicator's anomaly mark.
func AnomalyHeader(ind schema.Indicator) string {
	for _, r := range anomalyRules {
		if r.Indicator == ind {
			return r.Header
		}
	}
	return string(ind)
}

// Mark judges one value against its cut-off.
func Mark(ind schema.Indicator, v, cutoff *float64) schema.AnomalyMark {
	if v == nil || cutoff == nil || math.IsNaN(*v) {
		return schema.MissingMark
	}
	for _, r := range anomalyRules {
		if r.Indicator == ind {
			if r.Anomalous(*v, *cutoff) {
				return schema.AnomalousMark
			}
			return schema.NormalMark
		}
	}
	return schema.MissingMark
}
