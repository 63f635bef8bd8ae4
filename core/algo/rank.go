package algo

import (
	"sort"

	"github.com/sdphc/sdphc/schema"
)

// RankPoints sorts points by AllIndicatorScore, then OtherSoilGasScore, in descending order.
// Points without an AllIndicatorScore sort after those with one. Ties keep input order.
func RankPoints(points []schema.PointResult) []schema.PointResult {
	sort.SliceStable(points, func(i, j int) bool {
		ai, aj := points[i].AllIndicatorScore, points[j].AllIndicatorScore
		switch {
		case ai != nil && aj == nil:
			return true
		case ai == nil && aj != nil:
			return false
		case ai != nil && *ai != *aj:
			return *ai > *aj
		}
		return points[i].OtherSoilGasScore > points[j].OtherSoilGasScore
	})
	return points
}

// ExceedancePoints returns the points whose OtherSoilGasScore reaches the exceedance gate, ranked.
func ExceedancePoints(points []schema.PointResult) []schema.PointResult {
	var out []schema.PointResult
	for _, p := range points {
		if p.Exceedance {
			out = append(out, p)
		}
	}
	return RankPoints(out)
}
