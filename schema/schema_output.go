package schema

// EnrichedPointResult adds presentation data to a PointResult.
type EnrichedPointResult struct {
	Rank        int    `json:"rank" yaml:"rank"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	PointResult `yaml:",inline"`
}

// EnrichPoints adds rank and display name to a list of point results.
func EnrichPoints(points []PointResult) []EnrichedPointResult {
	output := make([]EnrichedPointResult, len(points))
	for i, p := range points {
		output[i] = EnrichedPointResult{
			Rank:        i + 1,
			DisplayName: p.Label.DisplayName(),
			PointResult: p,
		}
	}
	return output
}
