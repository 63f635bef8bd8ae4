package algo

import "github.com/sdphc/sdphc/schema"

// OtherSoilGasScore sums the scores of the non-radon soil gases. Missing scores count as zero.
func OtherSoilGasScore(scores map[schema.Indicator]*int) int {
	total := 0
	for _, ind := range schema.OtherSoilGases() {
		if s := scores[ind]; s != nil {
			total += *s
		}
	}
	return total
}

// AllIndicatorScore adds the radon score to other, but only once other reaches
// the exceedance gate and radon was scored.
func AllIndicatorScore(other int, radon *int) *int {
	if other < schema.ExceedanceScore || radon == nil {
		return nil
	}
	all := other + *radon
	return &all
}

// Classify assigns the contamination label of a point. The first matching rule wins.
func Classify(all, radon, vocs *int) schema.ContaminationLabel {
	if all == nil {
		return schema.BelowThresholdLabel
	}
	switch {
	case *all >= schema.SourceScore && radon != nil && *radon >= schema.MinRadonForSource:
		return schema.SourceLabel
	case *all >= schema.SuspectedScore && vocs != nil && *vocs >= schema.MinVOCsForSuspect:
		return schema.SuspectedSourceLabel
	default:
		return schema.BelowThresholdLabel
	}
}

// Evaluate scores, aggregates and classifies one point.
// Values must already be normalized; unscored indicators are ignored.
func Evaluate(values map[schema.Indicator]*float64) schema.ScoreRecord {
	scores := make(map[schema.Indicator]*int)
	for _, ind := range schema.ScoredIndicators() {
		// Every scored indicator has a table, so the error is always nil here.
		s, _ := ScoreIndicator(ind, values[ind])
		scores[ind] = s
	}
	other := OtherSoilGasScore(scores)
	all := AllIndicatorScore(other, scores[schema.Radon])
	return schema.ScoreRecord{
		Scores:               scores,
		OtherSoilGasScore:    other,
		AllIndicatorScore:    all,
		Label:                Classify(all, scores[schema.Radon], scores[schema.VOCs]),
		ScopeOfContamination: other >= schema.ScopeScore,
		Exceedance:           other >= schema.ExceedanceScore,
	}
}
