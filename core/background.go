package core

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/sdphc/sdphc/core/algo"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
)

// RunBackground computes the background cut-off of every mapped background indicator
// from raw values and marks each point against those cut-offs.
func RunBackground(ctx context.Context, cfg *contract.Config, sv schema.Survey) (schema.BackgroundResult, error) {
	logAnalysisHeader(ctx, cfg, schema.BackgroundMethod, sv)

	result := schema.BackgroundResult{RunID: uuid.NewString()}
	cutoffs := make(map[schema.Indicator]*float64)
	for _, ind := range schema.BackgroundIndicators() {
		override, overridden := cfg.CutoffOverrides[ind]
		if !slices.Contains(sv.Columns, ind) && !overridden {
			continue
		}
		if err := ctx.Err(); err != nil {
			return schema.BackgroundResult{}, err
		}

		values := make([]*float64, len(sv.Points))
		for i, p := range sv.Points {
			values[i] = p.Value(ind)
		}
		c := algo.BackgroundCutoff(ind, values)
		if overridden {
			v := override
			c.Value = &v
			c.Overridden = true
		}
		cutoffs[ind] = c.Value
		result.Cutoffs = append(result.Cutoffs, c)
	}

	result.Rows = make([]schema.AnomalyRow, len(sv.Points))
	for i, p := range sv.Points {
		row := schema.AnomalyRow{
			PointID: p.ID,
			X:       p.X,
			Y:       p.Y,
			Marks:   make(map[schema.Indicator]schema.AnomalyMark, len(result.Cutoffs)),
		}
		for _, c := range result.Cutoffs {
			row.Marks[c.Indicator] = algo.Mark(c.Indicator, p.Value(c.Indicator), cutoffs[c.Indicator])
		}
		result.Rows[i] = row
	}
	return result, nil
}
