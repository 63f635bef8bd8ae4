package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sdphc/sdphc/core/algo"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/geo"
	"github.com/sdphc/sdphc/schema"
)

// ScorePoint normalizes the raw values of one point and evaluates them.
func ScorePoint(p schema.SamplePoint) schema.PointResult {
	normalized := p
	normalized.Values = algo.NormalizeValues(p.Values)
	return schema.PointResult{
		SamplePoint: normalized,
		ScoreRecord: algo.Evaluate(normalized.Values),
	}
}

// RunThreshold applies the empirical threshold method to every point of the survey.
// Points keep their ranked order; the level surface is only built when the survey has a boundary.
func RunThreshold(ctx context.Context, cfg *contract.Config, sv schema.Survey) (schema.ThresholdResult, error) {
	logAnalysisHeader(ctx, cfg, schema.ThresholdMethod, sv)

	points := make([]schema.PointResult, 0, len(sv.Points))
	for _, p := range sv.Points {
		if err := ctx.Err(); err != nil {
			return schema.ThresholdResult{}, err
		}
		points = append(points, ScorePoint(p))
	}
	points = algo.RankPoints(points)

	result := schema.ThresholdResult{
		RunID:      uuid.NewString(),
		AnalyzedAt: time.Now(),
		Points:     points,
		Exceedance: algo.ExceedancePoints(points),
		Summary:    summarize(points, sv.Dropped),
	}

	if sv.HasBoundary() && len(points) > 0 {
		level, used, err := levelSurface(ctx, cfg.Interpolation, points, sv)
		if err != nil {
			return schema.ThresholdResult{}, err
		}
		result.Level = level
		result.Summary.InterpolationUsed = used
	}
	return result, nil
}

// summarize counts labels and score extremes of the scored points.
func summarize(points []schema.PointResult, dropped int) schema.ThresholdSummary {
	s := schema.ThresholdSummary{
		TotalPoints:   len(points),
		DroppedPoints: dropped,
		LabelCounts: map[schema.ContaminationLabel]int{
			schema.SourceLabel:          0,
			schema.SuspectedSourceLabel: 0,
			schema.BelowThresholdLabel:  0,
		},
	}
	for _, p := range points {
		s.LabelCounts[p.Label]++
		if p.ScopeOfContamination {
			s.ScopeCount++
		}
		if p.Exceedance {
			s.ExceedanceCount++
		}
		s.MaxOtherSoilGas = max(s.MaxOtherSoilGas, p.OtherSoilGasScore)
		if p.AllIndicatorScore != nil && (s.MaxAllIndicator == nil || *p.AllIndicatorScore > *s.MaxAllIndicator) {
			v := *p.AllIndicatorScore
			s.MaxAllIndicator = &v
		}
	}
	return s
}

// levelSurface interpolates the level value of every point over the boundary.
// An ill-conditioned kriging system falls back to inverse distance weighting.
func levelSurface(ctx context.Context, method schema.InterpolationMethod, points []schema.PointResult, sv schema.Survey) (*schema.Grid, schema.InterpolationMethod, error) {
	if method == "" {
		method = contract.DefaultInterpMethod
	}
	samples := make([]geo.Sample, len(points))
	for i, p := range points {
		samples[i] = geo.Sample{X: p.X, Y: p.Y, V: p.LevelValue()}
	}

	grid, err := surface(ctx, method, samples, sv.Boundary.Bound(), geo.LevelGridSize, sv)
	if errors.Is(err, geo.ErrIllConditioned) {
		contract.LogWarn("Kriging failed for the pollution level surface, using idw", err)
		method = schema.IDWInterp
		grid, err = surface(ctx, method, samples, sv.Boundary.Bound(), geo.LevelGridSize, sv)
	}
	if err != nil {
		return nil, "", err
	}
	return grid, method, nil
}
