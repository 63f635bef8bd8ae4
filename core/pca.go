package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sdphc/sdphc/core/algo"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/geo"
	"github.com/sdphc/sdphc/schema"
)

// RunPCA runs a standardized principal component analysis over every mapped indicator.
// Points missing any of those indicators are left out. PC1 is interpolated with every
// interpolation method; a method that fails only loses its surface.
func RunPCA(ctx context.Context, cfg *contract.Config, sv schema.Survey) (schema.PCAResult, error) {
	logAnalysisHeader(ctx, cfg, schema.PCAMethod, sv)

	cols := sv.Columns
	if len(cols) < 2 {
		return schema.PCAResult{}, fmt.Errorf("%w: %d mapped indicator columns", algo.ErrInsufficientData, len(cols))
	}

	var (
		rows     [][]float64
		complete []schema.SamplePoint
	)
	for _, p := range sv.Points {
		row := make([]float64, len(cols))
		ok := true
		for j, ind := range cols {
			v := p.Value(ind)
			if v == nil {
				ok = false
				break
			}
			row[j] = *v
		}
		if ok {
			rows = append(rows, row)
			complete = append(complete, p)
		}
	}

	out, err := algo.StandardizedPCA(rows)
	if err != nil {
		return schema.PCAResult{}, fmt.Errorf("%w: %d complete points", err, len(rows))
	}

	result := schema.PCAResult{
		RunID:         uuid.NewString(),
		Columns:       cols,
		Loadings:      out.Loadings,
		VarianceRatio: out.VarianceRatio,
		Scores:        make([]schema.PCAScore, len(complete)),
	}
	for i, p := range complete {
		result.Scores[i] = schema.PCAScore{PointID: p.ID, X: p.X, Y: p.Y, PCs: out.Scores[i]}
	}

	surfaces, err := pcaSurfaces(ctx, result.Scores, sv)
	if err != nil {
		return schema.PCAResult{}, err
	}
	result.Surfaces = surfaces
	return result, nil
}

// pcaSurfaces interpolates PC1 with every method concurrently.
func pcaSurfaces(ctx context.Context, scores []schema.PCAScore, sv schema.Survey) (map[schema.InterpolationMethod]*schema.Grid, error) {
	samples := make([]geo.Sample, len(scores))
	for i, s := range scores {
		samples[i] = geo.Sample{X: s.X, Y: s.Y, V: s.PCs[0]}
	}
	bound := geo.SamplesBound(samples, geo.PCAPadding)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		surfaces = make(map[schema.InterpolationMethod]*schema.Grid, len(schema.AllInterpolationMethods))
	)
	for _, method := range schema.AllInterpolationMethods {
		wg.Go(func() {
			grid, err := surface(ctx, method, samples, bound, geo.PCAGridSize, sv)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					contract.LogWarn(fmt.Sprintf("PC1 %s interpolation skipped", method), err)
				}
				return
			}
			mu.Lock()
			surfaces[method] = grid
			mu.Unlock()
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return surfaces, nil
}
