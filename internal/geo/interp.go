package geo

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/sdphc/sdphc/schema"
)

// IDWPower is the distance exponent of inverse distance weighting.
const IDWPower = 2

// minDistance replaces zero distances so a cell on a sample takes its value.
const minDistance = 1e-10

// ErrNoSamples is returned when there is nothing to interpolate.
var ErrNoSamples = errors.New("no samples to interpolate")

// Interpolate fills every cell of g with the given method.
// Samples with NaN values are ignored.
func Interpolate(ctx context.Context, method schema.InterpolationMethod, samples []Sample, g *schema.Grid) error {
	samples = finiteSamples(samples)
	if len(samples) == 0 {
		return ErrNoSamples
	}
	switch method {
	case schema.NearestInterp:
		return fill(ctx, g, func(x, y float64) float64 { return nearest(samples, x, y) })
	case schema.IDWInterp:
		return fill(ctx, g, func(x, y float64) float64 { return idw(samples, x, y) })
	case schema.KrigingInterp:
		k, err := NewOrdinaryKriging(samples)
		if err != nil {
			return err
		}
		return fill(ctx, g, k.Predict)
	default:
		return fmt.Errorf("unknown interpolation method %q", method)
	}
}

func finiteSamples(samples []Sample) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if !math.IsNaN(s.V) && !math.IsInf(s.V, 0) {
			out = append(out, s)
		}
	}
	return out
}

// fill evaluates f at every cell, checking for cancellation once per row.
func fill(ctx context.Context, g *schema.Grid, f func(x, y float64) float64) error {
	for r, y := range g.Ys {
		if err := ctx.Err(); err != nil {
			return err
		}
		for c, x := range g.Xs {
			g.Z[r][c] = f(x, y)
		}
	}
	return nil
}

func nearest(samples []Sample, x, y float64) float64 {
	best, bestD := 0, math.Inf(1)
	for i, s := range samples {
		d := (s.X-x)*(s.X-x) + (s.Y-y)*(s.Y-y)
		if d < bestD {
			best, bestD = i, d
		}
	}
	return samples[best].V
}

func idw(samples []Sample, x, y float64) float64 {
	var num, den float64
	for _, s := range samples {
		d := math.Max(math.Hypot(s.X-x, s.Y-y), minDistance)
		w := 1 / math.Pow(d, IDWPower)
		num += w * s.V
		den += w
	}
	return num / den
}
