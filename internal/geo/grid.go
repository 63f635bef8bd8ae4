// Package geo builds interpolation grids over survey areas and masks them to a boundary.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/sdphc/sdphc/schema"
)

// Grid sizes used by the analysis methods.
const (
	LevelGridSize = 300
	PCAGridSize   = 100
	PCAPadding    = 0.001
)

// Sample is one known value at a location.
type Sample struct {
	X, Y, V float64
}

// Linspace returns n evenly spaced values from start to stop, both included.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// NewGrid spans bound with nx columns and ny rows. Every cell starts as NaN.
func NewGrid(bound orb.Bound, nx, ny int) *schema.Grid {
	g := &schema.Grid{
		Xs: Linspace(bound.Min.X(), bound.Max.X(), nx),
		Ys: Linspace(bound.Min.Y(), bound.Max.Y(), ny),
		Z:  make([][]float64, ny),
	}
	for r := range g.Z {
		row := make([]float64, nx)
		for c := range row {
			row[c] = math.NaN()
		}
		g.Z[r] = row
	}
	return g
}

// SamplesBound returns the bounding box of the samples grown by pad on every side.
func SamplesBound(samples []Sample, pad float64) orb.Bound {
	if len(samples) == 0 {
		return orb.Bound{}
	}
	b := orb.Point{samples[0].X, samples[0].Y}.Bound()
	for _, s := range samples[1:] {
		b = b.Extend(orb.Point{s.X, s.Y})
	}
	return b.Pad(pad)
}

// Mask sets every cell whose center lies outside the boundary to NaN.
// An empty boundary leaves the grid untouched.
func Mask(g *schema.Grid, boundary orb.MultiPolygon) {
	if len(boundary) == 0 {
		return
	}
	for r, y := range g.Ys {
		for c, x := range g.Xs {
			if !planar.MultiPolygonContains(boundary, orb.Point{x, y}) {
				g.Z[r][c] = math.NaN()
			}
		}
	}
}

// Range returns the finite minimum and maximum of the grid, and false when every cell is NaN.
func Range(g *schema.Grid) (float64, float64, bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range g.Z {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi, !math.IsInf(lo, 1)
}
