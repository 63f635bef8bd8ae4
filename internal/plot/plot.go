// Package plot renders analysis figures: PNG maps and charts with gonum/plot,
// interactive HTML scatter maps with go-echarts.
package plot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/sdphc/sdphc/internal/geo"
	"github.com/sdphc/sdphc/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Figure sizes.
const (
	mapSize     = 8 * vg.Inch
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
	paletteSize = 64
)

var (
	sourceColor    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	suspectedColor = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	belowColor     = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	missingColor   = color.RGBA{R: 158, G: 158, B: 158, A: 255}
	boundaryColor  = color.Black
)

// labelColors maps contamination labels to marker colors.
var labelColors = map[schema.ContaminationLabel]color.Color{
	schema.SourceLabel:          sourceColor,
	schema.SuspectedSourceLabel: suspectedColor,
	schema.BelowThresholdLabel:  belowColor,
}

// newMap creates a plot in survey coordinates.
func newMap(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X (m)"
	p.Y.Label.Text = "Y (m)"
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p
}

// addBoundary draws every ring of the boundary as a closed line.
func addBoundary(p *plot.Plot, boundary orb.MultiPolygon) error {
	labeled := false
	for _, poly := range boundary {
		for _, ring := range poly {
			pts := make(plotter.XYs, len(ring))
			for j, pt := range ring {
				pts[j] = plotter.XY{X: pt[0], Y: pt[1]}
			}
			line, err := plotter.NewLine(pts)
			if err != nil {
				return err
			}
			line.Color = boundaryColor
			line.Width = vg.Points(1)
			p.Add(line)
			if !labeled {
				p.Legend.Add("Boundary", line)
				labeled = true
			}
		}
	}
	return nil
}

// addPoints adds a scatter series to the plot. Empty series are skipped.
func addPoints(p *plot.Plot, name string, pts plotter.XYs, c color.Color, shape draw.GlyphDrawer) error {
	if len(pts) == 0 {
		return nil
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = shape
	p.Add(s)
	if name != "" {
		p.Legend.Add(fmt.Sprintf("%s (%d)", name, len(pts)), s)
	}
	return nil
}

// save writes the plot as a PNG file in dir and returns its path.
func save(p *plot.Plot, dir, name string, w, h vg.Length) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create plot dir: %w", err)
	}
	file := filepath.Join(dir, name)
	if err := p.Save(w, h, file); err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	return file, nil
}

// gridXYZ adapts an interpolation grid to plotter.GridXYZ.
type gridXYZ struct {
	g      *schema.Grid
	lo, hi float64
}

func newGridXYZ(g *schema.Grid) (gridXYZ, bool) {
	lo, hi, ok := geo.Range(g)
	if !ok || len(g.Xs) < 2 || len(g.Ys) < 2 {
		return gridXYZ{}, false
	}
	if lo == hi {
		hi = lo + 1
	}
	return gridXYZ{g: g, lo: lo, hi: hi}, true
}

func (g gridXYZ) Dims() (c, r int) { return len(g.g.Xs), len(g.g.Ys) }
func (g gridXYZ) Z(c, r int) float64 { return g.g.Z[r][c] }
func (g gridXYZ) X(c int) float64 { return g.g.Xs[c] }
func (g gridXYZ) Y(r int) float64 { return g.g.Ys[r] }
func (g gridXYZ) Min() float64 { return g.lo }
func (g gridXYZ) Max() float64 { return g.hi }

// addHeatMap draws the grid with the heat palette. NaN cells stay transparent.
func addHeatMap(p *plot.Plot, g *schema.Grid) bool {
	xyz, ok := newGridXYZ(g)
	if !ok {
		return false
	}
	h := plotter.NewHeatMap(xyz, palette.Heat(paletteSize, 1))
	h.Min, h.Max = xyz.lo, xyz.hi
	h.NaN = color.Transparent
	p.Add(h)
	return true
}

// rampColor picks the palette color of v within [lo, hi].
func rampColor(colors []color.Color, v, lo, hi float64) color.Color {
	if hi <= lo || math.IsNaN(v) {
		return colors[len(colors)/2]
	}
	t := (v - lo) / (hi - lo)
	i := int(math.Round(t * float64(len(colors)-1)))
	return colors[max(0, min(len(colors)-1, i))]
}
