package plot

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/sdphc/sdphc/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// ThresholdFigures writes the source area, scope, exceedance and level maps of a
// threshold run into dir and returns the written paths.
func ThresholdFigures(dir string, result schema.ThresholdResult, boundary orb.MultiPolygon) ([]string, error) {
	builders := []struct {
		name  string
		build func() (*plot.Plot, error)
	}{
		{"source_area.png", func() (*plot.Plot, error) { return sourceAreaMap(result, boundary) }},
		{"scope_of_contamination.png", func() (*plot.Plot, error) { return scopeMap(result, boundary) }},
		{"exceedance_points.png", func() (*plot.Plot, error) { return exceedanceMap(result, boundary) }},
	}

	var files []string
	for _, b := range builders {
		p, err := b.build()
		if err != nil {
			return files, err
		}
		file, err := save(p, dir, b.name, mapSize, mapSize)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}

	if result.Level != nil {
		p, ok, err := levelMap(result, boundary)
		if err != nil {
			return files, err
		}
		if ok {
			name := fmt.Sprintf("pollution_level_%s.png", result.Summary.InterpolationUsed)
			file, err := save(p, dir, name, mapSize, mapSize)
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}
	}
	return files, nil
}

func sourceAreaMap(result schema.ThresholdResult, boundary orb.MultiPolygon) (*plot.Plot, error) {
	p := newMap("Pollution source area")
	if err := addBoundary(p, boundary); err != nil {
		return nil, err
	}
	byLabel := make(map[schema.ContaminationLabel]plotter.XYs)
	for _, pt := range result.Points {
		byLabel[pt.Label] = append(byLabel[pt.Label], plotter.XY{X: pt.X, Y: pt.Y})
	}
	shapes := map[schema.ContaminationLabel]draw.GlyphDrawer{
		schema.SourceLabel:          draw.TriangleGlyph{},
		schema.SuspectedSourceLabel: draw.BoxGlyph{},
		schema.BelowThresholdLabel:  draw.CircleGlyph{},
	}
	for _, label := range []schema.ContaminationLabel{schema.BelowThresholdLabel, schema.SuspectedSourceLabel, schema.SourceLabel} {
		if err := addPoints(p, label.DisplayName(), byLabel[label], labelColors[label], shapes[label]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func scopeMap(result schema.ThresholdResult, boundary orb.MultiPolygon) (*plot.Plot, error) {
	p := newMap("Scope of contamination")
	if err := addBoundary(p, boundary); err != nil {
		return nil, err
	}
	var in, out plotter.XYs
	for _, pt := range result.Points {
		if pt.ScopeOfContamination {
			in = append(in, plotter.XY{X: pt.X, Y: pt.Y})
		} else {
			out = append(out, plotter.XY{X: pt.X, Y: pt.Y})
		}
	}
	if err := addPoints(p, "Outside scope", out, belowColor, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	if err := addPoints(p, "Within scope", in, suspectedColor, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	return p, nil
}

func exceedanceMap(result schema.ThresholdResult, boundary orb.MultiPolygon) (*plot.Plot, error) {
	p := newMap("Pollution exceedance points")
	if err := addBoundary(p, boundary); err != nil {
		return nil, err
	}
	var rest plotter.XYs
	for _, pt := range result.Points {
		if !pt.Exceedance {
			rest = append(rest, plotter.XY{X: pt.X, Y: pt.Y})
		}
	}
	if err := addPoints(p, "Other points", rest, missingColor, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	if len(result.Exceedance) == 0 {
		return p, nil
	}

	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(result.Exceedance)),
		Labels: make([]string, len(result.Exceedance)),
	}
	for i, pt := range result.Exceedance {
		labels.XYs[i] = plotter.XY{X: pt.X, Y: pt.Y}
		labels.Labels[i] = pt.ID
	}
	if err := addPoints(p, "Exceedance", labels.XYs, sourceColor, draw.TriangleGlyph{}); err != nil {
		return nil, err
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return p, nil
}

func levelMap(result schema.ThresholdResult, boundary orb.MultiPolygon) (*plot.Plot, bool, error) {
	p := newMap(fmt.Sprintf("Pollution level (%s)", result.Summary.InterpolationUsed))
	if !addHeatMap(p, result.Level) {
		return nil, false, nil
	}
	if err := addBoundary(p, boundary); err != nil {
		return nil, false, err
	}
	pts := make(plotter.XYs, len(result.Points))
	for i, pt := range result.Points {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	if err := addPoints(p, "Sampling points", pts, boundaryColor, draw.CrossGlyph{}); err != nil {
		return nil, false, err
	}
	return p, true, nil
}
