package plot

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/paulmach/orb"
	"github.com/sdphc/sdphc/core/algo"
	"github.com/sdphc/sdphc/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// BackgroundFigures writes, per indicator with a cut-off, the ECDF plot, the K-means
// plot and the anomaly map into dir.
func BackgroundFigures(dir string, result schema.BackgroundResult, boundary orb.MultiPolygon) ([]string, error) {
	var files []string
	for _, c := range result.Cutoffs {
		if c.Value == nil || len(c.ECDF) == 0 {
			continue
		}
		slug := strings.ToLower(string(c.Indicator))

		ecdf, err := ecdfPlot(c)
		if err != nil {
			return files, err
		}
		file, err := save(ecdf, dir, "ecdf_"+slug+".png", chartWidth, chartHeight)
		if err != nil {
			return files, err
		}
		files = append(files, file)

		if len(c.Values) > 0 {
			km, err := kmeansPlot(c)
			if err != nil {
				return files, err
			}
			file, err = save(km, dir, "kmeans_"+slug+".png", chartWidth, chartHeight)
			if err != nil {
				return files, err
			}
			files = append(files, file)
		}

		am, err := anomalyMap(result, c.Indicator, boundary)
		if err != nil {
			return files, err
		}
		file, err = save(am, dir, "anomaly_"+slug+".png", mapSize, mapSize)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

func cutoffLine(x0, x1, y0, y1 float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, err
	}
	l.Color = sourceColor
	l.Width = vg.Points(1.5)
	l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	return l, nil
}

func ecdfPlot(c schema.Cutoff) (*plot.Plot, error) {
	info := c.Indicator.Info()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Empirical cumulative distribution of %s", info.Label)
	p.X.Label.Text = fmt.Sprintf("%s (%s)", info.Label, info.Unit)
	p.Y.Label.Text = "Cumulative probability"

	pts := make(plotter.XYs, len(c.ECDF))
	for i, e := range c.ECDF {
		pts[i] = plotter.XY{X: e.Value, Y: e.Probability}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.StepStyle = plotter.PostStep
	line.Color = belowColor
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add("ECDF", line)

	cut, err := cutoffLine(*c.Value, *c.Value, 0, 1)
	if err != nil {
		return nil, err
	}
	p.Add(cut)
	p.Legend.Add(fmt.Sprintf("Cut-off %.4g", *c.Value), cut)
	p.Legend.Left = true
	p.Legend.Top = true
	return p, nil
}

func kmeansPlot(c schema.Cutoff) (*plot.Plot, error) {
	info := c.Indicator.Info()
	p := plot.New()
	p.Title.Text = fmt.Sprintf("K-means clustering of %s", info.Label)
	p.X.Label.Text = "Sample index"
	p.Y.Label.Text = fmt.Sprintf("%s (%s)", info.Label, info.Unit)

	var low, high plotter.XYs
	for i, v := range c.Values {
		xy := plotter.XY{X: float64(i + 1), Y: v}
		if v < *c.Value {
			low = append(low, xy)
		} else {
			high = append(high, xy)
		}
	}
	if err := addPoints(p, "Low cluster", low, belowColor, draw.CircleGlyph{}); err != nil {
		return nil, err
	}
	if err := addPoints(p, "High cluster", high, sourceColor, draw.CircleGlyph{}); err != nil {
		return nil, err
	}

	n := float64(len(c.Values))
	cut, err := cutoffLine(0.5, n+0.5, *c.Value, *c.Value)
	if err != nil {
		return nil, err
	}
	p.Add(cut)
	p.Legend.Add(fmt.Sprintf("Cut-off %.4g", *c.Value), cut)

	for _, center := range c.Centers {
		l, err := plotter.NewLine(plotter.XYs{{X: 0.5, Y: center}, {X: n + 0.5, Y: center}})
		if err != nil {
			return nil, err
		}
		l.Color = missingColor
		l.Width = vg.Points(1)
		p.Add(l)
	}
	p.Legend.Top = true
	return p, nil
}

func anomalyMap(result schema.BackgroundResult, ind schema.Indicator, boundary orb.MultiPolygon) (*plot.Plot, error) {
	p := newMap(algo.AnomalyHeader(ind))
	if err := addBoundary(p, boundary); err != nil {
		return nil, err
	}
	groups := make(map[schema.AnomalyMark]plotter.XYs)
	for _, row := range result.Rows {
		m := row.Marks[ind]
		groups[m] = append(groups[m], plotter.XY{X: row.X, Y: row.Y})
	}
	series := []struct {
		mark  schema.AnomalyMark
		name  string
		color color.Color
	}{
		{schema.MissingMark, "No value", missingColor},
		{schema.NormalMark, "Normal", belowColor},
		{schema.AnomalousMark, "Anomalous", sourceColor},
	}
	for _, s := range series {
		if err := addPoints(p, s.name, groups[s.mark], s.color, draw.CircleGlyph{}); err != nil {
			return nil, err
		}
	}
	return p, nil
}
