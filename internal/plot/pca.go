package plot

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/sdphc/sdphc/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// PCAFigures writes the variance, loading and PC1 figures of a PCA run into dir.
func PCAFigures(dir string, result schema.PCAResult, boundary orb.MultiPolygon) ([]string, error) {
	var files []string

	variance, err := variancePlot(result)
	if err != nil {
		return files, err
	}
	file, err := save(variance, dir, "pca_explained_variance.png", chartWidth, chartHeight)
	if err != nil {
		return files, err
	}
	files = append(files, file)

	loadings, err := loadingPlot(result)
	if err != nil {
		return files, err
	}
	file, err = save(loadings, dir, "pca_loadings.png", chartWidth, chartHeight)
	if err != nil {
		return files, err
	}
	files = append(files, file)

	if len(result.VarianceRatio) >= 2 {
		biplot, err := biplotPlot(result)
		if err != nil {
			return files, err
		}
		file, err = save(biplot, dir, "pca_biplot.png", chartWidth, chartHeight)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}

	scores, err := pc1ScoreMap(result, boundary)
	if err != nil {
		return files, err
	}
	file, err = save(scores, dir, "pc1_scores.png", mapSize, mapSize)
	if err != nil {
		return files, err
	}
	files = append(files, file)

	for _, method := range schema.AllInterpolationMethods {
		grid, ok := result.Surfaces[method]
		if !ok || grid == nil {
			continue
		}
		p := newMap(fmt.Sprintf("PC1 interpolation (%s)", method))
		if !addHeatMap(p, grid) {
			continue
		}
		if err := addBoundary(p, boundary); err != nil {
			return files, err
		}
		file, err := save(p, dir, fmt.Sprintf("pc1_%s.png", method), mapSize, mapSize)
		if err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

func variancePlot(result schema.PCAResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Explained variance ratio"
	p.Y.Label.Text = "Ratio"

	values := make(plotter.Values, len(result.VarianceRatio))
	copy(values, result.VarianceRatio)
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.Color = belowColor
	p.Add(bars)
	p.NominalX(result.ComponentNames()...)
	return p, nil
}

// loadingPlot groups the loading of every column by component.
func loadingPlot(result schema.PCAResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Component loadings"
	p.Y.Label.Text = "Loading"

	names := result.ComponentNames()
	colors := palette.Rainbow(max(len(result.Columns), 2), palette.Blue, palette.Red, 1, 1, 1).Colors()
	width := vg.Points(12)
	offset := -width * vg.Length(len(result.Columns)-1) / 2
	for j, col := range result.Columns {
		values := make(plotter.Values, len(names))
		for k := range names {
			values[k] = result.Loadings[j][k]
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return nil, err
		}
		bars.Color = colors[j%len(colors)]
		bars.Offset = offset + width*vg.Length(j)
		p.Add(bars)
		p.Legend.Add(string(col), bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)
	return p, nil
}

// biplotScale stretches the loading vectors to the spread of the scores.
const biplotScale = 10

// biplotPlot draws the PC1/PC2 scores with one loading vector per column.
func biplotPlot(result schema.PCAResult) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "PCA biplot"
	p.X.Label.Text = fmt.Sprintf("PC1 (%.2f%%)", result.VarianceRatio[0]*100)
	p.Y.Label.Text = fmt.Sprintf("PC2 (%.2f%%)", result.VarianceRatio[1]*100)

	pts := make(plotter.XYs, 0, len(result.Scores))
	for _, s := range result.Scores {
		if len(s.PCs) >= 2 {
			pts = append(pts, plotter.XY{X: s.PCs[0], Y: s.PCs[1]})
		}
	}
	if err := addPoints(p, "Samples", pts, missingColor, draw.CircleGlyph{}); err != nil {
		return nil, err
	}

	colors := palette.Rainbow(max(len(result.Columns), 2), palette.Blue, palette.Red, 1, 1, 1).Colors()
	tips := plotter.XYLabels{}
	for j, col := range result.Columns {
		x, y := result.Loadings[j][0]*biplotScale, result.Loadings[j][1]*biplotScale
		line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: x, Y: y}})
		if err != nil {
			return nil, err
		}
		line.Color = colors[j%len(colors)]
		line.Width = vg.Points(2)
		p.Add(line)
		tips.XYs = append(tips.XYs, plotter.XY{X: x * 1.1, Y: y * 1.1})
		tips.Labels = append(tips.Labels, string(col))
	}
	if len(tips.XYs) > 0 {
		labels, err := plotter.NewLabels(tips)
		if err != nil {
			return nil, err
		}
		p.Add(labels)
	}
	p.Legend.Top = true
	return p, nil
}

func pc1ScoreMap(result schema.PCAResult, boundary orb.MultiPolygon) (*plot.Plot, error) {
	p := newMap("PC1 scores")
	if err := addBoundary(p, boundary); err != nil {
		return nil, err
	}
	if len(result.Scores) == 0 {
		return p, nil
	}

	lo, hi := result.Scores[0].PCs[0], result.Scores[0].PCs[0]
	pts := make(plotter.XYs, len(result.Scores))
	for i, s := range result.Scores {
		pts[i] = plotter.XY{X: s.X, Y: s.Y}
		lo, hi = min(lo, s.PCs[0]), max(hi, s.PCs[0])
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	colors := palette.Heat(paletteSize, 1).Colors()
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  rampColor(colors, result.Scores[i].PCs[0], lo, hi),
			Radius: vg.Points(4),
			Shape:  draw.CircleGlyph{},
		}
	}
	p.Add(sc)
	p.Legend.Add(fmt.Sprintf("PC1 [%.3g, %.3g]", lo, hi), sc)
	return p, nil
}
