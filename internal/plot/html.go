package plot

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/sdphc/sdphc/schema"
)

// viridis is the visual map ramp of interactive maps.
var viridis = []string{"#440154", "#482777", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"}

// ThresholdHTML writes an interactive map of the composite level value per point,
// one series per contamination label.
func ThresholdHTML(dir string, result schema.ThresholdResult) (string, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	series := make(map[schema.ContaminationLabel][]opts.ScatterData)
	for _, p := range result.Points {
		v := p.LevelValue()
		lo, hi = math.Min(lo, v), math.Max(hi, v)
		series[p.Label] = append(series[p.Label], opts.ScatterData{
			Name:  p.ID,
			Value: []interface{}{p.X, p.Y, v},
		})
	}
	if len(result.Points) == 0 {
		lo, hi = 0, 1
	}

	scatter := newScatterMap("Pollution level identification",
		fmt.Sprintf("points=%d exceedance=%d", len(result.Points), len(result.Exceedance)), lo, hi)
	for _, label := range []schema.ContaminationLabel{schema.SourceLabel, schema.SuspectedSourceLabel, schema.BelowThresholdLabel} {
		if data := series[label]; len(data) > 0 {
			scatter.AddSeries(label.DisplayName(), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
		}
	}
	return renderHTML(scatter, dir, "threshold.html")
}

// PCAHTML writes an interactive map of the PC1 score per point.
func PCAHTML(dir string, result schema.PCAResult) (string, error) {
	lo, hi := math.Inf(1), math.Inf(-1)
	data := make([]opts.ScatterData, 0, len(result.Scores))
	for _, s := range result.Scores {
		lo, hi = math.Min(lo, s.PCs[0]), math.Max(hi, s.PCs[0])
		data = append(data, opts.ScatterData{Name: s.PointID, Value: []interface{}{s.X, s.Y, s.PCs[0]}})
	}
	if len(data) == 0 {
		lo, hi = 0, 1
	}

	subtitle := fmt.Sprintf("points=%d", len(data))
	if len(result.VarianceRatio) > 0 {
		subtitle += fmt.Sprintf(" explained=%.1f%%", result.VarianceRatio[0]*100)
	}
	scatter := newScatterMap("PC1 scores", subtitle, lo, hi)
	scatter.AddSeries("PC1", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}))
	return renderHTML(scatter, dir, "pca.html")
}

func newScatterMap(title, subtitle string, lo, hi float64) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: schema.SoftwareShortName + " " + title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Bottom: "0"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)", NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (m)", NameLocation: "middle", NameGap: 30, Scale: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: viridis},
		}),
	)
	return scatter
}

func renderHTML(scatter *charts.Scatter, dir, name string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create plot dir: %w", err)
	}
	file := filepath.Join(dir, name)
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	if err := scatter.Render(f); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}
	return file, nil
}
