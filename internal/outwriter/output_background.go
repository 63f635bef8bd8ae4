package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/sdphc/sdphc/core/algo"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/parquet"
	"github.com/sdphc/sdphc/schema"
)

// PrintBackgroundResults writes the background level results to stdout or the output file.
func PrintBackgroundResults(result schema.BackgroundResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteBackgroundResults(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteBackgroundResults writes the background level results in the configured format.
// CSV output is the anomaly table and Parquet output is the cut-off table.
func WriteBackgroundResults(w io.Writer, result schema.BackgroundResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.YAMLOut:
		return writeYAML(w, result)
	case schema.CSVOut:
		return writeAnomalyCSV(w, result)
	case schema.ParquetOut:
		return parquet.Write(w, parquet.ConvertCutoffs(result.Cutoffs))
	case schema.GeoJSONOut:
		return writeAnomalyGeoJSON(w, result)
	default:
		return writeBackgroundTables(w, result, cfg, duration)
	}
}

func backgroundColumns(result schema.BackgroundResult) []schema.Indicator {
	cols := make([]schema.Indicator, len(result.Cutoffs))
	for i, c := range result.Cutoffs {
		cols[i] = c.Indicator
	}
	return cols
}

func writeAnomalyCSV(w io.Writer, result schema.BackgroundResult) error {
	cols := backgroundColumns(result)
	header := []string{"point_id", "x", "y"}
	for _, ind := range cols {
		header = append(header, algo.AnomalyHeader(ind))
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range result.Rows {
			row := []string{r.PointID, strconv.FormatFloat(r.X, 'f', -1, 64), strconv.FormatFloat(r.Y, 'f', -1, 64)}
			for _, ind := range cols {
				row = append(row, string(r.Marks[ind]))
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeAnomalyGeoJSON(w io.Writer, result schema.BackgroundResult) error {
	cols := backgroundColumns(result)
	features := make([]*geojson.Feature, 0, len(result.Rows))
	for _, r := range result.Rows {
		f := pointFeature(r.PointID, r.X, r.Y)
		for _, ind := range cols {
			f.Properties[algo.AnomalyHeader(ind)] = string(r.Marks[ind])
		}
		features = append(features, f)
	}
	return writeFeatureCollection(w, features)
}

// writeBackgroundTables prints the cut-off table, then the per-point anomaly table.
func writeBackgroundTables(w io.Writer, result schema.BackgroundResult, cfg *contract.Config, duration time.Duration) error {
	_, fmtOptFloat := createFormatters(cfg.Precision)

	cutoffData := make([][]string, 0, len(result.Cutoffs))
	for _, c := range result.Cutoffs {
		source := "kmeans"
		switch {
		case c.Overridden:
			source = "override"
		case c.Value == nil:
			source = "-"
		}
		cutoffData = append(cutoffData, []string{
			c.Indicator.Info().Label,
			c.Indicator.Unit(),
			strconv.Itoa(c.Count),
			fmtOptFloat(c.Value),
			source,
		})
	}
	if err := renderTable(w, []string{"Indicator", "Unit", "Samples", "Cut-off", "Source"}, cutoffData); err != nil {
		return err
	}

	cols := backgroundColumns(result)
	headers := []string{"Point"}
	for _, ind := range cols {
		headers = append(headers, ind.Info().Label)
	}
	maxIDWidth := GetMaxTableIDWidth(cfg, 12*len(cols))
	anomalous := 0
	data := make([][]string, 0, len(result.Rows))
	for _, r := range result.Rows {
		row := []string{contract.TruncateText(r.PointID, maxIDWidth)}
		hit := false
		for _, ind := range cols {
			mark := r.Marks[ind]
			if mark == schema.AnomalousMark {
				hit = true
			}
			if cfg.UseColors {
				row = append(row, contract.GetColorMark(mark))
			} else {
				row = append(row, string(mark))
			}
		}
		if hit {
			anomalous++
		}
		data = append(data, row)
	}
	if len(data) > 0 {
		if err := renderTable(w, headers, data); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(w, "Showing %d points, %d with at least one anomaly, in %v\n", len(result.Rows), anomalous, duration)
	_, _ = fmt.Fprintf(w, "Marks: %s anomalous | %s normal | %s not measured\n",
		schema.AnomalousMark, schema.NormalMark, schema.MissingMark)
	return nil
}
