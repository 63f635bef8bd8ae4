package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/parquet"
	"github.com/sdphc/sdphc/schema"
)

// PrintPCAResults writes the principal component results to stdout or the output file.
func PrintPCAResults(result schema.PCAResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WritePCAResults(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WritePCAResults writes the principal component results in the configured format.
// CSV, Parquet and GeoJSON output carry the per-point component scores.
func WritePCAResults(w io.Writer, result schema.PCAResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.YAMLOut:
		return writeYAML(w, result)
	case schema.CSVOut:
		return writePCAScoresCSV(w, result, cfg)
	case schema.ParquetOut:
		return parquet.Write(w, parquet.ConvertPCAScores(result.Scores))
	case schema.GeoJSONOut:
		return writePCAGeoJSON(w, result)
	default:
		return writePCATables(w, result, cfg, duration)
	}
}

func writePCAScoresCSV(w io.Writer, result schema.PCAResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	header := append([]string{"point_id", "x", "y"}, result.ComponentNames()...)
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, s := range result.Scores {
			row := []string{s.PointID, strconv.FormatFloat(s.X, 'f', -1, 64), strconv.FormatFloat(s.Y, 'f', -1, 64)}
			for _, pc := range s.PCs {
				row = append(row, fmtFloat(pc))
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writePCAGeoJSON(w io.Writer, result schema.PCAResult) error {
	names := result.ComponentNames()
	features := make([]*geojson.Feature, 0, len(result.Scores))
	for _, s := range result.Scores {
		f := pointFeature(s.PointID, s.X, s.Y)
		for i, pc := range s.PCs {
			if i < len(names) {
				f.Properties[names[i]] = pc
			}
		}
		features = append(features, f)
	}
	return writeFeatureCollection(w, features)
}

// writePCATables prints loadings with explained variance, then the point scores.
func writePCATables(w io.Writer, result schema.PCAResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	names := result.ComponentNames()

	loadingData := make([][]string, 0, len(result.Columns)+1)
	for i, col := range result.Columns {
		row := []string{col.Info().Label}
		for _, v := range result.Loadings[i] {
			row = append(row, fmtFloat(v))
		}
		loadingData = append(loadingData, row)
	}
	variance := []string{"Explained variance"}
	for _, v := range result.VarianceRatio {
		variance = append(variance, fmt.Sprintf("%.*f%%", cfg.Precision, v*100))
	}
	loadingData = append(loadingData, variance)
	if err := renderTable(w, append([]string{"Indicator"}, names...), loadingData); err != nil {
		return err
	}

	maxIDWidth := GetMaxTableIDWidth(cfg, 14*len(names))
	scoreData := make([][]string, 0, len(result.Scores))
	for _, s := range result.Scores {
		row := []string{contract.TruncateText(s.PointID, maxIDWidth)}
		for _, pc := range s.PCs {
			row = append(row, fmtFloat(pc))
		}
		scoreData = append(scoreData, row)
	}
	if len(scoreData) > 0 {
		if err := renderTable(w, append([]string{"Point"}, names...), scoreData); err != nil {
			return err
		}
	}

	cols := make([]string, len(result.Columns))
	for i, c := range result.Columns {
		cols[i] = string(c)
	}
	_, _ = fmt.Fprintf(w, "Showing %d complete points over %s in %v\n", len(result.Scores), strings.Join(cols, ", "), duration)
	return nil
}
