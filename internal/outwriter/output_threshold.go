package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/parquet"
	"github.com/sdphc/sdphc/schema"
)

// thresholdScoreColumns are the per-indicator score columns in table and CSV output.
var thresholdScoreColumns = []schema.Indicator{
	schema.Radon, schema.VOCs, schema.CO2, schema.O2, schema.CH4, schema.H2, schema.H2S,
}

// PrintThresholdResults writes the empirical threshold results to stdout or the output file.
func PrintThresholdResults(result schema.ThresholdResult, cfg *contract.Config, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteThresholdResults(w, result, cfg, duration)
	}, successMessage(cfg.Output))
}

// WriteThresholdResults writes the empirical threshold results in the configured format.
func WriteThresholdResults(w io.Writer, result schema.ThresholdResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.YAMLOut:
		return writeYAML(w, result)
	case schema.CSVOut:
		return writeThresholdCSV(w, result)
	case schema.ParquetOut:
		return parquet.Write(w, parquet.ConvertEnrichedPoints(schema.EnrichPoints(result.Points)))
	case schema.GeoJSONOut:
		return writeThresholdGeoJSON(w, result)
	default:
		return writeThresholdTable(w, result, cfg, duration)
	}
}

func writeThresholdCSV(w io.Writer, result schema.ThresholdResult) error {
	header := []string{"point_id", "x", "y"}
	for _, ind := range thresholdScoreColumns {
		header = append(header, string(ind))
	}
	for _, ind := range thresholdScoreColumns {
		header = append(header, string(ind)+"_score")
	}
	header = append(header, "other_soil_gas_score", "all_indicator_score", "label", "scope_of_contamination", "exceedance")

	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range result.Points {
			row := []string{
				p.ID,
				strconv.FormatFloat(p.X, 'f', -1, 64),
				strconv.FormatFloat(p.Y, 'f', -1, 64),
			}
			for _, ind := range thresholdScoreColumns {
				v := p.Value(ind)
				if v == nil {
					row = append(row, "")
					continue
				}
				row = append(row, strconv.FormatFloat(*v, 'f', -1, 64))
			}
			for _, ind := range thresholdScoreColumns {
				row = append(row, optionalCSV(p.Score(ind)))
			}
			row = append(row,
				strconv.Itoa(p.OtherSoilGasScore),
				optionalCSV(p.AllIndicatorScore),
				string(p.Label),
				strconv.FormatBool(p.ScopeOfContamination),
				strconv.FormatBool(p.Exceedance),
			)
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}

func writeThresholdGeoJSON(w io.Writer, result schema.ThresholdResult) error {
	features := make([]*geojson.Feature, 0, len(result.Points))
	for _, p := range result.Points {
		f := pointFeature(p.ID, p.X, p.Y)
		for _, ind := range thresholdScoreColumns {
			f.Properties[string(ind)] = valueProperty(p.Value(ind))
			f.Properties[string(ind)+"_score"] = scoreProperty(p.Score(ind))
		}
		f.Properties["other_soil_gas_score"] = p.OtherSoilGasScore
		f.Properties["all_indicator_score"] = scoreProperty(p.AllIndicatorScore)
		f.Properties["label"] = string(p.Label)
		f.Properties["display_name"] = p.Label.DisplayName()
		f.Properties["scope_of_contamination"] = p.ScopeOfContamination
		f.Properties["exceedance"] = p.Exceedance
		features = append(features, f)
	}
	return writeFeatureCollection(w, features)
}

// writeThresholdTable prints the exceedance ranking followed by the run summary.
func writeThresholdTable(w io.Writer, result schema.ThresholdResult, cfg *contract.Config, duration time.Duration) error {
	headers := []string{"Rank", "Point"}
	for _, ind := range thresholdScoreColumns {
		headers = append(headers, ind.Info().Label)
	}
	headers = append(headers, "Other", "All", "Label")

	maxIDWidth := GetMaxTableIDWidth(cfg, 110)
	data := make([][]string, 0, len(result.Exceedance))
	for i, p := range result.Exceedance {
		row := []string{strconv.Itoa(i + 1), contract.TruncateText(p.ID, maxIDWidth)}
		for _, ind := range thresholdScoreColumns {
			row = append(row, schema.FormatOptionalInt(p.Score(ind)))
		}
		label := contract.GetPlainLabel(p.Label)
		if cfg.UseColors {
			label = contract.GetColorLabel(p.Label, p.ScopeOfContamination)
		}
		row = append(row,
			strconv.Itoa(p.OtherSoilGasScore),
			schema.FormatOptionalInt(p.AllIndicatorScore),
			label,
		)
		data = append(data, row)
	}

	if len(data) == 0 {
		_, _ = fmt.Fprintln(w, "No exceedance points found.")
	} else if err := renderTable(w, headers, data); err != nil {
		return err
	}

	s := result.Summary
	_, _ = fmt.Fprintf(w, "Showing %d exceedance points of %d analyzed", len(result.Exceedance), s.TotalPoints)
	if s.DroppedPoints > 0 {
		_, _ = fmt.Fprintf(w, " (%d incomplete points dropped)", s.DroppedPoints)
	}
	_, _ = fmt.Fprintf(w, " in %v\n", duration)
	_, _ = fmt.Fprintf(w, "%s: %d | %s: %d | %s: %d\n",
		schema.SourceLabel.DisplayName(), s.LabelCounts[schema.SourceLabel],
		schema.SuspectedSourceLabel.DisplayName(), s.LabelCounts[schema.SuspectedSourceLabel],
		schema.BelowThresholdLabel.DisplayName(), s.LabelCounts[schema.BelowThresholdLabel],
	)
	_, _ = fmt.Fprintf(w, "Scope of contamination: %d points | Max other soil gas score: %d | Max all indicator score: %s\n",
		s.ScopeCount, s.MaxOtherSoilGas, schema.FormatOptionalInt(s.MaxAllIndicator))
	if s.InterpolationUsed != "" {
		_, _ = fmt.Fprintf(w, "Pollution level surface interpolated with %s\n", s.InterpolationUsed)
	}
	return nil
}
