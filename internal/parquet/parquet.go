// Package parquet provides data structures and functions for exchanging sdphc
// survey and analysis data as Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/sdphc/sdphc/schema"
)

// AnalysisRun represents a single analysis run with metadata.
// This struct maps to the sdphc_analysis_runs database table.
type AnalysisRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// RunUUID is the identifier printed to the user and attached to result files
	RunUUID string `parquet:"run_uuid,snappy"`

	// Method is the analysis method of the run (threshold, background, pca)
	Method string `parquet:"method,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalPointsAnalyzed is the number of sampling points analyzed in this run
	TotalPointsAnalyzed int32 `parquet:"total_points_analyzed,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PointResult represents the stored scores of a single sampling point in an analysis.
// This struct maps to the sdphc_point_results database table.
type PointResult struct {
	AnalysisID           int64   `parquet:"analysis_id,snappy"`
	PointID              string  `parquet:"point_id,snappy"`
	X                    float64 `parquet:"x,snappy"`
	Y                    float64 `parquet:"y,snappy"`
	RadonScore           *int32  `parquet:"radon_score,optional,snappy"`
	VOCsScore            *int32  `parquet:"vocs_score,optional,snappy"`
	CO2Score             *int32  `parquet:"co2_score,optional,snappy"`
	O2Score              *int32  `parquet:"o2_score,optional,snappy"`
	CH4Score             *int32  `parquet:"ch4_score,optional,snappy"`
	H2Score              *int32  `parquet:"h2_score,optional,snappy"`
	H2SScore             *int32  `parquet:"h2s_score,optional,snappy"`
	OtherSoilGasScore    int32   `parquet:"other_soil_gas_score,snappy"`
	AllIndicatorScore    *int32  `parquet:"all_indicator_score,optional,snappy"`
	Label                string  `parquet:"label,snappy"`
	ScopeOfContamination bool    `parquet:"scope_of_contamination,snappy"`
}

// ScoredPoint is one row of a threshold result file: the normalized
// measurements of a point next to its scores.
type ScoredPoint struct {
	Rank                 int32    `parquet:"rank,snappy"`
	PointID              string   `parquet:"point_id,snappy"`
	X                    float64  `parquet:"x,snappy"`
	Y                    float64  `parquet:"y,snappy"`
	Radon                *float64 `parquet:"radon,optional,snappy"`
	VOCs                 *float64 `parquet:"vocs,optional,snappy"`
	CO2                  *float64 `parquet:"co2,optional,snappy"`
	O2                   *float64 `parquet:"o2,optional,snappy"`
	CH4                  *float64 `parquet:"ch4,optional,snappy"`
	H2                   *float64 `parquet:"h2,optional,snappy"`
	H2S                  *float64 `parquet:"h2s,optional,snappy"`
	RadonScore           *int32   `parquet:"radon_score,optional,snappy"`
	VOCsScore            *int32   `parquet:"vocs_score,optional,snappy"`
	CO2Score             *int32   `parquet:"co2_score,optional,snappy"`
	O2Score              *int32   `parquet:"o2_score,optional,snappy"`
	CH4Score             *int32   `parquet:"ch4_score,optional,snappy"`
	H2Score              *int32   `parquet:"h2_score,optional,snappy"`
	H2SScore             *int32   `parquet:"h2s_score,optional,snappy"`
	OtherSoilGasScore    int32    `parquet:"other_soil_gas_score,snappy"`
	AllIndicatorScore    *int32   `parquet:"all_indicator_score,optional,snappy"`
	Label                string   `parquet:"label,snappy"`
	ScopeOfContamination bool     `parquet:"scope_of_contamination,snappy"`
	Exceedance           bool     `parquet:"exceedance,snappy"`
}

// BackgroundCutoff is one row of a background cut-off file.
type BackgroundCutoff struct {
	Indicator  string   `parquet:"indicator,snappy"`
	Count      int32    `parquet:"count,snappy"`
	Cutoff     *float64 `parquet:"cutoff,optional,snappy"`
	LowCenter  *float64 `parquet:"low_center,optional,snappy"`
	HighCenter *float64 `parquet:"high_center,optional,snappy"`
	Overridden bool     `parquet:"overridden,snappy"`
}

// PCAScore is one row of a PCA score file. Missing components are null.
type PCAScore struct {
	PointID string   `parquet:"point_id,snappy"`
	X       float64  `parquet:"x,snappy"`
	Y       float64  `parquet:"y,snappy"`
	PC1     float64  `parquet:"pc1,snappy"`
	PC2     *float64 `parquet:"pc2,optional,snappy"`
	PC3     *float64 `parquet:"pc3,optional,snappy"`
}

// Write encodes rows of T into w. The schema is derived from the struct tags of T.
func Write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile writes rows of T to a new Parquet file at outputPath.
func WriteFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Write(file, data)
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return WriteFile(data, outputPath)
}

// WritePointResultsParquet writes a slice of PointResult structs to a Parquet file.
func WritePointResultsParquet(data []PointResult, outputPath string) error {
	return WriteFile(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:          record.AnalysisID,
			RunUUID:             record.RunUUID,
			Method:              record.Method,
			StartTime:           record.StartTime,
			EndTime:             record.EndTime,
			RunDurationMs:       record.RunDurationMs,
			TotalPointsAnalyzed: record.TotalPointsAnalyzed,
			ConfigParams:        record.ConfigParams,
		}
	}
	return result
}

// ConvertPointResultRecords converts schema.PointResultRecord to PointResult for Parquet export.
func ConvertPointResultRecords(records []schema.PointResultRecord) []PointResult {
	result := make([]PointResult, len(records))
	for i, r := range records {
		result[i] = PointResult{
			AnalysisID:           r.AnalysisID,
			PointID:              r.PointID,
			X:                    r.X,
			Y:                    r.Y,
			RadonScore:           r.RadonScore,
			VOCsScore:            r.VOCsScore,
			CO2Score:             r.CO2Score,
			O2Score:              r.O2Score,
			CH4Score:             r.CH4Score,
			H2Score:              r.H2Score,
			H2SScore:             r.H2SScore,
			OtherSoilGasScore:    r.OtherSoilGasScore,
			AllIndicatorScore:    r.AllIndicatorScore,
			Label:                r.Label,
			ScopeOfContamination: r.ScopeOfContamination,
		}
	}
	return result
}

// ConvertEnrichedPoints converts ranked threshold results into ScoredPoint rows.
func ConvertEnrichedPoints(points []schema.EnrichedPointResult) []ScoredPoint {
	result := make([]ScoredPoint, len(points))
	for i, p := range points {
		rec := schema.NewPointResultRecord(0, p.PointResult)
		var all *int32
		if p.AllIndicatorScore != nil {
			v := int32(*p.AllIndicatorScore)
			all = &v
		}
		result[i] = ScoredPoint{
			Rank:                 int32(p.Rank),
			PointID:              p.ID,
			X:                    p.X,
			Y:                    p.Y,
			Radon:                p.Value(schema.Radon),
			VOCs:                 p.Value(schema.VOCs),
			CO2:                  p.Value(schema.CO2),
			O2:                   p.Value(schema.O2),
			CH4:                  p.Value(schema.CH4),
			H2:                   p.Value(schema.H2),
			H2S:                  p.Value(schema.H2S),
			RadonScore:           rec.RadonScore,
			VOCsScore:            rec.VOCsScore,
			CO2Score:             rec.CO2Score,
			O2Score:              rec.O2Score,
			CH4Score:             rec.CH4Score,
			H2Score:              rec.H2Score,
			H2SScore:             rec.H2SScore,
			OtherSoilGasScore:    int32(p.OtherSoilGasScore),
			AllIndicatorScore:    all,
			Label:                string(p.Label),
			ScopeOfContamination: p.ScopeOfContamination,
			Exceedance:           p.Exceedance,
		}
	}
	return result
}

// ConvertCutoffs converts background cut-offs into BackgroundCutoff rows.
func ConvertCutoffs(cutoffs []schema.Cutoff) []BackgroundCutoff {
	result := make([]BackgroundCutoff, len(cutoffs))
	for i, c := range cutoffs {
		row := BackgroundCutoff{
			Indicator:  string(c.Indicator),
			Count:      int32(c.Count),
			Cutoff:     c.Value,
			Overridden: c.Overridden,
		}
		if len(c.Centers) == 2 {
			low, high := c.Centers[0], c.Centers[1]
			row.LowCenter, row.HighCenter = &low, &high
		}
		result[i] = row
	}
	return result
}

// ConvertPCAScores converts PCA scores into PCAScore rows.
func ConvertPCAScores(scores []schema.PCAScore) []PCAScore {
	result := make([]PCAScore, len(scores))
	for i, s := range scores {
		row := PCAScore{PointID: s.PointID, X: s.X, Y: s.Y}
		if len(s.PCs) > 0 {
			row.PC1 = s.PCs[0]
		}
		if len(s.PCs) > 1 {
			v := s.PCs[1]
			row.PC2 = &v
		}
		if len(s.PCs) > 2 {
			v := s.PCs[2]
			row.PC3 = &v
		}
		result[i] = row
	}
	return result
}
