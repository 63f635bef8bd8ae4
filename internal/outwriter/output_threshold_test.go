package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/parquet"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleThresholdResult() schema.ThresholdResult {
	source := schema.PointResult{
		SamplePoint: schema.SamplePoint{
			ID: "S1", X: 500100, Y: 3500200,
			Values: map[schema.Indicator]*float64{
				schema.Radon: schema.FloatPtr(10),
				schema.VOCs:  schema.FloatPtr(50),
			},
		},
		ScoreRecord: schema.ScoreRecord{
			Scores: map[schema.Indicator]*int{
				schema.Radon: schema.IntPtr(11),
				schema.VOCs:  schema.IntPtr(6),
			},
			OtherSoilGasScore:    6,
			AllIndicatorScore:    schema.IntPtr(17),
			Label:                schema.SourceLabel,
			ScopeOfContamination: true,
			Exceedance:           true,
		},
	}
	below := schema.PointResult{
		SamplePoint: schema.SamplePoint{ID: "S2", X: 500150, Y: 3500250, Values: map[schema.Indicator]*float64{}},
		ScoreRecord: schema.ScoreRecord{Scores: map[schema.Indicator]*int{}, Label: schema.BelowThresholdLabel},
	}
	return schema.ThresholdResult{
		RunID:      "run-1",
		AnalyzedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Points:     []schema.PointResult{source, below},
		Exceedance: []schema.PointResult{source},
		Summary: schema.ThresholdSummary{
			TotalPoints:     2,
			LabelCounts:     map[schema.ContaminationLabel]int{schema.SourceLabel: 1, schema.BelowThresholdLabel: 1},
			ScopeCount:      1,
			ExceedanceCount: 1,
			MaxOtherSoilGas: 6,
			MaxAllIndicator: schema.IntPtr(17),
		},
	}
}

func TestWriteThresholdJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.JSONOut, Precision: 2}
	require.NoError(t, WriteThresholdResults(&buf, sampleThresholdResult(), cfg, time.Second))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])

	points := decoded["points"].([]any)
	require.Len(t, points, 2)
	first := points[0].(map[string]any)
	assert.Equal(t, "S1", first["id"])
	assert.Equal(t, "Source_of_contamination", first["label"])
	assert.Equal(t, float64(17), first["all_indicator_score"])
	assert.Nil(t, points[1].(map[string]any)["all_indicator_score"])
}

func TestWriteThresholdYAML(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.YAMLOut, Precision: 2}
	require.NoError(t, WriteThresholdResults(&buf, sampleThresholdResult(), cfg, time.Second))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	points := decoded["points"].([]any)
	require.Len(t, points, 2)
	assert.Equal(t, "S1", points[0].(map[string]any)["id"])
	assert.Equal(t, 6, points[0].(map[string]any)["other_soil_gas_score"])
}

func TestWriteThresholdCSV(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.CSVOut, Precision: 2}
	require.NoError(t, WriteThresholdResults(&buf, sampleThresholdResult(), cfg, time.Second))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	header := records[0]
	assert.Equal(t, "point_id", header[0])
	assert.Contains(t, header, "Radon_score")
	assert.Contains(t, header, "all_indicator_score")

	col := func(name string) int {
		for i, h := range header {
			if h == name {
				return i
			}
		}
		t.Fatalf("missing column %s", name)
		return -1
	}
	assert.Equal(t, "11", records[1][col("Radon_score")])
	assert.Equal(t, "50", records[1][col("VOCs")])
	assert.Equal(t, "", records[2][col("all_indicator_score")])
	assert.Equal(t, "Scores<6", records[2][col("label")])
	assert.Equal(t, "false", records[2][col("scope_of_contamination")])
}

func TestWriteThresholdCSVKeepsSmallValues(t *testing.T) {
	p := schema.PointResult{
		SamplePoint: schema.SamplePoint{
			ID: "P1",
			Values: map[schema.Indicator]*float64{
				schema.VOCs: schema.FloatPtr(0.15),
				schema.CH4:  schema.FloatPtr(0.003),
			},
		},
		ScoreRecord: schema.ScoreRecord{
			Scores: map[schema.Indicator]*int{
				schema.VOCs: schema.IntPtr(1),
				schema.CH4:  schema.IntPtr(2),
			},
			OtherSoilGasScore: 3,
			Label:             schema.BelowThresholdLabel,
		},
	}
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.CSVOut, Precision: 2}
	require.NoError(t, WriteThresholdResults(&buf, schema.ThresholdResult{Points: []schema.PointResult{p}}, cfg, time.Second))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	row := make(map[string]string, len(records[0]))
	for i, h := range records[0] {
		row[h] = records[1][i]
	}
	assert.Equal(t, "0.003", row["CH4"])
	assert.Equal(t, "2", row["CH4_score"])
	assert.Equal(t, "0.15", row["VOCs"])
	assert.Equal(t, "", row["Radon"])
}

func TestWriteThresholdGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.GeoJSONOut}
	require.NoError(t, WriteThresholdResults(&buf, sampleThresholdResult(), cfg, time.Second))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "FeatureCollection", decoded["type"])
	assert.Contains(t, decoded, "crs")

	features := decoded["features"].([]any)
	require.Len(t, features, 2)
	f := features[0].(map[string]any)
	coords := f["geometry"].(map[string]any)["coordinates"].([]any)
	assert.Equal(t, 500100.0, coords[0])
	props := f["properties"].(map[string]any)
	assert.Equal(t, "Critical Risk Point", props["display_name"])
	assert.Nil(t, props["CO2_score"])
}

func TestWriteThresholdTable(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2, Width: 160}
	require.NoError(t, WriteThresholdResults(&buf, sampleThresholdResult(), cfg, time.Second))

	out := buf.String()
	assert.Contains(t, out, "S1")
	assert.NotContains(t, out, "S2")
	assert.Contains(t, out, "Critical Risk Point")
	assert.Contains(t, out, "Showing 1 exceedance points of 2 analyzed")
	assert.Contains(t, out, "Scope of contamination: 1 points")
}

func TestWriteThresholdTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	result := sampleThresholdResult()
	result.Exceedance = nil
	result.Summary.DroppedPoints = 3
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2, Width: 120}
	require.NoError(t, WriteThresholdResults(&buf, result, cfg, time.Second))

	assert.Contains(t, buf.String(), "No exceedance points found.")
	assert.Contains(t, buf.String(), "(3 incomplete points dropped)")
}

func TestPrintThresholdParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "threshold.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: path}
	require.NoError(t, PrintThresholdResults(sampleThresholdResult(), cfg, time.Second))

	table, err := parquet.ReadTable(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "S1", table.Rows[0]["point_id"])
	assert.Equal(t, int64(1), table.Rows[0]["rank"])
	assert.Nil(t, table.Rows[1]["all_indicator_score"])
}
