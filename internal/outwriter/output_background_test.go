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
)

func sampleBackgroundResult() schema.BackgroundResult {
	return schema.BackgroundResult{
		RunID: "bg-1",
		Cutoffs: []schema.Cutoff{
			{Indicator: schema.Radon, Count: 4, Value: schema.FloatPtr(25), Centers: []float64{10, 40}},
			{Indicator: schema.VOCs, Count: 4, Value: schema.FloatPtr(300), Overridden: true},
			{Indicator: schema.FG, Count: 0},
		},
		Rows: []schema.AnomalyRow{
			{PointID: "P1", X: 1, Y: 2, Marks: map[schema.Indicator]schema.AnomalyMark{
				schema.Radon: schema.AnomalousMark, schema.VOCs: schema.NormalMark, schema.FG: schema.MissingMark,
			}},
			{PointID: "P2", X: 3, Y: 4, Marks: map[schema.Indicator]schema.AnomalyMark{
				schema.Radon: schema.NormalMark, schema.VOCs: schema.NormalMark, schema.FG: schema.MissingMark,
			}},
		},
	}
}

func TestWriteBackgroundCSV(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.CSVOut, Precision: 2}
	require.NoError(t, WriteBackgroundResults(&buf, sampleBackgroundResult(), cfg, time.Second))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"point_id", "x", "y", "Abnormally Low Radon", "Abnormally High VOCs", "Abnormally High Functional Genes"}, records[0])
	assert.Equal(t, []string{"P1", "1", "2", "√", "×", "⚪"}, records[1])
}

func TestWriteBackgroundJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.JSONOut}
	require.NoError(t, WriteBackgroundResults(&buf, sampleBackgroundResult(), cfg, time.Second))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	cutoffs := decoded["cutoffs"].([]any)
	require.Len(t, cutoffs, 3)
	assert.Equal(t, 25.0, cutoffs[0].(map[string]any)["cutoff"])
	assert.Nil(t, cutoffs[2].(map[string]any)["cutoff"])
}

func TestWriteBackgroundTables(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.TextOut, Precision: 1, Width: 120}
	require.NoError(t, WriteBackgroundResults(&buf, sampleBackgroundResult(), cfg, time.Second))

	out := buf.String()
	assert.Contains(t, out, "25.0")
	assert.Contains(t, out, "override")
	assert.Contains(t, out, "kmeans")
	assert.Contains(t, out, "Showing 2 points, 1 with at least one anomaly")
}

func TestWriteBackgroundGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.GeoJSONOut}
	require.NoError(t, WriteBackgroundResults(&buf, sampleBackgroundResult(), cfg, time.Second))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	features := decoded["features"].([]any)
	require.Len(t, features, 2)
	props := features[0].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "√", props["Abnormally Low Radon"])
	assert.Equal(t, "P1", props["point_id"])
}

func TestPrintBackgroundParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cutoffs.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: path}
	require.NoError(t, PrintBackgroundResults(sampleBackgroundResult(), cfg, time.Second))

	table, err := parquet.ReadTable(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, "Radon", table.Rows[0]["indicator"])
	assert.Equal(t, 10.0, table.Rows[0]["low_center"])
	assert.Equal(t, true, table.Rows[1]["overridden"])
}
