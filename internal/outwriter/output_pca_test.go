package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePCAResult() schema.PCAResult {
	return schema.PCAResult{
		RunID:         "pca-1",
		Columns:       []schema.Indicator{schema.Radon, schema.VOCs, schema.CO2},
		Loadings:      [][]float64{{0.7, 0.1}, {-0.5, 0.8}, {0.5, 0.6}},
		VarianceRatio: []float64{0.75, 0.25},
		Scores: []schema.PCAScore{
			{PointID: "A", X: 1, Y: 1, PCs: []float64{1.25, -0.5}},
			{PointID: "B", X: 2, Y: 2, PCs: []float64{-1.2345, 0.5}},
		},
	}
}

func TestWritePCACSV(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.CSVOut, Precision: 3}
	require.NoError(t, WritePCAResults(&buf, samplePCAResult(), cfg, time.Second))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"point_id", "x", "y", "PC1", "PC2"}, records[0])
	assert.Equal(t, []string{"A", "1", "1", "1.250", "-0.500"}, records[1])
}

func TestWritePCAJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.JSONOut}
	require.NoError(t, WritePCAResults(&buf, samplePCAResult(), cfg, time.Second))

	var decoded schema.PCAResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, samplePCAResult().Loadings, decoded.Loadings)
	assert.Equal(t, []float64{0.75, 0.25}, decoded.VarianceRatio)
}

func TestWritePCATables(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.TextOut, Precision: 2, Width: 120}
	require.NoError(t, WritePCAResults(&buf, samplePCAResult(), cfg, time.Second))

	out := buf.String()
	assert.Contains(t, out, "PC1")
	assert.NotContains(t, out, "PC 1", "headers match the CSV column names")
	assert.Contains(t, out, "75.00%")
	assert.Contains(t, out, "-0.50")
	assert.Contains(t, out, "Showing 2 complete points over Radon, VOCs, CO2")
}

func TestWritePCAGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{Output: schema.GeoJSONOut}
	require.NoError(t, WritePCAResults(&buf, samplePCAResult(), cfg, time.Second))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	props := decoded["features"].([]any)[1].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, -1.2345, props["PC1"])
}
