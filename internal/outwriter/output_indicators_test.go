package outwriter

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndicatorEntries(t *testing.T) {
	entries := IndicatorEntries()
	require.Len(t, entries, len(schema.AllIndicators()))
	for _, e := range entries {
		if e.Name == schema.FG {
			assert.Nil(t, e.ScoreTable)
			continue
		}
		require.NotNil(t, e.ScoreTable, e.Name)
		assert.NoError(t, e.ScoreTable.Validate())
	}
}

func TestDescribeTable(t *testing.T) {
	radon, ok := schema.LookupScoreTable(schema.Radon)
	require.True(t, ok)
	assert.Equal(t, "<15:11 <150:3 <1500:1 else:0", describeTable(&radon))

	vocs, ok := schema.LookupScoreTable(schema.VOCs)
	require.True(t, ok)
	assert.Equal(t, "<=0.1:0 <=1:1 <=10:2 <=100:6 else:22", describeTable(&vocs))
	assert.Equal(t, "-", describeTable(nil))
}

func TestWriteIndicators(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIndicators(&buf, &contract.Config{Output: schema.TextOut}))
	out := buf.String()
	assert.Contains(t, out, "Radon")
	assert.Contains(t, out, "Bq/m³")
	assert.Contains(t, out, schema.SoftwareShortName)

	buf.Reset()
	require.NoError(t, WriteIndicators(&buf, &contract.Config{Output: schema.JSONOut}))
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, len(schema.AllIndicators()))
	assert.Equal(t, "Radon", decoded[0]["name"])
	assert.Contains(t, decoded[0], "score_table")
}

func TestWriteScore(t *testing.T) {
	result := sampleThresholdResult().Points[0]

	var buf bytes.Buffer
	require.NoError(t, WriteScore(&buf, result, &contract.Config{Output: schema.TextOut, Precision: 1}))
	out := buf.String()
	assert.Contains(t, out, "50.0")
	assert.Contains(t, out, "All indicator score: 17")
	assert.Contains(t, out, "Label: Critical Risk Point")

	buf.Reset()
	require.NoError(t, WriteScore(&buf, result, &contract.Config{Output: schema.JSONOut}))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(6), decoded["other_soil_gas_score"])
}

func TestGetMaxTableIDWidth(t *testing.T) {
	assert.Equal(t, 40, GetMaxTableIDWidth(&contract.Config{Width: 300}, 100))
	assert.Equal(t, 8, GetMaxTableIDWidth(&contract.Config{Width: 60}, 100))
	assert.Equal(t, 20, GetMaxTableIDWidth(&contract.Config{Width: 130}, 100))
}

func TestWriteWithFile(t *testing.T) {
	path := t.TempDir() + "/out.txt"
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}, "Wrote text")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
