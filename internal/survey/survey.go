// Package survey reads sampling point datasets and boundary polygons.
package survey

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sdphc/sdphc/schema"
)

// Sentinel errors of the survey readers.
var (
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	ErrEmptyBoundary     = errors.New("boundary contains no polygon")
	ErrNotPoint          = errors.New("feature geometry is not a point")
)

// Format identifies a dataset encoding.
type Format string

// Supported dataset formats.
const (
	GeoJSONFormat Format = "geojson"
	CSVFormat     Format = "csv"
	ParquetFormat Format = "parquet"
)

// Options controls how a dataset is mapped onto sampling points.
type Options struct {
	// Fields maps an indicator to a dataset column. Indicators without an entry
	// are matched to a column with the same name, ignoring case.
	Fields  map[schema.Indicator]string
	IDField string
	XField  string
	YField  string

	// DropIncomplete removes points missing any mapped non-radon scored indicator.
	DropIncomplete bool
}

// record is one row of a dataset before indicator mapping.
type record struct {
	id    string
	x, y  float64
	attrs map[string]any
}

// DetectFormat picks the dataset format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return GeoJSONFormat, nil
	case ".csv":
		return CSVFormat, nil
	case ".parquet":
		return ParquetFormat, nil
	default:
		return "", fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// Load reads a point dataset and maps its columns onto indicators.
func Load(path string, opts Options) (schema.Survey, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return schema.Survey{}, err
	}
	var (
		records []record
		columns []string
	)
	switch format {
	case GeoJSONFormat:
		records, columns, err = readGeoJSON(path, opts)
	case CSVFormat:
		records, columns, err = readCSV(path, opts)
	case ParquetFormat:
		records, columns, err = readParquet(path, opts)
	}
	if err != nil {
		return schema.Survey{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mapping := ResolveFields(columns, opts.Fields)
	sv := schema.Survey{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Columns: mappedIndicators(mapping),
	}
	for _, rec := range records {
		p := schema.SamplePoint{
			ID:     rec.id,
			X:      rec.x,
			Y:      rec.y,
			Values: make(map[schema.Indicator]*float64, len(mapping)),
		}
		for ind, col := range mapping {
			p.Values[ind] = toFloat(rec.attrs[col])
		}
		sv.Points = append(sv.Points, p)
	}
	if opts.DropIncomplete {
		sv.Points, sv.Dropped = dropIncomplete(sv.Points, sv.Columns)
	}
	return sv, nil
}

// ResolveFields returns the dataset column of every indicator that can be mapped.
// Explicit entries win; an explicit column absent from the dataset leaves the indicator unmapped.
func ResolveFields(columns []string, explicit map[schema.Indicator]string) map[schema.Indicator]string {
	out := make(map[schema.Indicator]string)
	for _, ind := range schema.AllIndicators() {
		if col, ok := explicit[ind]; ok {
			if slices.Contains(columns, col) {
				out[ind] = col
			}
			continue
		}
		for _, col := range columns {
			if c, err := schema.LookupIndicator(col); err == nil && c == ind {
				out[ind] = col
				break
			}
		}
	}
	return out
}

func mappedIndicators(mapping map[schema.Indicator]string) []schema.Indicator {
	var out []schema.Indicator
	for _, ind := range schema.AllIndicators() {
		if _, ok := mapping[ind]; ok {
			out = append(out, ind)
		}
	}
	return out
}

func dropIncomplete(points []schema.SamplePoint, columns []schema.Indicator) ([]schema.SamplePoint, int) {
	var required []schema.Indicator
	for _, ind := range columns {
		if slices.Contains(schema.OtherSoilGases(), ind) {
			required = append(required, ind)
		}
	}
	kept := points[:0:0]
	for _, p := range points {
		complete := true
		for _, ind := range required {
			if p.Value(ind) == nil {
				complete = false
				break
			}
		}
		if complete {
			kept = append(kept, p)
		}
	}
	return kept, len(points) - len(kept)
}

// toFloat converts a raw cell into a measurement. Empty, non-numeric and NaN cells are missing.
func toFloat(v any) *float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int64:
		f = float64(t)
	case int:
		f = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// toID renders a raw cell as a point identifier.
func toID(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

// Columns lists the attribute columns of a dataset.
func Columns(path string) ([]string, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	var columns []string
	switch format {
	case GeoJSONFormat:
		_, columns, err = readGeoJSON(path, Options{})
	case CSVFormat:
		columns, err = readCSVHeader(path)
	case ParquetFormat:
		columns, err = readParquetColumns(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return columns, nil
}
