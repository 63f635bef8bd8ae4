package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
)

func openCSV(path string) (*csv.Reader, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader, file, nil
}

func readCSVHeader(path string) ([]string, error) {
	reader, file, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	return cleanHeader(header), nil
}

func readCSV(path string, opts Options) ([]record, []string, error) {
	reader, file, err := openCSV(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = file.Close() }()

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = cleanHeader(header)
	xIdx := slices.Index(header, opts.XField)
	yIdx := slices.Index(header, opts.YField)
	if xIdx < 0 || yIdx < 0 {
		return nil, nil, fmt.Errorf("coordinate columns %q and %q are required", opts.XField, opts.YField)
	}
	idIdx := slices.Index(header, opts.IDField)

	var records []record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		cell := func(i int) string {
			if i < 0 || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		x, err := strconv.ParseFloat(cell(xIdx), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: malformed %s coordinate %q", line, opts.XField, cell(xIdx))
		}
		y, err := strconv.ParseFloat(cell(yIdx), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: malformed %s coordinate %q", line, opts.YField, cell(yIdx))
		}
		attrs := make(map[string]any, len(header))
		for i, name := range header {
			attrs[name] = cell(i)
		}
		id := cell(idIdx)
		if id == "" {
			id = strconv.Itoa(line - 1)
		}
		records = append(records, record{id: id, x: x, y: y, attrs: attrs})
	}
	return records, header, nil
}

// cleanHeader trims names and drops a UTF-8 byte order mark.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}
