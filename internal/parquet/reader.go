package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Table is a Parquet file decoded into loosely typed cells.
// Cells hold float64, int64, string, bool or nil.
type Table struct {
	Columns []string
	Rows    []map[string]any
}

// ReadTable loads every row of a flat Parquet file.
func ReadTable(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return Table{}, err
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return Table{}, fmt.Errorf("failed to open parquet file: %w", err)
	}

	var table Table
	for _, path := range pf.Schema().Columns() {
		table.Columns = append(table.Columns, strings.Join(path, "."))
	}

	buf := make([]parquet.Row, 128)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				table.Rows = append(table.Rows, decodeRow(table.Columns, row))
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				_ = rows.Close()
				return Table{}, fmt.Errorf("failed to read parquet rows: %w", err)
			}
		}
		_ = rows.Close()
	}
	return table, nil
}

// ReadColumns returns the leaf column names of a Parquet file.
func ReadColumns(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	var columns []string
	for _, path := range pf.Schema().Columns() {
		columns = append(columns, strings.Join(path, "."))
	}
	return columns, nil
}

func decodeRow(columns []string, row parquet.Row) map[string]any {
	out := make(map[string]any, len(columns))
	for _, v := range row {
		idx := v.Column()
		if idx < 0 || idx >= len(columns) {
			continue
		}
		out[columns[idx]] = decodeValue(v)
	}
	return out
}

func decodeValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
