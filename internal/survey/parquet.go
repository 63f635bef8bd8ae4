package survey

import (
	"fmt"
	"strconv"

	"github.com/sdphc/sdphc/internal/parquet"
)

func readParquetColumns(path string) ([]string, error) {
	return parquet.ReadColumns(path)
}

func readParquet(path string, opts Options) ([]record, []string, error) {
	table, err := parquet.ReadTable(path)
	if err != nil {
		return nil, nil, err
	}
	records := make([]record, 0, len(table.Rows))
	for i, row := range table.Rows {
		x := toFloat(row[opts.XField])
		y := toFloat(row[opts.YField])
		if x == nil || y == nil {
			return nil, nil, fmt.Errorf("row %d: coordinate columns %q and %q are required", i+1, opts.XField, opts.YField)
		}
		id := toID(row[opts.IDField])
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		records = append(records, record{id: id, x: *x, y: *y, attrs: row})
	}
	return records, table.Columns, nil
}
