package outwriter

import (
	"io"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
)

// ColumnEntry is one dataset column and the indicator it feeds, if any.
type ColumnEntry struct {
	Column    string           `json:"column" yaml:"column"`
	Indicator schema.Indicator `json:"indicator,omitempty" yaml:"indicator,omitempty"`
}

// ColumnEntries pairs every column with its indicator mapping.
func ColumnEntries(columns []string, mapping map[schema.Indicator]string) []ColumnEntry {
	byColumn := make(map[string]schema.Indicator, len(mapping))
	for ind, col := range mapping {
		byColumn[col] = ind
	}
	out := make([]ColumnEntry, len(columns))
	for i, col := range columns {
		out[i] = ColumnEntry{Column: col, Indicator: byColumn[col]}
	}
	return out
}

// PrintColumns writes the dataset columns to stdout or the output file.
func PrintColumns(columns []string, mapping map[schema.Indicator]string, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteColumns(w, columns, mapping, cfg)
	}, successMessage(cfg.Output))
}

// WriteColumns writes the dataset columns in the configured format.
func WriteColumns(w io.Writer, columns []string, mapping map[schema.Indicator]string, cfg *contract.Config) error {
	entries := ColumnEntries(columns, mapping)
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, entries)
	case schema.YAMLOut:
		return writeYAML(w, entries)
	}

	data := make([][]string, len(entries))
	for i, e := range entries {
		ind, unit := "-", "-"
		if e.Indicator != "" {
			ind = string(e.Indicator)
			unit = e.Indicator.Unit()
		}
		data[i] = []string{e.Column, ind, unit}
	}
	return renderTable(w, []string{"Column", "Indicator", "Unit"}, data)
}
