package outwriter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
)

// IndicatorEntry is one catalogue row with its score table when the indicator is scored.
type IndicatorEntry struct {
	schema.IndicatorInfo `yaml:",inline"`
	ScoreTable           *schema.ScoreTable `json:"score_table,omitempty" yaml:"score_table,omitempty"`
}

// IndicatorEntries joins the catalogue with the score tables.
func IndicatorEntries() []IndicatorEntry {
	infos := schema.Catalogue()
	out := make([]IndicatorEntry, len(infos))
	for i, info := range infos {
		out[i] = IndicatorEntry{IndicatorInfo: info}
		if table, ok := schema.LookupScoreTable(info.Name); ok {
			out[i].ScoreTable = &table
		}
	}
	return out
}

// PrintIndicators writes the indicator catalogue to stdout or the output file.
func PrintIndicators(cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteIndicators(w, cfg)
	}, successMessage(cfg.Output))
}

// WriteIndicators writes the indicator catalogue in the configured format.
func WriteIndicators(w io.Writer, cfg *contract.Config) error {
	entries := IndicatorEntries()
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, entries)
	case schema.YAMLOut:
		return writeYAML(w, entries)
	}

	data := make([][]string, 0, len(entries))
	for _, e := range entries {
		data = append(data, []string{string(e.Name), e.Label, e.ChineseName, e.Unit, describeTable(e.ScoreTable)})
	}
	if err := renderTable(w, []string{"Indicator", "Label", "Chinese", "Unit", "Score brackets"}, data); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%s %s (%s)\n", schema.SoftwareShortName, schema.SoftwareVersion, schema.SoftwareName)
	return nil
}

// describeTable renders a score table as "<15:11 <150:3 <1500:1 else:0".
func describeTable(t *schema.ScoreTable) string {
	if t == nil {
		return "-"
	}
	parts := make([]string, 0, len(t.Scores))
	for i, bp := range t.Breakpoints {
		op := "<="
		if bp.InclusiveLeft {
			op = "<"
		}
		parts = append(parts, op+strconv.FormatFloat(bp.Value, 'g', -1, 64)+":"+strconv.Itoa(t.Scores[i]))
	}
	parts = append(parts, "else:"+strconv.Itoa(t.Scores[len(t.Scores)-1]))
	return strings.Join(parts, " ")
}

// PrintScore writes the score record of a single point to stdout or the output file.
func PrintScore(result schema.PointResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteScore(w, result, cfg)
	}, successMessage(cfg.Output))
}

// WriteScore writes the score record of a single point in the configured format.
func WriteScore(w io.Writer, result schema.PointResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, result)
	case schema.YAMLOut:
		return writeYAML(w, result)
	}

	_, fmtOptFloat := createFormatters(cfg.Precision)
	data := make([][]string, 0, len(thresholdScoreColumns))
	for _, ind := range thresholdScoreColumns {
		data = append(data, []string{
			ind.Info().Label,
			fmtOptFloat(result.Value(ind)),
			ind.Unit(),
			schema.FormatOptionalInt(result.Score(ind)),
		})
	}
	if err := renderTable(w, []string{"Indicator", "Value", "Unit", "Score"}, data); err != nil {
		return err
	}

	label := contract.GetPlainLabel(result.Label)
	if cfg.UseColors {
		label = contract.GetColorLabel(result.Label, result.ScopeOfContamination)
	}
	_, _ = fmt.Fprintf(w, "Other soil gas score: %d | All indicator score: %s\n",
		result.OtherSoilGasScore, schema.FormatOptionalInt(result.AllIndicatorScore))
	_, _ = fmt.Fprintf(w, "Label: %s | Scope of contamination: %t | Exceedance: %t\n",
		label, result.ScopeOfContamination, result.Exceedance)
	return nil
}
