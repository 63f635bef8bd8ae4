package cmd

import (
	"fmt"
	"strings"

	"github.com/sdphc/sdphc/core"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// scoreCmd scores one set of measurements without a dataset.
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single set of indicator measurements.",
	Long: `Score measurements given as flags and print the resulting score record.

Values are taken in field units: VOCs in ppb and CO2 in ppm. They are
normalized before scoring. Indicators that are not given count as not measured.

Examples:
  sdphc score --radon 12000 --vocs 8000 --co2 60000 --o2 12 --ch4 0.5
  sdphc score --vocs 2500 --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		values, err := scoreValues(cmd.Flags())
		if err != nil {
			contract.LogFatal("Invalid measurements", err)
		}
		if err := core.ExecuteScore(rootCtx, cfg, values); err != nil {
			contract.LogFatal("Cannot score measurements", err)
		}
	},
}

func scoreFlagName(ind schema.Indicator) string {
	return strings.ToLower(string(ind))
}

func scoreFlagUsage(ind schema.Indicator) string {
	return fmt.Sprintf("%s measurement (%s)", ind.Info().Label, ind.Unit())
}

// scoreValues collects the indicator flags that were set on the command line.
func scoreValues(flags *pflag.FlagSet) (map[schema.Indicator]*float64, error) {
	values := make(map[schema.Indicator]*float64)
	for _, ind := range schema.ScoredIndicators() {
		name := scoreFlagName(ind)
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", name, err)
		}
		values[ind] = schema.FloatPtr(v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one indicator flag is required")
	}
	return values, nil
}
