package cmd

import (
	"github.com/sdphc/sdphc/core"
	"github.com/spf13/cobra"
)

// columnsCmd lists the columns of a dataset and the indicators they resolve to.
var columnsCmd = &cobra.Command{
	Use:   "columns <points>",
	Short: "List dataset columns and the indicators they map to.",
	Long: `Read the header of a CSV, GeoJSON or parquet dataset and show which
indicator every column resolves to, after applying --field and the
fields mapping of the config file.

Examples:
  sdphc columns survey.csv
  sdphc columns survey.csv --field radon=Rn --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteColumns, "Cannot list columns"),
}
