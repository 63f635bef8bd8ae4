package cmd

import (
	"github.com/sdphc/sdphc/core"
	"github.com/spf13/cobra"
)

// backgroundCmd runs the background level method.
var backgroundCmd = &cobra.Command{
	Use:   "background <points>",
	Short: "Derive background cut-offs and flag anomalous points.",
	Long: `Split each indicator into background and anomaly populations with a
two-cluster k-means and use the midpoint of the cluster centers as cut-off.

Cut-offs can be fixed per indicator in the config file:

  background:
    cutoffs:
      radon: 8000
      fg: 100

Points above a cut-off are marked as anomalous. Radon and O2 are marked when at or below it.

Examples:
  # Compute cut-offs and the anomaly table
  sdphc background survey.csv

  # Plot ECDF, k-means and anomaly maps per indicator
  sdphc background survey.csv --plot-dir figures`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteBackground, "Cannot run background analysis"),
}
