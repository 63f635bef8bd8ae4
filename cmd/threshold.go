package cmd

import (
	"github.com/sdphc/sdphc/core"
	"github.com/spf13/cobra"
)

// thresholdCmd runs the empirical threshold method.
var thresholdCmd = &cobra.Command{
	Use:   "threshold <points>",
	Short: "Score and classify survey points against the breakpoint tables.",
	Long: `Score every survey point against the empirical breakpoint tables and
classify it as a pollution source, a suspected source or unclassified.

For each point the command reports:
- The score of every measured indicator
- The other soil gas composite and, where defined, the all-indicator composite
- Whether the point lies in the scope of contamination or is an exceedance point

Exceedance points are ranked by composite score. When --plot-dir is given,
source area, scope, exceedance and pollution level maps are written as PNG.

Examples:
  # Classify a survey using the default PointID/X/Y columns
  sdphc threshold survey.csv --field radon=Rn --field vocs=VOC --field co2=CO2

  # Clip the level map to the site boundary and write figures
  sdphc threshold survey.csv --boundary site.geojson --plot-dir figures --html

  # Export results for GIS
  sdphc threshold survey.csv --output geojson --output-file points.geojson`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteThreshold, "Cannot run threshold analysis"),
}
