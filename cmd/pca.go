package cmd

import (
	"github.com/sdphc/sdphc/core"
	"github.com/spf13/cobra"
)

// pcaCmd runs the principal component method.
var pcaCmd = &cobra.Command{
	Use:   "pca <points>",
	Short: "Run principal component analysis over the mapped indicators.",
	Long: `Standardize the mapped indicators of complete points and extract up to
three principal components.

Reports the explained variance ratio, the loadings of every indicator and the
component scores of each point. With --plot-dir the first component is
interpolated with every method and mapped.

Examples:
  sdphc pca survey.csv --field radon=Rn --field co2=CO2 --field ch4=CH4
  sdphc pca survey.csv --plot-dir figures --html --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecutePCA, "Cannot run principal component analysis"),
}
