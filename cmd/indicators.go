package cmd

import (
	"github.com/sdphc/sdphc/core"
	"github.com/spf13/cobra"
)

// indicatorsCmd prints the indicator catalogue.
var indicatorsCmd = &cobra.Command{
	Use:     "indicators",
	Short:   "List the supported indicators, their units and breakpoints.",
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor(core.ExecuteIndicators, "Cannot list indicators"),
}
