package cmd

import (
	"github.com/sdphc/sdphc/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the SDPHC MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents score measurements,
classify surveys, derive background cut-offs and run principal components.

Settings such as the field mapping and id/x/y columns are taken from the
config file and flags, and act as defaults for every tool call.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
