// Package cmd defines the command-line interface for sdphc.
package cmd

import (
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(thresholdCmd)
	rootCmd.AddCommand(backgroundCmd)
	rootCmd.AddCommand(pcaCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(indicatorsCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(analysisCmd)

	// Add the analysis subcommands to the parent analysis command
	analysisCmd.AddCommand(analysisClearCmd)
	analysisCmd.AddCommand(analysisStatusCmd)
	analysisCmd.AddCommand(analysisExportCmd)
	analysisCmd.AddCommand(analysisMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("boundary", "", "Path to a GeoJSON survey boundary polygon")
	rootCmd.PersistentFlags().StringSlice("field", nil, "Indicator to column mapping as indicator=column (repeatable)")
	rootCmd.PersistentFlags().String("id-field", contract.DefaultIDField, "Column holding the point identifier")
	rootCmd.PersistentFlags().String("x-field", contract.DefaultXField, "Column holding the X coordinate")
	rootCmd.PersistentFlags().String("y-field", contract.DefaultYField, "Column holding the Y coordinate")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or yaml or parquet or geojson")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("plot-dir", "", "Directory to write PNG figures to")
	rootCmd.PersistentFlags().Bool("html", false, "Also write interactive HTML figures")
	rootCmd.PersistentFlags().String("interp", string(contract.DefaultInterpMethod), "Interpolation method: nearest or idw or kriging (kriging solves a system per grid cell and is slow beyond a few hundred points)")
	rootCmd.PersistentFlags().Bool("drop-incomplete", false, "Drop points missing any mapped indicator")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("analysis-backend", "", "Analysis tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("analysis-db-connect", "", "Database connection string for analysis tracking (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// One float flag per scored indicator. These are read with Changed so
	// they are not bound to Viper.
	for _, ind := range schema.ScoredIndicators() {
		scoreCmd.Flags().Float64(scoreFlagName(ind), 0, scoreFlagUsage(ind))
	}

	// Bind all flags of analysisMigrateCmd to Viper
	analysisMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(analysisMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analysis migrate flags", err)
	}
}
