package contract

import (
	"cmp"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/sdphc/sdphc/schema"
)

// Default values for configuration.
const (
	DefaultPrecision    = 2
	MaxPrecision        = 6
	DefaultIDField      = "PointID"
	DefaultXField       = "X"
	DefaultYField       = "Y"
	DefaultInterpMethod = schema.IDWInterp
)

// BackgroundRawInput holds background settings from the YAML config file.
type BackgroundRawInput struct {
	Cutoffs map[string]float64 `mapstructure:"cutoffs"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	PointsPath   string
	BoundaryPath string

	// Fields maps an indicator to the dataset column holding it
	Fields  map[schema.Indicator]string
	IDField string
	XField  string
	YField  string

	DropIncomplete bool
	Interpolation  schema.InterpolationMethod
	Precision      int
	Output         schema.OutputMode
	OutputFile     string
	PlotDir        string
	HTML           bool
	Width          int // Terminal width override (0 = auto-detect)

	// CutoffOverrides replaces computed background cut-offs
	CutoffOverrides map[schema.Indicator]float64

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	PointsPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Boundary          string            `mapstructure:"boundary"`
	Field             []string          `mapstructure:"field"`
	IDField           string            `mapstructure:"id-field"`
	XField            string            `mapstructure:"x-field"`
	YField            string            `mapstructure:"y-field"`
	Precision         int               `mapstructure:"precision"`
	Output            string            `mapstructure:"output"`
	OutputFile        string            `mapstructure:"output-file"`
	PlotDir           string            `mapstructure:"plot-dir"`
	HTML              bool              `mapstructure:"html"`
	Width             int               `mapstructure:"width"`
	AnalysisBackend   string            `mapstructure:"analysis-backend"`
	AnalysisDBConnect string            `mapstructure:"analysis-db-connect"`
	Emoji             string            `mapstructure:"emoji"`
	Color             string            `mapstructure:"color"`
	Interp            string            `mapstructure:"interp"`
	DropIncomplete    bool              `mapstructure:"drop-incomplete"`
	Fields            map[string]string `mapstructure:"fields"` // config file only

	// --- Background settings from config file ---
	Background BackgroundRawInput `mapstructure:"background"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Fields != nil {
		clone.Fields = maps.Clone(c.Fields)
	}
	if c.CutoffOverrides != nil {
		clone.CutoffOverrides = maps.Clone(c.CutoffOverrides)
	}
	return &clone
}

// MappedIndicators returns the indicators with an explicit column, in catalogue order.
func (c *Config) MappedIndicators() []schema.Indicator {
	var out []schema.Indicator
	for _, ind := range schema.AllIndicators() {
		if _, ok := c.Fields[ind]; ok {
			out = append(out, ind)
		}
	}
	return out
}

// Params returns the settings recorded with an analysis run.
func (c *Config) Params() map[string]any {
	fields := make(map[string]string, len(c.Fields))
	for ind, col := range c.Fields {
		fields[string(ind)] = col
	}
	return map[string]any{
		"points":          c.PointsPath,
		"boundary":        c.BoundaryPath,
		"fields":          fields,
		"drop_incomplete": c.DropIncomplete,
		"interpolation":   string(c.Interpolation),
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processFieldMapping(cfg, input); err != nil {
		return err
	}
	if err := processCutoffOverrides(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("analysis-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfig validates the analysis backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		cfg.AnalysisBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid analysis backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	return ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.PlotDir = input.PlotDir
	cfg.HTML = input.HTML
	cfg.Width = input.Width
	cfg.DropIncomplete = input.DropIncomplete

	cfg.IDField = cmp.Or(input.IDField, DefaultIDField)
	cfg.XField = cmp.Or(input.XField, DefaultXField)
	cfg.YField = cmp.Or(input.YField, DefaultYField)

	emojis, err := ParseBoolString(cmp.Or(input.Emoji, "no"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(cmp.Or(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(cmp.Or(input.Output, string(schema.TextOut))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet, geojson", cfg.Output)
	}
	if (cfg.Output == schema.ParquetOut || cfg.Output == schema.GeoJSONOut) && cfg.OutputFile == "" {
		return fmt.Errorf("%s output requires --output-file", cfg.Output)
	}

	// --- 2. Interpolation Validation ---
	cfg.Interpolation = schema.InterpolationMethod(strings.ToLower(cmp.Or(input.Interp, string(DefaultInterpMethod))))
	if _, ok := schema.ValidInterpolationMethods[cfg.Interpolation]; !ok {
		return fmt.Errorf("invalid interpolation method '%s'. must be nearest, idw, kriging", input.Interp)
	}

	// --- 3. Backend Validation ---
	return validateBackendConfig(cfg, input)
}

// processFieldMapping merges the config file mapping with --field flags.
// Flags take precedence over the config file.
func processFieldMapping(cfg *Config, input *ConfigRawInput) error {
	cfg.Fields = make(map[schema.Indicator]string)
	for _, name := range slices.Sorted(maps.Keys(input.Fields)) {
		spec := name + "=" + input.Fields[name]
		ind, column, err := schema.ParseFieldSpec(spec)
		if err != nil {
			return fmt.Errorf("invalid fields entry in config: %w", err)
		}
		cfg.Fields[ind] = column
	}
	for _, spec := range input.Field {
		ind, column, err := schema.ParseFieldSpec(spec)
		if err != nil {
			return fmt.Errorf("invalid --field value: %w", err)
		}
		cfg.Fields[ind] = column
	}
	return nil
}

// processCutoffOverrides converts background.cutoffs from the config file.
func processCutoffOverrides(cfg *Config, input *ConfigRawInput) error {
	cfg.CutoffOverrides = make(map[schema.Indicator]float64)
	for name, value := range input.Background.Cutoffs {
		ind, err := schema.LookupIndicator(name)
		if err != nil {
			return fmt.Errorf("invalid background cutoff: %w", err)
		}
		if !slices.Contains(schema.BackgroundIndicators(), ind) {
			return fmt.Errorf("indicator %s has no background cutoff", ind)
		}
		cfg.CutoffOverrides[ind] = value
	}
	return nil
}

// resolveInputPaths checks that the dataset and boundary files exist.
func resolveInputPaths(cfg *Config, input *ConfigRawInput) error {
	cfg.PointsPath = strings.TrimSpace(input.PointsPathStr)
	if cfg.PointsPath != "" {
		if err := requireFile(cfg.PointsPath); err != nil {
			return fmt.Errorf("points dataset: %w", err)
		}
	}
	cfg.BoundaryPath = strings.TrimSpace(input.Boundary)
	if cfg.BoundaryPath != "" {
		if err := requireFile(cfg.BoundaryPath); err != nil {
			return fmt.Errorf("boundary: %w", err)
		}
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
