package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for analysis tracking.
	DatabaseBackend string

	// Method represents one of the analysis methods.
	Method string

	// InterpolationMethod represents a spatial interpolation scheme.
	InterpolationMethod string

	// ContaminationLabel is the category assigned to a sampling point.
	ContaminationLabel string

	// AnomalyMark is the per-indicator verdict of the background method.
	AnomalyMark string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
	GeoJSONOut OutputMode = "geojson"
)

// All analysis backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All analysis methods supported.
const (
	ThresholdMethod  Method = "threshold"
	BackgroundMethod Method = "background"
	PCAMethod        Method = "pca"
)

// All interpolation methods supported.
const (
	NearestInterp InterpolationMethod = "nearest"
	IDWInterp     InterpolationMethod = "idw" // default
	KrigingInterp InterpolationMethod = "kriging"
)

// Contamination labels. The values match the column values of exported tables.
const (
	SourceLabel          ContaminationLabel = "Source_of_contamination"
	SuspectedSourceLabel ContaminationLabel = "Suspected_source_of_contamination"
	BelowThresholdLabel  ContaminationLabel = "Scores<6"
)

// Background anomaly marks.
const (
	AnomalousMark AnomalyMark = "√"
	NormalMark    AnomalyMark = "×"
	MissingMark   AnomalyMark = "⚪"
)

// Score gates of the empirical threshold method.
const (
	ExceedanceScore   = 6  // OtherSoilGasScore needed to compute AllIndicatorScore
	SourceScore       = 17 // AllIndicatorScore needed for a source point
	SuspectedScore    = 6  // AllIndicatorScore needed for a suspected source point
	ScopeScore        = 1  // OtherSoilGasScore needed to fall inside the contamination scope
	MinRadonForSource = 1
	MinVOCsForSuspect = 1
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
	GeoJSONOut: {},
}

// ValidDatabaseBackends lists all valid analysis backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidInterpolationMethods lists all valid interpolation methods.
var ValidInterpolationMethods = map[InterpolationMethod]struct{}{
	NearestInterp: {},
	IDWInterp:     {},
	KrigingInterp: {},
}

// AllInterpolationMethods returns the interpolation methods in display order.
var AllInterpolationMethods = []InterpolationMethod{NearestInterp, IDWInterp, KrigingInterp}

// MethodTitles maps analysis methods to their display titles.
var MethodTitles = map[Method]string{
	ThresholdMethod:  "Empirical Threshold Analysis",
	BackgroundMethod: "Background Level Analysis",
	PCAMethod:        "Principal Component Analysis",
}

// DisplayName returns the legend text used on maps for the label.
func (l ContaminationLabel) DisplayName() string {
	switch l {
	case SourceLabel:
		return "Critical Risk Point"
	case SuspectedSourceLabel:
		return "Significant Risk Point"
	default:
		return "Marginal Risk Point"
	}
}
