package schema

// Software identity used in headers, the MCP server and exported metadata.
const (
	SoftwareName        = "Software for Detecting Petroleum Hydrocarbons Contamination"
	SoftwareShortName   = "SDPHC"
	SoftwareChineseName = "微扰动污染调查分析软件"
	SoftwareVersion     = "1.0.0"
	SoftwareAuthor      = "Hefei University of Technology"
)

// EPSGCode is the projected coordinate system survey coordinates are expected in.
const EPSGCode = 4547

// SecondaryFunctions of the empirical threshold method.
var SecondaryFunctions = []string{
	"Pollution exceedance points",
	"Pollution source area",
	"Scope of contamination",
	"Pollution level identification",
}
