package schema

import (
	"fmt"
	"strings"
)

// Indicator identifies one surveyed soil-gas or biological parameter.
type Indicator string

// All indicators known to the toolkit, in catalogue order.
const (
	Radon Indicator = "Radon"
	VOCs  Indicator = "VOCs"
	CO2   Indicator = "CO2"
	O2    Indicator = "O2"
	CH4   Indicator = "CH4"
	H2S   Indicator = "H2S"
	H2    Indicator = "H2"
	FG    Indicator = "FG" // functional genes
)

// IndicatorInfo describes an indicator for display and reporting.
type IndicatorInfo struct {
	Name        Indicator `json:"name" yaml:"name"`
	ChineseName string    `json:"chinese_name" yaml:"chinese_name"`
	Unit        string    `json:"unit" yaml:"unit"`
	Label       string    `json:"label" yaml:"label"`
}

var catalogue = []IndicatorInfo{
	{Name: Radon, ChineseName: "氡气", Unit: "Bq/m³", Label: "Radon"},
	{Name: VOCs, ChineseName: "挥发性有机物", Unit: "ppb", Label: "VOCs"},
	{Name: CO2, ChineseName: "二氧化碳", Unit: "ppm", Label: "CO₂"},
	{Name: O2, ChineseName: "氧气", Unit: "%", Label: "O₂"},
	{Name: CH4, ChineseName: "甲烷", Unit: "%", Label: "CH₄"},
	{Name: H2S, ChineseName: "硫化氢", Unit: "mg/L", Label: "H₂S"},
	{Name: H2, ChineseName: "氢气", Unit: "mg/L", Label: "H₂"},
	{Name: FG, ChineseName: "功能基因", Unit: "copies/g", Label: "Functional genes"},
}

// AllIndicators returns every indicator in catalogue order.
func AllIndicators() []Indicator {
	out := make([]Indicator, len(catalogue))
	for i, info := range catalogue {
		out[i] = info.Name
	}
	return out
}

// Catalogue returns a copy of the indicator catalogue.
func Catalogue() []IndicatorInfo {
	out := make([]IndicatorInfo, len(catalogue))
	copy(out, catalogue)
	return out
}

// OtherSoilGases returns the indicators summed into OtherSoilGasScore.
func OtherSoilGases() []Indicator {
	return []Indicator{VOCs, CO2, O2, CH4, H2, H2S}
}

// BackgroundIndicators returns the indicators examined by the background method.
func BackgroundIndicators() []Indicator {
	return []Indicator{Radon, VOCs, CO2, O2, CH4, FG}
}

// Info returns the catalogue entry for the indicator.
func (ind Indicator) Info() IndicatorInfo {
	for _, info := range catalogue {
		if info.Name == ind {
			return info
		}
	}
	return IndicatorInfo{Name: ind, Label: string(ind)}
}

// Unit returns the raw survey unit of the indicator.
func (ind Indicator) Unit() string {
	return ind.Info().Unit
}

// LookupIndicator resolves a case-insensitive indicator name.
func LookupIndicator(name string) (Indicator, error) {
	trimmed := strings.TrimSpace(name)
	for _, info := range catalogue {
		if strings.EqualFold(string(info.Name), trimmed) {
			return info.Name, nil
		}
	}
	if strings.EqualFold(trimmed, "FunctionalGenes") || strings.EqualFold(trimmed, "functional_genes") {
		return FG, nil
	}
	return "", fmt.Errorf("unknown indicator %q", name)
}
