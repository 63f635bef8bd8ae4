// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteThreshold prints empirical threshold results using the configured output format.
func (ow *OutWriter) WriteThreshold(result schema.ThresholdResult, cfg *contract.Config, duration time.Duration) error {
	return PrintThresholdResults(result, cfg, duration)
}

// WriteBackground prints background level results using the configured output format.
func (ow *OutWriter) WriteBackground(result schema.BackgroundResult, cfg *contract.Config, duration time.Duration) error {
	return PrintBackgroundResults(result, cfg, duration)
}

// WritePCA prints principal component results using the configured output format.
func (ow *OutWriter) WritePCA(result schema.PCAResult, cfg *contract.Config, duration time.Duration) error {
	return PrintPCAResults(result, cfg, duration)
}

// WriteIndicators prints the indicator catalogue and score tables.
func (ow *OutWriter) WriteIndicators(cfg *contract.Config) error {
	return PrintIndicators(cfg)
}

// WriteScore prints the score record of a single point.
func (ow *OutWriter) WriteScore(result schema.PointResult, cfg *contract.Config) error {
	return PrintScore(result, cfg)
}

// WriteColumns prints the columns of a survey dataset with their indicator mapping.
func (ow *OutWriter) WriteColumns(columns []string, mapping map[schema.Indicator]string, cfg *contract.Config) error {
	return PrintColumns(columns, mapping, cfg)
}

// GetMaxTableIDWidth calculates the maximum width for point identifiers in table output
// based on terminal width and the width taken by the other columns.
func GetMaxTableIDWidth(cfg *contract.Config, otherColumnsWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - otherColumnsWidth - 10
	if available < 8 {
		return 8
	}
	if available > 40 {
		return 40
	}
	return available
}
