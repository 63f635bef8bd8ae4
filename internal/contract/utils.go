package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sdphc/sdphc/schema"
)

// Color variables for console output.
var (
	SourceColor    = color.New(color.FgRed, color.Bold)     // SourceColor represents standard danger.
	SuspectedColor = color.New(color.FgMagenta, color.Bold) // SuspectedColor represents strong, distinct warning.
	ScopeColor     = color.New(color.FgYellow)              // ScopeColor represents standard caution, not bold.
	BelowColor     = color.New(color.FgCyan)                // BelowColor represents informational / low-priority signal.
)

// GetPlainLabel returns the display name of a contamination label.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(label schema.ContaminationLabel) string {
	return label.DisplayName()
}

// GetColorLabel returns a colored text label for console output (table).
// Points below the threshold that still fall inside the contamination scope are highlighted.
func GetColorLabel(label schema.ContaminationLabel, inScope bool) string {
	text := GetPlainLabel(label)

	switch label {
	case schema.SourceLabel:
		return SourceColor.Sprint(text)
	case schema.SuspectedSourceLabel:
		return SuspectedColor.Sprint(text)
	default:
		if inScope {
			return ScopeColor.Sprint(text)
		}
		return BelowColor.Sprint(text)
	}
}

// GetColorMark returns a colored anomaly mark for console output.
func GetColorMark(mark schema.AnomalyMark) string {
	if mark == schema.AnomalousMark {
		return SourceColor.Sprint(string(mark))
	}
	return string(mark)
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetAnalysisDBFilePath returns the path to the SQLite DB file for analysis storage.
func GetAnalysisDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".sdphc_analysis.db"
	}
	return filepath.Join(homeDir, ".sdphc_analysis.db")
}

// TruncateText truncates a value to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to leave room for the ellipsis.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
