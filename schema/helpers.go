package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatOptionalInt renders a nullable score, using "-" for nil.
func FormatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// FormatOptionalFloat renders a nullable measurement with the given precision.
func FormatOptionalFloat(v *float64, precision int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

// ParseFieldSpec parses "indicator=column" into its parts.
// The indicator part is resolved case-insensitively.
func ParseFieldSpec(spec string) (Indicator, string, error) {
	name, column, ok := strings.Cut(spec, "=")
	if !ok {
		return "", "", fmt.Errorf("field mapping %q must look like indicator=column", spec)
	}
	ind, err := LookupIndicator(name)
	if err != nil {
		return "", "", err
	}
	column = strings.TrimSpace(column)
	if column == "" {
		return "", "", fmt.Errorf("field mapping %q has an empty column", spec)
	}
	return ind, column, nil
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
