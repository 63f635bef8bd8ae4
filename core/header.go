package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
)

// headerWriter is where analysis headers go. Tests swap it out.
var headerWriter io.Writer = os.Stdout

// logAnalysisHeader prints the survey summary before an analysis.
// Machine-readable output on stdout gets no header.
func logAnalysisHeader(ctx context.Context, cfg *contract.Config, method schema.Method, sv schema.Survey) {
	if shouldSuppressHeader(ctx) {
		return
	}
	if cfg.Output != schema.TextOut && cfg.Output != "" && cfg.OutputFile == "" {
		return
	}

	cols := make([]string, len(sv.Columns))
	for i, c := range sv.Columns {
		cols[i] = string(c)
	}
	indicators := strings.Join(cols, ", ")
	if indicators == "" {
		indicators = "none"
	}

	boundary := "none"
	if sv.HasBoundary() {
		boundary = cfg.BoundaryPath
	}

	if cfg.UseEmojis {
		_, _ = fmt.Fprintf(headerWriter, "🔎 Survey: %s (Method: %s)\n", sv.Name, schema.MethodTitles[method])
		_, _ = fmt.Fprintf(headerWriter, "📊 Points: %d | Indicators: %s | Boundary: %s\n", len(sv.Points), indicators, boundary)
		return
	}
	_, _ = fmt.Fprintf(headerWriter, "Survey: %s (Method: %s)\n", sv.Name, schema.MethodTitles[method])
	_, _ = fmt.Fprintf(headerWriter, "Points: %d | Indicators: %s | Boundary: %s\n", len(sv.Points), indicators, boundary)
}
