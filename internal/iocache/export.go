package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/parquet"
)

// ExportAnalysis writes the runs and point results of store into two Parquet files
// named after outputFile, reporting progress to w.
func ExportAnalysis(w io.Writer, store contract.AnalysisStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("analysis tracking is disabled")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total analysis runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total point records: %d\n", status.TableSizes[pointResultsTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}
	points, err := store.GetAllPointResults()
	if err != nil {
		return fmt.Errorf("failed to retrieve point results: %w", err)
	}

	runRows := parquet.ConvertAnalysisRunRecords(runs)
	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(runRows, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d analysis runs to: %s\n", len(runRows), runsFile)

	pointRows := parquet.ConvertPointResultRecords(points)
	pointsFile := outputFile + ".point_results.parquet"
	if err := parquet.WritePointResultsParquet(pointRows, pointsFile); err != nil {
		return fmt.Errorf("failed to write point results: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d point results to: %s\n", len(pointRows), pointsFile)
	return nil
}

// ExecuteAnalysisExport exports the global analysis store to stdout-reported Parquet files.
func ExecuteAnalysisExport(w io.Writer, outputFile string) error {
	return ExportAnalysis(w, Manager.GetAnalysisStore(), outputFile)
}
