// Package core has core logic for the three analysis methods and their orchestration.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/outwriter"
	"github.com/sdphc/sdphc/internal/plot"
	"github.com/sdphc/sdphc/internal/survey"
	"github.com/sdphc/sdphc/schema"
)

// ExecutorFunc defines the function signature for executing different analysis methods.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error

// GetThresholdResults loads the survey, runs the empirical threshold method and tracks the run.
// It returns the result along with the survey it was computed from.
func GetThresholdResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.ThresholdResult, schema.Survey, error) {
	start := time.Now()
	sv, err := LoadSurvey(cfg)
	if err != nil {
		return schema.ThresholdResult{}, schema.Survey{}, err
	}
	result, err := RunThreshold(ctx, cfg, sv)
	if err != nil {
		return schema.ThresholdResult{}, schema.Survey{}, err
	}
	trackRun(mgr, schema.ThresholdMethod, cfg, result.RunID, start, len(result.Points), result.Points)
	return result, sv, nil
}

// GetBackgroundResults loads the survey, runs the background level method and tracks the run.
func GetBackgroundResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.BackgroundResult, schema.Survey, error) {
	start := time.Now()
	sv, err := LoadSurvey(cfg)
	if err != nil {
		return schema.BackgroundResult{}, schema.Survey{}, err
	}
	result, err := RunBackground(ctx, cfg, sv)
	if err != nil {
		return schema.BackgroundResult{}, schema.Survey{}, err
	}
	trackRun(mgr, schema.BackgroundMethod, cfg, result.RunID, start, len(result.Rows), nil)
	return result, sv, nil
}

// GetPCAResults loads the survey, runs the principal component method and tracks the run.
func GetPCAResults(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) (schema.PCAResult, schema.Survey, error) {
	start := time.Now()
	sv, err := LoadSurvey(cfg)
	if err != nil {
		return schema.PCAResult{}, schema.Survey{}, err
	}
	result, err := RunPCA(ctx, cfg, sv)
	if err != nil {
		return schema.PCAResult{}, schema.Survey{}, err
	}
	trackRun(mgr, schema.PCAMethod, cfg, result.RunID, start, len(result.Scores), nil)
	return result, sv, nil
}

// ExecuteThreshold runs the empirical threshold method and prints results.
// It serves as the main entry point for the 'threshold' command.
func ExecuteThreshold(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, sv, err := GetThresholdResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	if cfg.PlotDir != "" {
		files, err := plot.ThresholdFigures(cfg.PlotDir, result, sv.Boundary)
		reportFigures(files, err)
	}
	if cfg.HTML {
		file, err := plot.ThresholdHTML(htmlDir(cfg), result)
		reportFigures([]string{file}, err)
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteThreshold(result, cfg, duration)
}

// ExecuteBackground runs the background level method and prints results.
func ExecuteBackground(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, sv, err := GetBackgroundResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	if cfg.PlotDir != "" {
		files, err := plot.BackgroundFigures(cfg.PlotDir, result, sv.Boundary)
		reportFigures(files, err)
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteBackground(result, cfg, duration)
}

// ExecutePCA runs the principal component method and prints results.
func ExecutePCA(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()
	result, sv, err := GetPCAResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	if cfg.PlotDir != "" {
		files, err := plot.PCAFigures(cfg.PlotDir, result, sv.Boundary)
		reportFigures(files, err)
	}
	if cfg.HTML {
		file, err := plot.PCAHTML(htmlDir(cfg), result)
		reportFigures([]string{file}, err)
	}

	duration := time.Since(start)
	return outwriter.NewOutWriter().WritePCA(result, cfg, duration)
}

// ExecuteIndicators prints the indicator catalogue.
func ExecuteIndicators(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	return outwriter.NewOutWriter().WriteIndicators(cfg)
}

// ExecuteScore scores a single set of raw measurements and prints the record.
func ExecuteScore(_ context.Context, cfg *contract.Config, values map[schema.Indicator]*float64) error {
	result := ScorePoint(schema.SamplePoint{ID: "input", Values: values})
	return outwriter.NewOutWriter().WriteScore(result, cfg)
}

// ExecuteColumns prints the columns of a survey dataset and the indicators they map to.
func ExecuteColumns(_ context.Context, cfg *contract.Config, _ contract.StoreManager) error {
	columns, err := survey.Columns(cfg.PointsPath)
	if err != nil {
		return err
	}
	mapping := survey.ResolveFields(columns, cfg.Fields)
	return outwriter.NewOutWriter().WriteColumns(columns, mapping, cfg)
}

func htmlDir(cfg *contract.Config) string {
	if cfg.PlotDir != "" {
		return cfg.PlotDir
	}
	return "."
}

// reportFigures prints saved figure paths to stderr. Figure failures are warnings.
func reportFigures(files []string, err error) {
	if err != nil {
		contract.LogWarn("Figure generation failed", err)
	}
	for _, f := range files {
		if f != "" {
			_, _ = fmt.Fprintf(os.Stderr, "💾 Saved figure to %s\n", f)
		}
	}
}
