package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sdphc/sdphc/core"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/internal/outwriter"
	"github.com/sdphc/sdphc/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// classification is the classify_survey response.
type classification struct {
	RunID   string                       `json:"run_id"`
	Summary schema.ThresholdSummary      `json:"summary"`
	Points  []schema.EnrichedPointResult `json:"points"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// surveyConfig clones the base config and applies the dataset arguments of a request.
func (h *toolHandler) surveyConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	cfg.PointsPath = request.GetString("points_path", "")
	if cfg.PointsPath == "" {
		return nil, fmt.Errorf("points_path is required")
	}
	if _, err := os.Stat(cfg.PointsPath); err != nil {
		return nil, fmt.Errorf("points_path: %w", err)
	}
	if b := request.GetString("boundary_path", ""); b != "" {
		if _, err := os.Stat(b); err != nil {
			return nil, fmt.Errorf("boundary_path: %w", err)
		}
		cfg.BoundaryPath = b
	}
	cfg.DropIncomplete = request.GetBool("drop_incomplete", cfg.DropIncomplete)
	return cfg, nil
}

func (h *toolHandler) handleScorePoint(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	values := make(map[schema.Indicator]*float64)
	for _, ind := range schema.ScoredIndicators() {
		raw, ok := args[argName(ind)]
		if !ok || raw == nil {
			continue
		}
		v, ok := raw.(float64)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("%s must be a number", argName(ind))), nil
		}
		values[ind] = &v
	}
	if len(values) == 0 {
		return mcp.NewToolResultError("at least one indicator value is required"), nil
	}
	return jsonResult(core.ScorePoint(schema.SamplePoint{ID: "input", Values: values}))
}

func (h *toolHandler) handleClassifySurvey(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.surveyConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid survey parameters: %v", err)), nil
	}

	result, _, err := core.GetThresholdResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	points := result.Points
	if request.GetBool("exceedance_only", false) {
		points = result.Exceedance
	}
	return jsonResult(classification{
		RunID:   result.RunID,
		Summary: result.Summary,
		Points:  schema.EnrichPoints(points),
	})
}

func (h *toolHandler) handleBackgroundCutoffs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.surveyConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid survey parameters: %v", err)), nil
	}

	result, _, err := core.GetBackgroundResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handlePrincipalComponents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.surveyConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid survey parameters: %v", err)), nil
	}

	result, _, err := core.GetPCAResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleListIndicators(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(outwriter.IndicatorEntries())
}
