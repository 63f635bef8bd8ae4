// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
)

// NewMCPServer initializes and configures the SDPHC MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		schema.SoftwareName,
		schema.SoftwareVersion,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_point ---
	scoreOpts := []mcp.ToolOption{
		mcp.WithDescription("Score one sampling point with the empirical threshold method. Values use raw survey units (VOCs in ppb, CO2 in ppm)."),
	}
	for _, ind := range schema.ScoredIndicators() {
		scoreOpts = append(scoreOpts, mcp.WithNumber(argName(ind),
			mcp.Description(ind.Info().Label+" ("+ind.Unit()+")")))
	}
	s.AddTool(mcp.NewTool("score_point", scoreOpts...), h.handleScorePoint)

	// --- 2. Tool: classify_survey ---
	s.AddTool(mcp.NewTool("classify_survey",
		mcp.WithDescription("Run the empirical threshold method on a survey dataset and return every point with its scores and contamination label."),
		mcp.WithString("points_path", mcp.Description("Path to the sampling point dataset (GeoJSON, CSV or Parquet)."), mcp.Required()),
		mcp.WithString("boundary_path", mcp.Description("Optional boundary polygon (GeoJSON).")),
		mcp.WithBoolean("drop_incomplete", mcp.Description("Drop points missing any mapped soil gas value.")),
		mcp.WithBoolean("exceedance_only", mcp.Description("Only return exceedance points.")),
	), h.handleClassifySurvey)

	// --- 3. Tool: background_cutoffs ---
	s.AddTool(mcp.NewTool("background_cutoffs",
		mcp.WithDescription("Compute K-means background cut-offs per indicator and mark anomalous points."),
		mcp.WithString("points_path", mcp.Description("Path to the sampling point dataset."), mcp.Required()),
	), h.handleBackgroundCutoffs)

	// --- 4. Tool: principal_components ---
	s.AddTool(mcp.NewTool("principal_components",
		mcp.WithDescription("Run a standardized principal component analysis over the mapped indicator columns."),
		mcp.WithString("points_path", mcp.Description("Path to the sampling point dataset."), mcp.Required()),
	), h.handlePrincipalComponents)

	// --- 5. Tool: list_indicators ---
	s.AddTool(mcp.NewTool("list_indicators",
		mcp.WithDescription("List the surveyed indicators with their units and score tables."),
	), h.handleListIndicators)

	return s
}

// StartMCPServer starts the SDPHC MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}

// argName is the tool argument carrying an indicator value.
func argName(ind schema.Indicator) string {
	return strings.ToLower(string(ind))
}
