// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the gitdebt MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Gitdebt Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_repository ---
	s.AddTool(mcp.NewTool("analyze_repository",
		mcp.WithDescription("Run the full technical debt analysis and return the top files ranked by risk score."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("filter", mcp.Description("Restrict analysis to paths under this repository-relative prefix.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleAnalyzeRepository)

	// --- 2. Tool: get_systemic_risk ---
	s.AddTool(mcp.NewTool("get_systemic_risk",
		mcp.WithDescription("Return the files ranked by systemic risk: risk amplified by dependency fan-in and missing test coverage."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleGetSystemicRisk)

	// --- 3. Tool: get_contributor_scores ---
	s.AddTool(mcp.NewTool("get_contributor_scores",
		mcp.WithDescription("Return per-contributor risk and efficiency scores attributed from file-level analysis."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleGetContributorScores)

	// --- 4. Tool: get_repository_stats ---
	s.AddTool(mcp.NewTool("get_repository_stats",
		mcp.WithDescription("Return repository-level statistics: normalization maxima and overall technical debt."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
	), h.handleGetRepositoryStats)

	return s
}

// StartMCPServer starts the gitdebt MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
