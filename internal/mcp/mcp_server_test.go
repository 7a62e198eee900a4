package mcp_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gitdebt/gitdebt/internal/contract"
	mcp_internal "github.com/gitdebt/gitdebt/internal/mcp"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServerTools_Registered(t *testing.T) {
	baseCfg := &contract.Config{
		RepoPath:    ".",
		ResultLimit: 10,
	}

	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	toolNames := []string{
		"analyze_repository",
		"get_systemic_risk",
		"get_contributor_scores",
		"get_repository_stats",
	}

	for _, name := range toolNames {
		tool := s.GetTool(name)
		require.NotNil(t, tool, "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers_AnalysisErrors(t *testing.T) {
	baseCfg := &contract.Config{
		RepoPath:    ".",
		ResultLimit: 10,
	}

	// A dummy manager is enough: analysis fails before any cache access
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	ctx := context.Background()

	// A path that does not exist, so every pipeline-backed tool reports an
	// error result instead of a transport-level failure
	nonRepo := filepath.Join(t.TempDir(), "does-not-exist")

	for _, name := range []string{
		"analyze_repository",
		"get_systemic_risk",
		"get_contributor_scores",
		"get_repository_stats",
	} {
		t.Run(name+" outside a repository", func(t *testing.T) {
			tool := s.GetTool(name)
			require.NotNil(t, tool, "Tool %s should exist", name)

			req := mcp.CallToolRequest{
				Params: mcp.CallToolParams{
					Name: name,
					Arguments: map[string]any{
						"repo_path": nonRepo,
					},
				},
			}

			res, err := tool.Handler(ctx, req)
			require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "analysis failed")
		})
	}
}
