// Package core has core logic for the debt analysis pipeline, scoring and ranking.
package core

import (
	"context"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/internal/outwriter"
	"github.com/gitdebt/gitdebt/schema"
)

// ExecutorFunc defines the function signature for executing different analysis commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// RunDebtAnalysis runs the full analysis pipeline and returns the report.
// Callers that render results themselves (such as the MCP server) use this
// entry point directly.
func RunDebtAnalysis(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.DebtReport, error) {
	client := contract.NewLocalGitClient()
	return runDebtPipeline(ctx, cfg, client, mgr)
}

// ExecuteDebtAnalysis runs the full pipeline and writes the per-file debt
// report. It serves as the main entry point for the 'analyze' command.
func ExecuteDebtAnalysis(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, err := RunDebtAnalysis(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := RankedFiles(report.Files, cfg.ResultLimit)
	return outwriter.WriteDebtReport(report, ranked, cfg)
}

// ExecuteContributors runs the full pipeline and writes the ranked
// contributor report. It serves as the main entry point for the
// 'contributors' command.
func ExecuteContributors(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	report, err := RunDebtAnalysis(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ranked := RankedContributors(report.Contributors, cfg.ResultLimit)
	return outwriter.WriteContributorReport(ranked, cfg)
}

// ExecuteDebtFactors writes the formal definitions of the risk factors.
// This is a static display that does not require Git analysis.
func ExecuteDebtFactors(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.WriteFactorDefinitions(cfg)
}
