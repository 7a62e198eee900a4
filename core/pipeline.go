package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gitdebt/gitdebt/core/depgraph"
	"github.com/gitdebt/gitdebt/core/scan"
	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
)

// runDebtPipeline executes the five analysis stages in order and assembles
// the full report: static scan, history mining, dependency resolution, risk
// scoring, contributor attribution. Stages communicate only through the
// shared record mapping, and each one leaves valid zero values behind where
// its input was sparse, so the later stages never branch on presence.
func runDebtPipeline(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (*schema.DebtReport, error) {
	start := time.Now()

	if !shouldSuppressHeader(ctx) {
		contract.LogAnalysisHeader(cfg)
	}

	// --- 0. Begin Analysis Tracking (if configured) ---
	var analysisStore contract.AnalysisStore
	if mgr != nil {
		analysisStore = mgr.GetAnalysisStore()
	}
	var analysisID int64
	if analysisStore != nil {
		configParams := map[string]any{
			"repo_path":    cfg.RepoPath,
			"path_filter":  cfg.PathFilter,
			"workers":      cfg.Workers,
			"result_limit": cfg.ResultLimit,
			"excludes":     strings.Join(cfg.Excludes, ","),
		}
		var err error
		analysisID, err = analysisStore.BeginAnalysis(start, configParams)
		if err != nil {
			contract.LogWarn("Analysis tracking initialization failed", err)
		}
	}

	// --- 1. Static analysis ---
	logStage(ctx, cfg, "🔬", "Running static code analysis...")
	records, err := scan.Run(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// --- 2. History mining (with caching) ---
	logStage(ctx, cfg, "🕰️", "Analyzing commit history...")
	warnings := cachedHistoryRun(ctx, cfg, client, mgr, records)

	// --- 3. Dependency graph ---
	logStage(ctx, cfg, "🔗", "Resolving file dependencies...")
	depgraph.Run(cfg, records)

	// --- 4. Risk scoring ---
	logStage(ctx, cfg, "📊", "Computing risk scores and ownership entropy...")
	stats := schema.NewRepositoryStats()
	scoreAll(records, stats)

	// --- 5. Contributor attribution ---
	logStage(ctx, cfg, "👤", "Attributing contributor efficiency...")
	contributors := attributeContributors(records)

	report := &schema.DebtReport{
		RepoPath:     cfg.RepoPath,
		GeneratedAt:  start,
		Duration:     time.Since(start),
		Files:        records,
		Stats:        stats,
		Contributors: contributors,
		Warnings:     warnings,
	}

	// --- 6. End Analysis Tracking ---
	if analysisStore != nil && analysisID > 0 {
		recordScores(analysisStore, analysisID, report)
		if err := analysisStore.EndAnalysis(analysisID, time.Now(), len(report.Files), len(report.Contributors)); err != nil {
			contract.LogWarn("Failed to finalize analysis tracking", err)
		}
	}

	return report, nil
}

// logStage prints a stage banner unless console output is suppressed,
// as it is when the pipeline runs inside the MCP server and stdout must
// stay machine-readable.
func logStage(ctx context.Context, cfg *contract.Config, emoji, msg string) {
	if shouldSuppressHeader(ctx) {
		return
	}
	contract.LogStage(cfg, emoji, msg)
}

// recordScores persists the per-file and per-contributor rows for one run,
// in sorted order so retries produce identical row sequences. Row failures
// are logged and skipped; tracking never fails an analysis.
func recordScores(store contract.AnalysisStore, analysisID int64, report *schema.DebtReport) {
	analysisTime := time.Now()

	for _, path := range sortedRecordPaths(report.Files) {
		if err := store.RecordFileScores(analysisID, analysisTime, report.Files[path]); err != nil {
			contract.LogWarn(fmt.Sprintf("Could not record file scores for %s", path), err)
		}
	}

	authors := make([]string, 0, len(report.Contributors))
	for author := range report.Contributors {
		authors = append(authors, author)
	}
	sort.Strings(authors)
	for _, author := range authors {
		if err := store.RecordContributorScores(analysisID, analysisTime, report.Contributors[author]); err != nil {
			contract.LogWarn(fmt.Sprintf("Could not record contributor scores for %s", author), err)
		}
	}
}
