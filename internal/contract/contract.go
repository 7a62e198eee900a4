// Package contract provides interfaces and shared utilities for gitdebt's internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/gitdebt/gitdebt/schema"
)

// GitClient defines the necessary operations for repository history mining.
// This allows the core analysis logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Generic / Low-Level ---

	// Run executes a git command and returns the combined output.
	// Its use should be minimized in favor of the explicit methods below.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// --- Reference Resolution ---

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// --- Churn / Authorship Logs ---

	// GetFileHistory returns the raw commit log output for a specific file path,
	// oldest commit first, with per-commit numstat churn lines.
	GetFileHistory(ctx context.Context, repoPath string, path string) ([]byte, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetHistoryStore() CacheStore
	GetAnalysisStore() AnalysisStore
}

// CacheStore defines the interface for history cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// AnalysisStore defines the interface for tracking analysis runs and storing debt scores.
type AnalysisStore interface {
	// BeginAnalysis creates a new analysis run and returns its unique ID
	BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error)

	// EndAnalysis updates the analysis run with completion data
	EndAnalysis(analysisID int64, endTime time.Time, totalFiles, totalContributors int) error

	// RecordFileScores stores the final debt scores for a file
	RecordFileScores(analysisID int64, analysisTime time.Time, rec *schema.FileRecord) error

	// RecordContributorScores stores the final debt scores for a contributor
	RecordContributorScores(analysisID int64, analysisTime time.Time, rec *schema.ContributorRecord) error

	// GetAllAnalysisRuns retrieves all analysis runs from the store
	GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error)

	// GetAllFileDebtRecords retrieves all per-file score rows from the store
	GetAllFileDebtRecords() ([]schema.FileDebtRecord, error)

	// GetAllContributorDebtRecords retrieves all per-contributor score rows from the store
	GetAllContributorDebtRecords() ([]schema.ContributorDebtRecord, error)

	// GetStatus returns status information about the analysis store
	GetStatus() (schema.AnalysisStatus, error)

	// Close closes the underlying connection
	Close() error
}
