package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gitdebt/gitdebt/core/history"
	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
)

// currentCacheVersion defines the version of the history snapshot schema.
// Version 2: bug-fix classification reads the full commit message, so
// version 1 snapshots undercount and must be remined.
const currentCacheVersion = 2

// maxCacheAge bounds how long a stored snapshot stays usable.
const maxCacheAge = 7 * 24 * time.Hour

// historyEntry captures the history-derived fields of a single file record.
type historyEntry struct {
	CommitCount   int            `json:"commit_count"`
	LinesAdded    int            `json:"lines_added"`
	LinesRemoved  int            `json:"lines_removed"`
	BugFixCount   int            `json:"bug_fix_count"`
	AuthorCommits map[string]int `json:"author_commits"`
}

// historySnapshot is the cacheable output of one history mining pass.
type historySnapshot struct {
	Files    map[string]historyEntry `json:"files"`
	Warnings []string                `json:"warnings,omitempty"`
}

// cachedHistoryRun wraps the history stage with snapshot caching. History
// mining walks one git log per file and dominates the runtime on large
// repositories, so a snapshot keyed on repository state lets repeat runs
// skip it entirely. Without a usable store the stage runs directly.
func cachedHistoryRun(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager, records map[string]*schema.FileRecord) []string {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetHistoryStore()
	}
	if store == nil {
		return history.Run(ctx, cfg, client, records)
	}

	key := historyCacheKey(ctx, cfg, client)

	// Check for cache hit
	if snap := checkCacheHit(store, key); snap != nil {
		return applySnapshot(snap, records)
	}

	// Cache miss: mine and store
	warnings := history.Run(ctx, cfg, client, records)
	storeSnapshot(store, key, records, warnings)
	return warnings
}

// historyCacheKey creates a unique key from the repository state and the
// file-selection inputs. Two runs with equal keys mine identical history,
// so a stored snapshot can stand in for the live git log pass.
func historyCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) string {
	// Include repo hash to invalidate the snapshot when HEAD moves
	repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath)
	if err != nil {
		repoHash = ""
	}

	excludes := make([]string, len(cfg.Excludes))
	copy(excludes, cfg.Excludes)
	sort.Strings(excludes)

	key := fmt.Sprintf("%s:%s:%s:%s",
		repoHash,
		cfg.RepoPath,
		cfg.PathFilter,
		strings.Join(excludes, ","),
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

// checkCacheHit attempts to retrieve and validate a cached snapshot.
func checkCacheHit(store contract.CacheStore, key string) *historySnapshot {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= maxCacheAge {
			var snap historySnapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				return &snap // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// applySnapshot copies cached history fields onto the current run's records
// and returns the warnings the original pass raised. Paths scanned this run
// but absent from the snapshot keep their zero values, matching what a live
// pass leaves behind for uncommitted files.
func applySnapshot(snap *historySnapshot, records map[string]*schema.FileRecord) []string {
	for path, rec := range records {
		entry, ok := snap.Files[path]
		if !ok {
			continue
		}
		rec.CommitCount = entry.CommitCount
		rec.LinesAdded = entry.LinesAdded
		rec.LinesRemoved = entry.LinesRemoved
		rec.BugFixCount = entry.BugFixCount
		if entry.AuthorCommits != nil {
			rec.AuthorCommits = entry.AuthorCommits
		}
		rec.UniqueAuthorCount = len(rec.AuthorCommits)
	}
	return snap.Warnings
}

// storeSnapshot persists the freshly mined history fields. Set failures are
// ignored; the cache is an accelerator, never a source of truth.
func storeSnapshot(store contract.CacheStore, key string, records map[string]*schema.FileRecord, warnings []string) {
	snap := historySnapshot{
		Files:    make(map[string]historyEntry, len(records)),
		Warnings: warnings,
	}
	for path, rec := range records {
		snap.Files[path] = historyEntry{
			CommitCount:   rec.CommitCount,
			LinesAdded:    rec.LinesAdded,
			LinesRemoved:  rec.LinesRemoved,
			BugFixCount:   rec.BugFixCount,
			AuthorCommits: rec.AuthorCommits,
		}
	}

	if data, err := json.Marshal(snap); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}
}
