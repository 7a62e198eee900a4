// Package scan implements the static analysis stage: it walks the repository
// working tree and seeds the per-file record mapping with line counts and
// structural complexity for every recognized source file.
package scan

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
)

// sourceExtensions is the allow-list of file extensions the scanner measures.
// Everything else in the tree is invisible to the pipeline.
var sourceExtensions = map[string]struct{}{
	".go":   {},
	".py":   {},
	".js":   {},
	".ts":   {},
	".java": {},
	".c":    {},
	".cpp":  {},
	".html": {},
	".css":  {},
}

// Run walks the working tree under cfg.RepoPath and builds the initial
// per-file record mapping. A record exists only for readable files with at
// least one line; empty and unreadable files leave no trace, and the scan
// keeps going past them. Per-file measurement fans out to cfg.Workers
// goroutines while the directory walk itself stays sequential.
func Run(ctx context.Context, cfg *contract.Config) (map[string]*schema.FileRecord, error) {
	paths, err := collectPaths(cfg)
	if err != nil {
		return nil, err
	}

	records := make(map[string]*schema.FileRecord, len(paths))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, rel := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(cfg.RepoPath, filepath.FromSlash(rel)))
			if err != nil {
				return nil // unreadable files are excluded, not fatal
			}
			loc := countLines(content)
			if loc == 0 {
				return nil
			}
			record := schema.NewFileRecord(rel)
			record.LOC = loc
			record.Complexity = measureComplexity(gctx, rel, content)
			mu.Lock()
			records[rel] = record
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// collectPaths gathers the repository-relative candidate paths in one
// sequential walk so exclusion rules apply exactly once per entry. Paths are
// normalized to forward slashes to match Git's own path reporting.
func collectPaths(cfg *contract.Config) ([]string, error) {
	var paths []string
	walkErr := filepath.WalkDir(cfg.RepoPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				return err // the repo root itself was unreadable
			}
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if _, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]; !ok {
			return nil
		}
		rel, relErr := filepath.Rel(cfg.RepoPath, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if cfg.PathFilter != "" && !strings.HasPrefix(rel, cfg.PathFilter) {
			return nil
		}
		if contract.ShouldIgnore(rel, cfg.Excludes) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", cfg.RepoPath, walkErr)
	}
	return paths, nil
}

// countLines counts newline-delimited lines. A trailing newline does not add
// a line, so "a\n" and "a" both count as one; only a truly empty file is zero.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
