// Package depgraph implements the dependency graph stage: it extracts
// import-like references per file with language-specific patterns and
// resolves them against the scanned paths into fan-in and fan-out counts.
package depgraph

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
)

// importPatterns maps file extensions to the expression that captures one
// import-like token per match. Extensions without a pattern (such as .css)
// never produce outgoing edges but remain valid edge targets.
var importPatterns = map[string]*regexp.Regexp{
	".go":   regexp.MustCompile(`(?m)^\s*(?:import\s+)?(?:[\w.]+\s+)?"([A-Za-z0-9_./-]+)"\s*$`),
	".py":   regexp.MustCompile(`(?m)^\s*(?:from|import)\s+([\w.]+)`),
	".js":   regexp.MustCompile(`(?:require\(|import\s+.*?from\s+)['"]([./\w-]+)['"]`),
	".ts":   regexp.MustCompile(`(?:import|export)\s+.*?from\s+['"]([./\w-]+)['"]`),
	".java": regexp.MustCompile(`import\s+([\w.]+);`),
	".c":    regexp.MustCompile(`#include\s+["<]([\w/.]+)[">]`),
	".cpp":  regexp.MustCompile(`#include\s+["<]([\w/.]+)[">]`),
	".html": regexp.MustCompile(`(?:src|href)=["']([^"']+)["']`),
}

// extraction pairs a source path with its extracted tokens.
type extraction struct {
	path   string
	tokens []string
}

// Run resolves heuristic dependency edges between the scanned files and
// writes FanOut (distinct targets per source) and FanIn (distinct sources
// per target) onto the records. Token extraction fans out to cfg.Workers
// goroutines; edge resolution runs single-threaded over the sorted path list
// so repeated runs produce identical graphs.
func Run(cfg *contract.Config, records map[string]*schema.FileRecord) {
	paths := make([]string, 0, len(records))
	for p := range records {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	tokensByPath := extractAllTokens(cfg, paths)

	fanIn := make(map[string]int, len(paths))
	for _, src := range paths {
		targets := resolveTargets(src, tokensByPath[src], paths)
		records[src].FanOut = len(targets)
		// Targets are distinct per source, so one increment per entry
		// counts distinct dependent sources.
		for _, tgt := range targets {
			fanIn[tgt]++
		}
	}
	for tgt, n := range fanIn {
		records[tgt].FanIn = n
	}
}

// extractAllTokens runs token extraction for every path in a worker pool and
// collects the non-empty results.
func extractAllTokens(cfg *contract.Config, paths []string) map[string][]string {
	pathCh := make(chan string, len(paths))
	resultCh := make(chan extraction, len(paths))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for rel := range pathCh {
				resultCh <- extraction{path: rel, tokens: extractFileTokens(cfg.RepoPath, rel)}
			}
		})
	}

	for _, rel := range paths {
		pathCh <- rel
	}
	close(pathCh)
	wg.Wait()
	close(resultCh)

	tokensByPath := make(map[string][]string, len(paths))
	for ext := range resultCh {
		if len(ext.tokens) > 0 {
			tokensByPath[ext.path] = ext.tokens
		}
	}
	return tokensByPath
}

// extractFileTokens reads one file and extracts its import-like tokens.
// Files without a registered pattern or that cannot be read contribute no
// outgoing edges.
func extractFileTokens(repoRoot, rel string) []string {
	pattern, ok := importPatterns[strings.ToLower(filepath.Ext(rel))]
	if !ok {
		return nil
	}
	content, err := os.ReadFile(filepath.Join(repoRoot, filepath.FromSlash(rel)))
	if err != nil {
		return nil
	}
	return extractTokens(pattern, content)
}

// extractTokens returns the distinct capture-group matches for one file,
// sorted so resolution order never depends on match order.
func extractTokens(pattern *regexp.Regexp, content []byte) []string {
	matches := pattern.FindAllSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if len(m) > 1 && len(m[1]) > 0 {
			seen[string(m[1])] = struct{}{}
		}
	}
	tokens := make([]string, 0, len(seen))
	for tok := range seen {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}

// resolveTargets maps tokens onto known paths. Each token binds to the first
// path in sorted order that contains the token or its base name as a
// substring; self-edges are skipped and the scan stops at the first match.
// The heuristic is deliberately loose: it trades precision for working the
// same way across every language the scanner accepts.
func resolveTargets(src string, tokens []string, paths []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	targetSet := make(map[string]struct{})
	for _, token := range tokens {
		base := path.Base(token)
		for _, candidate := range paths {
			if candidate == src {
				continue
			}
			if strings.Contains(candidate, token) || strings.Contains(candidate, base) {
				targetSet[candidate] = struct{}{}
				break
			}
		}
	}
	if len(targetSet) == 0 {
		return nil
	}
	targets := make([]string, 0, len(targetSet))
	for t := range targetSet {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}
