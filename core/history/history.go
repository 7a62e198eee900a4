// Package history implements the history mining stage: it enriches the
// per-file records with commit counts, churn, authorship and bug-fix signals
// extracted from per-path git logs.
package history

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
)

// bugKeywords classify a commit as a bug fix when any of them appears in the
// lowercased commit message, body included.
var bugKeywords = []string{"fix", "bug", "error", "broken", "issue", "hotfix"}

// activity carries the aggregates mined from one file's git log walk.
type activity struct {
	commitCount   int
	linesAdded    int
	linesRemoved  int
	bugFixCount   int
	authorCommits map[string]int
}

// pathResult pairs a mined path with its aggregates or its failure.
type pathResult struct {
	path     string
	activity activity
	err      error
}

// Run enriches every record with commit counts, churn, authorship and
// bug-fix signals mined from per-path git logs, fanning the walks out to
// cfg.Workers goroutines. It returns the warnings raised along the way: one
// when the repository has no readable history at all, or one per path whose
// log could not be walked. Affected records keep their zero defaults, so
// downstream scoring still sees valid shapes.
func Run(ctx context.Context, cfg *contract.Config, client contract.GitClient, records map[string]*schema.FileRecord) []string {
	// One validity probe up front: if HEAD does not resolve, there is no
	// history for any path and scores rely on static metrics alone.
	if _, err := client.GetRepoHash(ctx, cfg.RepoPath); err != nil {
		contract.LogWarn("Commit history unavailable, continuing with static metrics only", err)
		return []string{fmt.Sprintf("commit history unavailable for %s: %v", cfg.RepoPath, err)}
	}

	paths := make([]string, 0, len(records))
	for path := range records {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	pathCh := make(chan string, len(paths))
	resultCh := make(chan pathResult, len(paths))
	var wg sync.WaitGroup

	for range cfg.Workers {
		wg.Go(func() {
			for path := range pathCh {
				out, err := client.GetFileHistory(ctx, cfg.RepoPath, path)
				if err != nil {
					resultCh <- pathResult{path: path, err: err}
					continue
				}
				resultCh <- pathResult{path: path, activity: parseFileLog(out)}
			}
		})
	}

	for _, path := range paths {
		pathCh <- path
	}
	close(pathCh)
	wg.Wait()
	close(resultCh)

	var warnings []string
	for res := range resultCh {
		if res.err != nil {
			contract.LogWarn(fmt.Sprintf("History unavailable for %s", res.path), res.err)
			warnings = append(warnings, fmt.Sprintf("history unavailable for %s: %v", res.path, res.err))
			continue
		}
		applyActivity(records[res.path], res.activity)
	}
	sort.Strings(warnings)

	return warnings
}

// applyActivity writes mined aggregates onto the record in place.
func applyActivity(rec *schema.FileRecord, act activity) {
	rec.CommitCount = act.commitCount
	rec.LinesAdded = act.linesAdded
	rec.LinesRemoved = act.linesRemoved
	rec.BugFixCount = act.bugFixCount
	rec.AuthorCommits = act.authorCommits
	rec.UniqueAuthorCount = len(act.authorCommits)
}

// parseFileLog aggregates one file's NUL-delimited git log output. Each
// commit block starts with a "hash|parents|author" header emitted by
// contract.GitClient.GetFileHistory, then the 0x01-fenced raw commit
// message, then the commit's numstat lines.
func parseFileLog(out []byte) activity {
	act := activity{authorCommits: make(map[string]int)}
	for block := range strings.SplitSeq(string(out), "\x00") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		parseCommitBlock(block, &act)
	}
	return act
}

// parseCommitBlock handles one commit: a header, the fenced message, and the
// numstat lines after the closing fence.
func parseCommitBlock(block string, act *activity) {
	header, rest, found := strings.Cut(block, "\x01")
	if !found {
		return // not a commit block
	}
	message, tail, found := strings.Cut(rest, "\x01")
	if !found {
		return // unterminated message fence
	}
	parts := strings.SplitN(strings.TrimRight(header, "\r"), "|", 3)
	if len(parts) != 3 {
		return
	}
	parents, author := parts[1], parts[2]

	act.commitCount++
	act.authorCommits[author]++
	if isBugFix(message) {
		act.bugFixCount++
	}

	// Root commits have no parent, and their numstat covers the entire
	// initial content. Counting that as churn would brand every young file
	// as volatile.
	if parents == "" {
		return
	}
	for line := range strings.SplitSeq(tail, "\n") {
		add, del, ok := parseNumstatLine(line)
		if !ok {
			continue
		}
		act.linesAdded += add
		act.linesRemoved += del
	}
}

// isBugFix reports whether the commit message reads like a bug fix. The body
// counts too: fix references often live below a neutral subject line.
func isBugFix(message string) bool {
	s := strings.ToLower(message)
	for _, kw := range bugKeywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// parseNumstatLine parses one "added<TAB>removed<TAB>path" numstat line.
func parseNumstatLine(line string) (add, del int, ok bool) {
	parts := strings.SplitN(strings.TrimRight(line, "\r"), "\t", 3)
	if len(parts) < 3 {
		return 0, 0, false
	}
	return parseChurnValue(parts[0]), parseChurnValue(parts[1]), true
}

// parseChurnValue converts a numstat field to int, treating the binary
// marker "-" and anything non-numeric as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}
