// Package schema has models, constants and shared types for all parts of gitdebt.
package schema

import "time"

// FileRecord carries every per-file metric the analysis pipeline computes.
// Records are created by the static scanner and then enriched in place by the
// history miner, the dependency graph builder and the metrics engine, in that
// order. Every field has a usable zero value from construction, so a stage
// that ran against sparse input (for example a path with no commits) leaves
// valid zeroes behind rather than absent fields.
type FileRecord struct {
	Path                      string                `json:"path"`                         // Repository-relative path
	LOC                       int                   `json:"loc"`                          // Newline-delimited line count
	Complexity                int                   `json:"complexity"`                   // Structural complexity, base value 1
	CommitCount               int                   `json:"commit_count"`                 // Commits touching this path
	LinesAdded                int                   `json:"lines_added"`                  // Lines added across analyzed history
	LinesRemoved              int                   `json:"lines_removed"`                // Lines removed across analyzed history
	BugFixCount               int                   `json:"bug_fix_count"`                // Commits whose subject matches a bug-fix keyword
	AuthorCommits             map[string]int        `json:"author_commits"`               // Author identity to commit count; values sum to CommitCount
	UniqueAuthorCount         int                   `json:"unique_author_count"`          // Size of AuthorCommits
	FanOut                    int                   `json:"fan_out"`                      // Distinct files this file depends on
	FanIn                     int                   `json:"fan_in"`                       // Distinct files depending on this file
	OwnershipEntropy          float64               `json:"ownership_entropy"`            // Authorship dispersion in [0,1]
	RiskScore                 float64               `json:"risk_score"`                   // Weighted composite in [0,100]
	SystemicRiskScore         float64               `json:"systemic_risk_score"`          // FanIn x RiskScore x coverage factor
	MissingTestCoverageFactor float64               `json:"missing_test_coverage_factor"` // 0.1, 0.5 or 1.0 by path heuristic
	MainFactor                string                `json:"main_factor"`                  // Largest weighted contribution, or the stability label
	Breakdown                 map[FactorKey]float64 `json:"breakdown,omitempty"`          // Weighted normalized contribution per factor
}

// NewFileRecord returns a record with the defined defaults: complexity starts
// at 1 (an empty or trivial unit still has a baseline) and AuthorCommits is
// always a non-nil map so downstream stages never branch on presence.
func NewFileRecord(path string) *FileRecord {
	return &FileRecord{
		Path:          path,
		Complexity:    1,
		AuthorCommits: make(map[string]int),
	}
}

// TotalChurn is the sum of added and removed lines across the file's history.
func (fr *FileRecord) TotalChurn() int {
	return fr.LinesAdded + fr.LinesRemoved
}

// DebtReport is the artifact one analysis run hands to reporting collaborators:
// the fully scored per-file mapping, the repository-level statistics and the
// per-author attribution, plus any soft-degradation warnings raised on the way.
type DebtReport struct {
	RepoPath     string                        `json:"repo_path"`
	GeneratedAt  time.Time                     `json:"generated_at"`
	Duration     time.Duration                 `json:"duration_ns"`
	Files        map[string]*FileRecord        `json:"files"`
	Stats        *RepositoryStats              `json:"repository_stats"`
	Contributors map[string]*ContributorRecord `json:"contributors"`
	Warnings     []string                      `json:"warnings,omitempty"`
}
