package schema

// ContributorRecord aggregates file-level metrics attributed proportionally to
// one author. All accumulated fields are fractional: an author who made half
// of a file's commits is credited with half of that file's churn, bug fixes
// and risk, regardless of line-level authorship. A record exists only for
// authors observed on at least one eligible file.
type ContributorRecord struct {
	Author                 string  `json:"author"`
	TotalCommits           float64 `json:"total_commits"`
	LinesAdded             float64 `json:"lines_added"`
	LinesRemoved           float64 `json:"lines_removed"`
	BugFixCount            float64 `json:"bug_fix_count"`
	RiskContributionSum    float64 `json:"risk_contribution_sum"`
	TotalAttributionWeight float64 `json:"total_attribution_weight"`
	EfficiencyScore        float64 `json:"efficiency_score"` // Attributed added lines per penalized unit of activity
	RiskScore              float64 `json:"risk_score"`       // Weighted-average risk exposure, not a sum
}

// NewContributorRecord returns an empty record for the given author identity.
func NewContributorRecord(author string) *ContributorRecord {
	return &ContributorRecord{Author: author}
}
