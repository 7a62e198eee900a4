package core

import (
	"sort"

	"github.com/gitdebt/gitdebt/schema"
)

// RankedFiles returns the file records ordered by descending risk score and
// truncated to limit. Equal scores order by path so rankings never jitter
// between runs. A non-positive limit keeps everything.
func RankedFiles(records map[string]*schema.FileRecord, limit int) []*schema.FileRecord {
	files := make([]*schema.FileRecord, 0, len(records))
	for _, rec := range records {
		files = append(files, rec)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].RiskScore != files[j].RiskScore {
			return files[i].RiskScore > files[j].RiskScore
		}
		return files[i].Path < files[j].Path
	})
	return truncateRanked(files, limit)
}

// RankedBySystemicRisk returns the file records ordered by descending
// systemic risk score, with the same tie and limit rules as RankedFiles.
func RankedBySystemicRisk(records map[string]*schema.FileRecord, limit int) []*schema.FileRecord {
	files := make([]*schema.FileRecord, 0, len(records))
	for _, rec := range records {
		files = append(files, rec)
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].SystemicRiskScore != files[j].SystemicRiskScore {
			return files[i].SystemicRiskScore > files[j].SystemicRiskScore
		}
		return files[i].Path < files[j].Path
	})
	return truncateRanked(files, limit)
}

// RankedContributors returns the contributor records ordered by descending
// risk score, author ascending on ties, truncated to limit.
func RankedContributors(contributors map[string]*schema.ContributorRecord, limit int) []*schema.ContributorRecord {
	ranked := make([]*schema.ContributorRecord, 0, len(contributors))
	for _, cr := range contributors {
		ranked = append(ranked, cr)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RiskScore != ranked[j].RiskScore {
			return ranked[i].RiskScore > ranked[j].RiskScore
		}
		return ranked[i].Author < ranked[j].Author
	})
	return truncateRanked(ranked, limit)
}

func truncateRanked[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
