package core

import "github.com/gitdebt/gitdebt/schema"

// attributeContributors spreads each file's mined metrics across its authors
// in proportion to their commit share on that file, then derives the
// per-author composite scores. Files are visited in sorted path order so the
// fractional accumulation is bit-identical between runs. Only files with
// content and history take part; an author never observed on one of those
// files gets no record at all.
func attributeContributors(records map[string]*schema.FileRecord) map[string]*schema.ContributorRecord {
	contributors := make(map[string]*schema.ContributorRecord)

	for _, p := range sortedRecordPaths(records) {
		rec := records[p]
		if rec.LOC <= 0 || rec.CommitCount <= 0 {
			continue
		}
		for author, commits := range rec.AuthorCommits {
			cr := contributors[author]
			if cr == nil {
				cr = schema.NewContributorRecord(author)
				contributors[author] = cr
			}
			share := float64(commits) / float64(rec.CommitCount)
			cr.TotalCommits += float64(commits)
			cr.LinesAdded += float64(rec.LinesAdded) * share
			cr.LinesRemoved += float64(rec.LinesRemoved) * share
			cr.BugFixCount += float64(rec.BugFixCount) * share
			cr.RiskContributionSum += rec.RiskScore * share
			cr.TotalAttributionWeight += share
		}
	}

	for _, cr := range contributors {
		finalizeContributor(cr)
	}
	return contributors
}

// finalizeContributor derives the composite scores once every file has been
// attributed. Efficiency rewards attributed additions against a penalized
// denominator where every bug fix costs ten activity units; risk is the
// attribution-weighted average of the files the author touched, so owning
// many safe files does not dilute one risky one any further than its weight.
func finalizeContributor(cr *schema.ContributorRecord) {
	denom := cr.TotalCommits + cr.LinesRemoved + 10*cr.BugFixCount
	if denom > 0 {
		cr.EfficiencyScore = cr.LinesAdded / denom
	}
	if cr.TotalAttributionWeight > 0 {
		cr.RiskScore = cr.RiskContributionSum / cr.TotalAttributionWeight
	}
}
