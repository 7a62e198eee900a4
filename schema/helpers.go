package schema

import "sort"

// GetPlainLabel returns a plain text label indicating the criticality level
// based on the risk score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return "Critical"
	case score >= 60:
		return "High"
	case score >= 40:
		return "Moderate"
	default:
		return "Low"
	}
}

// EnrichedFileRecord adds presentation data to a FileRecord.
type EnrichedFileRecord struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	*FileRecord
}

// EnrichedContributorRecord adds presentation data to a ContributorRecord.
type EnrichedContributorRecord struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	*ContributorRecord
}

// EnrichFiles adds rank and label to an already-ranked list of file records.
func EnrichFiles(files []*FileRecord) []EnrichedFileRecord {
	output := make([]EnrichedFileRecord, len(files))
	for i, f := range files {
		output[i] = EnrichedFileRecord{
			Rank:       i + 1,
			Label:      GetPlainLabel(f.RiskScore),
			FileRecord: f,
		}
	}
	return output
}

// EnrichContributors adds rank and label to an already-ranked list of
// contributor records.
func EnrichContributors(contributors []*ContributorRecord) []EnrichedContributorRecord {
	output := make([]EnrichedContributorRecord, len(contributors))
	for i, c := range contributors {
		output[i] = EnrichedContributorRecord{
			Rank:              i + 1,
			Label:             GetPlainLabel(c.RiskScore),
			ContributorRecord: c,
		}
	}
	return output
}

// TopAuthor returns the author with the most commits on the file, breaking
// count ties by lexicographic identity so the answer is stable across runs.
func TopAuthor(fr *FileRecord) string {
	authors := make([]string, 0, len(fr.AuthorCommits))
	for a := range fr.AuthorCommits {
		authors = append(authors, a)
	}
	sort.Strings(authors)

	best := ""
	bestCount := 0
	for _, a := range authors {
		if c := fr.AuthorCommits[a]; c > bestCount {
			best = a
			bestCount = c
		}
	}
	return best
}
