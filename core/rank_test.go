package core

import (
	"testing"

	"github.com/gitdebt/gitdebt/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankFixture() map[string]*schema.FileRecord {
	mk := func(path string, risk, systemic float64) *schema.FileRecord {
		rec := schema.NewFileRecord(path)
		rec.RiskScore = risk
		rec.SystemicRiskScore = systemic
		return rec
	}
	return map[string]*schema.FileRecord{
		"a.go": mk("a.go", 42.0, 10.0),
		"b.go": mk("b.go", 91.5, 250.0),
		"c.go": mk("c.go", 42.0, 0.0),
		"d.go": mk("d.go", 77.0, 80.0),
	}
}

func TestRankedFiles(t *testing.T) {
	ranked := RankedFiles(rankFixture(), 0)
	require.Len(t, ranked, 4)

	assert.Equal(t, "b.go", ranked[0].Path)
	assert.Equal(t, "d.go", ranked[1].Path)
	// Equal scores break ties by path so rankings never jitter
	assert.Equal(t, "a.go", ranked[2].Path)
	assert.Equal(t, "c.go", ranked[3].Path)
}

func TestRankedFilesLimit(t *testing.T) {
	ranked := RankedFiles(rankFixture(), 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b.go", ranked[0].Path)
	assert.Equal(t, "d.go", ranked[1].Path)

	all := RankedFiles(rankFixture(), -1)
	assert.Len(t, all, 4, "non-positive limit keeps everything")

	generous := RankedFiles(rankFixture(), 100)
	assert.Len(t, generous, 4)
}

func TestRankedBySystemicRisk(t *testing.T) {
	ranked := RankedBySystemicRisk(rankFixture(), 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b.go", ranked[0].Path)
	assert.Equal(t, "d.go", ranked[1].Path)
	assert.Equal(t, "a.go", ranked[2].Path)
}

func TestRankedContributors(t *testing.T) {
	contributors := map[string]*schema.ContributorRecord{
		"carol": {Author: "carol", RiskScore: 66.0},
		"alice": {Author: "alice", RiskScore: 80.0},
		"bob":   {Author: "bob", RiskScore: 66.0},
	}

	ranked := RankedContributors(contributors, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "alice", ranked[0].Author)
	// Ties order by author ascending
	assert.Equal(t, "bob", ranked[1].Author)
	assert.Equal(t, "carol", ranked[2].Author)

	top := RankedContributors(contributors, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "alice", top[0].Author)
}

func TestRankedEmptyInputs(t *testing.T) {
	assert.Empty(t, RankedFiles(map[string]*schema.FileRecord{}, 5))
	assert.Empty(t, RankedContributors(map[string]*schema.ContributorRecord{}, 5))
}
