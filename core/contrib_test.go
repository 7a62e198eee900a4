package core

import (
	"testing"

	"github.com/gitdebt/gitdebt/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeContributorsSingleAuthor(t *testing.T) {
	rec := schema.NewFileRecord("core/engine.go")
	rec.LOC = 200
	rec.CommitCount = 10
	rec.LinesAdded = 100
	rec.LinesRemoved = 15
	rec.BugFixCount = 1
	rec.RiskScore = 72.0
	rec.AuthorCommits = map[string]int{"alice": 10}

	contributors := attributeContributors(map[string]*schema.FileRecord{rec.Path: rec})
	require.Len(t, contributors, 1)

	alice := contributors["alice"]
	require.NotNil(t, alice)
	assert.InDelta(t, 10.0, alice.TotalCommits, 1e-9)
	assert.InDelta(t, 100.0, alice.LinesAdded, 1e-9)
	assert.InDelta(t, 15.0, alice.LinesRemoved, 1e-9)
	assert.InDelta(t, 1.0, alice.BugFixCount, 1e-9)
	// 100 / (10 commits + 15 removed + 10 per bug fix)
	assert.InDelta(t, 100.0/35.0, alice.EfficiencyScore, 1e-9)
	assert.InDelta(t, 72.0, alice.RiskScore, 1e-9, "sole author inherits the file's full risk")
}

func TestAttributeContributorsProportionalShare(t *testing.T) {
	rec := schema.NewFileRecord("model/user.go")
	rec.LOC = 100
	rec.CommitCount = 10
	rec.LinesAdded = 50
	rec.LinesRemoved = 20
	rec.BugFixCount = 2
	rec.RiskScore = 60.0
	rec.AuthorCommits = map[string]int{"alice": 8, "bob": 2}

	contributors := attributeContributors(map[string]*schema.FileRecord{rec.Path: rec})
	require.Len(t, contributors, 2)

	alice, bob := contributors["alice"], contributors["bob"]
	assert.InDelta(t, 40.0, alice.LinesAdded, 1e-9, "80%% commit share earns 80%% of the churn")
	assert.InDelta(t, 10.0, bob.LinesAdded, 1e-9)
	assert.InDelta(t, 1.6, alice.BugFixCount, 1e-9)
	assert.InDelta(t, 0.4, bob.BugFixCount, 1e-9)

	// A weighted average, so both see the same single-file risk
	assert.InDelta(t, 60.0, alice.RiskScore, 1e-9)
	assert.InDelta(t, 60.0, bob.RiskScore, 1e-9)
}

func TestAttributeContributorsWeightedRiskAverage(t *testing.T) {
	risky := schema.NewFileRecord("core/risky.go")
	risky.LOC = 100
	risky.CommitCount = 1
	risky.RiskScore = 90.0
	risky.AuthorCommits = map[string]int{"alice": 1}

	calm := schema.NewFileRecord("docs/calm.go")
	calm.LOC = 100
	calm.CommitCount = 1
	calm.RiskScore = 10.0
	calm.AuthorCommits = map[string]int{"alice": 1}

	contributors := attributeContributors(map[string]*schema.FileRecord{
		risky.Path: risky,
		calm.Path:  calm,
	})

	alice := contributors["alice"]
	require.NotNil(t, alice)
	assert.InDelta(t, 50.0, alice.RiskScore, 1e-9, "full shares on two files average their risk")
}

func TestAttributeContributorsSkipsIneligibleFiles(t *testing.T) {
	empty := schema.NewFileRecord("empty.go") // LOC 0
	empty.CommitCount = 5
	empty.AuthorCommits = map[string]int{"ghost": 5}

	unversioned := schema.NewFileRecord("new.go") // no commits yet
	unversioned.LOC = 10
	unversioned.AuthorCommits = map[string]int{"ghost": 0}

	contributors := attributeContributors(map[string]*schema.FileRecord{
		empty.Path:       empty,
		unversioned.Path: unversioned,
	})
	assert.Empty(t, contributors, "authors appear only through eligible files")
}

func TestFinalizeContributorZeroActivity(t *testing.T) {
	cr := schema.NewContributorRecord("idle")
	finalizeContributor(cr)
	assert.Zero(t, cr.EfficiencyScore, "zero denominator must not divide")
	assert.Zero(t, cr.RiskScore)
}
