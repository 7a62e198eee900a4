package core

import (
	"testing"

	"github.com/gitdebt/gitdebt/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoredFile returns a record with history on every factor, so against its
// own maxima each normalized metric contributes its full weight.
func scoredFile(path string) *schema.FileRecord {
	rec := schema.NewFileRecord(path)
	rec.LOC = 200
	rec.Complexity = 12
	rec.CommitCount = 10
	rec.LinesAdded = 100
	rec.LinesRemoved = 15
	rec.BugFixCount = 1
	rec.AuthorCommits = map[string]int{"alice": 5, "bob": 5}
	return rec
}

func TestScoreAllSingleFile(t *testing.T) {
	// One file with no dependencies is its own maximum on every other
	// factor: complexity, churn, entropy and bugs all normalize to 1, the
	// dependency factor stays at zero, so the score is the sum of the
	// remaining weights.
	rec := scoredFile("core/engine.go")
	records := map[string]*schema.FileRecord{rec.Path: rec}
	stats := schema.NewRepositoryStats()

	scoreAll(records, stats)

	assert.InDelta(t, 90.0, rec.RiskScore, 1e-9)
	assert.InDelta(t, 1.0, rec.OwnershipEntropy, 1e-9, "two equal authors disperse ownership fully")
	assert.InDelta(t, 1.0, rec.MissingTestCoverageFactor, 1e-9, "core paths carry the full coverage penalty")
	assert.Zero(t, rec.SystemicRiskScore, "no fan-in means no systemic risk")
	assert.InDelta(t, 90.0, stats.OverallTechnicalDebt, 1e-9)

	assert.InDelta(t, 12.0, stats.MaxValues[schema.MetricComplexity], 1e-9)
	assert.InDelta(t, 115.0, stats.MaxValues[schema.MetricTotalChurn], 1e-9)
}

func TestScoreAllEntropyCeiling(t *testing.T) {
	// Entropy is already on a [0,1] scale, so it normalizes against the
	// fixed 1.0 ceiling rather than the most dispersed file observed: a 9/1
	// ownership split contributes only its own entropy share, even when no
	// file in the repository reaches full dispersion.
	rec := scoredFile("core/skewed.go")
	rec.AuthorCommits = map[string]int{"alice": 9, "bob": 1}
	records := map[string]*schema.FileRecord{rec.Path: rec}
	stats := schema.NewRepositoryStats()

	scoreAll(records, stats)

	wantEntropy := ownershipEntropy(map[string]int{"alice": 9, "bob": 1})
	assert.InDelta(t, 1.0, stats.MaxValues[schema.MetricOwnershipEntropy], 1e-9)
	assert.InDelta(t, 0.4689955935892812, rec.OwnershipEntropy, 1e-9)
	assert.InDelta(t, schema.WeightEntropy*wantEntropy, rec.Breakdown[schema.FactorEntropy], 1e-9)
}

func TestScoreAllEmptyRepo(t *testing.T) {
	records := map[string]*schema.FileRecord{}
	stats := schema.NewRepositoryStats()

	scoreAll(records, stats)

	assert.Zero(t, stats.OverallTechnicalDebt)
	// Fallback maxima keep normalization well defined for later callers
	assert.InDelta(t, 1.0, stats.MaxValues[schema.MetricComplexity], 1e-9)
	assert.InDelta(t, 0.1, stats.MaxValues[schema.MetricBugFixFreq], 1e-9)
}

func TestScoreAllSystemicRisk(t *testing.T) {
	hub := scoredFile("core/hub.go")
	hub.FanIn = 3
	leaf := scoredFile("scripts/leaf.go")
	leaf.FanOut = 1
	records := map[string]*schema.FileRecord{hub.Path: hub, leaf.Path: leaf}
	stats := schema.NewRepositoryStats()

	scoreAll(records, stats)

	require.Positive(t, hub.RiskScore)
	assert.InDelta(t, 3*hub.RiskScore*1.0, hub.SystemicRiskScore, 1e-9)
	assert.Zero(t, leaf.SystemicRiskScore)
	assert.InDelta(t, hub.SystemicRiskScore, stats.MaxValues[schema.MetricSystemicRisk], 1e-9)
}

func TestScoreAllIdempotent(t *testing.T) {
	build := func() map[string]*schema.FileRecord {
		a := scoredFile("core/a.go")
		b := scoredFile("model/b.go")
		b.Complexity = 4
		b.AuthorCommits = map[string]int{"carol": 10}
		c := scoredFile("scripts/c.go")
		c.FanIn = 2
		return map[string]*schema.FileRecord{a.Path: a, b.Path: b, c.Path: c}
	}

	first := build()
	second := build()
	scoreAll(first, schema.NewRepositoryStats())
	scoreAll(second, schema.NewRepositoryStats())

	for path, rec := range first {
		assert.Equal(t, rec.RiskScore, second[path].RiskScore, "score for %s must not depend on run identity", path)
		assert.Equal(t, rec.SystemicRiskScore, second[path].SystemicRiskScore)
		assert.Equal(t, rec.MainFactor, second[path].MainFactor)
	}
}

func TestScoreAllSkipsEmptyFiles(t *testing.T) {
	real := scoredFile("core/real.go")
	ghost := schema.NewFileRecord("core/ghost.go") // LOC stays 0
	records := map[string]*schema.FileRecord{real.Path: real, ghost.Path: ghost}
	stats := schema.NewRepositoryStats()

	scoreAll(records, stats)

	assert.InDelta(t, 12.0, stats.MaxValues[schema.MetricComplexity], 1e-9, "empty files must not shape the maxima")
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 0.5, normalize(5, 10, 0), 1e-9)
	assert.InDelta(t, 1.0, normalize(15, 10, 0), 1e-9, "values above the max clamp to 1")
	assert.Zero(t, normalize(-3, 10, 0), "values below the min clamp to 0")
	assert.Zero(t, normalize(5, 5, 5), "degenerate range normalizes to 0")
	assert.Zero(t, normalize(0, 0, 0), "zero max normalizes to 0")
}

func TestOwnershipEntropy(t *testing.T) {
	assert.Zero(t, ownershipEntropy(nil))
	assert.Zero(t, ownershipEntropy(map[string]int{"solo": 42}), "single author means zero dispersion")
	assert.InDelta(t, 1.0, ownershipEntropy(map[string]int{"a": 5, "b": 5}), 1e-9)

	skewed := ownershipEntropy(map[string]int{"a": 9, "b": 1})
	assert.Greater(t, skewed, 0.0)
	assert.Less(t, skewed, 1.0)
}

func TestBugFixFrequency(t *testing.T) {
	rec := schema.NewFileRecord("a.go")
	rec.CommitCount = 10
	rec.BugFixCount = 4
	assert.InDelta(t, 0.4, bugFixFrequency(rec), 1e-9)

	fresh := schema.NewFileRecord("b.go")
	assert.Zero(t, bugFixFrequency(fresh), "historyless files read as zero, not NaN")
}

func TestDependencyScore(t *testing.T) {
	rec := schema.NewFileRecord("a.go")
	rec.FanIn = 3
	rec.FanOut = 2
	assert.InDelta(t, 8.0, dependencyScore(rec), 1e-9, "fan-in weighs twice as much as fan-out")
}

func TestCoverageFactor(t *testing.T) {
	tests := []struct {
		path string
		want float64
	}{
		{"core/util_test.go", 0.1}, // test check wins over the critical marker
		{"spec/user_spec.rb", 0.1},
		{"core/engine.go", 1.0},
		{"model/user.py", 1.0},
		{"api/handler.ts", 1.0},
		{"scripts/gen.js", 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, coverageFactor(tt.path), 1e-9, "coverage factor for %s", tt.path)
	}
}

func TestMainFactor(t *testing.T) {
	quiet := map[schema.FactorKey]float64{
		schema.FactorComplexity: 0.001,
		schema.FactorChurn:      0.002,
	}
	assert.Equal(t, schema.StableFactorLabel, mainFactor(quiet))

	loud := map[schema.FactorKey]float64{
		schema.FactorComplexity: 0.30,
		schema.FactorChurn:      0.10,
		schema.FactorBugs:       0.10,
	}
	assert.Equal(t, "Complexity (60.0%)", mainFactor(loud))
}
