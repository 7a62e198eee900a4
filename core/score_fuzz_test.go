package core

import (
	"math"
	"testing"

	"github.com/gitdebt/gitdebt/schema"
)

// FuzzNormalize checks that normalization always lands in [0,1] and never
// produces NaN, whatever range the maxima pass hands it.
func FuzzNormalize(f *testing.F) {
	f.Add(5.0, 10.0, 0.0)
	f.Add(0.0, 0.0, 0.0)
	f.Add(-1.0, 1.0, -1.0)
	f.Add(math.MaxFloat64, 1.0, 0.0)

	f.Fuzz(func(t *testing.T, value, maxVal, minVal float64) {
		if math.IsNaN(value) || math.IsNaN(maxVal) || math.IsNaN(minVal) {
			t.Skip()
		}
		n := normalize(value, maxVal, minVal)
		if math.IsNaN(n) {
			t.Fatalf("normalize(%v, %v, %v) produced NaN", value, maxVal, minVal)
		}
		if n < 0 || n > 1 {
			t.Fatalf("normalize(%v, %v, %v) = %v, out of [0,1]", value, maxVal, minVal, n)
		}
	})
}

// FuzzScoreFile checks the score invariants for arbitrary record shapes:
// risk stays in [0,100] and systemic risk is never negative.
func FuzzScoreFile(f *testing.F) {
	f.Add("core/a.go", 100, 12, 10, 200, 50, 3, 4, 2)
	f.Add("b_test.go", 0, 0, 0, 0, 0, 0, 0, 0)
	f.Add("model/x.py", 1, 1, 1000000, 0, 0, 1000000, 100, 100)

	f.Fuzz(func(t *testing.T, path string, loc, complexity, commits, added, removed, bugs, fanIn, fanOut int) {
		if loc < 0 || complexity < 0 || commits < 0 || added < 0 || removed < 0 || bugs < 0 || fanIn < 0 || fanOut < 0 {
			t.Skip()
		}
		rec := schema.NewFileRecord(path)
		rec.LOC = loc
		rec.Complexity = complexity
		rec.CommitCount = commits
		rec.LinesAdded = added
		rec.LinesRemoved = removed
		rec.BugFixCount = bugs
		rec.FanIn = fanIn
		rec.FanOut = fanOut
		rec.AuthorCommits = map[string]int{"a": commits}

		records := map[string]*schema.FileRecord{path: rec}
		scoreAll(records, schema.NewRepositoryStats())

		if math.IsNaN(rec.RiskScore) || rec.RiskScore < 0 || rec.RiskScore > 100 {
			t.Fatalf("risk score %v out of [0,100] for %+v", rec.RiskScore, rec)
		}
		if math.IsNaN(rec.SystemicRiskScore) || rec.SystemicRiskScore < 0 {
			t.Fatalf("systemic risk %v negative for %+v", rec.SystemicRiskScore, rec)
		}
	})
}
