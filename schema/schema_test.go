package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFileRecordDefaults(t *testing.T) {
	fr := NewFileRecord("internal/server.go")

	assert.Equal(t, "internal/server.go", fr.Path)
	assert.Equal(t, 1, fr.Complexity, "baseline complexity should be 1")
	assert.Zero(t, fr.LOC)
	assert.Zero(t, fr.CommitCount)
	assert.NotNil(t, fr.AuthorCommits, "author map must exist before history runs")
	assert.Empty(t, fr.AuthorCommits)
	assert.Zero(t, fr.OwnershipEntropy)
	assert.Zero(t, fr.RiskScore)
}

func TestTotalChurn(t *testing.T) {
	fr := NewFileRecord("a.go")
	fr.LinesAdded = 120
	fr.LinesRemoved = 45
	assert.Equal(t, 165, fr.TotalChurn())

	empty := NewFileRecord("b.go")
	assert.Zero(t, empty.TotalChurn(), "no history means no churn")
}

func TestRiskWeightsSumToOne(t *testing.T) {
	sum := 0.0
	for _, w := range RiskWeights() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9, "factor weights are a fixed design invariant")
	assert.Len(t, RiskWeights(), len(AllFactors))
}

func TestAllFactorsOrder(t *testing.T) {
	// Tie-breaking depends on this exact ordering.
	want := []FactorKey{FactorComplexity, FactorChurn, FactorEntropy, FactorBugs, FactorDependency}
	assert.Equal(t, want, AllFactors)
}

func TestFactorLabels(t *testing.T) {
	tests := []struct {
		factor FactorKey
		want   string
	}{
		{FactorComplexity, "Complexity"},
		{FactorChurn, "Churn"},
		{FactorEntropy, "Entropy"},
		{FactorBugs, "Bugs"},
		{FactorDependency, "Dependency"},
		{FactorKey("other"), "other"}, // unknown keys pass through
	}

	for _, tt := range tests {
		t.Run(string(tt.factor), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.factor.Label())
		})
	}
}

func TestNewRepositoryStats(t *testing.T) {
	stats := NewRepositoryStats()
	assert.NotNil(t, stats.MaxValues)
	assert.Zero(t, stats.OverallTechnicalDebt)
}
