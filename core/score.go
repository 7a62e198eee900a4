package core

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gitdebt/gitdebt/schema"
)

// criticalPathMarkers name the layers whose files carry the full missing
// coverage penalty in systemic risk.
var criticalPathMarkers = []string{"model", "interface", "util", "core", "api", "database"}

// maxima is the frozen normalization snapshot taken by the first scoring
// pass. The second pass scores every file against this value, never against
// a live accumulator, so results cannot depend on iteration order.
type maxima struct {
	complexity float64
	totalChurn float64
	entropy    float64
	bugFixFreq float64
	dependency float64
}

// scoreAll runs the metrics engine: one pass to derive ownership entropy and
// freeze the repository maxima, a second pass to normalize and score every
// record against them. Records are visited in sorted path order so repeated
// runs over the same inputs are bit-identical.
func scoreAll(records map[string]*schema.FileRecord, stats *schema.RepositoryStats) {
	paths := sortedRecordPaths(records)

	maxes := collectMaxima(paths, records)
	stats.MaxValues[schema.MetricComplexity] = maxes.complexity
	stats.MaxValues[schema.MetricTotalChurn] = maxes.totalChurn
	stats.MaxValues[schema.MetricOwnershipEntropy] = maxes.entropy
	stats.MaxValues[schema.MetricBugFixFreq] = maxes.bugFixFreq
	stats.MaxValues[schema.MetricDependencyScore] = maxes.dependency

	var riskSum, systemicMax float64
	for _, p := range paths {
		rec := records[p]
		scoreFile(rec, maxes)
		riskSum += rec.RiskScore
		if rec.SystemicRiskScore > systemicMax {
			systemicMax = rec.SystemicRiskScore
		}
	}
	stats.MaxValues[schema.MetricSystemicRisk] = systemicMax
	if len(paths) > 0 {
		stats.OverallTechnicalDebt = riskSum / float64(len(paths))
	}
}

// collectMaxima derives ownership entropy for each record and returns the
// repository-wide maximum of every normalized metric. Entropy is already on
// a [0,1] scale, so its ceiling is pinned at 1.0 rather than floating with
// the most dispersed file observed. A repository with no measurable files
// falls back to a maximum of 1 (0.1 for bug-fix frequency, which lives on a
// much smaller scale) so normalization never divides by a degenerate zero
// range.
func collectMaxima(paths []string, records map[string]*schema.FileRecord) maxima {
	m := maxima{entropy: 1}
	eligible := 0
	for _, p := range paths {
		rec := records[p]
		if rec.LOC <= 0 {
			continue
		}
		eligible++
		rec.OwnershipEntropy = ownershipEntropy(rec.AuthorCommits)
		m.complexity = math.Max(m.complexity, float64(rec.Complexity))
		m.totalChurn = math.Max(m.totalChurn, float64(rec.TotalChurn()))
		m.bugFixFreq = math.Max(m.bugFixFreq, bugFixFrequency(rec))
		m.dependency = math.Max(m.dependency, dependencyScore(rec))
	}
	if eligible == 0 {
		return maxima{complexity: 1, totalChurn: 1, entropy: 1, bugFixFreq: 0.1, dependency: 1}
	}
	return m
}

// scoreFile computes the weighted composite risk score, the systemic risk
// and the dominant factor for one record against the frozen maxima.
func scoreFile(rec *schema.FileRecord, maxes maxima) {
	contributions := map[schema.FactorKey]float64{
		schema.FactorComplexity: schema.WeightComplexity * normalize(float64(rec.Complexity), maxes.complexity, 0),
		schema.FactorChurn:      schema.WeightChurn * normalize(float64(rec.TotalChurn()), maxes.totalChurn, 0),
		schema.FactorEntropy:    schema.WeightEntropy * normalize(rec.OwnershipEntropy, maxes.entropy, 0),
		schema.FactorBugs:       schema.WeightBugs * normalize(bugFixFrequency(rec), maxes.bugFixFreq, 0),
		schema.FactorDependency: schema.WeightDependency * normalize(dependencyScore(rec), maxes.dependency, 0),
	}

	var raw float64
	for _, v := range contributions {
		raw += v
	}

	rec.Breakdown = contributions
	rec.RiskScore = raw * 100.0
	rec.MissingTestCoverageFactor = coverageFactor(rec.Path)
	rec.SystemicRiskScore = float64(rec.FanIn) * rec.RiskScore * rec.MissingTestCoverageFactor
	rec.MainFactor = mainFactor(contributions)
}

// normalize maps value into [0,1] against the observed range. Degenerate
// ranges (max equals min, or max is zero) normalize to 0 so a uniform
// repository does not read as uniformly risky.
func normalize(value, maxVal, minVal float64) float64 {
	if maxVal == minVal || maxVal == 0 {
		return 0
	}
	n := (value - minVal) / (maxVal - minVal)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// ownershipEntropy measures authorship dispersion as normalized Shannon
// entropy over the per-author commit counts: 0 for a single author or no
// history at all, 1.0 when every author contributed equally.
func ownershipEntropy(authorCommits map[string]int) float64 {
	total := 0
	for _, n := range authorCommits {
		total += n
	}
	if total == 0 || len(authorCommits) < 2 {
		return 0
	}

	var h float64
	for _, n := range authorCommits {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		h -= p * math.Log2(p)
	}
	h /= math.Log2(float64(len(authorCommits)))
	return math.Min(h, 1.0)
}

// bugFixFrequency is the share of a file's commits classified as bug fixes.
// The denominator floors at one commit so historyless files read as zero.
func bugFixFrequency(rec *schema.FileRecord) float64 {
	return float64(rec.BugFixCount) / math.Max(float64(rec.CommitCount), 1)
}

// dependencyScore weighs being depended on twice as heavily as depending:
// fan-in spreads a file's defects outward, fan-out only pulls them in.
func dependencyScore(rec *schema.FileRecord) float64 {
	return float64(rec.FanIn*2 + rec.FanOut)
}

// coverageFactor estimates missing test coverage from the path alone. Test
// files carry a nominal 0.1 since they are exercised by definition; paths
// naming load-bearing layers get the full 1.0, everything else 0.5. The test
// check runs first: a path like "core/util_test.go" is still a test.
func coverageFactor(p string) float64 {
	lower := strings.ToLower(p)
	if strings.Contains(lower, "test") || strings.HasSuffix(lower, "_spec.rb") {
		return 0.1
	}
	for _, marker := range criticalPathMarkers {
		if strings.Contains(lower, marker) {
			return 1.0
		}
	}
	return 0.5
}

// mainFactor names the dominant weighted contribution. A sum below the noise
// threshold reads as stability rather than crowning a winner among noise;
// otherwise ties keep the earlier factor in the fixed order.
func mainFactor(contributions map[schema.FactorKey]float64) string {
	var sum float64
	for _, v := range contributions {
		sum += v
	}
	if sum < 0.01 {
		return schema.StableFactorLabel
	}

	winner := schema.AllFactors[0]
	for _, f := range schema.AllFactors[1:] {
		if contributions[f] > contributions[winner] {
			winner = f
		}
	}
	share := contributions[winner] / sum * 100.0
	return fmt.Sprintf("%s (%.1f%%)", winner.Label(), share)
}

// sortedRecordPaths returns the record keys in sorted order. Every stage
// that iterates the mapping for arithmetic goes through this so float
// accumulation order is fixed.
func sortedRecordPaths(records map[string]*schema.FileRecord) []string {
	paths := make([]string, 0, len(records))
	for p := range records {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
