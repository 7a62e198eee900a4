package schema

// Custom string types for type safety.
type (
	// FactorKey identifies one of the five weighted risk factors.
	FactorKey string

	// MetricName represents keys into RepositoryStats.MaxValues.
	MetricName string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// Risk factor keys used in scoring breakdowns.
const (
	FactorComplexity FactorKey = "complexity"
	FactorChurn      FactorKey = "churn"
	FactorEntropy    FactorKey = "entropy"
	FactorBugs       FactorKey = "bugs"
	FactorDependency FactorKey = "dependency"
)

// Metric names for normalization maxima.
const (
	MetricComplexity       MetricName = "complexity"
	MetricTotalChurn       MetricName = "total_churn"
	MetricOwnershipEntropy MetricName = "ownership_entropy"
	MetricBugFixFreq       MetricName = "bug_fix_freq"
	MetricDependencyScore  MetricName = "dependency_score"
	MetricSystemicRisk     MetricName = "systemic_risk_score"
)

// All output modes supported.
const (
	JSONOut    OutputMode = "json" // default
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Risk factor weights. These are fixed by design, not tunable defaults, and
// must sum to 1.0.
const (
	WeightComplexity = 0.30
	WeightChurn      = 0.20
	WeightEntropy    = 0.15
	WeightBugs       = 0.25
	WeightDependency = 0.10
)

// StableFactorLabel is reported as the main factor when the sum of all
// weighted contributions falls below the noise threshold.
const StableFactorLabel = "Low Risk / High Stability"

// AllFactors lists the factors in their fixed order. Main-factor ties break
// toward the earlier entry, so the order is load-bearing.
var AllFactors = []FactorKey{
	FactorComplexity,
	FactorChurn,
	FactorEntropy,
	FactorBugs,
	FactorDependency,
}

// RiskWeights returns the weight for each factor, keyed for breakdowns.
func RiskWeights() map[FactorKey]float64 {
	return map[FactorKey]float64{
		FactorComplexity: WeightComplexity,
		FactorChurn:      WeightChurn,
		FactorEntropy:    WeightEntropy,
		FactorBugs:       WeightBugs,
		FactorDependency: WeightDependency,
	}
}

// Label returns the human-readable factor name used in main-factor reporting.
func (f FactorKey) Label() string {
	switch f {
	case FactorComplexity:
		return "Complexity"
	case FactorChurn:
		return "Churn"
	case FactorEntropy:
		return "Entropy"
	case FactorBugs:
		return "Bugs"
	case FactorDependency:
		return "Dependency"
	default:
		return string(f)
	}
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
