package schema

// RepositoryStats holds the single repository-level accumulator for one run.
// MaxValues collects the running maxima observed during the first scoring pass
// and is frozen before the second pass computes any score against it; mutating
// it mid-scoring would make results depend on file iteration order.
type RepositoryStats struct {
	MaxValues            map[MetricName]float64 `json:"max_values"`
	OverallTechnicalDebt float64                `json:"overall_technical_debt"` // Mean of all risk scores, 0 when no files
}

// NewRepositoryStats returns stats with an initialized maxima map.
func NewRepositoryStats() *RepositoryStats {
	return &RepositoryStats{
		MaxValues: make(map[MetricName]float64),
	}
}
