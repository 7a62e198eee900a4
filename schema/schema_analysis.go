package schema

import "time"

// CacheStatus represents the status of the activity cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// AnalysisStatus represents the status of the analysis tracking store.
type AnalysisStatus struct {
	Backend            string           `json:"backend"`
	Connected          bool             `json:"connected"`
	TotalRuns          int              `json:"total_runs"`
	LastRunID          int64            `json:"last_run_id"`
	LastRunTime        time.Time        `json:"last_run_time"`
	OldestRunTime      time.Time        `json:"oldest_run_time"`
	TotalFilesAnalyzed int              `json:"total_files_analyzed"`
	TableSizes         map[string]int64 `json:"table_sizes"`
}

// AnalysisRunRecord represents a row from the debt_runs table.
type AnalysisRunRecord struct {
	AnalysisID         int64
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalFilesAnalyzed int32
	TotalContributors  int32
	ConfigParams       *string
}

// FileDebtRecord represents a row from the debt_file_scores table.
type FileDebtRecord struct {
	AnalysisID        int64
	FilePath          string
	AnalysisTime      time.Time
	LOC               int32
	Complexity        int32
	CommitCount       int32
	LinesAdded        int32
	LinesRemoved      int32
	BugFixCount       int32
	UniqueAuthors     int32
	FanIn             int32
	FanOut            int32
	OwnershipEntropy  float64
	RiskScore         float64
	SystemicRiskScore float64
	CoverageFactor    float64
	MainFactor        string
}

// ContributorDebtRecord represents a row from the debt_contributor_scores table.
type ContributorDebtRecord struct {
	AnalysisID      int64
	Author          string
	AnalysisTime    time.Time
	TotalCommits    float64
	LinesAdded      float64
	LinesRemoved    float64
	BugFixCount     float64
	EfficiencyScore float64
	RiskScore       float64
}
