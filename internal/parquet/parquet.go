// Package parquet provides data structures and functions for exporting debt
// analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/gitdebt/gitdebt/schema"
	"github.com/parquet-go/parquet-go"
)

// DebtRun represents a single debt analysis run with metadata.
// This struct maps to the debt_runs database table.
type DebtRun struct {
	// AnalysisID is the unique identifier for this analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the analysis began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the analysis completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the analysis run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalFilesAnalyzed is the number of files analyzed in this run
	TotalFilesAnalyzed int32 `parquet:"total_files_analyzed,snappy"`

	// TotalContributors is the number of contributors attributed in this run
	TotalContributors int32 `parquet:"total_contributors,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// FileDebtScore represents the scored metrics for a single file in an analysis.
// This struct maps to the debt_file_scores database table.
type FileDebtScore struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// FilePath is the relative path to the file in the repository
	FilePath string `parquet:"file_path,snappy"`

	// AnalysisTime is when this file was analyzed (stored as TIMESTAMP with nanosecond precision)
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// LOC is the file's newline-delimited line count
	LOC int32 `parquet:"loc,snappy"`

	// Complexity is the file's structural complexity estimate
	Complexity int32 `parquet:"complexity,snappy"`

	// CommitCount is the number of commits touching this file
	CommitCount int32 `parquet:"commit_count,snappy"`

	// LinesAdded is the number of lines added across analyzed history
	LinesAdded int32 `parquet:"lines_added,snappy"`

	// LinesRemoved is the number of lines removed across analyzed history
	LinesRemoved int32 `parquet:"lines_removed,snappy"`

	// BugFixCount is the number of bug-fix commits touching this file
	BugFixCount int32 `parquet:"bug_fix_count,snappy"`

	// UniqueAuthors is the number of distinct commit authors
	UniqueAuthors int32 `parquet:"unique_authors,snappy"`

	// FanIn is the number of files depending on this file
	FanIn int32 `parquet:"fan_in,snappy"`

	// FanOut is the number of files this file depends on
	FanOut int32 `parquet:"fan_out,snappy"`

	// OwnershipEntropy measures authorship dispersion (0-1, higher is more dispersed)
	OwnershipEntropy float64 `parquet:"ownership_entropy,snappy"`

	// RiskScore is the weighted composite risk score in [0,100]
	RiskScore float64 `parquet:"risk_score,snappy"`

	// SystemicRiskScore amplifies risk by dependency fan-in and coverage
	SystemicRiskScore float64 `parquet:"systemic_risk_score,snappy"`

	// CoverageFactor is the test coverage multiplier applied to systemic risk
	CoverageFactor float64 `parquet:"coverage_factor,snappy"`

	// MainFactor names the dominant risk factor for this file
	MainFactor string `parquet:"main_factor,snappy"`
}

// ContributorDebtScore represents the scored metrics for a single contributor.
// This struct maps to the debt_contributor_scores database table.
type ContributorDebtScore struct {
	// AnalysisID references the parent analysis run
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// Author is the contributor's git author identity
	Author string `parquet:"author,snappy"`

	// AnalysisTime is when this contributor was attributed (stored as TIMESTAMP with nanosecond precision)
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`

	// TotalCommits is the contributor's fractionally attributed commit total
	TotalCommits float64 `parquet:"total_commits,snappy"`

	// LinesAdded is the contributor's fractionally attributed added lines
	LinesAdded float64 `parquet:"lines_added,snappy"`

	// LinesRemoved is the contributor's fractionally attributed removed lines
	LinesRemoved float64 `parquet:"lines_removed,snappy"`

	// BugFixCount is the contributor's fractionally attributed bug-fix commits
	BugFixCount float64 `parquet:"bug_fix_count,snappy"`

	// EfficiencyScore is attributed added lines per penalized unit of activity
	EfficiencyScore float64 `parquet:"efficiency_score,snappy"`

	// RiskScore is the contributor's weighted-average risk exposure
	RiskScore float64 `parquet:"risk_score,snappy"`
}

// WriteDebtRunsParquet writes a slice of DebtRun structs to a Parquet file.
func WriteDebtRunsParquet(data []DebtRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the DebtRun struct tags
	writer := parquet.NewGenericWriter[DebtRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteFileDebtScoresParquet writes a slice of FileDebtScore structs to a Parquet file.
func WriteFileDebtScoresParquet(data []FileDebtScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the FileDebtScore struct tags
	writer := parquet.NewGenericWriter[FileDebtScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteContributorDebtScoresParquet writes a slice of ContributorDebtScore structs to a Parquet file.
func WriteContributorDebtScoresParquet(data []ContributorDebtScore, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ContributorDebtScore struct tags
	writer := parquet.NewGenericWriter[ContributorDebtScore](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to DebtRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []DebtRun {
	result := make([]DebtRun, len(records))
	for i, record := range records {
		result[i] = DebtRun{
			AnalysisID:         record.AnalysisID,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalFilesAnalyzed: record.TotalFilesAnalyzed,
			TotalContributors:  record.TotalContributors,
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertFileDebtRecords converts schema.FileDebtRecord to FileDebtScore for Parquet export.
func ConvertFileDebtRecords(records []schema.FileDebtRecord) []FileDebtScore {
	result := make([]FileDebtScore, len(records))
	for i, record := range records {
		result[i] = FileDebtScore{
			AnalysisID:        record.AnalysisID,
			FilePath:          record.FilePath,
			AnalysisTime:      record.AnalysisTime,
			LOC:               record.LOC,
			Complexity:        record.Complexity,
			CommitCount:       record.CommitCount,
			LinesAdded:        record.LinesAdded,
			LinesRemoved:      record.LinesRemoved,
			BugFixCount:       record.BugFixCount,
			UniqueAuthors:     record.UniqueAuthors,
			FanIn:             record.FanIn,
			FanOut:            record.FanOut,
			OwnershipEntropy:  record.OwnershipEntropy,
			RiskScore:         record.RiskScore,
			SystemicRiskScore: record.SystemicRiskScore,
			CoverageFactor:    record.CoverageFactor,
			MainFactor:        record.MainFactor,
		}
	}
	return result
}

// ConvertContributorDebtRecords converts schema.ContributorDebtRecord to ContributorDebtScore for Parquet export.
func ConvertContributorDebtRecords(records []schema.ContributorDebtRecord) []ContributorDebtScore {
	result := make([]ContributorDebtScore, len(records))
	for i, record := range records {
		result[i] = ContributorDebtScore{
			AnalysisID:      record.AnalysisID,
			Author:          record.Author,
			AnalysisTime:    record.AnalysisTime,
			TotalCommits:    record.TotalCommits,
			LinesAdded:      record.LinesAdded,
			LinesRemoved:    record.LinesRemoved,
			BugFixCount:     record.BugFixCount,
			EfficiencyScore: record.EfficiencyScore,
			RiskScore:       record.RiskScore,
		}
	}
	return result
}
