package iocache

import (
	"errors"
	"fmt"

	"github.com/gitdebt/gitdebt/internal/parquet"
)

// ExecuteAnalysisExport performs the actual export of analysis data to Parquet files.
func ExecuteAnalysisExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the analysis store
	store := Manager.GetAnalysisStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get analysis status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no analysis data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total analysis runs: %d\n", status.TotalRuns)
	fmt.Printf("Total file score records: %d\n", status.TableSizes[fileScoresTable])
	fmt.Printf("Total contributor score records: %d\n", status.TableSizes[contributorScoresTable])

	// Retrieve all analysis runs
	analysisRuns, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve analysis runs: %w", err)
	}

	// Retrieve all file debt scores
	fileScores, err := store.GetAllFileDebtRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve file debt records: %w", err)
	}

	// Retrieve all contributor debt scores
	contributorScores, err := store.GetAllContributorDebtRecords()
	if err != nil {
		return fmt.Errorf("failed to retrieve contributor debt records: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertAnalysisRunRecords(analysisRuns)
	parquetFileScores := parquet.ConvertFileDebtRecords(fileScores)
	parquetContributorScores := parquet.ConvertContributorDebtRecords(contributorScores)

	// Write analysis runs to Parquet
	runsFile := outputFile + ".debt_runs.parquet"
	if err := parquet.WriteDebtRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write analysis runs: %w", err)
	}
	fmt.Printf("Exported %d analysis runs to: %s\n", len(parquetRuns), runsFile)

	// Write file debt scores to Parquet
	fileScoresFile := outputFile + ".debt_file_scores.parquet"
	if err := parquet.WriteFileDebtScoresParquet(parquetFileScores, fileScoresFile); err != nil {
		return fmt.Errorf("failed to write file debt scores: %w", err)
	}
	fmt.Printf("Exported %d file score records to: %s\n", len(parquetFileScores), fileScoresFile)

	// Write contributor debt scores to Parquet
	contributorScoresFile := outputFile + ".debt_contributor_scores.parquet"
	if err := parquet.WriteContributorDebtScoresParquet(parquetContributorScores, contributorScoresFile); err != nil {
		return fmt.Errorf("failed to write contributor debt scores: %w", err)
	}
	fmt.Printf("Exported %d contributor score records to: %s\n", len(parquetContributorScores), contributorScoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
