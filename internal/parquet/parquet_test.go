package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	gdschema "github.com/gitdebt/gitdebt/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDebtRuns() []DebtRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"workers":4,"filter":"internal/"}`

	startTime2 := now.Add(-10 * time.Minute)
	// Second run is still open: nullable fields stay nil

	return []DebtRun{
		{
			AnalysisID:         1,
			StartTime:          startTime1,
			EndTime:            &endTime1,
			RunDurationMs:      &durationMs1,
			TotalFilesAnalyzed: 150,
			TotalContributors:  12,
			ConfigParams:       &configParams1,
		},
		{
			AnalysisID:         2,
			StartTime:          startTime2,
			EndTime:            nil,
			RunDurationMs:      nil,
			TotalFilesAnalyzed: 0,
			TotalContributors:  0,
			ConfigParams:       nil,
		},
	}
}

func sampleFileDebtScores() []FileDebtScore {
	now := time.Now()
	return []FileDebtScore{
		{
			AnalysisID:        1,
			FilePath:          "src/main.go",
			AnalysisTime:      now.Add(-1 * time.Hour),
			LOC:               420,
			Complexity:        35,
			CommitCount:       42,
			LinesAdded:        600,
			LinesRemoved:      250,
			BugFixCount:       9,
			UniqueAuthors:     5,
			FanIn:             7,
			FanOut:            3,
			OwnershipEntropy:  0.72,
			RiskScore:         85.3,
			SystemicRiskScore: 597.1,
			CoverageFactor:    1.0,
			MainFactor:        "Code Churn",
		},
		{
			AnalysisID:        1,
			FilePath:          "src/util/helper.go",
			AnalysisTime:      now.Add(-1 * time.Hour),
			LOC:               80,
			Complexity:        6,
			CommitCount:       4,
			LinesAdded:        90,
			LinesRemoved:      10,
			BugFixCount:       0,
			UniqueAuthors:     1,
			FanIn:             0,
			FanOut:            1,
			OwnershipEntropy:  0.0,
			RiskScore:         12.6,
			SystemicRiskScore: 0.0,
			CoverageFactor:    0.5,
			MainFactor:        "Low Risk / High Stability",
		},
	}
}

func sampleContributorDebtScores() []ContributorDebtScore {
	now := time.Now()
	return []ContributorDebtScore{
		{
			AnalysisID:      1,
			Author:          "alice@example.com",
			AnalysisTime:    now.Add(-1 * time.Hour),
			TotalCommits:    30.5,
			LinesAdded:      900.0,
			LinesRemoved:    200.0,
			BugFixCount:     6.0,
			EfficiencyScore: 3.1,
			RiskScore:       64.2,
		},
		{
			AnalysisID:      1,
			Author:          "bob@example.com",
			AnalysisTime:    now.Add(-1 * time.Hour),
			TotalCommits:    10.0,
			LinesAdded:      150.0,
			LinesRemoved:    40.0,
			BugFixCount:     1.0,
			EfficiencyScore: 2.5,
			RiskScore:       38.9,
		},
	}
}

func TestDebtRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(DebtRun))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"analysis_id",
		"start_time",
		"end_time",
		"run_duration_ms",
		"total_files_analyzed",
		"total_contributors",
		"config_params",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFileDebtScoreStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(FileDebtScore))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"analysis_id",
		"file_path",
		"analysis_time",
		"loc",
		"complexity",
		"commit_count",
		"lines_added",
		"lines_removed",
		"bug_fix_count",
		"unique_authors",
		"fan_in",
		"fan_out",
		"ownership_entropy",
		"risk_score",
		"systemic_risk_score",
		"coverage_factor",
		"main_factor",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestContributorDebtScoreStructTags(t *testing.T) {
	schema := parquet.SchemaOf(new(ContributorDebtScore))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"analysis_id",
		"author",
		"analysis_time",
		"total_commits",
		"lines_added",
		"lines_removed",
		"bug_fix_count",
		"efficiency_score",
		"risk_score",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteDebtRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "debt_runs.parquet")

	data := sampleDebtRuns()
	err := WriteDebtRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	// Verify file was created
	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[DebtRun](file)
	defer func() { _ = reader.Close() }()

	readData := make([]DebtRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].AnalysisID, readData[i].AnalysisID, "AnalysisID should match")
		assert.Equal(t, data[i].TotalFilesAnalyzed, readData[i].TotalFilesAnalyzed, "TotalFilesAnalyzed should match")
		assert.Equal(t, data[i].TotalContributors, readData[i].TotalContributors, "TotalContributors should match")

		// Check nullable fields
		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime, "EndTime should be nil")
		} else {
			require.NotNil(t, readData[i].EndTime, "EndTime should not be nil")
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond, "EndTime should match within nanosecond precision")
		}

		if data[i].ConfigParams == nil {
			assert.Nil(t, readData[i].ConfigParams, "ConfigParams should be nil")
		} else {
			require.NotNil(t, readData[i].ConfigParams, "ConfigParams should not be nil")
			assert.Equal(t, *data[i].ConfigParams, *readData[i].ConfigParams, "ConfigParams should match")
		}
	}
}

func TestWriteFileDebtScoresParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "debt_file_scores.parquet")

	data := sampleFileDebtScores()
	err := WriteFileDebtScoresParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[FileDebtScore](file)
	defer func() { _ = reader.Close() }()

	readData := make([]FileDebtScore, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].AnalysisID, readData[i].AnalysisID, "AnalysisID should match")
		assert.Equal(t, data[i].FilePath, readData[i].FilePath, "FilePath should match")
		assert.Equal(t, data[i].LOC, readData[i].LOC, "LOC should match")
		assert.Equal(t, data[i].CommitCount, readData[i].CommitCount, "CommitCount should match")
		assert.Equal(t, data[i].FanIn, readData[i].FanIn, "FanIn should match")
		assert.InDelta(t, data[i].OwnershipEntropy, readData[i].OwnershipEntropy, 0.001, "OwnershipEntropy should match")
		assert.InDelta(t, data[i].RiskScore, readData[i].RiskScore, 0.01, "RiskScore should match")
		assert.InDelta(t, data[i].SystemicRiskScore, readData[i].SystemicRiskScore, 0.01, "SystemicRiskScore should match")
		assert.InDelta(t, data[i].CoverageFactor, readData[i].CoverageFactor, 0.001, "CoverageFactor should match")
		assert.Equal(t, data[i].MainFactor, readData[i].MainFactor, "MainFactor should match")
	}
}

func TestWriteContributorDebtScoresParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "debt_contributor_scores.parquet")

	data := sampleContributorDebtScores()
	err := WriteContributorDebtScoresParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	file, err := os.Open(outputPath)
	require.NoError(t, err, "Should be able to open output file")
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[ContributorDebtScore](file)
	defer func() { _ = reader.Close() }()

	readData := make([]ContributorDebtScore, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].Author, readData[i].Author, "Author should match")
		assert.InDelta(t, data[i].TotalCommits, readData[i].TotalCommits, 0.001, "TotalCommits should match")
		assert.InDelta(t, data[i].EfficiencyScore, readData[i].EfficiencyScore, 0.001, "EfficiencyScore should match")
		assert.InDelta(t, data[i].RiskScore, readData[i].RiskScore, 0.001, "RiskScore should match")
	}
}

func TestWriteDebtRunsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_debt_runs.parquet")

	err := WriteDebtRunsParquet([]DebtRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteDebtRunsParquet_InvalidPath(t *testing.T) {
	err := WriteDebtRunsParquet(sampleDebtRuns(), "/nonexistent-dir/out.parquet")
	assert.Error(t, err, "Writing to an invalid path should fail")
}

func TestConvertAnalysisRunRecords(t *testing.T) {
	endTime := time.Now()
	durationMs := int32(4200)
	configParams := `{"workers":2}`

	records := []gdschema.AnalysisRunRecord{
		{
			AnalysisID:         7,
			StartTime:          endTime.Add(-time.Minute),
			EndTime:            &endTime,
			RunDurationMs:      &durationMs,
			TotalFilesAnalyzed: 33,
			TotalContributors:  4,
			ConfigParams:       &configParams,
		},
	}

	converted := ConvertAnalysisRunRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, int64(7), converted[0].AnalysisID)
	assert.Equal(t, int32(33), converted[0].TotalFilesAnalyzed)
	assert.Equal(t, int32(4), converted[0].TotalContributors)
	require.NotNil(t, converted[0].RunDurationMs)
	assert.Equal(t, durationMs, *converted[0].RunDurationMs)
}

func TestConvertFileDebtRecords(t *testing.T) {
	records := []gdschema.FileDebtRecord{
		{
			AnalysisID:        7,
			FilePath:          "core/pipeline.go",
			AnalysisTime:      time.Now(),
			LOC:               300,
			Complexity:        20,
			CommitCount:       15,
			FanIn:             4,
			OwnershipEntropy:  0.5,
			RiskScore:         55.2,
			SystemicRiskScore: 220.8,
			CoverageFactor:    1.0,
			MainFactor:        "Structural Complexity",
		},
	}

	converted := ConvertFileDebtRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "core/pipeline.go", converted[0].FilePath)
	assert.Equal(t, int32(300), converted[0].LOC)
	assert.Equal(t, int32(4), converted[0].FanIn)
	assert.Equal(t, 55.2, converted[0].RiskScore)
	assert.Equal(t, "Structural Complexity", converted[0].MainFactor)
}

func TestConvertContributorDebtRecords(t *testing.T) {
	records := []gdschema.ContributorDebtRecord{
		{
			AnalysisID:      7,
			Author:          "carol@example.com",
			AnalysisTime:    time.Now(),
			TotalCommits:    12.5,
			EfficiencyScore: 1.8,
			RiskScore:       47.3,
		},
	}

	converted := ConvertContributorDebtRecords(records)
	require.Len(t, converted, 1)
	assert.Equal(t, "carol@example.com", converted[0].Author)
	assert.Equal(t, 12.5, converted[0].TotalCommits)
	assert.Equal(t, 1.8, converted[0].EfficiencyScore)
}
