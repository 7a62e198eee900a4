package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() (*schema.DebtReport, []*schema.FileRecord) {
	recA := &schema.FileRecord{
		Path:                      "core/pipeline.go",
		LOC:                       300,
		Complexity:                25,
		CommitCount:               40,
		LinesAdded:                600,
		LinesRemoved:              200,
		BugFixCount:               8,
		AuthorCommits:             map[string]int{"alice@example.com": 30, "bob@example.com": 10},
		UniqueAuthorCount:         2,
		FanIn:                     5,
		FanOut:                    2,
		OwnershipEntropy:          0.81,
		RiskScore:                 84.2,
		SystemicRiskScore:         421.0,
		MissingTestCoverageFactor: 1.0,
		MainFactor:                "Churn",
	}
	recB := &schema.FileRecord{
		Path:                      "internal/util.go",
		LOC:                       60,
		Complexity:                4,
		CommitCount:               3,
		AuthorCommits:             map[string]int{"alice@example.com": 3},
		UniqueAuthorCount:         1,
		OwnershipEntropy:          0.0,
		RiskScore:                 11.3,
		SystemicRiskScore:         0.0,
		MissingTestCoverageFactor: 0.5,
		MainFactor:                schema.StableFactorLabel,
	}

	report := &schema.DebtReport{
		RepoPath:    "/tmp/repo",
		GeneratedAt: time.Now(),
		Duration:    1200 * time.Millisecond,
		Files: map[string]*schema.FileRecord{
			recA.Path: recA,
			recB.Path: recB,
		},
		Stats: &schema.RepositoryStats{
			MaxValues:            map[schema.MetricName]float64{schema.MetricComplexity: 25},
			OverallTechnicalDebt: 47.75,
		},
		Warnings: []string{"history unavailable for 1 path"},
	}
	return report, []*schema.FileRecord{recA, recB}
}

func sampleContributors() []*schema.ContributorRecord {
	return []*schema.ContributorRecord{
		{
			Author:          "alice@example.com",
			TotalCommits:    33.0,
			LinesAdded:      720.0,
			LinesRemoved:    180.0,
			BugFixCount:     6.0,
			EfficiencyScore: 2.76,
			RiskScore:       66.1,
		},
		{
			Author:          "bob@example.com",
			TotalCommits:    10.0,
			LinesAdded:      80.0,
			LinesRemoved:    20.0,
			BugFixCount:     2.0,
			EfficiencyScore: 1.6,
			RiskScore:       41.8,
		},
	}
}

func TestWriteDebtReport_JSON(t *testing.T) {
	report, ranked := sampleReport()
	outputFile := filepath.Join(t.TempDir(), "report.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile, Precision: 2}

	err := WriteDebtReport(report, ranked, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var out debtReportOutput
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "/tmp/repo", out.RepoPath)
	assert.Equal(t, int64(1200), out.DurationMs)
	assert.Equal(t, 2, out.TotalFiles)
	require.Len(t, out.Files, 2)
	assert.Equal(t, 1, out.Files[0].Rank)
	assert.Equal(t, "core/pipeline.go", out.Files[0].Path)
	assert.Equal(t, "Critical", out.Files[0].Label)
	assert.Equal(t, "Low", out.Files[1].Label)
	assert.Len(t, out.Warnings, 1)
	require.NotNil(t, out.Stats)
	assert.Equal(t, 47.75, out.Stats.OverallTechnicalDebt)
}

func TestWriteDebtReport_CSV(t *testing.T) {
	report, ranked := sampleReport()
	outputFile := filepath.Join(t.TempDir(), "report.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outputFile, Precision: 1}

	err := WriteDebtReport(report, ranked, cfg)
	require.NoError(t, err)

	file, err := os.Open(outputFile)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two data rows")

	header := rows[0]
	assert.Equal(t, "rank", header[0])
	assert.Equal(t, "path", header[1])
	assert.Equal(t, "risk_score", header[2])

	assert.Equal(t, []string{"1", "core/pipeline.go", "84.2", "Critical"}, rows[1][:4])
	assert.Equal(t, "421.0", rows[1][5])
	assert.Equal(t, []string{"2", "internal/util.go", "11.3", "Low"}, rows[2][:4])
}

func TestWriteDebtReport_Parquet(t *testing.T) {
	report, ranked := sampleReport()
	outputFile := filepath.Join(t.TempDir(), "report.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: outputFile, Precision: 2}

	err := WriteDebtReport(report, ranked, cfg)
	require.NoError(t, err)

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteDebtReport_ParquetRequiresOutputFile(t *testing.T) {
	report, ranked := sampleReport()
	cfg := &contract.Config{Output: schema.ParquetOut, Precision: 2}

	err := WriteDebtReport(report, ranked, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file")
}

func TestWriteContributorReport_JSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "contributors.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile, Precision: 2}

	err := WriteContributorReport(sampleContributors(), cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var out []schema.EnrichedContributorRecord
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, "alice@example.com", out[0].Author)
	assert.Equal(t, "High", out[0].Label)
	assert.Equal(t, "Moderate", out[1].Label)
}

func TestWriteContributorReport_CSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "contributors.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outputFile, Precision: 2}

	err := WriteContributorReport(sampleContributors(), cfg)
	require.NoError(t, err)

	file, err := os.Open(outputFile)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "author", rows[0][1])
	assert.Equal(t, "alice@example.com", rows[1][1])
	assert.Equal(t, "66.10", rows[1][2])
	assert.Equal(t, "2.76", rows[1][4])
}

func TestWriteContributorReport_Parquet(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "contributors.parquet")
	cfg := &contract.Config{Output: schema.ParquetOut, OutputFile: outputFile, Precision: 2}

	err := WriteContributorReport(sampleContributors(), cfg)
	require.NoError(t, err)

	info, err := os.Stat(outputFile)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteFactorDefinitions_JSON(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "factors.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile, Precision: 2}

	err := WriteFactorDefinitions(cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var out factorDefinitionsOutput
	require.NoError(t, json.Unmarshal(data, &out))

	require.Len(t, out.Factors, 5)
	assert.Equal(t, schema.FactorComplexity, out.Factors[0].Key)
	assert.Equal(t, 0.30, out.Factors[0].Weight)
	assert.Equal(t, schema.FactorDependency, out.Factors[4].Key)
	assert.Equal(t, schema.StableFactorLabel, out.StableLabel)
	assert.Contains(t, out.Formula, "0.30*complexity")
	assert.Contains(t, out.Formula, "0.25*bugs")

	// Weights must sum to 1.0
	sum := 0.0
	for _, f := range out.Factors {
		sum += f.Weight
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestWriteFactorDefinitions_CSV(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "factors.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: outputFile, Precision: 2}

	err := WriteFactorDefinitions(cfg)
	require.NoError(t, err)

	file, err := os.Open(outputFile)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6, "header plus five factors")
	assert.Equal(t, "complexity", rows[1][0])
	assert.Equal(t, "0.30", rows[1][2])
}
