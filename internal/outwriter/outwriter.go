// Package outwriter renders debt reports in the configured output format.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/internal/parquet"
	"github.com/gitdebt/gitdebt/schema"
)

// debtReportOutput is the JSON envelope for the per-file debt report. Files
// are the ranked subset; stats and warnings cover the whole analysis.
type debtReportOutput struct {
	RepoPath     string                      `json:"repo_path"`
	GeneratedAt  time.Time                   `json:"generated_at"`
	DurationMs   int64                       `json:"duration_ms"`
	TotalFiles   int                         `json:"total_files"`
	Stats        *schema.RepositoryStats     `json:"repository_stats"`
	Files        []schema.EnrichedFileRecord `json:"files"`
	Warnings     []string                    `json:"warnings,omitempty"`
}

// WriteDebtReport writes the ranked per-file debt report in the configured
// output format.
func WriteDebtReport(report *schema.DebtReport, ranked []*schema.FileRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		return writeFilesCSV(ranked, cfg)
	case schema.ParquetOut:
		return writeFilesParquet(report, ranked, cfg)
	default: // JSON
		out := debtReportOutput{
			RepoPath:    report.RepoPath,
			GeneratedAt: report.GeneratedAt,
			DurationMs:  report.Duration.Milliseconds(),
			TotalFiles:  len(report.Files),
			Stats:       report.Stats,
			Files:       schema.EnrichFiles(ranked),
			Warnings:    report.Warnings,
		}
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, out)
		}, "Debt report written")
	}
}

// WriteContributorReport writes the ranked contributor report in the
// configured output format.
func WriteContributorReport(ranked []*schema.ContributorRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.CSVOut:
		return writeContributorsCSV(ranked, cfg)
	case schema.ParquetOut:
		return writeContributorsParquet(ranked, cfg)
	default: // JSON
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichContributors(ranked))
		}, "Contributor report written")
	}
}

// factorDefinition describes one weighted risk factor for display.
type factorDefinition struct {
	Key         schema.FactorKey `json:"key"`
	Label       string           `json:"label"`
	Weight      float64          `json:"weight"`
	Description string           `json:"description"`
}

// factorDefinitionsOutput is the JSON envelope for the factors command.
type factorDefinitionsOutput struct {
	Formula     string             `json:"formula"`
	StableLabel string             `json:"stable_label"`
	Factors     []factorDefinition `json:"factors"`
}

func factorDescription(key schema.FactorKey) string {
	switch key {
	case schema.FactorComplexity:
		return "Structural complexity of the file, normalized against the repository maximum"
	case schema.FactorChurn:
		return "Total lines added and removed across the analyzed history"
	case schema.FactorEntropy:
		return "Dispersion of authorship across contributors (normalized Shannon entropy)"
	case schema.FactorBugs:
		return "Bug-fix commits relative to total commits touching the file"
	case schema.FactorDependency:
		return "Dependency pressure: fan-in weighted double, plus fan-out"
	default:
		return ""
	}
}

// WriteFactorDefinitions writes the formal definitions of the weighted risk
// factors. This is static reference output and needs no repository.
func WriteFactorDefinitions(cfg *contract.Config) error {
	weights := schema.RiskWeights()
	factors := make([]factorDefinition, 0, len(schema.AllFactors))
	for _, key := range schema.AllFactors {
		factors = append(factors, factorDefinition{
			Key:         key,
			Label:       key.Label(),
			Weight:      weights[key],
			Description: factorDescription(key),
		})
	}

	out := factorDefinitionsOutput{
		Formula:     formatFactorFormula(weights),
		StableLabel: schema.StableFactorLabel,
		Factors:     factors,
	}

	switch cfg.Output {
	case schema.CSVOut:
		return writeFactorsCSV(factors, cfg)
	default: // JSON (parquet makes no sense for static definitions)
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, out)
		}, "Factor definitions written")
	}
}

// formatFactorFormula renders the weighted sum in fixed factor order.
func formatFactorFormula(weights map[schema.FactorKey]float64) string {
	formula := ""
	for i, key := range schema.AllFactors {
		if i > 0 {
			formula += " + "
		}
		formula += fmt.Sprintf("%.2f*%s", weights[key], string(key))
	}
	return "100 * (" + formula + ")"
}

// writeFilesParquet converts the ranked records into the export row shape and
// writes a single parquet file. Rows carry no analysis ID since the CLI path
// is not tied to a tracked run.
func writeFilesParquet(report *schema.DebtReport, ranked []*schema.FileRecord, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	rows := make([]parquet.FileDebtScore, len(ranked))
	for i, rec := range ranked {
		rows[i] = parquet.FileDebtScore{
			FilePath:          rec.Path,
			AnalysisTime:      report.GeneratedAt,
			LOC:               int32(rec.LOC),
			Complexity:        int32(rec.Complexity),
			CommitCount:       int32(rec.CommitCount),
			LinesAdded:        int32(rec.LinesAdded),
			LinesRemoved:      int32(rec.LinesRemoved),
			BugFixCount:       int32(rec.BugFixCount),
			UniqueAuthors:     int32(rec.UniqueAuthorCount),
			FanIn:             int32(rec.FanIn),
			FanOut:            int32(rec.FanOut),
			OwnershipEntropy:  rec.OwnershipEntropy,
			RiskScore:         rec.RiskScore,
			SystemicRiskScore: rec.SystemicRiskScore,
			CoverageFactor:    rec.MissingTestCoverageFactor,
			MainFactor:        rec.MainFactor,
		}
	}

	if err := parquet.WriteFileDebtScoresParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	logWritten("Debt report written", cfg.OutputFile)
	return nil
}

// writeContributorsParquet writes the ranked contributors as a parquet file.
func writeContributorsParquet(ranked []*schema.ContributorRecord, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	now := time.Now()
	rows := make([]parquet.ContributorDebtScore, len(ranked))
	for i, rec := range ranked {
		rows[i] = parquet.ContributorDebtScore{
			Author:          rec.Author,
			AnalysisTime:    now,
			TotalCommits:    rec.TotalCommits,
			LinesAdded:      rec.LinesAdded,
			LinesRemoved:    rec.LinesRemoved,
			BugFixCount:     rec.BugFixCount,
			EfficiencyScore: rec.EfficiencyScore,
			RiskScore:       rec.RiskScore,
		}
	}

	if err := parquet.WriteContributorDebtScoresParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	logWritten("Contributor report written", cfg.OutputFile)
	return nil
}
