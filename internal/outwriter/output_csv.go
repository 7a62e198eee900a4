package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
)

// writeFilesCSV writes ranked file records as CSV rows.
func writeFilesCSV(ranked []*schema.FileRecord, cfg *contract.Config) error {
	header := []string{
		"rank", "path", "risk_score", "label", "main_factor", "systemic_risk_score",
		"loc", "complexity", "commit_count", "lines_added", "lines_removed",
		"bug_fix_count", "unique_authors", "fan_in", "fan_out",
		"ownership_entropy", "coverage_factor",
	}
	fmtFloat := floatFormatter(cfg.Precision)

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for i, rec := range ranked {
				row := []string{
					strconv.Itoa(i + 1),
					rec.Path,
					fmtFloat(rec.RiskScore),
					schema.GetPlainLabel(rec.RiskScore),
					rec.MainFactor,
					fmtFloat(rec.SystemicRiskScore),
					strconv.Itoa(rec.LOC),
					strconv.Itoa(rec.Complexity),
					strconv.Itoa(rec.CommitCount),
					strconv.Itoa(rec.LinesAdded),
					strconv.Itoa(rec.LinesRemoved),
					strconv.Itoa(rec.BugFixCount),
					strconv.Itoa(rec.UniqueAuthorCount),
					strconv.Itoa(rec.FanIn),
					strconv.Itoa(rec.FanOut),
					fmtFloat(rec.OwnershipEntropy),
					fmtFloat(rec.MissingTestCoverageFactor),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Debt report written")
}

// writeContributorsCSV writes ranked contributor records as CSV rows.
func writeContributorsCSV(ranked []*schema.ContributorRecord, cfg *contract.Config) error {
	header := []string{
		"rank", "author", "risk_score", "label", "efficiency_score",
		"total_commits", "lines_added", "lines_removed", "bug_fix_count",
	}
	fmtFloat := floatFormatter(cfg.Precision)

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for i, rec := range ranked {
				row := []string{
					strconv.Itoa(i + 1),
					rec.Author,
					fmtFloat(rec.RiskScore),
					schema.GetPlainLabel(rec.RiskScore),
					fmtFloat(rec.EfficiencyScore),
					fmtFloat(rec.TotalCommits),
					fmtFloat(rec.LinesAdded),
					fmtFloat(rec.LinesRemoved),
					fmtFloat(rec.BugFixCount),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Contributor report written")
}

// writeFactorsCSV writes the factor definitions as CSV rows.
func writeFactorsCSV(factors []factorDefinition, cfg *contract.Config) error {
	header := []string{"key", "label", "weight", "description"}
	fmtFloat := floatFormatter(2)

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
			for _, f := range factors {
				row := []string{
					string(f.Key),
					f.Label,
					fmtFloat(f.Weight),
					f.Description,
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
			return nil
		})
	}, "Factor definitions written")
}
