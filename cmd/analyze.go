package cmd

import (
	"github.com/gitdebt/gitdebt/core"
	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd performs file-level debt analysis.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Show the top files ranked by debt risk score.",
	Long: `Run the full debt analysis pipeline and rank individual files by risk score.

Combines static code analysis with Git history mining to compute a composite
risk score per file, helping you:
- Identify which files concentrate the most maintenance risk
- Find files that are changing too frequently (churn hotspots)
- Spot files with uneven ownership and knowledge silos
- Locate large, complex files that are difficult to maintain
- Surface systemic risk where heavily depended-on files are also risky

Each file is scored from complexity, churn, ownership entropy, bug-fix density
and size, then ranked from highest to lowest risk.

Examples:
  # Rank the riskiest files in the current repository
  gitdebt analyze

  # Analyze a different repository
  gitdebt analyze ~/src/backend --limit 20

  # Narrow the analysis to one subtree
  gitdebt analyze --filter internal/

  # Export findings to CSV for tracking
  gitdebt analyze --output csv --output-file debt.csv

  # Export to Parquet for analytics tools
  gitdebt analyze --output parquet --output-file debt`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDebtAnalysis(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run debt analysis", err)
		}
	},
}
