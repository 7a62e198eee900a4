package cmd

import (
	"github.com/gitdebt/gitdebt/core"
	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/spf13/cobra"
)

// contributorsCmd performs contributor-level debt attribution.
var contributorsCmd = &cobra.Command{
	Use:   "contributors [repo-path]",
	Short: "Show contributors ranked by the risk of the code they touch.",
	Long: `Attribute file-level debt back to the people who wrote it.

Each contributor inherits a share of every file's risk score proportional to
their commits on that file, producing a ranked view of who works in the
riskiest parts of the codebase. An efficiency score (lines moved per commit)
adds context about working style.

This is a prioritization aid, not a performance review. High contributor risk
usually means someone maintains the hardest code, not that they write bad code.

Examples:
  # Rank contributors by inherited risk
  gitdebt contributors

  # Focus on one subtree
  gitdebt contributors --filter services/billing/

  # Export for further analysis
  gitdebt contributors --output csv --output-file contributors.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteContributors(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run contributor analysis", err)
		}
	},
}
