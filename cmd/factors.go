package cmd

import (
	"github.com/gitdebt/gitdebt/core"
	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/spf13/cobra"
)

// factorsCmd prints the risk factor definitions.
var factorsCmd = &cobra.Command{
	Use:   "factors",
	Short: "Print the risk factors and weights behind the debt score.",
	Long: `Display the formal definition of every factor in the composite risk score.

Shows each factor's key, label, weight and a short description, plus the
formula that combines them. No Git analysis is performed.

Use this to:
- Understand why a file scored the way it did
- Document the scoring model in reports and dashboards
- Sanity-check weights when discussing results with a team

Examples:
  # Print factor definitions
  gitdebt factors

  # Machine-readable factor table
  gitdebt factors --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDebtFactors(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot print factor definitions", err)
		}
	},
}
