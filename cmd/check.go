package cmd

import (
	"github.com/huangsam/racechart/core"
	"github.com/spf13/cobra"
)

// checkCmd validates a dataset without drawing it.
var checkCmd = &cobra.Command{
	Use:   "check [source]",
	Short: "Validate a dataset and summarize it (fails on malformed records)",
	Long: `Load the dataset, validate every record and lay out the chart without writing any output.

Exits non-zero when the source cannot be fetched, is empty, or contains a malformed
MM:SS time label. Prints the record count, allegation count and the year and time ranges.

Use cases:
- CI checks for a mirrored copy of the dataset
- Warming the dataset cache before serving

Examples:
  # Check the default remote dataset
  racechart check

  # Check a local copy
  racechart check ./cyclist-data.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteCheck, "Dataset check failed")
	},
}
