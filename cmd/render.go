package cmd

import (
	"github.com/huangsam/racechart/core"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor runs a chart executor with the shared config and cache manager.
func runExecutor(executeFunc core.ExecutorFunc, failure string) {
	if err := executeFunc(rootCtx, cfg, cacheManager); err != nil {
		contract.LogFatal(failure, err)
	}
}

// renderCmd draws the scatter chart.
var renderCmd = &cobra.Command{
	Use:   "render [source]",
	Short: "Draw the race-time scatter chart.",
	Long: `Load the cyclist dataset and draw every climb as a point: year on the x axis,
climb time on the y axis with the fastest times at the top.

Riders with doping allegations are drawn in a different color than riders without,
and a legend explains the two colors.

Output formats:
- svg (default) and png - the chart image
- text - a table of placed points
- csv, json, parquet - placed points for further processing

Examples:
  # Write the chart as SVG
  racechart render --output-file chart.svg

  # Render a local copy of the dataset as PNG
  racechart render ./cyclist-data.json --output png --output-file chart.png

  # Inspect the placed points in the terminal
  racechart render --output text

  # Record this render in the history store
  racechart render --history-backend sqlite --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runExecutor(core.ExecuteRender, "Cannot render chart")
	},
}
