package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/racechart/core"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
	"github.com/spf13/cobra"
)

// parseHoverArgs reads the point index and the optional cursor override.
func parseHoverArgs(cmd *cobra.Command, args []string) (int, *schema.Point, error) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, nil, fmt.Errorf("invalid point index %q: %w", args[0], err)
	}

	xSet, ySet := cmd.Flags().Changed("x"), cmd.Flags().Changed("y")
	if xSet != ySet {
		return 0, nil, fmt.Errorf("--x and --y must be given together")
	}
	if !xSet {
		return index, nil, nil
	}
	x, _ := cmd.Flags().GetFloat64("x")
	y, _ := cmd.Flags().GetFloat64("y")
	return index, &schema.Point{X: x, Y: y}, nil
}

// hoverCmd simulates a pointer hovering one point.
var hoverCmd = &cobra.Command{
	Use:   "hover <index> [--x X --y Y]",
	Short: "Show the tooltip a viewer would see when hovering a point.",
	Long: `Place the tooltip overlay for one plotted record, exactly as the interactive chart does.

The tooltip is drawn below and to the right of the cursor. It flips to the left when it would
cross the right edge of the chart, and above the cursor when it would cross the bottom edge.
The chart is assumed to be centered in a viewport of --viewport-width x --viewport-height.

Points are indexed in year order, as listed by 'racechart render --output text'.

Examples:
  # Hover the center of the first point
  racechart hover 0

  # Hover at an explicit page position
  racechart hover 12 --x 1000 --y 620

  # Emit the overlay as JSON
  racechart hover 3 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is the point index, not a source
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(cmd *cobra.Command, args []string) {
		index, cursor, err := parseHoverArgs(cmd, args)
		if err != nil {
			contract.LogFatal("Invalid hover arguments", err)
		}
		if err := core.ExecuteHover(rootCtx, cfg, cacheManager, index, cursor); err != nil {
			contract.LogFatal("Cannot hover point", err)
		}
	},
}
