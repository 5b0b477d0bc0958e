package core

import (
	"fmt"

	"github.com/huangsam/racechart/schema"
)

// PlaceTooltip computes the top-left corner of the tooltip box for a cursor in page coordinates.
// The chart is assumed to be centered in the viewport. Each axis flips at most once
// to the opposite side of the cursor; the result is never clamped.
func PlaceTooltip(layout schema.Layout, cursor schema.Point, viewport schema.Size) schema.TooltipPlacement {
	xMargin := (viewport.Width - layout.Width) / 2
	yMargin := (viewport.Height - layout.Height) / 2

	placement := schema.TooltipPlacement{
		Left: cursor.X + layout.TooltipPadding,
		Top:  cursor.Y + layout.TooltipPadding,
	}
	if cursor.X+layout.TooltipWidth+layout.TooltipPadding > layout.Width+xMargin {
		placement.Left = cursor.X - layout.TooltipWidth
		placement.FlipX = true
	}
	if cursor.Y+layout.TooltipHeight+layout.TooltipPadding+layout.Padding > layout.Height+yMargin {
		placement.Top = cursor.Y - layout.TooltipHeight
		placement.FlipY = true
	}
	return placement
}

// TooltipLines returns the tooltip body for a record, one entry per line.
func TooltipLines(r schema.RaceRecord) []string {
	return []string{
		fmt.Sprintf("%s, %s", r.Name, r.Nationality),
		fmt.Sprintf("Year: %d", r.Year),
		fmt.Sprintf("Place: %d", r.Place),
		fmt.Sprintf("Time: %s", r.Time),
		fmt.Sprintf("Doping: %s", r.DopingText()),
	}
}
