package schema

// Default chart geometry, in logical pixels.
const (
	DefaultChartWidth     = 900
	DefaultChartHeight    = 600
	DefaultPadding        = 50
	DefaultTooltipWidth   = 200
	DefaultTooltipHeight  = 200
	DefaultTooltipPadding = 5
	DefaultPointRadius    = 5
	DefaultLegendOffset   = 250 // distance of the legend from the right edge
	DefaultLegendTop      = 50
	DefaultLegendSpacing  = 20
	DefaultSwatchSize     = 10
)

// Layout holds the fixed geometry of the chart and its tooltip.
type Layout struct {
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Padding        float64 `json:"padding"`
	TooltipWidth   float64 `json:"tooltip_width"`
	TooltipHeight  float64 `json:"tooltip_height"`
	TooltipPadding float64 `json:"tooltip_padding"`
	PointRadius    float64 `json:"point_radius"`
}

// DefaultLayout returns the 900x600 layout with a 50 pixel margin reserved for axes.
func DefaultLayout() Layout {
	return Layout{
		Width:          DefaultChartWidth,
		Height:         DefaultChartHeight,
		Padding:        DefaultPadding,
		TooltipWidth:   DefaultTooltipWidth,
		TooltipHeight:  DefaultTooltipHeight,
		TooltipPadding: DefaultTooltipPadding,
		PointRadius:    DefaultPointRadius,
	}
}
