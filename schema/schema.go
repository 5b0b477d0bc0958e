// Package schema has configs, models and constants for all parts of racechart.
package schema

// RaceRecord is a single entry of the cyclist race-time dataset.
// JSON keys follow the upstream dataset exactly.
type RaceRecord struct {
	Name        string `json:"Name"`        // Rider name
	Nationality string `json:"Nationality"` // 3-letter country code
	Year        int    `json:"Year"`        // Year of the climb
	Time        string `json:"Time"`        // Climb time formatted as MM:SS
	Seconds     int    `json:"Seconds"`     // Climb time in seconds
	Place       int    `json:"Place"`       // Rank among all recorded climbs
	Doping      string `json:"Doping"`      // Doping allegation, empty when there is none
	URL         string `json:"URL"`         // Reference link for the allegation
}

// Point is a position in screen or page coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width and height pair in logical pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PlacedPoint is a record mapped onto the chart surface.
type PlacedPoint struct {
	Index         int        `json:"index"`
	ID            string     `json:"id"`             // circle-<index>
	CX            float64    `json:"cx"`             // x pixel
	CY            float64    `json:"cy"`             // y pixel
	Radius        float64    `json:"r"`              // circle radius
	Fill          string     `json:"fill"`           // css color
	HasAllegation bool       `json:"has_allegation"` // palette key
	XValue        int        `json:"data_xvalue"`    // year
	YValue        string     `json:"data_yvalue"`    // parsed MM:SS duration
	Record        RaceRecord `json:"record"`
}

// AxisTick is a labeled tick on one of the chart axes.
type AxisTick struct {
	Value    float64 `json:"value"`
	Position float64 `json:"position"`
	Label    string  `json:"label"`
}

// LegendEntry is one row of the chart legend.
type LegendEntry struct {
	HasAllegation bool    `json:"has_allegation"`
	Label         string  `json:"label"`
	Color         string  `json:"color"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
}

// TooltipPlacement is the top-left corner of the tooltip box in page coordinates.
type TooltipPlacement struct {
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	FlipX    bool    `json:"flip_x"`
	FlipY    bool    `json:"flip_y"`
	DataYear int     `json:"data_year"`
}

// Overlay is the transient tooltip element created on hover.
type Overlay struct {
	ID        string           `json:"id"`
	Index     int              `json:"index"`
	Placement TooltipPlacement `json:"placement"`
	Lines     []string         `json:"lines"`
}

// ChartResult is the presentation-ready view of a built chart.
type ChartResult struct {
	Source string        `json:"source"`
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Points []PlacedPoint `json:"points"`
	XTicks []AxisTick    `json:"x_ticks"`
	YTicks []AxisTick    `json:"y_ticks"`
	Legend []LegendEntry `json:"legend"`
}
