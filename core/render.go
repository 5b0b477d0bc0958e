package core

import (
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

// Drawing constants for axes and labels.
const (
	axisColor      = "rgb(0,0,0)"
	axisWidth      = 1.0
	tickSize       = 6.0
	tickFontSize   = 10.0
	legendFontSize = 14.0
	charWidthRatio = 0.6 // average glyph width relative to font size
)

// Render draws the chart onto a canvas: both axes with ticks, one circle per point and the legend.
func Render(chart *ChartContext, canvas contract.Canvas) {
	layout := chart.Layout()
	drawXAxis(canvas, layout, chart.XTicks())
	drawYAxis(canvas, layout, chart.YTicks())
	for _, p := range chart.Points() {
		canvas.Circle(schema.Point{X: p.CX, Y: p.CY}, p.Radius, p.Fill)
	}
	drawLegend(canvas, chart.Legend())
}

func drawXAxis(canvas contract.Canvas, layout schema.Layout, ticks []schema.AxisTick) {
	y := layout.Height - layout.Padding
	canvas.Line(schema.Point{X: layout.Padding, Y: y}, schema.Point{X: layout.Width - layout.Padding, Y: y}, axisColor, axisWidth)
	for _, tick := range ticks {
		canvas.Line(schema.Point{X: tick.Position, Y: y}, schema.Point{X: tick.Position, Y: y + tickSize}, axisColor, axisWidth)
		at := schema.Point{
			X: tick.Position - textWidth(tick.Label, tickFontSize)/2,
			Y: y + tickSize + 3 + tickFontSize,
		}
		canvas.Text(at, tick.Label, tickFontSize, axisColor)
	}
}

func drawYAxis(canvas contract.Canvas, layout schema.Layout, ticks []schema.AxisTick) {
	x := layout.Padding
	canvas.Line(schema.Point{X: x, Y: layout.Padding}, schema.Point{X: x, Y: layout.Height - layout.Padding}, axisColor, axisWidth)
	for _, tick := range ticks {
		canvas.Line(schema.Point{X: x - tickSize, Y: tick.Position}, schema.Point{X: x, Y: tick.Position}, axisColor, axisWidth)
		at := schema.Point{
			X: x - tickSize - 3 - textWidth(tick.Label, tickFontSize),
			Y: tick.Position + tickFontSize/3,
		}
		canvas.Text(at, tick.Label, tickFontSize, axisColor)
	}
}

func drawLegend(canvas contract.Canvas, legend []schema.LegendEntry) {
	for _, entry := range legend {
		canvas.Rect(
			schema.Point{X: entry.X, Y: entry.Y},
			schema.Size{Width: schema.DefaultSwatchSize, Height: schema.DefaultSwatchSize},
			entry.Color,
		)
		at := schema.Point{X: entry.X + schema.DefaultSwatchSize + 5, Y: entry.Y + schema.DefaultSwatchSize}
		canvas.Text(at, entry.Label, legendFontSize, axisColor)
	}
}

func textWidth(s string, fontSize float64) float64 {
	return float64(len(s)) * fontSize * charWidthRatio
}
