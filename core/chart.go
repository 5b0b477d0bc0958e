package core

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/huangsam/racechart/core/timefmt"
	"github.com/huangsam/racechart/schema"
)

// ErrEmptyDataset is returned when a chart is built from zero records.
var ErrEmptyDataset = errors.New("dataset has no records")

// ChartContext is the immutable result of laying out one dataset.
// It is built once per load and shared by rendering and interaction code.
type ChartContext struct {
	source  string
	layout  schema.Layout
	palette Palette
	records []schema.RaceRecord
	xScale  LinearScale
	yScale  LinearScale
	points  []schema.PlacedPoint
	xTicks  []schema.AxisTick
	yTicks  []schema.AxisTick
	legend  []schema.LegendEntry
}

// NewChartContext sorts the records by year and computes scales, points, ticks and legend.
// The input slice is not modified.
func NewChartContext(source string, records []schema.RaceRecord, layout schema.Layout) (*ChartContext, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b schema.RaceRecord) int {
		return cmp.Compare(a.Year, b.Year)
	})

	minYear, maxYear := sorted[0].Year, sorted[len(sorted)-1].Year
	minSec, maxSec := sorted[0].Seconds, sorted[0].Seconds
	for _, r := range sorted[1:] {
		minSec = min(minSec, r.Seconds)
		maxSec = max(maxSec, r.Seconds)
	}

	c := &ChartContext{
		source:  source,
		layout:  layout,
		palette: DefaultPalette(),
		records: sorted,
		xScale: NewLinearScale(
			float64(minYear-1), float64(maxYear+1),
			layout.Padding, layout.Width-layout.Padding,
		),
		// Fastest time at the top: screen y grows downward
		yScale: NewLinearScale(
			float64(minSec), float64(maxSec),
			layout.Padding, layout.Height-layout.Padding,
		),
	}

	points, err := c.placePoints()
	if err != nil {
		return nil, err
	}
	c.points = points
	c.xTicks = buildTicks(c.xScale, timefmt.FormatYear)
	c.yTicks = buildTicks(c.yScale, timefmt.FormatTick)
	c.legend = c.buildLegend()
	return c, nil
}

func (c *ChartContext) placePoints() ([]schema.PlacedPoint, error) {
	points := make([]schema.PlacedPoint, 0, len(c.records))
	for i, r := range c.records {
		parsed, err := timefmt.ParseTimeLabel(r.Time)
		if err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, r.Name, err)
		}
		hasAllegation := Classify(r)
		points = append(points, schema.PlacedPoint{
			Index:         i,
			ID:            fmt.Sprintf("circle-%d", i),
			CX:            c.xScale.Map(float64(r.Year)),
			CY:            c.yScale.Map(float64(r.Seconds)),
			Radius:        c.layout.PointRadius,
			Fill:          c.palette.ColorFor(hasAllegation),
			HasAllegation: hasAllegation,
			XValue:        r.Year,
			YValue:        timefmt.DurationLabel(parsed),
			Record:        r,
		})
	}
	return points, nil
}

// buildTicks keeps whole values only since both axes hold integer data.
func buildTicks(scale LinearScale, format func(float64) string) []schema.AxisTick {
	values := scale.Ticks(defaultTickCount)
	ticks := make([]schema.AxisTick, 0, len(values))
	for _, v := range values {
		if v != math.Trunc(v) {
			continue
		}
		ticks = append(ticks, schema.AxisTick{Value: v, Position: scale.Map(v), Label: format(v)})
	}
	return ticks
}

func (c *ChartContext) buildLegend() []schema.LegendEntry {
	keys := c.palette.Domain()
	legend := make([]schema.LegendEntry, 0, len(keys))
	for i, key := range keys {
		legend = append(legend, schema.LegendEntry{
			HasAllegation: key,
			Label:         schema.LegendLabel(key),
			Color:         c.palette.ColorFor(key),
			X:             c.layout.Width - schema.DefaultLegendOffset,
			Y:             schema.DefaultLegendTop + float64(i*schema.DefaultLegendSpacing),
		})
	}
	return legend
}

// Source returns the dataset location the chart was built from.
func (c *ChartContext) Source() string { return c.source }

// Layout returns the chart geometry.
func (c *ChartContext) Layout() schema.Layout { return c.layout }

// Palette returns the color mapping.
func (c *ChartContext) Palette() Palette { return c.palette }

// XScale returns the year scale.
func (c *ChartContext) XScale() LinearScale { return c.xScale }

// YScale returns the seconds scale.
func (c *ChartContext) YScale() LinearScale { return c.yScale }

// Len returns the number of plotted records.
func (c *ChartContext) Len() int { return len(c.records) }

// Records returns a copy of the records in plotting order.
func (c *ChartContext) Records() []schema.RaceRecord { return slices.Clone(c.records) }

// Points returns a copy of the placed points.
func (c *ChartContext) Points() []schema.PlacedPoint { return slices.Clone(c.points) }

// Point returns the placed point at index i.
func (c *ChartContext) Point(i int) (schema.PlacedPoint, bool) {
	if i < 0 || i >= len(c.points) {
		return schema.PlacedPoint{}, false
	}
	return c.points[i], true
}

// IndexOf returns the plotting index of a record, or -1 when it is not on the chart.
func (c *ChartContext) IndexOf(r schema.RaceRecord) int {
	return slices.Index(c.records, r)
}

// XTicks returns a copy of the x axis ticks.
func (c *ChartContext) XTicks() []schema.AxisTick { return slices.Clone(c.xTicks) }

// YTicks returns a copy of the y axis ticks.
func (c *ChartContext) YTicks() []schema.AxisTick { return slices.Clone(c.yTicks) }

// Legend returns a copy of the legend entries.
func (c *ChartContext) Legend() []schema.LegendEntry { return slices.Clone(c.legend) }

// Result returns the presentation-ready view used by the data writers.
func (c *ChartContext) Result() schema.ChartResult {
	return schema.ChartResult{
		Source: c.source,
		Width:  c.layout.Width,
		Height: c.layout.Height,
		Points: c.Points(),
		XTicks: c.XTicks(),
		YTicks: c.YTicks(),
		Legend: c.Legend(),
	}
}
