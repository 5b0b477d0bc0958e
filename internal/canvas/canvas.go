// Package canvas has drawing surfaces for rendered charts.
package canvas

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartCanvas draws onto a go-chart renderer, producing SVG or PNG.
type ChartCanvas struct {
	r chart.Renderer
}

var _ contract.Canvas = &ChartCanvas{} // Compile-time check

// New creates a canvas for the given image format and size.
func New(format schema.OutputMode, width, height int) (*ChartCanvas, error) {
	var provider chart.RendererProvider
	switch format {
	case schema.SVGOut:
		provider = chart.SVG
	case schema.PNGOut:
		provider = chart.PNG
	default:
		return nil, fmt.Errorf("unsupported canvas format '%s'", format)
	}

	r, err := provider(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s renderer: %w", format, err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load default font: %w", err)
	}
	r.SetFont(font)

	c := &ChartCanvas{r: r}
	c.Rect(schema.Point{}, schema.Size{Width: float64(width), Height: float64(height)}, "rgb(255,255,255)")
	return c, nil
}

// Line strokes a straight segment.
func (c *ChartCanvas) Line(from, to schema.Point, stroke string, width float64) {
	c.r.ResetStyle()
	c.r.SetStrokeColor(ParseColor(stroke))
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(px(from.X), px(from.Y))
	c.r.LineTo(px(to.X), px(to.Y))
	c.r.Stroke()
}

// Circle fills a circle centered on a point.
func (c *ChartCanvas) Circle(center schema.Point, radius float64, fill string) {
	col := ParseColor(fill)
	c.r.ResetStyle()
	c.r.SetFillColor(col)
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(1)
	c.r.Circle(radius, px(center.X), px(center.Y))
}

// Rect fills an axis-aligned rectangle.
func (c *ChartCanvas) Rect(topLeft schema.Point, size schema.Size, fill string) {
	c.r.ResetStyle()
	c.r.SetFillColor(ParseColor(fill))
	c.r.MoveTo(px(topLeft.X), px(topLeft.Y))
	c.r.LineTo(px(topLeft.X+size.Width), px(topLeft.Y))
	c.r.LineTo(px(topLeft.X+size.Width), px(topLeft.Y+size.Height))
	c.r.LineTo(px(topLeft.X), px(topLeft.Y+size.Height))
	c.r.Close()
	c.r.Fill()
}

// Text draws a label with its baseline starting at a point.
func (c *ChartCanvas) Text(at schema.Point, body string, fontSize float64, fill string) {
	c.r.ResetStyle()
	c.r.SetFontSize(fontSize)
	c.r.SetFontColor(ParseColor(fill))
	c.r.Text(body, px(at.X), px(at.Y))
}

// Save writes the encoded image.
func (c *ChartCanvas) Save(w io.Writer) error {
	return c.r.Save(w)
}

// ParseColor converts a CSS rgb() string or #rrggbb hex into a drawing color.
// Unknown input falls back to black.
func ParseColor(css string) drawing.Color {
	s := strings.TrimSpace(css)
	if strings.HasPrefix(s, "#") {
		return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
	}
	inner, ok := strings.CutPrefix(s, "rgb(")
	if !ok {
		return drawing.ColorBlack
	}
	inner, ok = strings.CutSuffix(inner, ")")
	if !ok {
		return drawing.ColorBlack
	}
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return drawing.ColorBlack
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return drawing.ColorBlack
		}
		rgb[i] = uint8(v)
	}
	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

func px(v float64) int {
	return int(math.Round(v))
}
