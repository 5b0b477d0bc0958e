package canvas

import (
	"encoding/json"
	"io"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

// Drawing operation kinds.
const (
	OpLine   = "line"
	OpCircle = "circle"
	OpRect   = "rect"
	OpText   = "text"
)

// Op is one recorded drawing call.
type Op struct {
	Kind     string         `json:"kind"`
	Points   []schema.Point `json:"points"`
	Size     schema.Size    `json:"size,omitzero"`
	Radius   float64        `json:"radius,omitempty"`
	Width    float64        `json:"width,omitempty"`
	FontSize float64        `json:"font_size,omitempty"`
	Color    string         `json:"color"`
	Text     string         `json:"text,omitempty"`
}

// Recorder is an in-memory canvas that keeps every drawing call in order.
type Recorder struct {
	Ops []Op
}

var _ contract.Canvas = &Recorder{} // Compile-time check

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Line implements the Canvas interface.
func (r *Recorder) Line(from, to schema.Point, stroke string, width float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []schema.Point{from, to}, Color: stroke, Width: width})
}

// Circle implements the Canvas interface.
func (r *Recorder) Circle(center schema.Point, radius float64, fill string) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []schema.Point{center}, Radius: radius, Color: fill})
}

// Rect implements the Canvas interface.
func (r *Recorder) Rect(topLeft schema.Point, size schema.Size, fill string) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, Points: []schema.Point{topLeft}, Size: size, Color: fill})
}

// Text implements the Canvas interface.
func (r *Recorder) Text(at schema.Point, body string, fontSize float64, fill string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []schema.Point{at}, Text: body, FontSize: fontSize, Color: fill})
}

// Save writes the recorded operations as JSON.
func (r *Recorder) Save(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r.Ops)
}

// Filter returns the operations of one kind.
func (r *Recorder) Filter(kind string) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

// Texts returns the bodies of all text operations.
func (r *Recorder) Texts() []string {
	var texts []string
	for _, op := range r.Filter(OpText) {
		texts = append(texts, op.Text)
	}
	return texts
}
