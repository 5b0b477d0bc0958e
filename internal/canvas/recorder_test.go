package canvas

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/huangsam/racechart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecorder tests that operations are kept in call order.
func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Line(schema.Point{X: 0, Y: 0}, schema.Point{X: 10, Y: 0}, "rgb(0,0,0)", 1)
	r.Circle(schema.Point{X: 5, Y: 5}, 5, "rgb(0,139,139)")
	r.Rect(schema.Point{X: 1, Y: 1}, schema.Size{Width: 10, Height: 10}, "rgb(199,21,133)")
	r.Text(schema.Point{X: 16, Y: 11}, "legend", 14, "rgb(0,0,0)")

	require.Len(t, r.Ops, 4)
	assert.Equal(t, []string{OpLine, OpCircle, OpRect, OpText}, []string{r.Ops[0].Kind, r.Ops[1].Kind, r.Ops[2].Kind, r.Ops[3].Kind})
	assert.Len(t, r.Filter(OpCircle), 1)
	assert.Equal(t, 5.0, r.Filter(OpCircle)[0].Radius)
	assert.Equal(t, []string{"legend"}, r.Texts())
	assert.Empty(t, NewRecorder().Filter(OpLine))
}

// TestRecorderSave tests that the recorded operations are written as JSON.
func TestRecorderSave(t *testing.T) {
	r := NewRecorder()
	r.Circle(schema.Point{X: 5, Y: 5}, 5, "rgb(0,139,139)")

	var buf bytes.Buffer
	require.NoError(t, r.Save(&buf))

	var ops []Op
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ops))
	require.Len(t, ops, 1)
	assert.Equal(t, OpCircle, ops[0].Kind)
	assert.Equal(t, "rgb(0,139,139)", ops[0].Color)
}
