package core

import "github.com/huangsam/racechart/schema"

// Fixed palette colors.
const (
	AllegationColor   = "rgb(199,21,133)"
	NoAllegationColor = "rgb(0,139,139)"
)

// Palette is the two-value ordinal color mapping keyed by the allegation flag.
type Palette struct {
	allegation string
	none       string
}

// DefaultPalette returns the medium violet red / dark cyan palette.
func DefaultPalette() Palette {
	return Palette{allegation: AllegationColor, none: NoAllegationColor}
}

// ColorFor returns the fill color for a palette key.
func (p Palette) ColorFor(hasAllegation bool) string {
	if hasAllegation {
		return p.allegation
	}
	return p.none
}

// Domain returns the palette keys in legend order.
func (p Palette) Domain() []bool {
	return []bool{true, false}
}

// Classify returns the palette key of a record.
func Classify(r schema.RaceRecord) bool {
	return r.HasAllegation()
}
