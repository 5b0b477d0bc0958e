package schema

// HasAllegation reports whether the record carries a non-empty doping note.
func (r RaceRecord) HasAllegation() bool {
	return r.Doping != ""
}

// DopingText returns the doping note, or a fixed phrase when there is none.
func (r RaceRecord) DopingText() string {
	if r.HasAllegation() {
		return r.Doping
	}
	return NoAllegationNote
}

// LegendLabel returns the legend label for a palette key.
func LegendLabel(hasAllegation bool) string {
	if hasAllegation {
		return AllegationLabel
	}
	return NoAllegationLabel
}
