package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAllegation(t *testing.T) {
	tests := []struct {
		doping string
		want   bool
	}{
		{"", false},
		{"   ", true},
		{"Alleged drug use during 1995 due to high hematocrit levels", true},
	}

	for _, tt := range tests {
		r := RaceRecord{Doping: tt.doping}
		assert.Equal(t, tt.want, r.HasAllegation(), "doping=%q", tt.doping)
	}
}

func TestDopingText(t *testing.T) {
	assert.Equal(t, NoAllegationNote, RaceRecord{}.DopingText())
	assert.Equal(t, "EPO", RaceRecord{Doping: "EPO"}.DopingText())
}

func TestLegendLabel(t *testing.T) {
	assert.Equal(t, AllegationLabel, LegendLabel(true))
	assert.Equal(t, NoAllegationLabel, LegendLabel(false))
}

func TestOutputModeIsBinary(t *testing.T) {
	assert.True(t, PNGOut.IsBinary())
	assert.True(t, ParquetOut.IsBinary())
	assert.False(t, SVGOut.IsBinary())
	assert.False(t, TextOut.IsBinary())
}
