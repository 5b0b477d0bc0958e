package core

import "math"

// defaultTickCount is the approximate number of ticks per axis.
const defaultTickCount = 10

// LinearScale maps a numeric domain onto a pixel range.
// The domain is always kept ascending; orientation lives in the range order.
type LinearScale struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinearScale builds a scale from [d0, d1] onto [r0, r1].
// A reversed domain is swapped together with its range so the mapping is unchanged.
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	if d0 > d1 {
		d0, d1 = d1, d0
		r0, r1 = r1, r0
	}
	return LinearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Map converts a domain value into a pixel position.
// A degenerate domain maps every value to the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	if s.d0 == s.d1 {
		return (s.r0 + s.r1) / 2
	}
	t := (v - s.d0) / (s.d1 - s.d0)
	return s.r0 + t*(s.r1-s.r0)
}

// Domain returns the ascending input interval.
func (s LinearScale) Domain() (float64, float64) {
	return s.d0, s.d1
}

// Range returns the output interval in the order it was given.
func (s LinearScale) Range() (float64, float64) {
	return s.r0, s.r1
}

// Ticks returns round values inside the domain, using steps of 1, 2 or 5 times a power of ten.
func (s LinearScale) Ticks(count int) []float64 {
	if count <= 0 {
		return nil
	}
	if s.d0 == s.d1 {
		return []float64{s.d0}
	}

	step := (s.d1 - s.d0) / float64(count)
	power := math.Floor(math.Log10(step))
	errRatio := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case errRatio >= math.Sqrt(50):
		factor = 10
	case errRatio >= math.Sqrt(10):
		factor = 5
	case errRatio >= math.Sqrt(2):
		factor = 2
	}

	var ticks []float64
	if power >= 0 {
		inc := factor * math.Pow(10, power)
		first, last := math.Ceil(s.d0/inc), math.Floor(s.d1/inc)
		for i := first; i <= last; i++ {
			ticks = append(ticks, i*inc)
		}
		return ticks
	}

	// Sub-unit steps divide by the inverse to keep values exact
	inv := math.Pow(10, -power) / factor
	first, last := math.Ceil(s.d0*inv), math.Floor(s.d1*inv)
	for i := first; i <= last; i++ {
		ticks = append(ticks, i/inv)
	}
	return ticks
}
