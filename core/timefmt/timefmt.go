// Package timefmt formats and parses MM:SS race time labels.
package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseError reports a malformed MM:SS time label.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid time label %q: %s", e.Input, e.Reason)
}

// FormatYAxisTime renders a seconds count as MM:SS with both parts zero-padded.
// Minutes are not wrapped into hours, so 3600 becomes "60:00".
func FormatYAxisTime(seconds int) string {
	minutes := seconds / 60
	rem := seconds % 60
	if rem < 0 {
		minutes--
		rem += 60
	}
	return fmt.Sprintf("%02d:%02d", minutes, rem)
}

// FormatYear renders an x tick as a plain integer.
func FormatYear(v float64) string {
	return strconv.Itoa(int(math.Round(v)))
}

// FormatTick renders a fractional seconds value as MM:SS.
func FormatTick(v float64) string {
	return FormatYAxisTime(int(math.Round(v)))
}

// ParseTimeLabel converts an MM:SS label into seconds.
// Minutes may have any number of digits; seconds must be exactly two digits below 60.
func ParseTimeLabel(label string) (int, error) {
	minPart, secPart, ok := strings.Cut(label, ":")
	if !ok {
		return 0, &ParseError{Input: label, Reason: "missing ':' separator"}
	}
	if !isDigits(minPart) {
		return 0, &ParseError{Input: label, Reason: "minutes must be digits"}
	}
	if len(secPart) != 2 || !isDigits(secPart) {
		return 0, &ParseError{Input: label, Reason: "seconds must be two digits"}
	}
	minutes, err := strconv.Atoi(minPart)
	if err != nil || minutes > math.MaxInt32 {
		return 0, &ParseError{Input: label, Reason: "minutes out of range"}
	}
	seconds, _ := strconv.Atoi(secPart)
	if seconds >= 60 {
		return 0, &ParseError{Input: label, Reason: "seconds must be below 60"}
	}
	return minutes*60 + seconds, nil
}

// DurationLabel renders seconds as a Go duration, used for the data-yvalue attribute.
func DurationLabel(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
