package timefmt

import (
	"errors"
	"testing"
)

// FuzzParseTimeLabel fuzzes ParseTimeLabel with arbitrary labels.
func FuzzParseTimeLabel(f *testing.F) {
	for _, seed := range []string{"36:50", "00:59", "60:00", "", ":", "3650", "36:5", "ab:cd", "-1:00", "999999999999999999999:00"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, label string) {
		seconds, err := ParseTimeLabel(label)
		if err != nil {
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError for %q, got %T", label, err)
			}
			return
		}
		if seconds < 0 {
			t.Fatalf("negative seconds %d for %q", seconds, label)
		}
		again, err := ParseTimeLabel(FormatYAxisTime(seconds))
		if err != nil || again != seconds {
			t.Fatalf("round trip failed for %q: %d vs %d (%v)", label, seconds, again, err)
		}
	})
}
