package fetch

import (
	"fmt"

	"github.com/huangsam/racechart/core/timefmt"
	"github.com/huangsam/racechart/schema"
)

// Validate checks that every record carries a parseable MM:SS time label.
// The returned error wraps the *timefmt.ParseError and names the record index.
func Validate(records []schema.RaceRecord) error {
	for i, r := range records {
		if _, err := timefmt.ParseTimeLabel(r.Time); err != nil {
			return fmt.Errorf("record %d (%s): %w", i, r.Name, err)
		}
	}
	return nil
}
