package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/racechart/core/timefmt"
	"github.com/huangsam/racechart/internal/contract"
)

// DatasetSummary describes a loaded dataset at a glance.
type DatasetSummary struct {
	Source         string `json:"source"`
	Records        int    `json:"records"`
	Allegations    int    `json:"allegations"`
	FirstYear      int    `json:"first_year"`
	LastYear       int    `json:"last_year"`
	FastestSeconds int    `json:"fastest_seconds"`
	SlowestSeconds int    `json:"slowest_seconds"`
}

// Summarize counts records and reads the data extents off the chart scales.
func Summarize(chart *ChartContext) DatasetSummary {
	records := chart.Records()
	s := DatasetSummary{
		Source:    chart.Source(),
		Records:   len(records),
		FirstYear: records[0].Year,
		LastYear:  records[len(records)-1].Year,
	}
	for _, p := range chart.Points() {
		if p.HasAllegation {
			s.Allegations++
		}
	}
	fastest, slowest := chart.YScale().Domain()
	s.FastestSeconds, s.SlowestSeconds = int(fastest), int(slowest)
	return s
}

// PrintSummary writes a human readable summary.
func PrintSummary(w io.Writer, s DatasetSummary) {
	_, _ = fmt.Fprintf(w, "✅ %s: %d records (%d with doping allegations)\n", s.Source, s.Records, s.Allegations)
	_, _ = fmt.Fprintf(w, "   Years %d-%d, times %s-%s\n", s.FirstYear, s.LastYear,
		timefmt.FormatYAxisTime(s.FastestSeconds), timefmt.FormatYAxisTime(s.SlowestSeconds))
}

// ExecuteCheck loads and validates the dataset without drawing anything.
// It serves as the main entry point for the 'check' command.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	chart, err := LoadChart(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	PrintSummary(os.Stdout, Summarize(chart))
	return nil
}
