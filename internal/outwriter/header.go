package outwriter

import (
	"fmt"
	"os"

	"github.com/huangsam/racechart/internal/contract"
)

// LogRenderHeader prints a concise, 2-line header before a chart is built.
// It goes to stderr so chart bytes on stdout stay intact.
func LogRenderHeader(cfg *contract.Config) {
	origin := "file"
	if contract.IsRemoteSource(cfg.Source) {
		origin = "remote"
	}

	// Line 1: the dataset and output format
	_, _ = fmt.Fprintf(os.Stderr, "🚴 Source: %s (%s, Output: %s)\n", cfg.Source, origin, cfg.Output)

	// Line 2: the chart geometry
	_, _ = fmt.Fprintf(os.Stderr, "📐 Chart: %.0fx%.0f (padding: %.0f, viewport: %.0fx%.0f)\n",
		cfg.Layout.Width, cfg.Layout.Height, cfg.Layout.Padding, cfg.Viewport.Width, cfg.Viewport.Height)
}
