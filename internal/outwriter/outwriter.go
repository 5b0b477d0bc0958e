// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/racechart/internal/canvas"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
	"golang.org/x/term"
)

// WriteChart outputs the chart, dispatching based on the output format configured.
// Image formats are drawn by calling draw on a fresh canvas sized to the chart.
func WriteChart(result schema.ChartResult, draw func(contract.Canvas), cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.SVGOut, schema.PNGOut:
		if err := writeChartImage(result, draw, cfg); err != nil {
			return fmt.Errorf("error writing %s output: %w", cfg.Output, err)
		}
	case schema.JSONOut:
		if err := writeChartJSON(result, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeChartCSV(result, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeChartParquet(result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeChartTableFile(result, cfg, fmtFloat, intFmt, duration)
	}
	return nil
}

// WriteOverlay outputs a tooltip overlay in the configured output format.
// Image and Parquet formats fall back to JSON since an overlay is a single small record.
func WriteOverlay(overlay schema.Overlay, cfg *contract.Config) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.TextOut:
		return writeOverlayTextFile(overlay, cfg, fmtFloat)
	case schema.CSVOut:
		if err := writeOverlayCSV(overlay, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeOverlayJSON(overlay, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	}
	return nil
}

// GetMaxTableNameWidth calculates the maximum width for rider names in table output
// based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Index + Year + Nat + Time + Place + Label + CX + CY with borders/padding
	baseWidth := 60

	// Reserve space for table borders, separators, and padding
	baseWidth += 20

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}

// newChartCanvas is swapped in tests.
var newChartCanvas = func(format schema.OutputMode, width, height int) (contract.Canvas, error) {
	return canvas.New(format, width, height)
}
