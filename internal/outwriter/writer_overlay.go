package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

func writeOverlayJSON(overlay schema.Overlay, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, overlay)
	}, "Wrote JSON")
}

func writeOverlayCSV(overlay schema.Overlay, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"id", "index", "data_year", "left", "top", "flip_x", "flip_y", "text"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			p := overlay.Placement
			return csvWriter.Write([]string{
				overlay.ID,
				strconv.Itoa(overlay.Index),
				fmt.Sprintf(intFmt, p.DataYear),
				fmtFloat(p.Left),
				fmtFloat(p.Top),
				strconv.FormatBool(p.FlipX),
				strconv.FormatBool(p.FlipY),
				strings.Join(overlay.Lines, " | "),
			})
		})
	}, "Wrote CSV")
}

func writeOverlayTextFile(overlay schema.Overlay, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeOverlayText(w, overlay, fmtFloat)
	}, "Wrote tooltip")
}

// writeOverlayText prints the tooltip lines followed by where the box lands on the page.
func writeOverlayText(w io.Writer, overlay schema.Overlay, fmtFloat func(float64) string) error {
	for _, line := range overlay.Lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	p := overlay.Placement
	flips := []string{}
	if p.FlipX {
		flips = append(flips, "left")
	}
	if p.FlipY {
		flips = append(flips, "up")
	}
	placement := fmt.Sprintf("📍 Tooltip at (%s, %s)", fmtFloat(p.Left), fmtFloat(p.Top))
	if len(flips) > 0 {
		placement += " flipped " + strings.Join(flips, " and ")
	}
	_, err := fmt.Fprintln(w, placement)
	return err
}
