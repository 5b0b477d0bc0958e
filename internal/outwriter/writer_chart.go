package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/internal/parquet"
	"github.com/huangsam/racechart/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// writeChartImage draws the chart onto an SVG or PNG canvas and saves it.
func writeChartImage(result schema.ChartResult, draw func(contract.Canvas), cfg *contract.Config) error {
	if cfg.Output.IsBinary() && cfg.OutputFile == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("refusing to write %s bytes to a terminal, use --output-file", cfg.Output)
	}
	c, err := newChartCanvas(cfg.Output, int(result.Width), int(result.Height))
	if err != nil {
		return err
	}
	draw(c)
	return writeWithFile(cfg.OutputFile, c.Save, fmt.Sprintf("Wrote %s chart", cfg.Output))
}

// writeChartJSON handles opening the file and calling the JSON writer.
func writeChartJSON(result schema.ChartResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, result)
	}, "Wrote JSON")
}

// writeChartCSV handles opening the file and calling the CSV writer.
func writeChartCSV(result schema.ChartResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForPoints(w, result.Points, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeChartParquet writes one row per placed point. The output file is mandatory.
func writeChartParquet(result schema.ChartResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return fmt.Errorf("an output file is required for %s output", schema.ParquetOut)
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return parquet.WriteRows(w, parquet.ConvertPlacedPoints(result.Points))
	}, "Wrote Parquet")
}

// writeChartTableFile handles opening the file and calling the table writer.
func writeChartTableFile(result schema.ChartResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeChartTable(result, cfg, fmtFloat, intFmt, duration, w)
	}, "Wrote table")
}

// writeChartTable generates and writes the human-readable table.
func writeChartTable(result schema.ChartResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Index", "Year", "Name", "Nat", "Time", "Place", "Label", "CX", "CY"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	alleged := 0
	var data [][]string
	for _, p := range result.Points {
		if p.HasAllegation {
			alleged++
		}
		label := contract.GetPlainLabel(p.HasAllegation)
		if cfg.UseColors {
			label = contract.GetColorLabel(p.HasAllegation)
		}
		data = append(data, []string{
			strconv.Itoa(p.Index),
			fmt.Sprintf(intFmt, p.XValue),
			contract.TruncateText(p.Record.Name, nameWidth),
			p.Record.Nationality,
			p.Record.Time,
			fmt.Sprintf(intFmt, p.Record.Place),
			label,
			fmtFloat(p.CX),
			fmtFloat(p.CY),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Plotted %d records (%d with doping allegations) on a %.0fx%.0f chart\n",
		len(result.Points), alleged, result.Width, result.Height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Render completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForPoints writes one CSV row per placed point.
func writeCSVResultsForPoints(w io.Writer, points []schema.PlacedPoint, fmtFloat func(float64) string, intFmt string) error {
	header := []string{
		"index",
		"id",
		"year",
		"name",
		"nationality",
		"time",
		"seconds",
		"place",
		"label",
		"cx",
		"cy",
		"fill",
		"doping",
		"url",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range points {
			row := []string{
				strconv.Itoa(p.Index),
				p.ID,
				fmt.Sprintf(intFmt, p.XValue),
				p.Record.Name,
				p.Record.Nationality,
				p.Record.Time,
				fmt.Sprintf(intFmt, p.Record.Seconds),
				fmt.Sprintf(intFmt, p.Record.Place),
				contract.GetPlainLabel(p.HasAllegation),
				fmtFloat(p.CX),
				fmtFloat(p.CY),
				p.Fill,
				p.Record.Doping,
				p.Record.URL,
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	})
}
