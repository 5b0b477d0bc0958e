// Package parquet provides data structures and functions for exporting racechart
// points and render history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/racechart/schema"
	"github.com/parquet-go/parquet-go"
)

// RenderRun represents a single chart render with metadata.
// This struct maps to the racechart_render_runs database table.
type RenderRun struct {
	// RunID is the unique identifier for this render
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the render began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the render completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the render in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalPoints is the number of points placed on the chart
	TotalPoints int32 `parquet:"total_points,snappy"`

	// Source is the dataset location the chart was built from
	Source string `parquet:"source,snappy"`

	// ConfigParams contains the JSON-encoded render parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// RenderPoint is one placed point recorded for a render.
// This struct maps to the racechart_render_points database table.
type RenderPoint struct {
	RunID         int64   `parquet:"run_id,snappy"`
	PointIndex    int32   `parquet:"point_index,snappy"`
	Name          string  `parquet:"name,snappy"`
	Nationality   string  `parquet:"nationality,snappy"`
	Year          int32   `parquet:"year,snappy"`
	Seconds       int32   `parquet:"seconds,snappy"`
	CX            float64 `parquet:"cx,snappy"`
	CY            float64 `parquet:"cy,snappy"`
	Fill          string  `parquet:"fill,snappy"`
	HasAllegation bool    `parquet:"has_allegation,snappy"`
}

// PlacedPointRow is the flat form of a placed point written by the parquet output mode.
type PlacedPointRow struct {
	Index         int32   `parquet:"index,snappy"`
	ID            string  `parquet:"id,snappy"`
	Name          string  `parquet:"name,snappy"`
	Nationality   string  `parquet:"nationality,snappy"`
	Year          int32   `parquet:"year,snappy"`
	Time          string  `parquet:"time,snappy"`
	Seconds       int32   `parquet:"seconds,snappy"`
	Place         int32   `parquet:"place,snappy"`
	CX            float64 `parquet:"cx,snappy"`
	CY            float64 `parquet:"cy,snappy"`
	Radius        float64 `parquet:"r,snappy"`
	Fill          string  `parquet:"fill,snappy"`
	HasAllegation bool    `parquet:"has_allegation,snappy"`
	Doping        *string `parquet:"doping,optional,snappy"`
	URL           *string `parquet:"url,optional,snappy"`
}

// WriteRows writes rows to w using a schema inferred from the struct tags of T.
func WriteRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes rows into it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteRows(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteRenderRunsParquet writes a slice of RenderRun structs to a Parquet file.
func WriteRenderRunsParquet(data []RenderRun, outputPath string) error {
	return writeFile(data, outputPath)
}

// WriteRenderPointsParquet writes a slice of RenderPoint structs to a Parquet file.
func WriteRenderPointsParquet(data []RenderPoint, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertRenderRunRecords converts schema.RenderRunRecord to RenderRun for Parquet export.
func ConvertRenderRunRecords(records []schema.RenderRunRecord) []RenderRun {
	result := make([]RenderRun, len(records))
	for i, record := range records {
		result[i] = RenderRun{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalPoints:   record.TotalPoints,
			Source:        record.Source,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertRenderPointRecords converts schema.RenderPointRecord to RenderPoint for Parquet export.
func ConvertRenderPointRecords(records []schema.RenderPointRecord) []RenderPoint {
	result := make([]RenderPoint, len(records))
	for i, record := range records {
		result[i] = RenderPoint{
			RunID:         record.RunID,
			PointIndex:    record.PointIndex,
			Name:          record.Name,
			Nationality:   record.Nationality,
			Year:          record.Year,
			Seconds:       record.Seconds,
			CX:            record.CX,
			CY:            record.CY,
			Fill:          record.Fill,
			HasAllegation: record.HasAllegation,
		}
	}
	return result
}

// ConvertPlacedPoints flattens placed points into rows. Empty doping notes and URLs become nulls.
func ConvertPlacedPoints(points []schema.PlacedPoint) []PlacedPointRow {
	result := make([]PlacedPointRow, len(points))
	for i, p := range points {
		result[i] = PlacedPointRow{
			Index:         int32(p.Index),
			ID:            p.ID,
			Name:          p.Record.Name,
			Nationality:   p.Record.Nationality,
			Year:          int32(p.Record.Year),
			Time:          p.Record.Time,
			Seconds:       int32(p.Record.Seconds),
			Place:         int32(p.Record.Place),
			CX:            p.CX,
			CY:            p.CY,
			Radius:        p.Radius,
			Fill:          p.Fill,
			HasAllegation: p.HasAllegation,
			Doping:        nullable(p.Record.Doping),
			URL:           nullable(p.Record.URL),
		}
	}
	return result
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
