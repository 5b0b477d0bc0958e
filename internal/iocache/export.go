package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/internal/parquet"
)

// ExportHistory writes the render runs and points of store into two Parquet files
// named after outputFile, reporting progress to w.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history tracking is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no render history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total render runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total point records: %d\n", status.TableSizes[renderPointsTable])

	runs, err := store.GetAllRenderRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve render runs: %w", err)
	}
	points, err := store.GetAllRenderPoints()
	if err != nil {
		return fmt.Errorf("failed to retrieve render points: %w", err)
	}

	parquetRuns := parquet.ConvertRenderRunRecords(runs)
	runsFile := outputFile + ".render_runs.parquet"
	if err := parquet.WriteRenderRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write render runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d render runs to: %s\n", len(parquetRuns), runsFile)

	parquetPoints := parquet.ConvertRenderPointRecords(points)
	pointsFile := outputFile + ".render_points.parquet"
	if err := parquet.WriteRenderPointsParquet(parquetPoints, pointsFile); err != nil {
		return fmt.Errorf("failed to write render points: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d point records to: %s\n", len(parquetPoints), pointsFile)
	return nil
}
