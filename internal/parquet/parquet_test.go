package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/racechart/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll[T any](t *testing.T, r io.ReaderAt) []T {
	t.Helper()
	reader := parquet.NewGenericReader[T](r)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	return rows[:n]
}

func sampleRuns() []RenderRun {
	now := time.Now()
	end := now.Add(250 * time.Millisecond)
	duration := int32(250)
	params := `{"output":"svg","chart_width":900}`
	return []RenderRun{
		{RunID: 1, StartTime: now, EndTime: &end, RunDurationMs: &duration, TotalPoints: 35, Source: "cyclists.json", ConfigParams: &params},
		{RunID: 2, StartTime: now, Source: "https://example.com/data.json"}, // still running
	}
}

func TestRenderRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(RenderRun))
	require.NotNil(t, s)

	for _, colName := range []string{"run_id", "start_time", "end_time", "run_duration_ms", "total_points", "source", "config_params"} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestRenderPointStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(RenderPoint))
	require.NotNil(t, s)

	for _, colName := range []string{"run_id", "point_index", "name", "nationality", "year", "seconds", "cx", "cy", "fill", "has_allegation"} {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestWriteRenderRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "render_runs.parquet")
	data := sampleRuns()

	require.NoError(t, WriteRenderRunsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	readData := readAll[RenderRun](t, file)
	require.Len(t, readData, len(data))

	assert.Equal(t, int64(1), readData[0].RunID)
	assert.Equal(t, int32(35), readData[0].TotalPoints)
	assert.Equal(t, "cyclists.json", readData[0].Source)
	require.NotNil(t, readData[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *readData[0].EndTime, time.Nanosecond)
	require.NotNil(t, readData[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *readData[0].ConfigParams)

	// Nullable fields survive as nil
	assert.Nil(t, readData[1].EndTime)
	assert.Nil(t, readData[1].RunDurationMs)
	assert.Nil(t, readData[1].ConfigParams)
}

func TestWriteRenderPointsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "render_points.parquet")
	data := []RenderPoint{
		{RunID: 1, PointIndex: 0, Name: "Marco Pantani", Nationality: "ITA", Year: 1995, Seconds: 2210, CX: 120.5, CY: 50, Fill: "rgb(199,21,133)", HasAllegation: true},
		{RunID: 1, PointIndex: 1, Name: "Nairo Quintana", Nationality: "COL", Year: 2015, Seconds: 2363, CX: 800, CY: 550, Fill: "rgb(0,139,139)"},
	}

	require.NoError(t, WriteRenderPointsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	readData := readAll[RenderPoint](t, file)
	assert.Equal(t, data, readData)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteRenderRunsParquet([]RenderRun{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteRenderRunsParquet(sampleRuns(), "/nonexistent/directory/output.parquet")
	require.Error(t, err)
	err = WriteRenderPointsParquet(nil, "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

func TestWriteRowsToBuffer(t *testing.T) {
	points := []schema.PlacedPoint{
		{
			Index: 0, ID: "circle-0", CX: 50, CY: 300, Radius: 5, Fill: "rgb(0,139,139)",
			Record: schema.RaceRecord{Name: "Solo", Nationality: "USA", Year: 2001, Time: "37:00", Seconds: 2220, Place: 4},
		},
		{
			Index: 1, ID: "circle-1", CX: 60, CY: 310, Radius: 5, Fill: "rgb(199,21,133)", HasAllegation: true,
			Record: schema.RaceRecord{Name: "Duo", Year: 2002, Time: "37:10", Seconds: 2230, Doping: "Positive test", URL: "https://example.com"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, ConvertPlacedPoints(points)))

	rows := readAll[PlacedPointRow](t, bytes.NewReader(buf.Bytes()))
	require.Len(t, rows, 2)
	assert.Equal(t, "circle-0", rows[0].ID)
	assert.Equal(t, int32(2220), rows[0].Seconds)
	assert.Nil(t, rows[0].Doping)
	assert.Nil(t, rows[0].URL)
	require.NotNil(t, rows[1].Doping)
	assert.Equal(t, "Positive test", *rows[1].Doping)
	assert.True(t, rows[1].HasAllegation)
}

func TestConvertRecords(t *testing.T) {
	now := time.Now()
	params := `{"output":"json"}`
	runs := ConvertRenderRunRecords([]schema.RenderRunRecord{
		{RunID: 7, StartTime: now, TotalPoints: 3, Source: "a.json", ConfigParams: &params},
	})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].RunID)
	assert.Equal(t, "a.json", runs[0].Source)
	assert.Same(t, &params, runs[0].ConfigParams)

	points := ConvertRenderPointRecords([]schema.RenderPointRecord{
		{RunID: 7, PointIndex: 2, Name: "X", Year: 2000, Seconds: 2300, CX: 1, CY: 2, Fill: "f", HasAllegation: true},
	})
	require.Len(t, points, 1)
	assert.Equal(t, RenderPoint{RunID: 7, PointIndex: 2, Name: "X", Year: 2000, Seconds: 2300, CX: 1, CY: 2, Fill: "f", HasAllegation: true}, points[0])

	assert.Empty(t, ConvertPlacedPoints(nil))
}
