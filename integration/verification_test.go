//go:build basic

// Package integration contains integration tests for racechart.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/racechart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noCache keeps the runs away from the user's home directory.
var noCache = []string{"RACECHART_CACHE_BACKEND=none"}

// loadDataset reads the bundled dataset directly, as ground truth for the CLI output.
func loadDataset(t *testing.T) []schema.RaceRecord {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", datasetPath))
	require.NoError(t, err)
	var records []schema.RaceRecord
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

// TestRenderJSONVerification renders JSON and verifies every record is placed once, in year order.
func TestRenderJSONVerification(t *testing.T) {
	records := loadDataset(t)
	outFile := filepath.Join(t.TempDir(), "chart.json")

	_, err := runRacechart(t, noCache, "render", datasetPath, "--output", "json", "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var result schema.ChartResult
	require.NoError(t, json.Unmarshal(data, &result))

	require.Len(t, result.Points, len(records))
	alleged := 0
	for _, r := range records {
		if r.Doping != "" {
			alleged++
		}
	}
	placedAlleged := 0
	for i, p := range result.Points {
		if p.HasAllegation {
			placedAlleged++
		}
		if i > 0 {
			assert.LessOrEqual(t, result.Points[i-1].Record.Year, p.Record.Year)
			assert.LessOrEqual(t, result.Points[i-1].CX, p.CX)
		}
	}
	assert.Equal(t, alleged, placedAlleged)
}

// TestRenderCSVVerification checks the CSV row count and header.
func TestRenderCSVVerification(t *testing.T) {
	records := loadDataset(t)
	outFile := filepath.Join(t.TempDir(), "chart.csv")

	_, err := runRacechart(t, noCache, "render", datasetPath, "--output", "csv", "--output-file", outFile)
	require.NoError(t, err)

	f, err := os.Open(outFile)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(records)+1)
	assert.Equal(t, "index", rows[0][0])
}

// TestRenderSVGVerification checks that an SVG document is written.
func TestRenderSVGVerification(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "chart.svg")
	_, err := runRacechart(t, noCache, "render", datasetPath, "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

// TestHoverVerification hovers the first point and checks the tooltip body.
func TestHoverVerification(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "overlay.json")
	_, err := runRacechart(t, noCache, "hover", "0", "--source", datasetPath, "--output", "json", "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var overlay schema.Overlay
	require.NoError(t, json.Unmarshal(data, &overlay))
	assert.Equal(t, 0, overlay.Index)
	require.NotEmpty(t, overlay.Lines)
	assert.True(t, strings.HasPrefix(overlay.Lines[1], "Year: "))
}

// TestCheckVerification validates the bundled dataset and rejects a malformed one.
func TestCheckVerification(t *testing.T) {
	output, err := runRacechart(t, noCache, "check", datasetPath)
	require.NoError(t, err)
	assert.Contains(t, output, "records")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"Name":"X","Year":2000,"Time":"3:5","Seconds":185}]`), 0o644))
	_, err = runRacechart(t, noCache, "check", bad)
	assert.Error(t, err)
}

// TestHistoryVerification records two renders in SQLite and exports them.
func TestHistoryVerification(t *testing.T) {
	dir := t.TempDir()
	env := append([]string{
		"RACECHART_HISTORY_BACKEND=sqlite",
		"RACECHART_HISTORY_DB_CONNECT=" + filepath.Join(dir, "history.db"),
	}, noCache...)

	for range 2 {
		_, err := runRacechart(t, env, "render", datasetPath, "--output", "json", "--output-file", filepath.Join(dir, "chart.json"))
		require.NoError(t, err)
	}

	output, err := runRacechart(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, output, "Total Runs: 2")

	base := filepath.Join(dir, "export")
	_, err = runRacechart(t, env, "history", "export", "--output-file", base)
	require.NoError(t, err)
	for _, suffix := range []string{".render_runs.parquet", ".render_points.parquet"} {
		_, err := os.Stat(base + suffix)
		assert.NoError(t, err)
	}
}

// TestVersion checks the version banner.
func TestVersion(t *testing.T) {
	output, err := runRacechart(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "racechart CLI")
}
