package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/internal/iocache"
	"github.com/huangsam/racechart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testConfig returns a config that reads the bundled dataset without caching.
func testConfig(t *testing.T, output schema.OutputMode) *contract.Config {
	t.Helper()
	return &contract.Config{
		Source:       filepath.Join("testdata", "cyclists.json"),
		Output:       output,
		OutputFile:   filepath.Join(t.TempDir(), "out."+string(output)),
		Precision:    contract.DefaultPrecision,
		Layout:       schema.DefaultLayout(),
		Viewport:     schema.Size{Width: contract.DefaultViewportWidth, Height: contract.DefaultViewportHeight},
		CacheBackend: schema.NoneBackend,
		CacheTTL:     contract.DefaultCacheTTL,
	}
}

// TestExecuteRenderJSON tests the main render entry point with JSON output.
func TestExecuteRenderJSON(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)

	mockCacheMgr := &iocache.MockCacheManager{}
	mockCacheMgr.On("GetDatasetStore").Return(nil) // No caching for test
	mockCacheMgr.On("GetHistoryStore").Return(nil) // No history tracking for test

	err := ExecuteRender(Quiet(context.Background()), cfg, mockCacheMgr)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var result schema.ChartResult
	require.NoError(t, json.Unmarshal(data, &result))

	require.Len(t, result.Points, 5)
	assert.Equal(t, 1994, result.Points[0].XValue)
	assert.Equal(t, 2015, result.Points[4].XValue)
	assert.Equal(t, "circle-0", result.Points[0].ID)
	mockCacheMgr.AssertExpectations(t)
}

// TestExecuteRenderSVG tests the main render entry point with SVG output.
func TestExecuteRenderSVG(t *testing.T) {
	cfg := testConfig(t, schema.SVGOut)

	err := ExecuteRender(Quiet(context.Background()), cfg, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Doping allegations or evidence")
}

// TestExecuteRenderMissingSource tests that a failed load never builds the chart.
func TestExecuteRenderMissingSource(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	cfg.Source = filepath.Join("testdata", "missing.json")

	err := ExecuteRender(Quiet(context.Background()), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load dataset")

	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
}

// TestBuildChartRecordsHistory tests render tracking through the history store.
func TestBuildChartRecordsHistory(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRender", mock.Anything, cfg.Source, mock.Anything).Return(int64(7), nil)
	history.On("RecordPoints", int64(7), mock.MatchedBy(func(points []schema.PlacedPoint) bool {
		return len(points) == 5
	})).Return(nil)
	history.On("EndRender", int64(7), mock.Anything, 5).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetDatasetStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	chart, err := BuildChart(Quiet(context.Background()), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 5, chart.Len())
	history.AssertExpectations(t)
}

// TestBuildChartHistoryFailure tests that a tracking failure does not block the render.
func TestBuildChartHistoryFailure(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)

	history := &iocache.MockHistoryStore{}
	history.On("BeginRender", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetDatasetStore").Return(nil)
	mgr.On("GetHistoryStore").Return(history)

	chart, err := BuildChart(Quiet(context.Background()), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, 5, chart.Len())
	history.AssertNotCalled(t, "RecordPoints", mock.Anything, mock.Anything)
	history.AssertNotCalled(t, "EndRender", mock.Anything, mock.Anything, mock.Anything)
}

// TestExecuteHover tests the hover entry point.
func TestExecuteHover(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)

	err := ExecuteHover(Quiet(context.Background()), cfg, nil, 1, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var overlay schema.Overlay
	require.NoError(t, json.Unmarshal(data, &overlay))
	assert.Equal(t, 1, overlay.Index)
	assert.Equal(t, 1995, overlay.Placement.DataYear)
	assert.Equal(t, "Marco Pantani, ITA", overlay.Lines[0])
	assert.NotEmpty(t, overlay.ID)
}

// TestExecuteHoverExplicitCursor tests hovering at a caller-supplied cursor.
func TestExecuteHoverExplicitCursor(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)

	err := ExecuteHover(Quiet(context.Background()), cfg, nil, 0, &schema.Point{X: 1000, Y: 100})
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var overlay schema.Overlay
	require.NoError(t, json.Unmarshal(data, &overlay))
	assert.True(t, overlay.Placement.FlipX)
	assert.Equal(t, 800.0, overlay.Placement.Left)
}

// TestExecuteHoverOutOfRange tests an invalid point index.
func TestExecuteHoverOutOfRange(t *testing.T) {
	cfg := testConfig(t, schema.JSONOut)
	err := ExecuteHover(Quiet(context.Background()), cfg, nil, 99, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

// TestPageCursor tests conversion from chart to page coordinates.
func TestPageCursor(t *testing.T) {
	layout := schema.DefaultLayout()
	point := schema.PlacedPoint{CX: 100, CY: 200}
	assert.Equal(t, schema.Point{X: 290, Y: 300}, PageCursor(layout, point, schema.Size{Width: 1280, Height: 800}))
}
