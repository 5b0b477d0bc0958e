package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/huangsam/racechart/core"
	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &contract.Config{
		Source:       filepath.Join("..", "..", "core", "testdata", "cyclists.json"),
		Layout:       schema.DefaultLayout(),
		Viewport:     schema.Size{Width: contract.DefaultViewportWidth, Height: contract.DefaultViewportHeight},
		CacheBackend: schema.NoneBackend,
	}
	chart, err := core.LoadChart(core.Quiet(context.Background()), cfg, nil)
	require.NoError(t, err)
	return New(cfg, chart)
}

func do(t *testing.T, s *Server, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChartSVG(t *testing.T) {
	s := newTestServer(t)

	for range 2 {
		w := do(t, s, http.MethodGet, "/chart.svg", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<svg")
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(s.Metrics().renders))
}

func TestPoints(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/points", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result schema.ChartResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Len(t, result.Points, 5)
	assert.Equal(t, 900.0, result.Width)
	assert.Equal(t, 600.0, result.Height)
	assert.Len(t, result.Legend, 2)

	// Element identifiers absent from the SVG are carried by the points
	first := result.Points[0]
	assert.Equal(t, "circle-0", first.ID)
	assert.Equal(t, first.Record.Year, first.XValue)
	assert.NotEmpty(t, first.YValue)
}

func TestHoverAndLeave(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/hover", strings.NewReader(`{"index": 0}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var overlay hoverResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overlay))
	_, err := uuid.Parse(overlay.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, overlay.Index)
	require.Len(t, overlay.Lines, 5)
	assert.True(t, strings.HasPrefix(overlay.Lines[1], "Year: "))
	assert.NotEmpty(t, overlay.RequestID)
	assert.Equal(t, 1, s.tracker.Count())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().activeOverlays))

	// A second hover replaces the first overlay
	w = do(t, s, http.MethodPost, "/api/hover", strings.NewReader(`{"index": 1, "x": 1000, "y": 600}`))
	require.Equal(t, http.StatusOK, w.Code)
	var second hoverResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.NotEqual(t, overlay.ID, second.ID)
	assert.Equal(t, schema.TooltipPlacement{Left: 800, Top: 400, FlipX: true, FlipY: true, DataYear: second.Placement.DataYear}, second.Placement)
	assert.Equal(t, 1, s.tracker.Count())

	w = do(t, s, http.MethodDelete, "/api/hover", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"remaining": 0}`, w.Body.String())
	assert.Equal(t, 0, s.tracker.Count())
	assert.Equal(t, 2.0, testutil.ToFloat64(s.Metrics().hovers))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics().leaves))
	assert.Equal(t, 0.0, testutil.ToFloat64(s.Metrics().activeOverlays))

	// Leaving twice is a no-op
	w = do(t, s, http.MethodDelete, "/api/hover", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"remaining": 0}`, w.Body.String())
}

func TestHoverViewport(t *testing.T) {
	s := newTestServer(t)

	// Same cursor, chart filling the whole viewport: only the x axis flips
	body := `{"index": 2, "x": 700, "y": 100, "viewportWidth": 900, "viewportHeight": 600}`
	w := do(t, s, http.MethodPost, "/api/hover", strings.NewReader(body))
	require.Equal(t, http.StatusOK, w.Code)

	var overlay hoverResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overlay))
	assert.Equal(t, 500.0, overlay.Placement.Left)
	assert.Equal(t, 105.0, overlay.Placement.Top)
	assert.True(t, overlay.Placement.FlipX)
	assert.False(t, overlay.Placement.FlipY)
}

func TestHoverErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{name: "malformed json", body: `{"index":`, status: http.StatusBadRequest, errMsg: "invalid hover request"},
		{name: "missing index", body: `{"x": 1}`, status: http.StatusBadRequest, errMsg: "index is required"},
		{name: "index out of range", body: `{"index": 99}`, status: http.StatusNotFound, errMsg: "out of range"},
		{name: "negative index", body: `{"index": -1}`, status: http.StatusNotFound, errMsg: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/hover", bytes.NewBufferString(tt.body))
			assert.Equal(t, tt.status, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Error, tt.errMsg)
		})
	}
	assert.Equal(t, 0, s.tracker.Count())
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	do(t, s, http.MethodGet, "/api/points", nil)

	w := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "racechart_server_hovers_total 0")
	assert.Contains(t, body, `racechart_server_http_request_duration_seconds_count{method="GET",route="/api/points",status="200"} 1`)
}

func TestActiveOverlaysGaugeConcurrent(t *testing.T) {
	s := newTestServer(t)

	for range 20 {
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				do(t, s, http.MethodPost, "/api/hover", strings.NewReader(`{"index": `+strconv.Itoa(i%5)+`}`))
			}()
			go func() {
				defer wg.Done()
				do(t, s, http.MethodDelete, "/api/hover", nil)
			}()
		}
		wg.Wait()
		assert.Equal(t, float64(s.tracker.Count()), testutil.ToFloat64(s.Metrics().activeOverlays))
	}
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/hover", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunCancelled(t *testing.T) {
	cfg := &contract.Config{
		Source:       filepath.Join("..", "..", "core", "testdata", "cyclists.json"),
		Layout:       schema.DefaultLayout(),
		Viewport:     schema.Size{Width: contract.DefaultViewportWidth, Height: contract.DefaultViewportHeight},
		CacheBackend: schema.NoneBackend,
		ServeAddr:    "127.0.0.1:0",
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, Run(ctx, cfg, nil))
}

func TestRunMissingSource(t *testing.T) {
	cfg := &contract.Config{
		Source:   filepath.Join(t.TempDir(), "missing.json"),
		Layout:   schema.DefaultLayout(),
		Viewport: schema.Size{Width: contract.DefaultViewportWidth, Height: contract.DefaultViewportHeight},
	}
	assert.Error(t, Run(context.Background(), cfg, nil))
}
