// Package core has core logic for scales, point placement, tooltips and chart rendering.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/internal/fetch"
	"github.com/huangsam/racechart/internal/outwriter"
	"github.com/huangsam/racechart/schema"
)

// ExecutorFunc defines the function signature for executing chart commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// LoadChart fetches the dataset (through the cache when configured) and lays out the chart.
func LoadChart(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*ChartContext, error) {
	if !shouldSuppressHeader(ctx) {
		outwriter.LogRenderHeader(cfg)
	}

	source := fetch.NewSource(cfg.Source)
	records, err := cachedFetch(ctx, cfg, source, mgr)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", source.Name(), err)
	}
	chart, err := NewChartContext(source.Name(), records, cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart: %w", err)
	}
	return chart, nil
}

// BuildChart is LoadChart with render history tracking.
func BuildChart(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*ChartContext, error) {
	var history contract.HistoryStore
	if mgr != nil {
		history = mgr.GetHistoryStore()
	}

	// --- 0. Begin Render Tracking (if configured) ---
	if history != nil {
		runID, err := history.BeginRender(time.Now(), cfg.Source, cfg.Params())
		if err != nil {
			contract.LogWarn("Render tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRenderRunID(ctx, runID)
		}
	}

	// --- 1. Load and lay out ---
	chart, err := LoadChart(ctx, cfg, mgr)
	if err != nil {
		return nil, err
	}

	// --- 2. Record points and end tracking ---
	if runID, ok := getRenderRunID(ctx); ok && history != nil {
		if err := history.RecordPoints(runID, chart.Points()); err != nil {
			contract.LogWarn("Failed to record placed points", err)
		}
		if err := history.EndRender(runID, time.Now(), chart.Len()); err != nil {
			contract.LogWarn("Failed to finalize render tracking", err)
		}
	}
	return chart, nil
}

// ExecuteRender builds the chart and writes it in the configured output format.
// It serves as the main entry point for the 'render' command.
func ExecuteRender(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	chart, err := BuildChart(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.WriteChart(chart.Result(), func(c contract.Canvas) { Render(chart, c) }, cfg, duration)
}

// ExecuteHover simulates a hover over one point and prints the tooltip overlay.
// A nil cursor hovers the point center, converted into page coordinates.
func ExecuteHover(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, index int, cursor *schema.Point) error {
	chart, err := LoadChart(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	point, ok := chart.Point(index)
	if !ok {
		return fmt.Errorf("point index %d out of range [0, %d)", index, chart.Len())
	}

	at := PageCursor(chart.Layout(), point, cfg.Viewport)
	if cursor != nil {
		at = *cursor
	}

	tracker := NewOverlayTracker(chart, cfg.Viewport)
	overlay := tracker.OnHover(point.Record, at)
	defer tracker.OnLeave()
	return outwriter.WriteOverlay(overlay, cfg)
}

// PageCursor converts a point center into page coordinates for a chart centered in the viewport.
func PageCursor(layout schema.Layout, point schema.PlacedPoint, viewport schema.Size) schema.Point {
	return schema.Point{
		X: (viewport.Width-layout.Width)/2 + point.CX,
		Y: (viewport.Height-layout.Height)/2 + point.CY,
	}
}
