package core

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/huangsam/racechart/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultViewport = schema.Size{Width: 1280, Height: 800}

// TestHoverThenLeave tests that a hover followed by a leave leaves no overlay.
func TestHoverThenLeave(t *testing.T) {
	chart := mustChart(t, sampleRecords())
	tracker := NewOverlayTracker(chart, defaultViewport)
	assert.Equal(t, 0, tracker.Count())

	record := chart.Records()[1]
	overlay := tracker.OnHover(record, schema.Point{X: 300, Y: 200})
	assert.Equal(t, 1, tracker.Count())

	_, err := uuid.Parse(overlay.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, overlay.Index)
	assert.Equal(t, 1995, overlay.Placement.DataYear)
	assert.Equal(t, 305.0, overlay.Placement.Left)
	assert.Equal(t, TooltipLines(record), overlay.Lines)

	active, ok := tracker.Active()
	require.True(t, ok)
	assert.Equal(t, overlay, active)

	assert.Equal(t, 0, tracker.OnLeave())
	assert.Equal(t, 0, tracker.Count())
	_, ok = tracker.Active()
	assert.False(t, ok)
}

// TestLastHoverWins tests that a second hover replaces the first overlay.
func TestLastHoverWins(t *testing.T) {
	chart := mustChart(t, sampleRecords())
	tracker := NewOverlayTracker(chart, defaultViewport)
	records := chart.Records()

	first := tracker.OnHover(records[0], schema.Point{X: 100, Y: 100})
	second := tracker.OnHover(records[2], schema.Point{X: 900, Y: 600})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, tracker.Count())
	active, _ := tracker.Active()
	assert.Equal(t, second.ID, active.ID)
	assert.True(t, active.Placement.FlipX)
	assert.True(t, active.Placement.FlipY)
}

// TestLeaveWithoutHover tests that leaving with no overlay is a no-op.
func TestLeaveWithoutHover(t *testing.T) {
	tracker := NewOverlayTracker(mustChart(t, sampleRecords()), defaultViewport)
	assert.Equal(t, 0, tracker.OnLeave())
	assert.Equal(t, 0, tracker.OnLeave())
}

// TestHoverInViewport tests that an explicit viewport overrides the default one.
func TestHoverInViewport(t *testing.T) {
	chart := mustChart(t, sampleRecords())
	tracker := NewOverlayTracker(chart, defaultViewport)
	record := chart.Records()[0]

	wide := tracker.HoverIn(record, schema.Point{X: 800, Y: 100}, schema.Size{Width: 1920, Height: 1080})
	assert.False(t, wide.Placement.FlipX)

	narrow := tracker.HoverIn(record, schema.Point{X: 800, Y: 100}, schema.Size{Width: 900, Height: 1080})
	assert.True(t, narrow.Placement.FlipX)
	assert.Equal(t, 600.0, narrow.Placement.Left)
}

// TestOverlayTrackerConcurrent tests that concurrent callers never see more than one overlay.
func TestOverlayTrackerConcurrent(t *testing.T) {
	chart := mustChart(t, sampleRecords())
	tracker := NewOverlayTracker(chart, defaultViewport)
	records := chart.Records()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tracker.OnHover(records[i%len(records)], schema.Point{X: float64(i), Y: float64(i)})
			assert.LessOrEqual(t, tracker.Count(), 1)
			tracker.OnLeave()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, tracker.Count())
}

// TestOverlayTrackerObserve tests that the observer sees every change in lock order.
func TestOverlayTrackerObserve(t *testing.T) {
	chart := mustChart(t, sampleRecords())
	tracker := NewOverlayTracker(chart, defaultViewport)
	records := chart.Records()

	var seen []int
	tracker.Observe(func(active int) { seen = append(seen, active) })

	tracker.OnHover(records[0], schema.Point{X: 10, Y: 10})
	tracker.OnHover(records[1], schema.Point{X: 20, Y: 20})
	tracker.OnLeave()
	tracker.OnLeave()
	assert.Equal(t, []int{1, 1, 0, 0}, seen)

	var wg sync.WaitGroup
	last := -1
	tracker.Observe(func(active int) { last = active })
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				tracker.OnHover(records[i%len(records)], schema.Point{X: float64(i), Y: float64(i)})
			} else {
				tracker.OnLeave()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, tracker.Count(), last)
}
