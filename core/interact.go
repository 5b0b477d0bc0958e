package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/huangsam/racechart/schema"
)

// InteractionHandler reacts to pointer events over a plotted record.
// It is independent of whatever surface dispatches the events.
type InteractionHandler interface {
	// OnHover shows the tooltip overlay for a record, replacing any existing one.
	OnHover(record schema.RaceRecord, cursor schema.Point) schema.Overlay

	// OnLeave removes the current overlay and returns how many remain.
	OnLeave() int
}

// OverlayTracker keeps at most one tooltip overlay alive. The last hover wins.
type OverlayTracker struct {
	chart    *ChartContext
	viewport schema.Size
	newID    func() string

	mu       sync.Mutex
	current  *schema.Overlay
	observer func(active int)
}

var _ InteractionHandler = &OverlayTracker{}

// NewOverlayTracker creates a tracker that places tooltips for the given viewport.
func NewOverlayTracker(chart *ChartContext, viewport schema.Size) *OverlayTracker {
	return &OverlayTracker{
		chart:    chart,
		viewport: viewport,
		newID:    uuid.NewString,
	}
}

// Observe registers fn to receive the live overlay count after every change.
// fn runs while the tracker is locked, so it must not call back into the tracker.
func (t *OverlayTracker) Observe(fn func(active int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observer = fn
}

func (t *OverlayTracker) notify() {
	if t.observer == nil {
		return
	}
	active := 0
	if t.current != nil {
		active = 1
	}
	t.observer(active)
}

// OnHover places the overlay using the tracker's viewport.
func (t *OverlayTracker) OnHover(record schema.RaceRecord, cursor schema.Point) schema.Overlay {
	return t.HoverIn(record, cursor, t.viewport)
}

// HoverIn places the overlay for an explicit viewport size.
func (t *OverlayTracker) HoverIn(record schema.RaceRecord, cursor schema.Point, viewport schema.Size) schema.Overlay {
	placement := PlaceTooltip(t.chart.Layout(), cursor, viewport)
	placement.DataYear = record.Year

	overlay := schema.Overlay{
		ID:        t.newID(),
		Index:     t.chart.IndexOf(record),
		Placement: placement,
		Lines:     TooltipLines(record),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = &overlay
	t.notify()
	return overlay
}

// OnLeave drops the current overlay. Leaving with no overlay is a no-op.
func (t *OverlayTracker) OnLeave() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
	t.notify()
	return 0
}

// Active returns the current overlay, if any.
func (t *OverlayTracker) Active() (schema.Overlay, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return schema.Overlay{}, false
	}
	return *t.current, true
}

// Count returns the number of live overlays, which is zero or one.
func (t *OverlayTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return 0
	}
	return 1
}
