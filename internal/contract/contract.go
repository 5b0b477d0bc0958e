// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"io"
	"time"

	"github.com/huangsam/racechart/schema"
)

// DataSource retrieves the race records behind the chart.
// This allows the chart pipeline to be tested without a network.
type DataSource interface {
	// Name identifies the source (URL or path). It doubles as the cache key seed.
	Name() string

	// Fetch returns the raw records in source order.
	Fetch(ctx context.Context) ([]schema.RaceRecord, error)
}

// Canvas is a drawing surface that receives already-computed coordinates.
// Colors are CSS color strings such as "rgb(0,139,139)".
type Canvas interface {
	Line(from, to schema.Point, stroke string, width float64)
	Circle(center schema.Point, radius float64, fill string)
	Rect(topLeft schema.Point, size schema.Size, fill string)
	Text(at schema.Point, body string, fontSize float64, fill string)

	// Save writes the finished surface to w.
	Save(w io.Writer) error
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetDatasetStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking render runs and their placed points.
type HistoryStore interface {
	// BeginRender creates a new render run and returns its unique ID
	BeginRender(startTime time.Time, source string, configParams map[string]any) (int64, error)

	// RecordPoints stores the placed points of a render run
	RecordPoints(runID int64, points []schema.PlacedPoint) error

	// EndRender updates the render run with completion data
	EndRender(runID int64, endTime time.Time, totalPoints int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRenderRuns returns every recorded render run
	GetAllRenderRuns() ([]schema.RenderRunRecord, error)

	// GetAllRenderPoints returns every recorded point
	GetAllRenderPoints() ([]schema.RenderPointRecord, error)

	// Close closes the underlying connection
	Close() error
}
