package schema

import "time"

// RenderRunRecord represents a row from the racechart_render_runs table.
type RenderRunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalPoints   int32
	Source        string
	ConfigParams  *string
}

// RenderPointRecord represents a row from the racechart_render_points table.
type RenderPointRecord struct {
	RunID         int64
	PointIndex    int32
	Name          string
	Nationality   string
	Year          int32
	Seconds       int32
	CX            float64
	CY            float64
	Fill          string
	HasAllegation bool
}
