package pipeline

import "time"

// RenderStats summarizes one completed (or dry-run) render.
type RenderStats struct {
	Segments      int
	Fallbacks     int
	TotalDuration float64
	OutputBytes   int64
	Elapsed       time.Duration
}
