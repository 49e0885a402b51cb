package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	HitPixels        int           // Pixels whose ray hit geometry
	BackgroundPixels int           // Pixels resolved to the background gradient
	Rows             int           // Number of rows rendered
	Workers          int           // Goroutines that rendered rows
	Duration         time.Duration // Wall time spent tracing
}

func newRenderStats(width, height, workers int) RenderStats {
	return RenderStats{
		TotalPixels: width * height,
		Rows:        height,
		Workers:     workers,
	}
}

// finalize derives the remaining counters once every row is done
func (s *RenderStats) finalize(elapsed time.Duration) {
	s.BackgroundPixels = s.TotalPixels - s.HitPixels
	s.Duration = elapsed
}

// HitRatio returns the fraction of pixels that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
