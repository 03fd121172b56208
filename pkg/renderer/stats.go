package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Pixels rendered
	HitPixels        int           // Pixels whose primary ray hit a surface
	BackgroundPixels int           // Pixels that missed or had no primary ray
	TotalTiles       int           // Tiles completed
	Workers          int           // Parallel workers used
	Elapsed          time.Duration // Wall-clock render time
}

// add accumulates the per-tile counters of other
func (s *RenderStats) add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.HitPixels += other.HitPixels
	s.BackgroundPixels += other.BackgroundPixels
	s.TotalTiles += other.TotalTiles
}

// HitRatio returns the fraction of pixels that hit geometry
func (s RenderStats) HitRatio() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.HitPixels) / float64(s.TotalPixels)
}
