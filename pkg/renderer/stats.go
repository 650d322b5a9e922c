package renderer

import (
	"image"
	"time"

	"github.com/df07/go-plane-raytracer/pkg/core"
)

// TileStats counts what a single tile produced
type TileStats struct {
	Pixels int // Pixels shaded
	Hits   int // Primary rays that hit a primitive
}

// Add accumulates other into ts
func (ts *TileStats) Add(other TileStats) {
	ts.Pixels += other.Pixels
	ts.Hits += other.Hits
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int                 // Total number of pixels rendered
	Hits        int                 // Primary rays that hit a primitive
	Tiles       int                 // Number of tiles rendered
	Workers     int                 // Number of workers used
	Duration    time.Duration       // Wall-clock render time
	Counters    *core.ThreadContext // Per-worker counters merged after the render
}

// HitRatio returns the fraction of primary rays that hit something
func (rs RenderStats) HitRatio() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.Hits) / float64(rs.TotalPixels)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += 0.2126*float64(c.R)/255 + 0.7152*float64(c.G)/255 + 0.0722*float64(c.B)/255
		}
	}
	return total / float64(pixels)
}
