package renderer

import (
	"context"
	"image"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/scene"
)

// Config contains rendering configuration. Zero fields fall back to the
// scene (Width, Height) or to DefaultConfig.
type Config struct {
	Width    int // Image width in pixels
	Height   int // Image height in pixels
	Workers  int // Number of parallel workers (0 = use CPU count)
	TileSize int // Size of each square tile
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize: 32,
		Workers:  0, // Auto-detect CPU count
	}
}

// MergeConfig returns base with every non-zero field of override applied
func MergeConfig(base, override Config) Config {
	if override.Width > 0 {
		base.Width = override.Width
	}
	if override.Height > 0 {
		base.Height = override.Height
	}
	if override.Workers > 0 {
		base.Workers = override.Workers
	}
	if override.TileSize > 0 {
		base.TileSize = override.TileSize
	}
	return base
}

// Raytracer renders a scene into an image using a tile worker pool
type Raytracer struct {
	scene  *scene.Scene
	config Config
	camera *Camera
	logger core.Logger
}

// NewRaytracer creates a raytracer for s. The image size defaults to the
// scene's. A nil logger logs through zap's production logger.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	config = MergeConfig(DefaultConfig(), config)
	if config.Width <= 0 {
		config.Width = s.Width
	}
	if config.Height <= 0 {
		config.Height = s.Height
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &Raytracer{
		scene:  s,
		config: config,
		camera: NewSceneCamera(s.Camera, config.Width, config.Height),
		logger: logger,
	}
}

// Config returns the resolved render configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render renders the full image. The scene must not be mutated while
// rendering; every worker reads it concurrently.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return nil, RenderStats{}, errors.Errorf("image size must be positive, got %dx%d", rt.config.Width, rt.config.Height)
	}
	if rt.scene.BVH == nil {
		rt.scene.Preprocess()
	}

	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize)
	pool := NewWorkerPool(rt.scene, rt.camera, rt.config.Width, rt.config.Height, rt.config.Workers)

	rt.logger.Printf("Rendering %q at %dx%d: %d primitives, %d tiles, %d workers\n",
		rt.scene.Name, rt.config.Width, rt.config.Height, len(rt.scene.Primitives), len(tiles), pool.GetNumWorkers())

	startTime := time.Now()
	stats, err := pool.Run(ctx, img, tiles)
	stats.Duration = time.Since(startTime)
	if err != nil {
		return nil, stats, errors.Wrap(err, "rendering tiles")
	}

	rt.logger.Printf("Rendered %d pixels in %v (hit ratio %.2f, mean luminance %.3f, ray-plane tests %d, clip tests %d)\n",
		stats.TotalPixels, stats.Duration, stats.HitRatio(), CalculateAverageLuminance(img),
		stats.Counters.Count(core.RayPlaneTests), stats.Counters.Count(core.ClipTests))

	return img, stats, nil
}
