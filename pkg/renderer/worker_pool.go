package renderer

import (
	"context"
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-plane-raytracer/pkg/core"
	"github.com/df07/go-plane-raytracer/pkg/scene"
)

// Tile represents a rectangular region of the image
type Tile struct {
	ID     int             // Unique tile identifier
	Bounds image.Rectangle // Pixel bounds (x0,y0,x1,y1)
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, &Tile{ID: tileID, Bounds: image.Rect(x0, y0, x1, y1)})
			tileID++
		}
	}

	return tiles
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	workers []*Worker
}

// Worker renders tiles with its own thread context. The context is touched
// only by the worker's goroutine until the pool run returns.
type Worker struct {
	ID       int
	ctx      *core.ThreadContext
	renderer *TileRenderer
	stats    TileStats
	tiles    int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(s *scene.Scene, camera *Camera, width, height, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{}
	for i := 0; i < numWorkers; i++ {
		ctx := core.NewThreadContext(i)
		wp.workers = append(wp.workers, &Worker{
			ID:       i,
			ctx:      ctx,
			renderer: NewTileRenderer(s, camera, width, height, ctx),
		})
	}
	return wp
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// Run renders tiles into img and blocks until every tile is done, a worker
// fails, or ctx is cancelled. Counters of all workers are merged into the
// returned stats.
func (wp *WorkerPool) Run(ctx context.Context, img *image.RGBA, tiles []*Tile) (RenderStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	queue := make(chan *Tile)

	g.Go(func() error {
		defer close(queue)
		for _, tile := range tiles {
			select {
			case queue <- tile:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for _, w := range wp.workers {
		w.stats = TileStats{}
		w.tiles = 0
		w.ctx.Reset()
		g.Go(func() error {
			return w.run(gctx, img, queue)
		})
	}

	err := g.Wait()

	stats := RenderStats{
		Workers:  len(wp.workers),
		Counters: core.NewThreadContext(-1),
	}
	for _, w := range wp.workers {
		stats.TotalPixels += w.stats.Pixels
		stats.Hits += w.stats.Hits
		stats.Tiles += w.tiles
		stats.Counters.Merge(w.ctx)
	}
	return stats, err
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context, img *image.RGBA, queue <-chan *Tile) error {
	for tile := range queue {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.stats.Add(w.renderer.RenderTileBounds(img, tile.Bounds))
		w.tiles++
	}
	return nil
}
