package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Defaults used when Options fields are left zero
const (
	DefaultWidth    = 500
	DefaultHeight   = 500
	DefaultTileSize = 64
	DefaultSeed     = 42
)

// Options configures a render
type Options struct {
	Width    int
	Height   int
	TileSize int          // Edge length of a square tile
	Workers  int          // Parallel tile workers (0 = use CPU count)
	Seed     int64        // Base seed for per-pixel shadow sampling
	Shadow   ShadowPolicy // Shadow query policy (nil = binary occlusion)

	// OnTile is called from a single goroutine after each tile completes
	OnTile func(TileCompletionResult)
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		TileSize: DefaultTileSize,
		Workers:  0,
		Seed:     DefaultSeed,
		Shadow:   BinaryOcclusion{},
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle
	TileImage *image.RGBA // Image data for just this tile

	// Progress information
	TileNumber int // Completion order (1-based)
	TotalTiles int
}

// Raytracer renders a validated scene into a Buffer
type Raytracer struct {
	scene  *scene.Scene
	logger core.Logger
}

// NewRaytracer creates a raytracer; a nil logger discards messages
func NewRaytracer(s *scene.Scene, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{scene: s, logger: logger}
}

// Render validates the scene and traces every pixel. The scene is shared
// read-only by all workers, each pixel draws its shadow samples from a seed
// derived from its coordinates, and workers write disjoint tiles of the
// buffer. The result is independent of worker count and scheduling order.
func (rt *Raytracer) Render(ctx context.Context, opts Options) (*Buffer, RenderStats, error) {
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid scene: %w", err)
	}
	opts = withDefaults(opts)

	start := time.Now()
	camera := NewCamera(rt.scene.Camera, opts.Width, opts.Height)
	shader := NewShader(rt.scene, opts.Shadow)
	buffer := NewBuffer(opts.Width, opts.Height)
	tiles := NewTileGrid(opts.Width, opts.Height, opts.TileSize)
	pool := NewWorkerPool(opts.Workers)

	rt.logger.Infof("Rendering %dx%d: %d surfaces, %d lights, %d tiles, %d workers",
		opts.Width, opts.Height, rt.scene.GetPrimitiveCount(), len(rt.scene.Lights), len(tiles), pool.GetNumWorkers())

	renderTile := func(tile *Tile) RenderStats {
		return rt.renderTile(tile, camera, shader, buffer, opts.Seed)
	}

	results := make(chan TileResult, len(tiles))
	errCh := make(chan error, 1)
	go func() {
		errCh <- pool.Run(ctx, tiles, renderTile, results)
		close(results)
	}()

	// Dispatch tile callbacks from this goroutine only
	stats := RenderStats{Workers: pool.GetNumWorkers()}
	for result := range results {
		stats.add(result.Stats)
		tile := result.Tile

		rt.logger.Debugf("Tile %d/%d done (%v)", stats.TotalTiles, len(tiles), tile.Bounds)

		if opts.OnTile != nil {
			opts.OnTile(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / opts.TileSize,
				TileY:      tile.Bounds.Min.Y / opts.TileSize,
				Bounds:     tile.Bounds,
				TileImage:  buffer.SubImage(tile.Bounds),
				TileNumber: stats.TotalTiles,
				TotalTiles: len(tiles),
			})
		}
	}

	if err := <-errCh; err != nil {
		rt.logger.Infof("Render stopped after %d/%d tiles: %v", stats.TotalTiles, len(tiles), err)
		return nil, stats, err
	}

	stats.Elapsed = time.Since(start)
	rt.logger.Infof("Render completed in %v (%d/%d pixels hit geometry)",
		stats.Elapsed, stats.HitPixels, stats.TotalPixels)

	return buffer, stats, nil
}

// renderTile traces every pixel inside the tile bounds into buffer
func (rt *Raytracer) renderTile(tile *Tile, camera *Camera, shader *Shader, buffer *Buffer, seed int64) RenderStats {
	stats := RenderStats{TotalTiles: 1}
	maxDepth := rt.scene.Settings.MaxRecursion

	for row := tile.Bounds.Min.Y; row < tile.Bounds.Max.Y; row++ {
		for col := tile.Bounds.Min.X; col < tile.Bounds.Max.X; col++ {
			color, hit := rt.tracePixel(camera, shader, row, col, maxDepth, seed)
			buffer.Set(row, col, color)

			stats.TotalPixels++
			if hit {
				stats.HitPixels++
			} else {
				stats.BackgroundPixels++
			}
		}
	}

	return stats
}

// tracePixel shades the primary ray of one pixel
func (rt *Raytracer) tracePixel(camera *Camera, shader *Shader, row, col, maxDepth int, seed int64) (core.Vec3, bool) {
	direction := camera.Direction(row, col)
	if direction.IsZero() {
		return rt.scene.Settings.Background, false
	}

	hit, ok := Nearest(rt.scene.Surfaces, core.NewRay(camera.Position(), direction))
	if !ok {
		return rt.scene.Settings.Background, false
	}

	sampler := core.NewPixelSampler(seed, row, col)
	return shader.Shade(hit, maxDepth, sampler), true
}

func withDefaults(opts Options) Options {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.TileSize <= 0 {
		opts.TileSize = DefaultTileSize
	}
	if opts.Shadow == nil {
		opts.Shadow = BinaryOcclusion{}
	}
	return opts
}
