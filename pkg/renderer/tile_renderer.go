package renderer

import (
	"context"
	"fmt"
	"image"
	"time"
)

// Tile is a rectangular region of the output image
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// NewTileGrid splits a width x height image into tiles of at most tileSize pixels per side
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	tileID := 0

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

// RenderParallel renders the image tile by tile on a worker pool.
// It produces the same pixels as RenderPass. Cancelling ctx stops the
// render between tiles and returns the context error.
func (rt *Raytracer) RenderParallel(ctx context.Context) (*image.RGBA, RenderStats, error) {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.sampling.Width, rt.sampling.Height))
	tiles := NewTileGrid(rt.sampling.Width, rt.sampling.Height, rt.config.TileSize)

	workerPool := NewWorkerPool(rt, len(tiles), min(rt.config.NumWorkers, len(tiles)))
	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (%d tiles, %d workers)...\n",
		rt.sampling.Width, rt.sampling.Height, len(rt.offsets), len(tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID, Image: img})
	}
	workerPool.Stop()

	var firstErr error
	completed := 0
	for {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		completed++
	}

	if firstErr != nil {
		return nil, RenderStats{}, fmt.Errorf("render cancelled after %d of %d tiles: %w", completed, len(tiles), firstErr)
	}

	stats := rt.newStats(workerPool.GetNumWorkers())
	stats.Tiles = len(tiles)
	stats.Elapsed = time.Since(start)
	return img, stats, nil
}
