package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"runtime"
	"time"

	"github.com/df07/go-raycaster/pkg/core"
)

// RenderConfig controls how the image is scheduled, not what it looks like
type RenderConfig struct {
	Seed       int64 // Seed for the multi-jittered offset table
	TileSize   int   // Tile edge in pixels for parallel rendering (0 = 32)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Seed:       42, // Deterministic for testing
		TileSize:   32,
		NumWorkers: 0,
	}
}

// Raytracer casts the sample rays of every pixel and averages their colors.
// Everything it holds is read-only once constructed, so one Raytracer can
// be shared by any number of goroutines.
type Raytracer struct {
	scene      core.Scene
	integrator core.Integrator
	sampling   core.SamplingConfig
	config     RenderConfig
	offsets    []core.Vec2 // Multi-jittered offsets shared by every pixel
	logger     core.Logger
}

// NewRaytracer validates the sampling configuration and precomputes the
// sample offset table
func NewRaytracer(scene core.Scene, integrator core.Integrator, sampling core.SamplingConfig, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if err := sampling.Validate(); err != nil {
		return nil, err
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultRenderConfig().TileSize
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	offsets, err := core.MultiJitter(sampling.SamplesPerPixel, sampling.PixelExtent, rand.New(rand.NewSource(config.Seed)))
	if err != nil {
		return nil, fmt.Errorf("generating sample offsets: %w", err)
	}

	return &Raytracer{
		scene:      scene,
		integrator: integrator,
		sampling:   sampling,
		config:     config,
		offsets:    offsets,
		logger:     logger,
	}, nil
}

// Offsets returns a copy of the sample offset table
func (rt *Raytracer) Offsets() []core.Vec2 {
	return append([]core.Vec2(nil), rt.offsets...)
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.sampling.Width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.sampling.Height }

// RenderPixel returns the averaged color of pixel column i and row j,
// with rows counted from the bottom of the image
func (rt *Raytracer) RenderPixel(i, j int) core.Vec3 {
	camera := rt.scene.GetCamera()

	var colorAccum core.Vec3
	for _, offset := range rt.offsets {
		colorAccum.AddInPlace(rt.integrator.RayColor(rt.pixelRay(camera, i, j, offset), rt.scene))
	}

	colorAccum.DivideInPlace(float64(len(rt.offsets)))
	return colorAccum
}

// CenterRay returns the ray through the middle of pixel (i, j), rows counted from the bottom
func (rt *Raytracer) CenterRay(i, j int) core.Ray {
	half := rt.sampling.PixelExtent / 2
	return rt.pixelRay(rt.scene.GetCamera(), i, j, core.NewVec2(half, half))
}

// pixelRay maps a sub-pixel offset of pixel (i, j) onto the view plane
func (rt *Raytracer) pixelRay(camera core.Camera, i, j int, offset core.Vec2) core.Ray {
	s := rt.sampling.PixelExtent
	x := s * (float64(i-rt.sampling.Width/2) + offset.X)
	y := s * (float64(j-rt.sampling.Height/2) + offset.Y)
	return camera.GetRay(x, y)
}

// RenderPass renders every pixel sequentially, top row first
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.sampling.Width, rt.sampling.Height))

	rt.renderBounds(img.Bounds(), img)

	stats := rt.newStats(1)
	stats.Elapsed = time.Since(start)
	return img, stats
}

// renderBounds renders the pixels of img inside bounds. Image row y maps to
// bottom-up row height-1-y.
func (rt *Raytracer) renderBounds(bounds image.Rectangle, img *image.RGBA) {
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := rt.sampling.Height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			img.SetRGBA(i, y, Vec3ToColor(rt.RenderPixel(i, j)))
		}
	}
}

func (rt *Raytracer) newStats(workers int) RenderStats {
	pixels := rt.sampling.Width * rt.sampling.Height
	return RenderStats{
		TotalPixels:     pixels,
		TotalSamples:    int64(pixels) * int64(len(rt.offsets)),
		SamplesPerPixel: len(rt.offsets),
		Workers:         workers,
	}
}

// Vec3ToColor converts a color in [0,1] to 8-bit RGBA, clamping out-of-range channels
func Vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255.999 * colorVec.X),
		G: uint8(255.999 * colorVec.Y),
		B: uint8(255.999 * colorVec.Z),
		A: 255,
	}
}
