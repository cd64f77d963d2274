package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/integrator"
	"github.com/df07/go-raycaster/pkg/output"
	"github.com/df07/go-raycaster/pkg/renderer"
	"github.com/df07/go-raycaster/pkg/scene"
)

// Config holds the command line options of a render
type Config struct {
	Scene       string
	Projection  string // Empty keeps the scene default
	Width       int
	Height      int
	AspectRatio float64
	Samples     int
	PixelExtent float64
	Seed        int64
	Workers     int
	Sequential  bool
	BottomUp    bool
	Output      string
	Thumbnail   uint // Max thumbnail edge in pixels, 0 disables
	Upload      bool
}

// getEnv returns the environment value for key, or fallback when unset
func getEnv(getenv func(string) string, key, fallback string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return fallback
}

// envInt reads an integer environment default, ignoring malformed values
func envInt(getenv func(string) string, key string, fallback int) int {
	if value, err := strconv.Atoi(getenv(key)); err == nil {
		return value
	}
	return fallback
}

// parseConfig parses args over defaults taken from RAYCASTER_* environment variables
func parseConfig(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("raycaster", flag.ContinueOnError)

	fs.StringVar(&cfg.Scene, "scene", getEnv(getenv, "RAYCASTER_SCENE", "default"), "Scene: "+fmt.Sprint(scene.Names()))
	fs.StringVar(&cfg.Projection, "projection", getenv("RAYCASTER_PROJECTION"), "Projection override: 'perspective' or 'orthographic'")
	fs.IntVar(&cfg.Width, "width", envInt(getenv, "RAYCASTER_WIDTH", 0), "Image width in pixels (0 = scene default)")
	fs.IntVar(&cfg.Height, "height", 0, "Image height in pixels (0 = width / aspect)")
	fs.Float64Var(&cfg.AspectRatio, "aspect", 0, "Aspect ratio used to derive the height (0 = 16/9)")
	fs.IntVar(&cfg.Samples, "samples", envInt(getenv, "RAYCASTER_SAMPLES", 0), "Samples per pixel, a perfect square (0 = scene default)")
	fs.Float64Var(&cfg.PixelExtent, "extent", 0, "Pixel size on the view plane (0 = scene default)")
	fs.Int64Var(&cfg.Seed, "seed", renderer.DefaultRenderConfig().Seed, "Seed for the sample offsets")
	fs.IntVar(&cfg.Workers, "workers", envInt(getenv, "RAYCASTER_WORKERS", 0), "Number of parallel workers (0 = CPU count)")
	fs.BoolVar(&cfg.Sequential, "sequential", false, "Render on a single goroutine")
	fs.BoolVar(&cfg.BottomUp, "bottom-up", false, "Write the bottom image row first")
	fs.StringVar(&cfg.Output, "output", getenv("RAYCASTER_OUTPUT"), "Output file (.ppm, .png, .jpg, ...); default output/<scene>/render_<timestamp>.png")
	thumbnail := fs.Int("thumbnail", 0, "Also write a thumbnail no larger than this many pixels")
	fs.BoolVar(&cfg.Upload, "upload", false, "Upload the PNG render to the RAYCASTER_S3_* bucket")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *thumbnail < 0 {
		return nil, fmt.Errorf("thumbnail size must not be negative, got %d", *thumbnail)
	}
	cfg.Thumbnail = uint(*thumbnail)

	if cfg.Output == "" {
		timestamp := time.Now().Format("20060102_150405")
		cfg.Output = filepath.Join("output", cfg.Scene, fmt.Sprintf("render_%s.png", timestamp))
	}
	return cfg, nil
}

// createScene builds and validates the configured scene
func createScene(cfg *Config) (*scene.Scene, error) {
	opts := scene.Options{
		Width:           cfg.Width,
		Height:          cfg.Height,
		AspectRatio:     cfg.AspectRatio,
		SamplesPerPixel: cfg.Samples,
		PixelExtent:     cfg.PixelExtent,
	}
	if cfg.Projection != "" {
		projection, err := geometry.ParseProjection(cfg.Projection)
		if err != nil {
			return nil, err
		}
		opts.Projection = &projection
	}

	sceneObj, err := scene.Create(cfg.Scene, opts)
	if err != nil {
		return nil, err
	}
	if err := sceneObj.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene %q: %w", cfg.Scene, err)
	}
	return sceneObj, nil
}

// run renders the configured scene and writes the outputs
func run(ctx context.Context, cfg *Config, logger core.Logger, getenv func(string) string) error {
	// Build the uploader first so a bad bucket config fails before rendering
	var uploader *output.S3Uploader
	if cfg.Upload {
		var err error
		if uploader, err = output.NewS3Uploader(output.S3ConfigFromEnv(getenv)); err != nil {
			return err
		}
	}

	sceneObj, err := createScene(cfg)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d primitives, %s camera)\n",
		cfg.Scene, sceneObj.GetPrimitiveCount(), sceneObj.CameraConfig.Projection)

	renderConfig := renderer.RenderConfig{
		Seed:       cfg.Seed,
		TileSize:   renderer.DefaultRenderConfig().TileSize,
		NumWorkers: cfg.Workers,
	}
	bp := integrator.NewBlinnPhongIntegrator(sceneObj.Lighting)
	raytracer, err := renderer.NewRaytracer(sceneObj, bp, sceneObj.SamplingConfig, renderConfig, logger)
	if err != nil {
		return err
	}

	result, stats, err := render(ctx, raytracer, cfg.Sequential)
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v (%d samples, %.0f samples/s, %d workers)\n",
		stats.Elapsed, stats.TotalSamples, stats.SamplesPerSecond(), stats.Workers)

	opts := output.Options{BottomUp: cfg.BottomUp}
	if err := output.Save(cfg.Output, result, opts); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", cfg.Output)

	if cfg.Thumbnail > 0 {
		thumbPath := output.ThumbnailPath(cfg.Output)
		if err := output.Save(thumbPath, output.Thumbnail(result, cfg.Thumbnail), opts); err != nil {
			return err
		}
		logger.Printf("Thumbnail saved as %s\n", thumbPath)
	}

	if uploader != nil {
		data, err := output.EncodePNG(result)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s/%s.png", cfg.Scene, time.Now().Format("20060102_150405"))
		if err := uploader.Upload(ctx, key, data, "image/png"); err != nil {
			return err
		}
		logger.Printf("Uploaded %s (%d bytes)\n", key, len(data))
	}

	return nil
}

// render runs a sequential pass or a parallel tiled render
func render(ctx context.Context, raytracer *renderer.Raytracer, sequential bool) (*image.RGBA, renderer.RenderStats, error) {
	if sequential {
		img, stats := raytracer.RenderPass()
		return img, stats, nil
	}
	return raytracer.RenderParallel(ctx)
}

func main() {
	// A missing .env is fine; flags and the environment still apply
	_ = godotenv.Load(getEnv(os.Getenv, "RAYCASTER_ENV_FILE", ".env"))

	cfg, err := parseConfig(os.Args[1:], os.Getenv)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println("Starting Raycaster...")
	if err := run(ctx, cfg, renderer.NewDefaultLogger(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
