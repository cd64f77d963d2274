package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// ErrUnknownScene is returned by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Options overrides the run parameters of a built-in scene.
// Zero values keep the scene defaults.
type Options struct {
	Projection      *geometry.Projection
	Width           int
	Height          int     // When set, the aspect ratio is derived from width/height
	AspectRatio     float64 // Used to derive the height when Height is zero
	SamplesPerPixel int
	PixelExtent     float64
	Lighting        *core.Lighting
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Projection  string `json:"projection"`
}

type sceneFactory struct {
	info   SceneInfo
	create func(Options) (*Scene, error)
}

var registry = map[string]sceneFactory{
	"default": {
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "Triangle, sphere and ground sphere under a perspective camera",
			Projection:  geometry.Perspective.String(),
		},
		create: NewDefaultScene,
	},
	"shapes": {
		info: SceneInfo{
			ID:          "shapes",
			DisplayName: "Shapes (orthographic)",
			Description: "The default scene geometry under an orthographic camera",
			Projection:  geometry.Orthographic.String(),
		},
		create: NewShapesScene,
	},
	"plane": {
		info: SceneInfo{
			ID:          "plane",
			DisplayName: "Plane",
			Description: "A single infinite plane at z=-400 seen head-on",
			Projection:  geometry.Orthographic.String(),
		},
		create: NewPlaneScene,
	},
}

// Create builds the named built-in scene with the given overrides
func Create(name string, opts Options) (*Scene, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return factory.create(opts)
}

// List returns the built-in scenes sorted by ID
func List() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(registry))
	for _, f := range registry {
		scenes = append(scenes, f.info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	scenes := List()
	names := make([]string, len(scenes))
	for i, s := range scenes {
		names[i] = s.ID
	}
	return names
}

func defaultSamplingConfig() core.SamplingConfig {
	return core.SamplingConfig{
		Width:           400,
		SamplesPerPixel: 100,
		PixelExtent:     1,
	}
}

// newScene applies opts to the scene defaults and builds the camera.
// Height follows the aspect ratio unless given explicitly.
func newScene(cameraConfig geometry.CameraConfig, sampling core.SamplingConfig, opts Options) (*Scene, error) {
	if opts.Width > 0 {
		sampling.Width = opts.Width
	}
	if opts.SamplesPerPixel != 0 {
		sampling.SamplesPerPixel = opts.SamplesPerPixel
	}
	if opts.PixelExtent != 0 {
		sampling.PixelExtent = opts.PixelExtent
	}

	switch {
	case opts.Height > 0:
		sampling.Height = opts.Height
		cameraConfig.AspectRatio = float64(sampling.Width) / float64(opts.Height)
	case opts.AspectRatio > 0:
		cameraConfig.AspectRatio = opts.AspectRatio
		sampling.Height = int(float64(sampling.Width) / opts.AspectRatio)
	default:
		sampling.Height = int(float64(sampling.Width) / cameraConfig.AspectRatio)
	}

	if opts.Projection != nil {
		cameraConfig.Projection = *opts.Projection
	}

	camera, err := geometry.NewCamera(cameraConfig)
	if err != nil {
		return nil, err
	}

	lighting := core.DefaultLighting()
	if opts.Lighting != nil {
		lighting = *opts.Lighting
	}

	return &Scene{
		Camera:         camera,
		Shapes:         make([]core.Shape, 0),
		Lighting:       lighting,
		SamplingConfig: sampling,
		CameraConfig:   cameraConfig,
	}, nil
}
