package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// NewDefaultScene creates the perspective scene: a triangle, a blue sphere
// and a large ground sphere seen from above and to the left
func NewDefaultScene(opts Options) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(-250, 250, 400),
		ViewDir:       core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		FocalDistance: 1,
		AspectRatio:   16.0 / 9.0,
		Projection:    geometry.Perspective,
	}

	s, err := newScene(defaultCameraConfig, defaultSamplingConfig(), opts)
	if err != nil {
		return nil, err
	}

	groundBlue := core.NewVec3(66.0/255.0, 221.0/255.0, 245.0/255.0)
	white := core.NewVec3(1, 1, 1)

	s.Add(
		geometry.NewTriangle(
			core.NewVec3(-50, -50, 100),
			core.NewVec3(-100, -150, 100),
			core.NewVec3(0, -150, 100),
			core.NewMaterial(core.NewVec3(0.5, 0.4, 0.8), core.NewVec3(0.5, 0.5, 0.5)),
		),
		geometry.NewSphere(core.NewVec3(-50, 0, 0), 49.99, core.NewMaterial(core.NewVec3(0, 0, 1), white)),
		geometry.NewSphere(core.NewVec3(0, -100.5, 0), 100, core.NewMaterial(groundBlue, white)),
	)

	return s, nil
}

// NewShapesScene is the default scene's geometry under an orthographic camera
func NewShapesScene(opts Options) (*Scene, error) {
	if opts.Projection == nil {
		ortho := geometry.Orthographic
		opts.Projection = &ortho
	}
	return NewDefaultScene(opts)
}
