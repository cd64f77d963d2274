package scene

import (
	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// NewPlaneScene creates a single infinite plane at z=-400 facing +z,
// viewed by an orthographic camera at (0,0,10) looking down -z
func NewPlaneScene(opts Options) (*Scene, error) {
	defaultCameraConfig := geometry.CameraConfig{
		Center:        core.NewVec3(0, 0, 10),
		ViewDir:       core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		FocalDistance: 1,
		AspectRatio:   16.0 / 9.0,
		Projection:    geometry.Orthographic,
	}

	s, err := newScene(defaultCameraConfig, defaultSamplingConfig(), opts)
	if err != nil {
		return nil, err
	}

	s.Add(geometry.NewPlane(
		core.NewVec3(0, 0, -400),
		core.NewVec3(0, 0, 1),
		core.NewMaterial(core.NewVec3(0.8, 0.5, 0.8), core.NewVec3(1, 0.4, 0.6)),
	))

	return s, nil
}
