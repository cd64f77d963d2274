package scene

import (
	"fmt"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// Scene contains all the elements needed for rendering.
// Its composition is fixed once rendering starts.
type Scene struct {
	Camera         *geometry.Camera
	Shapes         []core.Shape // Objects in the scene, in insertion order
	Lighting       core.Lighting
	SamplingConfig core.SamplingConfig
	CameraConfig   geometry.CameraConfig
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...core.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() core.Camera {
	return s.Camera
}

// GetShapes returns the shapes in insertion order
func (s *Scene) GetShapes() []core.Shape {
	return s.Shapes
}

// Hit returns the nearest intersection among all shapes.
// The search window shrinks to every closer hit, and a shape registered
// later only wins by being strictly closer.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		hit, isHit := shape.Hit(ray, tMin, closestSoFar)
		if isHit && (closestHit == nil || hit.T < closestSoFar) {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Validate checks the scene preconditions: a camera, valid shapes and a
// valid sampling configuration
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("scene has no camera")
	}
	for i, shape := range s.Shapes {
		if v, ok := shape.(geometry.Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("shape %d (%T): %w", i, shape, err)
			}
		}
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("sampling config: %w", err)
	}
	return nil
}

// GetPrimitiveCount returns the number of shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
