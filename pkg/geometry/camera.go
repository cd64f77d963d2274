package geometry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
)

// Projection selects how primary rays leave the camera
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

// ErrParallelUpVector is returned when the view direction and up vector
// cannot span a camera frame
var ErrParallelUpVector = errors.New("view direction and up vector are parallel")

// ErrUnknownProjection is returned by ParseProjection
var ErrUnknownProjection = errors.New("unknown projection")

func (p Projection) String() string {
	switch p {
	case Orthographic:
		return "orthographic"
	case Perspective:
		return "perspective"
	}
	return fmt.Sprintf("Projection(%d)", int(p))
}

// ParseProjection accepts "ortho"/"orthographic"/"1" and "perspective"/"persp"/"0"
func ParseProjection(s string) (Projection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ortho", "orthographic", "1":
		return Orthographic, nil
	case "perspective", "persp", "0":
		return Perspective, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownProjection, s)
}

// CameraConfig contains all parameters for creating a camera
type CameraConfig struct {
	Center        core.Vec3  // Eye position
	ViewDir       core.Vec3  // Direction the camera looks along
	Up            core.Vec3  // World up, must not be parallel to ViewDir
	FocalDistance float64    // Distance from the eye to the view plane
	AspectRatio   float64    // Width / height of the image
	Projection    Projection // Orthographic or perspective
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// Projection has a meaningful zero value and is never merged.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if !override.Center.IsZero() {
		result.Center = override.Center
	}
	if !override.ViewDir.IsZero() {
		result.ViewDir = override.ViewDir
	}
	if !override.Up.IsZero() {
		result.Up = override.Up
	}
	if override.FocalDistance != 0 {
		result.FocalDistance = override.FocalDistance
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	return result
}

// Camera generates primary rays from an orthonormal view frame
type Camera struct {
	config  CameraConfig
	u, v, w core.Vec3
}

// NewCamera builds the right-handed frame w = -view, u = up × w, v = w × u
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.ViewDir.IsZero() {
		return nil, fmt.Errorf("camera: %w", ErrParallelUpVector)
	}
	w := config.ViewDir.Negate().Normalize()
	u := config.Up.Cross(w)
	if u.Length() < 1e-12 {
		return nil, fmt.Errorf("camera: %w: view %v, up %v", ErrParallelUpVector, config.ViewDir, config.Up)
	}
	u = u.Normalize()
	v := w.Cross(u)

	return &Camera{config: config, u: u, v: v, w: w}, nil
}

// GetRay generates the primary ray through view-plane coordinates (x, y)
func (c *Camera) GetRay(x, y float64) core.Ray {
	offset := c.u.Multiply(x).Add(c.v.Multiply(y))
	if c.config.Projection == Orthographic {
		return core.NewRay(c.config.Center.Add(offset), c.w.Negate())
	}
	direction := offset.Subtract(c.w.Multiply(c.config.FocalDistance)).Normalize()
	return core.NewRay(c.config.Center, direction)
}

// Basis returns the camera frame vectors
func (c *Camera) Basis() (u, v, w core.Vec3) {
	return c.u, c.v, c.w
}

// GetCameraForward returns the direction the camera looks along
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}
