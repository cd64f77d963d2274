package integrator

import "github.com/df07/go-raycaster/pkg/core"

// Integrator defines the interface for shading algorithms
type Integrator = core.Integrator

var (
	// DefaultBackgroundBottom is the horizon color of the sky gradient
	DefaultBackgroundBottom = core.NewVec3(1.0, 1.0, 1.0)
	// DefaultBackgroundTop is the zenith color of the sky gradient
	DefaultBackgroundTop = core.NewVec3(0.5, 0.7, 1.0)
)

// backgroundGradient returns a vertical gradient color based on ray direction
func backgroundGradient(r core.Ray, bottomColor, topColor core.Vec3) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return bottomColor.Lerp(topColor, t)
}
