package geometry

import (
	"errors"

	"github.com/df07/go-raycaster/pkg/core"
)

// Epsilon is the self-intersection guard applied above tMin by every shape
const Epsilon = 1e-5

// Precondition errors reported by Validate
var (
	ErrNonPositiveRadius  = errors.New("sphere radius must be positive")
	ErrDegenerateTriangle = errors.New("triangle vertices are collinear")
	ErrZeroNormal         = errors.New("plane normal must be non-zero")
)

// Validator is implemented by shapes that can check their construction preconditions
type Validator interface {
	Validate() error
}

// inRange is the acceptance window shared by all shapes: values within
// Epsilon of tMin are rejected, tMax itself is accepted.
func inRange(t, tMin, tMax float64) bool {
	return t > tMin+Epsilon && t <= tMax
}

// newHitRecord fills a hit record for parameter t along ray
func newHitRecord(ray core.Ray, t float64, normal core.Vec3, mat core.Material) *core.HitRecord {
	return &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   normal,
		Material: mat,
	}
}
