package geometry

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// planeEpsilon is the smallest |direction·normal| still treated as crossing
const planeEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3 // A point on the plane
	Normal   core.Vec3 // Normal vector, normalized at hit time
	Material core.Material
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal,
		Material: material,
	}
}

// Validate checks that the plane has a usable normal
func (p *Plane) Validate() error {
	if p.Normal.IsZero() {
		return ErrZeroNormal
	}
	return nil
}

// Hit tests if a ray intersects with the plane
func (p *Plane) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)
	if math.Abs(denominator) < planeEpsilon {
		return nil, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t < 0 || !inRange(t, tMin, tMax) {
		return nil, false
	}

	return newHitRecord(ray, t, p.Normal.Normalize(), p.Material), true
}
