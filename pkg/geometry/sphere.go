package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Validate checks that the sphere has a positive radius
func (s *Sphere) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("%w: %g", ErrNonPositiveRadius, s.Radius)
	}
	return nil
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil, false
	}

	// Stable form: q never subtracts two nearly equal numbers, which keeps
	// distant spheres from losing their radius to cancellation.
	q := -0.5 * (b + math.Copysign(math.Sqrt(discriminant), b))
	var t0, t1 float64
	if q != 0 {
		t0, t1 = q/a, c/q
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	root := t0
	if !inRange(root, tMin, tMax) {
		root = t1
		if !inRange(root, tMin, tMax) {
			return nil, false
		}
	}

	point := ray.At(root)
	normal := point.Subtract(s.Center).Divide(s.Radius)
	return newHitRecord(ray, root, normal, s.Material), true
}
