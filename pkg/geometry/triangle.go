package geometry

import "github.com/df07/go-raycaster/pkg/core"

const (
	// parallelEpsilon bounds the Möller-Trumbore determinant
	parallelEpsilon = 1e-5
	// barycentricTolerance lets vertices and edges count as inside
	barycentricTolerance = 1e-9
)

// Triangle represents a single triangle defined by three vertices in
// counter-clockwise order. The winding decides which way the normal faces.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   core.Material
	normal     core.Vec3 // Cached normal vector
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}
	t.normal = t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0))
	if !t.normal.IsZero() {
		t.normal = t.normal.Normalize()
	}
	return t
}

// Validate checks that the triangle spans a non-zero area
func (t *Triangle) Validate() error {
	if t.normal.IsZero() {
		return ErrDegenerateTriangle
	}
	return nil
}

// GetNormal returns the triangle's unit normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in or parallel to the triangle's plane
	if a > -parallelEpsilon && a < parallelEpsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < -barycentricTolerance || u > 1+barycentricTolerance {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < -barycentricTolerance || u+v > 1+barycentricTolerance {
		return nil, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < 0 || !inRange(tHit, tMin, tMax) {
		return nil, false
	}

	return newHitRecord(ray, tHit, t.normal, t.Material), true
}
