package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestPlane_Hit_BasicIntersection(t *testing.T) {
	// Horizontal plane at y=0 with an unnormalized normal
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 3, 0), testMaterial)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	hit, isHit := plane.Hit(ray, 0, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if !scalar.EqualWithinAbs(hit.T, 1, 1e-9) {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normalized normal (0,1,0), got %v", hit.Normal)
	}
	if hit.Point != core.NewVec3(0, 0, 0) {
		t.Errorf("Expected hit point at origin, got %v", hit.Point)
	}
}

func TestPlane_Hit_ParallelRayNeverHits(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, -400), core.NewVec3(0, 0, 1), testMaterial)

	origins := []core.Vec3{
		core.NewVec3(0, 0, 10),
		core.NewVec3(5, -3, -400), // in the plane
		core.NewVec3(1e4, 1e4, -1e4),
	}
	directions := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(-3, 4, 0),
	}

	for _, o := range origins {
		for _, d := range directions {
			if hit, isHit := plane.Hit(core.NewRay(o, d), math.Inf(-1), math.Inf(1)); isHit {
				t.Errorf("origin %v dir %v: expected miss for parallel ray, got t=%f", o, d, hit.T)
			}
		}
	}
}

func TestPlane_Hit_BehindRay(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))

	// negative t is rejected even with an open lower bound
	if hit, isHit := plane.Hit(ray, math.Inf(-1), math.Inf(1)); isHit {
		t.Errorf("Expected miss for intersection behind ray, but got hit at t=%f", hit.T)
	}
}

func TestPlane_Hit_NormalNotFlipped(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial)
	ray := core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0))

	hit, isHit := plane.Hit(ray, 0, 10)
	if !isHit {
		t.Fatal("Expected hit from below")
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected declared normal, got %v", hit.Normal)
	}
}

func TestPlane_Hit_Bounds(t *testing.T) {
	plane := NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), testMaterial)
	ray := core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0))

	if _, ok := plane.Hit(ray, 0, 1.5); ok {
		t.Error("Expected miss beyond tMax")
	}
	if _, ok := plane.Hit(ray, 0, 2); !ok {
		t.Error("Expected hit at inclusive tMax")
	}
}

func TestPlane_Validate(t *testing.T) {
	if err := NewPlane(core.Vec3{}, core.Vec3{}, testMaterial).Validate(); !errors.Is(err, ErrZeroNormal) {
		t.Errorf("Expected ErrZeroNormal, got %v", err)
	}
}
