package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"gonum.org/v1/gonum/floats/scalar"
)

// MockShape implements core.Shape for testing
type MockShape struct {
	hitFn func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return m.hitFn(ray, tMin, tMax)
}

// fixedHit returns a shape that reports a hit at t whenever t is inside the window
func fixedHit(t float64, kd core.Vec3) MockShape {
	return MockShape{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		if t <= tMin || t > tMax {
			return nil, false
		}
		return &core.HitRecord{T: t, Point: ray.At(t), Material: core.NewMaterial(kd, kd)}, true
	}}
}

func TestScene_Hit_Empty(t *testing.T) {
	s := &Scene{}
	if hit, ok := s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0, math.Inf(1)); ok || hit != nil {
		t.Errorf("Expected no hit in an empty scene, got %v", hit)
	}
}

func TestScene_Hit_NearestWins(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	tests := []struct {
		name   string
		shapes []core.Shape
		wantT  float64
		wantKd core.Vec3
	}{
		{"closer first", []core.Shape{fixedHit(2, red), fixedHit(5, green)}, 2, red},
		{"closer last", []core.Shape{fixedHit(5, green), fixedHit(2, red)}, 2, red},
		{"tie keeps first registered", []core.Shape{fixedHit(3, green), fixedHit(3, red)}, 3, green},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scene{}
			s.Add(tt.shapes...)
			hit, ok := s.Hit(ray, 0, math.Inf(1))
			if !ok {
				t.Fatal("Expected hit")
			}
			if hit.T != tt.wantT || hit.Kd != tt.wantKd {
				t.Errorf("Expected t=%f kd=%v, got t=%f kd=%v", tt.wantT, tt.wantKd, hit.T, hit.Kd)
			}
		})
	}
}

func TestScene_Hit_OverlappingPrimitives(t *testing.T) {
	near := core.NewMaterial(core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 1))
	far := core.NewMaterial(core.NewVec3(0, 0, 1), core.NewVec3(1, 1, 1))

	s := &Scene{}
	s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, 1), far),
		geometry.NewSphere(core.NewVec3(0, 0, -10), 3, near),
		geometry.NewTriangle(core.NewVec3(-1, -1, -4), core.NewVec3(1, -1, -4), core.NewVec3(0, 1, -4), near),
	)

	hit, ok := s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	if !scalar.EqualWithinAbs(hit.T, 4, 1e-9) {
		t.Errorf("Expected the triangle at t=4, got t=%f", hit.T)
	}

	// off to the side only the plane and sphere overlap
	hit, ok = s.Hit(core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 0, -1)), 0, math.Inf(1))
	if !ok {
		t.Fatal("Expected hit")
	}
	want := 10 - math.Sqrt(9-4)
	if !scalar.EqualWithinAbs(hit.T, want, 1e-9) || hit.Kd != near.Kd {
		t.Errorf("Expected the sphere at t=%f, got t=%f kd=%v", want, hit.T, hit.Kd)
	}
}

func TestScene_Hit_RespectsWindow(t *testing.T) {
	s := &Scene{}
	s.Add(fixedHit(2, core.NewVec3(1, 1, 1)))
	if _, ok := s.Hit(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), 0, 1); ok {
		t.Error("Expected no hit beyond tMax")
	}
}

func TestScene_Validate(t *testing.T) {
	s, err := Create("plane", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	s.Add(geometry.NewSphere(core.Vec3{}, 0, core.Material{}))
	if err := s.Validate(); !errors.Is(err, geometry.ErrNonPositiveRadius) {
		t.Errorf("Expected ErrNonPositiveRadius, got %v", err)
	}

	s2, _ := Create("plane", Options{SamplesPerPixel: 8})
	if err := s2.Validate(); !errors.Is(err, core.ErrNotPerfectSquare) {
		t.Errorf("Expected ErrNotPerfectSquare, got %v", err)
	}

	if err := (&Scene{}).Validate(); err == nil {
		t.Error("Expected error for scene without camera")
	}
}
