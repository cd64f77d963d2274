package integrator

import (
	"testing"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
	"github.com/df07/go-raycaster/pkg/scene"
	"gonum.org/v1/gonum/floats/scalar"
)

func vecNear(a, b core.Vec3, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

func groundScene(occluders ...core.Shape) *scene.Scene {
	s := &scene.Scene{}
	s.Add(geometry.NewPlane(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewMaterial(core.NewVec3(0.5, 0.25, 0.75), core.NewVec3(1, 1, 1)),
	))
	s.Add(occluders...)
	return s
}

func overheadLight() core.Lighting {
	return core.Lighting{LightPosition: core.NewVec3(0, 10, 0)}
}

func TestBlinnPhong_Background(t *testing.T) {
	bp := NewBlinnPhongIntegrator(core.DefaultLighting())
	empty := &scene.Scene{}

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight up", core.NewVec3(0, 1, 0), DefaultBackgroundTop},
		{"straight down", core.NewVec3(0, -3, 0), DefaultBackgroundBottom},
		{"horizon", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := bp.RayColor(core.NewRay(core.Vec3{}, tt.direction), empty)
			if !vecNear(color, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}
}

func TestBlinnPhong_Shadow(t *testing.T) {
	bp := NewBlinnPhongIntegrator(overheadLight())
	ray := core.NewRay(core.NewVec3(5, 5, 0), core.NewVec3(-1, -1, 0))
	occluder := geometry.NewSphere(core.NewVec3(0, 5, 0), 1, core.NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)))

	shadowed := bp.RayColor(ray, groundScene(occluder))
	if shadowed != (core.Vec3{}) {
		t.Errorf("Expected exactly black under the occluder, got %v", shadowed)
	}

	lit := bp.RayColor(ray, groundScene())
	if !vecNear(lit, core.NewVec3(0.5, 0.25, 0.75), 1e-9) {
		t.Errorf("Expected full diffuse color without the occluder, got %v", lit)
	}
}

func TestBlinnPhong_ShadowIgnoresAmbient(t *testing.T) {
	lighting := overheadLight()
	lighting.Ka = core.NewVec3(1, 1, 1)
	lighting.La = core.NewVec3(0.3, 0.3, 0.3)
	bp := NewBlinnPhongIntegrator(lighting)

	occluder := geometry.NewTriangle(
		core.NewVec3(-1, 5, -1), core.NewVec3(0, 5, 1), core.NewVec3(1, 5, -1),
		core.NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)),
	)
	color := bp.RayColor(core.NewRay(core.NewVec3(3, 3, 0), core.NewVec3(-1, -1, 0)), groundScene(occluder))
	if color != (core.Vec3{}) {
		t.Errorf("Shadowed points get no ambient term, got %v", color)
	}
}

func TestBlinnPhong_NoSelfShadowing(t *testing.T) {
	bp := NewBlinnPhongIntegrator(core.Lighting{LightPosition: core.NewVec3(0, 0, 1000)})
	s := &scene.Scene{}
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 100, core.NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1))))

	// hit the sphere on the side facing the light
	color := bp.RayColor(core.NewRay(core.NewVec3(0, 0, 500), core.NewVec3(0, 0, -1)), s)
	if !vecNear(color, core.NewVec3(1, 1, 1), 1e-9) {
		t.Errorf("Lit side of a sphere must not shadow itself, got %v", color)
	}
}

func TestBlinnPhong_Clamping(t *testing.T) {
	lighting := core.Lighting{
		Ka:            core.NewVec3(0.5, 0.5, -2),
		La:            core.NewVec3(1, 1, 1),
		LightPosition: core.NewVec3(0, 10, 0),
	}
	bp := NewBlinnPhongIntegrator(lighting)

	tests := []struct {
		name     string
		kd       core.Vec3
		normal   core.Vec3
		expected core.Vec3
	}{
		{"over-bright clamps to 1", core.NewVec3(2, 0.25, 5), core.NewVec3(0, 1, 0), core.NewVec3(1, 0.75, 1)},
		{"negative clamps to 0", core.NewVec3(-3, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 0)},
		{"facing away keeps ambient", core.NewVec3(1, 1, 1), core.NewVec3(0, -1, 0), core.NewVec3(0.5, 0.5, 0)},
		{"unnormalized normal", core.NewVec3(0.25, 0.25, 0.25), core.NewVec3(0, 7, 0), core.NewVec3(0.75, 0.75, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := &core.HitRecord{
				Point:    core.Vec3{},
				Normal:   tt.normal,
				Material: core.NewMaterial(tt.kd, core.NewVec3(1, 1, 1)),
			}
			color := bp.Shade(hit)
			if !vecNear(color, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
			for i := 0; i < 3; i++ {
				if c := color.Component(i); c < 0 || c > 1 {
					t.Errorf("Channel %d out of [0,1]: %f", i, c)
				}
			}
		})
	}
}

func TestBlinnPhong_DiffuseFalloff(t *testing.T) {
	bp := NewBlinnPhongIntegrator(core.Lighting{LightPosition: core.NewVec3(10, 10, 0)})
	hit := &core.HitRecord{
		Normal:   core.NewVec3(0, 1, 0),
		Material: core.NewMaterial(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1)),
	}
	// light at 45 degrees
	want := 1 / 1.4142135623730951
	color := bp.Shade(hit)
	if !scalar.EqualWithinAbs(color.X, want, 1e-12) {
		t.Errorf("Expected cos(45°)=%f, got %f", want, color.X)
	}
}

func TestBlinnPhong_WithBackground(t *testing.T) {
	bp := NewBlinnPhongIntegrator(core.DefaultLighting()).WithBackground(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	color := bp.RayColor(core.NewRay(core.Vec3{}, core.NewVec3(0, 1, 0)), &scene.Scene{})
	if !vecNear(color, core.NewVec3(1, 0, 0), 1e-12) {
		t.Errorf("Expected custom top color, got %v", color)
	}
	if bp.Lighting() != core.DefaultLighting() {
		t.Errorf("WithBackground must keep the lighting")
	}
}
