package integrator

import (
	"math"

	"github.com/df07/go-raycaster/pkg/core"
)

// ShadowBias is how far a shadow ray starts from the surface, along the light direction
const ShadowBias = 1e-5

// BlinnPhongIntegrator shades the nearest hit with ambient and diffuse terms
// from a single point light, and returns black for points in shadow
type BlinnPhongIntegrator struct {
	lighting         core.Lighting
	backgroundBottom core.Vec3
	backgroundTop    core.Vec3
}

// NewBlinnPhongIntegrator creates an integrator lit by lighting
func NewBlinnPhongIntegrator(lighting core.Lighting) *BlinnPhongIntegrator {
	return &BlinnPhongIntegrator{
		lighting:         lighting,
		backgroundBottom: DefaultBackgroundBottom,
		backgroundTop:    DefaultBackgroundTop,
	}
}

// WithBackground returns a copy of the integrator using a different sky gradient
func (bp *BlinnPhongIntegrator) WithBackground(bottom, top core.Vec3) *BlinnPhongIntegrator {
	c := *bp
	c.backgroundBottom = bottom
	c.backgroundTop = top
	return &c
}

// Lighting returns the lighting the integrator was created with
func (bp *BlinnPhongIntegrator) Lighting() core.Lighting {
	return bp.lighting
}

// RayColor returns the color seen along a primary ray
func (bp *BlinnPhongIntegrator) RayColor(ray core.Ray, scene core.Scene) core.Vec3 {
	hit, isHit := scene.Hit(ray, 0, math.Inf(1))
	if !isHit {
		return backgroundGradient(ray, bp.backgroundBottom, bp.backgroundTop)
	}

	if bp.InShadow(hit.Point, scene) {
		return core.Vec3{}
	}

	return bp.Shade(hit)
}

// InShadow reports whether anything lies between point and the light.
// Any hit at t > 0 along the shadow ray counts, including past the light.
func (bp *BlinnPhongIntegrator) InShadow(point core.Vec3, scene core.Scene) bool {
	toLight := bp.lighting.LightPosition.Subtract(point).Normalize()
	shadowRay := core.NewRay(point.Add(toLight.Multiply(ShadowBias)), toLight)
	_, blocked := scene.Hit(shadowRay, 0, math.Inf(1))
	return blocked
}

// Shade evaluates ka*la + kd*max(0, L·N)*ld, clamped to [0,1]
func (bp *BlinnPhongIntegrator) Shade(hit *core.HitRecord) core.Vec3 {
	l := bp.lighting.LightPosition.Subtract(hit.Point).Normalize()
	n := hit.Normal.Normalize()

	diffuse := max(0, l.Dot(n))
	ambient := bp.lighting.Ka.MultiplyVec(bp.lighting.La)
	color := ambient.Add(hit.Kd.Multiply(diffuse).MultiplyVec(hit.Ld))

	return color.Clamp(0, 1)
}
