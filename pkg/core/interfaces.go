package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material holds the flat per-primitive reflectance terms
type Material struct {
	Kd Vec3 // Diffuse reflectance
	Ld Vec3 // Light color modulation
}

// NewMaterial creates a new flat material
func NewMaterial(kd, ld Vec3) Material {
	return Material{Kd: kd, Ld: ld}
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T      float64 // Ray parameter at the hit
	Point  Vec3    // Hit point
	Normal Vec3    // Surface normal as computed by the shape, not face-corrected
	Material
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Camera generates primary rays for pixel-space coordinates
type Camera interface {
	GetRay(x, y float64) Ray
}

// Scene is the read-only view of a scene used while rendering
type Scene interface {
	GetCamera() Camera
	GetShapes() []Shape
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
}

// Integrator computes the color carried back along a primary ray
type Integrator interface {
	RayColor(ray Ray, scene Scene) Vec3
}

// Lighting holds the single point light and the ambient terms.
// It is an immutable value handed to the shading integrator.
type Lighting struct {
	Ka            Vec3 // Ambient reflectance
	La            Vec3 // Ambient light color
	LightPosition Vec3
}

// DefaultLighting returns the lighting used by the built-in scenes
func DefaultLighting() Lighting {
	return Lighting{
		Ka:            NewVec3(0.5, 0.3, 0.7),
		La:            NewVec3(0.4, 0.23, 0.1),
		LightPosition: NewVec3(-500, -200, 1200),
	}
}
