package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NoHit is the distance reported when a ray misses a surface.
// It is never confused with a valid close hit.
var NoHit = math.Inf(1)

// Surface is implemented by every primitive that can be hit by rays.
// The set of implementations is closed: Sphere, InfinitePlane, Cube and Triangle.
type Surface interface {
	// Intersect returns the smallest positive distance along the ray, or NoHit
	Intersect(ray core.Ray) float64
	// NormalAt returns the unit surface normal at a point on the surface
	NormalAt(point core.Vec3) core.Vec3
	// MaterialIndex returns the 0-based index into the scene's materials
	MaterialIndex() int
}

// validT filters degenerate distances: zero, negative, NaN and infinite values
// are all reported as NoHit.
func validT(t float64) float64 {
	if t <= 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return NoHit
	}
	return t
}

// IsHit reports whether t is a real intersection distance
func IsHit(t float64) bool {
	return t > 0 && !math.IsInf(t, 0) && !math.IsNaN(t)
}
