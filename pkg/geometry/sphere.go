package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material int
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material int) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect uses the geometric method. A ray starting inside the sphere
// reports the exit point; otherwise a sphere behind the origin is rejected
// early.
func (s *Sphere) Intersect(ray core.Ray) float64 {
	// Vector from ray origin to sphere center
	l := s.Center.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)
	r2 := s.Radius * s.Radius
	inside := l.LengthSquared() < r2

	if tca < 0 && !inside {
		return NoHit
	}

	// Squared distance from the center to the ray
	d2 := l.LengthSquared() - tca*tca
	if d2 > r2 {
		return NoHit
	}

	thc := math.Sqrt(r2 - d2)
	t1 := tca - thc
	t2 := tca + thc

	if t1 > 0 {
		return validT(t1)
	}
	return validT(t2)
}

// NormalAt returns the outward normal at a point on the sphere
func (s *Sphere) NormalAt(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Normalize()
}

// MaterialIndex returns the sphere's material index
func (s *Sphere) MaterialIndex() int {
	return s.Material
}
