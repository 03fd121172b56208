package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   int
	plane      *InfinitePlane // Cached supporting plane
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material int) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
	}

	// Precompute the supporting plane so that N·V0 = offset
	normal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	t.plane = NewInfinitePlane(normal, normal.Dot(v0), material)

	return t
}

// Intersect finds the plane distance and then checks the hit point against
// the three edge half-spaces formed with the ray origin
func (t *Triangle) Intersect(ray core.Ray) float64 {
	// Zero-area triangles have no plane
	if t.plane.Normal.IsZero() {
		return NoHit
	}

	dist := t.plane.Intersect(ray)
	if !IsHit(dist) {
		return NoHit
	}

	p := ray.At(dist)
	s0 := edgeSide(ray.Origin, t.V0, t.V1, p)
	s1 := edgeSide(ray.Origin, t.V1, t.V2, p)
	s2 := edgeSide(ray.Origin, t.V2, t.V0, p)

	// Inside when all three agree in sign; winding order does not matter
	if (s0 >= 0 && s1 >= 0 && s2 >= 0) || (s0 <= 0 && s1 <= 0 && s2 <= 0) {
		return dist
	}
	return NoHit
}

// edgeSide returns which side of the plane through origin, a and b the point lies on
func edgeSide(origin, a, b, point core.Vec3) float64 {
	n := a.Subtract(origin).Cross(b.Subtract(origin))
	return n.Dot(point.Subtract(origin))
}

// NormalAt returns the triangle's fixed plane normal
func (t *Triangle) NormalAt(point core.Vec3) core.Vec3 {
	return t.plane.Normal
}

// MaterialIndex returns the triangle's material index
func (t *Triangle) MaterialIndex() int {
	return t.Material
}
