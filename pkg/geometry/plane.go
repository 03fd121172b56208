package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// parallelEpsilon bounds |N·D| below which a ray is treated as parallel
const parallelEpsilon = 1e-12

// InfinitePlane is the set of points P with N·P + D = 0
type InfinitePlane struct {
	Normal   core.Vec3 // Unit normal
	D        float64   // Signed offset in the plane equation
	Material int
}

// NewInfinitePlane creates a plane from the scene form N·P = offset
func NewInfinitePlane(normal core.Vec3, offset float64, material int) *InfinitePlane {
	n := normal.Normalize()

	// Keep the equation consistent when the supplied normal was not unit length
	length := normal.Length()
	if length > 0 {
		offset /= length
	}

	return &InfinitePlane{
		Normal:   n,
		D:        -offset,
		Material: material,
	}
}

// Intersect solves t = -(N·O + D) / (N·Dir)
func (p *InfinitePlane) Intersect(ray core.Ray) float64 {
	denominator := p.Normal.Dot(ray.Direction)

	// Parallel rays never hit; the division would produce ±Inf
	if math.Abs(denominator) < parallelEpsilon {
		return NoHit
	}

	t := -(p.Normal.Dot(ray.Origin) + p.D) / denominator
	return validT(t)
}

// NormalAt returns the constant plane normal. Facing is resolved by the shader.
func (p *InfinitePlane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// MaterialIndex returns the plane's material index
func (p *InfinitePlane) MaterialIndex() int {
	return p.Material
}
