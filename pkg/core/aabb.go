package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABBFromCenter creates a cube-shaped AABB with the given edge length
func NewAABBFromCenter(center Vec3, edge float64) AABB {
	half := NewVec3(edge/2, edge/2, edge/2)
	return AABB{Min: center.Subtract(half), Max: center.Add(half)}
}

// bound returns the lower (0) or upper (1) bound along an axis
func (aabb AABB) bound(axis, side int) float64 {
	if side == 0 {
		return aabb.Min.Component(axis)
	}
	return aabb.Max.Component(axis)
}

// Slab intersects the ray with the box using the slab method and returns the
// entry and exit distances along the ray. ok is false when the per-axis
// intervals do not overlap.
//
// Division by a zero direction component yields ±Inf, which orders the
// bounds correctly for rays parallel to a slab; a NaN (origin exactly on a
// parallel slab plane) is treated as a miss.
func (aabb AABB) Slab(ray Ray) (tNear, tFar float64, ok bool) {
	tNear = math.Inf(-1)
	tFar = math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		invDirection := 1.0 / ray.Direction.Component(axis)
		origin := ray.Origin.Component(axis)

		// Index the lower bound first when the direction is positive
		sign := 0
		if invDirection < 0 {
			sign = 1
		}

		t0 := (aabb.bound(axis, sign) - origin) * invDirection
		t1 := (aabb.bound(axis, 1-sign) - origin) * invDirection
		if math.IsNaN(t0) || math.IsNaN(t1) {
			return 0, 0, false
		}

		if tNear > t1 || t0 > tFar {
			return 0, 0, false
		}
		if t0 > tNear {
			tNear = t0
		}
		if t1 < tFar {
			tFar = t1
		}
	}

	return tNear, tFar, true
}
