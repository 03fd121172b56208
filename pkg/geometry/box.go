package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// faceEpsilon is the tolerance used to match a point to a cube face
const faceEpsilon = 1e-6

// Cube is an axis-aligned cube given by its center and edge length
type Cube struct {
	Center   core.Vec3
	Scale    float64 // Edge length
	Material int
	bounds   core.AABB // Cached six-plane bounds
}

// NewCube creates a new axis-aligned cube
func NewCube(center core.Vec3, scale float64, material int) *Cube {
	return &Cube{
		Center:   center,
		Scale:    scale,
		Material: material,
		bounds:   core.NewAABBFromCenter(center, scale),
	}
}

// Bounds returns the cube's axis-aligned bounds
func (c *Cube) Bounds() core.AABB {
	return c.bounds
}

// Intersect uses the slab method. A ray starting inside reports the exit face.
func (c *Cube) Intersect(ray core.Ray) float64 {
	tNear, tFar, ok := c.bounds.Slab(ray)
	if !ok || tFar <= 0 {
		return NoHit
	}
	if tNear <= 0 {
		return validT(tFar)
	}
	return validT(tNear)
}

// NormalAt returns the ± unit axis of the face the point lies on
func (c *Cube) NormalAt(point core.Vec3) core.Vec3 {
	half := c.Scale / 2
	if half <= 0 {
		return core.Vec3{}
	}

	offset := point.Subtract(c.Center)
	bestAxis := -1
	bestRatio := 0.0

	// Pick the axis whose offset is closest to (or beyond) the half extent
	for axis := 0; axis < 3; axis++ {
		d := math.Abs(offset.Component(axis))
		if d < half-faceEpsilon {
			continue
		}
		if ratio := d / half; ratio > bestRatio {
			bestRatio = ratio
			bestAxis = axis
		}
	}

	if bestAxis < 0 {
		// Interior point: not on any face
		return core.Vec3{}
	}

	normal := [3]float64{}
	normal[bestAxis] = math.Copysign(1, offset.Component(bestAxis))
	return core.NewVec3(normal[0], normal[1], normal[2])
}

// MaterialIndex returns the cube's material index
func (c *Cube) MaterialIndex() int {
	return c.Material
}
