package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Hit is the nearest intersection of a ray with the scene
type Hit struct {
	Ray     core.Ray
	T       float64
	Point   core.Vec3
	Surface geometry.Surface
}

// Nearest scans every surface and returns the closest positive intersection.
// On a miss it returns false and a Hit whose T is geometry.NoHit.
func Nearest(surfaces []geometry.Surface, ray core.Ray) (Hit, bool) {
	closest := geometry.NoHit
	var owner geometry.Surface

	for _, surface := range surfaces {
		t := surface.Intersect(ray)
		if geometry.IsHit(t) && t < closest {
			closest = t
			owner = surface
		}
	}

	if owner == nil {
		return Hit{Ray: ray, T: geometry.NoHit}, false
	}

	return Hit{
		Ray:     ray,
		T:       closest,
		Point:   ray.At(closest),
		Surface: owner,
	}, true
}

// ShadowPolicy decides how much light passes along a segment from origin in
// direction dir (unit) over the given distance. Surfaces at or beyond the
// distance do not block.
type ShadowPolicy interface {
	Transmittance(s *scene.Scene, origin, dir core.Vec3, distance float64) float64
}

// BinaryOcclusion blocks the segment completely if any surface lies on it
type BinaryOcclusion struct{}

// Transmittance returns 0 if any surface is hit before distance, 1 otherwise
func (BinaryOcclusion) Transmittance(s *scene.Scene, origin, dir core.Vec3, distance float64) float64 {
	ray := core.NewRay(origin, dir)
	for _, surface := range s.Surfaces {
		if t := surface.Intersect(ray); geometry.IsHit(t) && t < distance {
			return 0
		}
	}
	return 1
}

// TransparencyAttenuation lets light through transparent surfaces, multiplying
// the transmittance by the transparency of every surface on the segment
type TransparencyAttenuation struct{}

// Transmittance returns the product of the transparencies of the surfaces hit
func (TransparencyAttenuation) Transmittance(s *scene.Scene, origin, dir core.Vec3, distance float64) float64 {
	ray := core.NewRay(origin, dir)
	transmittance := 1.0
	for _, surface := range s.Surfaces {
		if t := surface.Intersect(ray); geometry.IsHit(t) && t < distance {
			transmittance *= s.MaterialOf(surface).Transparency
			if transmittance == 0 {
				return 0
			}
		}
	}
	return transmittance
}

// ShadowPolicyFor returns the transparency-weighted policy when transparent is
// set and binary occlusion otherwise
func ShadowPolicyFor(transparent bool) ShadowPolicy {
	if transparent {
		return TransparencyAttenuation{}
	}
	return BinaryOcclusion{}
}
