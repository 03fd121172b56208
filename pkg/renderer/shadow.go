package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ShadowBias is how far secondary rays start from the surface they leave
const ShadowBias = 0.0008

// SoftShadowSampler estimates how much of an area light is visible from a
// shading point by stratified sampling of the light's square footprint
type SoftShadowSampler struct {
	scene  *scene.Scene
	policy ShadowPolicy
}

// NewSoftShadowSampler creates a sampler; a nil policy means binary occlusion
func NewSoftShadowSampler(s *scene.Scene, policy ShadowPolicy) *SoftShadowSampler {
	if policy == nil {
		policy = BinaryOcclusion{}
	}
	return &SoftShadowSampler{scene: s, policy: policy}
}

// Fraction returns the visible fraction of the light in [0,1]. The footprint
// is a square of side light.Radius centered on the light and perpendicular to
// the point-to-light direction, split into an N×N grid with one jittered
// sample per cell.
func (ss *SoftShadowSampler) Fraction(point core.Vec3, light scene.Light, sampler core.Sampler) float64 {
	n := ss.scene.Settings.ShadowRays
	if n < 1 {
		n = 1
	}

	u, v := core.OrthonormalBasis(light.Position.Subtract(point).Normalize())

	cell := light.Radius / float64(n)
	half := light.Radius / 2
	corner := light.Position.Subtract(u.Multiply(half)).Subtract(v.Multiply(half))

	accumulated := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			jitter := sampler.Get2D()
			sample := corner.
				Add(u.Multiply((float64(i) + jitter.X) * cell)).
				Add(v.Multiply((float64(j) + jitter.Y) * cell))

			accumulated += ss.transmittance(point, sample)
		}
	}

	return accumulated / float64(n*n)
}

// transmittance traces a single shadow ray from point to sample
func (ss *SoftShadowSampler) transmittance(point, sample core.Vec3) float64 {
	toSample := sample.Subtract(point)
	distance := toSample.Length()
	if distance == 0 {
		return 1
	}

	ray := core.NewRay(point, toSample.Multiply(1/distance)).Offset(ShadowBias)
	return ss.policy.Transmittance(ss.scene, ray.Origin, ray.Direction, distance)
}

// LightVisibility blends the visible fraction with the light's shadow
// intensity: (1 − intensity) + fraction·intensity
func (ss *SoftShadowSampler) LightVisibility(point core.Vec3, light scene.Light, sampler core.Sampler) float64 {
	if light.ShadowIntensity == 0 {
		return 1
	}
	fraction := ss.Fraction(point, light, sampler)
	return (1 - light.ShadowIntensity) + fraction*light.ShadowIntensity
}
