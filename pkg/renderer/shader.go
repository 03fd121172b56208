package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Shader evaluates Phong direct lighting with soft shadows plus recursive
// mirror reflection and transparency
type Shader struct {
	scene   *scene.Scene
	shadows *SoftShadowSampler
}

// NewShader creates a shader for a validated scene
func NewShader(s *scene.Scene, policy ShadowPolicy) *Shader {
	return &Shader{
		scene:   s,
		shadows: NewSoftShadowSampler(s, policy),
	}
}

// Trace finds the nearest hit along ray and shades it, or returns the
// background color on a miss
func (sh *Shader) Trace(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	hit, ok := Nearest(sh.scene.Surfaces, ray)
	if !ok {
		return sh.scene.Settings.Background
	}
	return sh.Shade(hit, depth, sampler)
}

// Shade returns the clamped color at a hit. depth is the remaining recursion
// budget; at zero the background color is returned.
func (sh *Shader) Shade(hit Hit, depth int, sampler core.Sampler) core.Vec3 {
	if depth <= 0 {
		return sh.scene.Settings.Background
	}

	material := sh.scene.MaterialOf(hit.Surface)
	normal := facingNormal(hit)

	direct := sh.directLight(hit, normal, material, sampler)

	var transColor core.Vec3
	if material.Transparency > 0 {
		transColor = sh.Trace(transmittedRay(hit), depth-1, sampler).Clamp(0, 1)
	}

	var reflColor core.Vec3
	if material.Reflective() {
		reflColor = sh.Trace(reflectedRay(hit, normal), depth-1, sampler).
			Clamp(0, 1).
			MultiplyVec(material.Reflection)
	}

	tr := material.Transparency
	return direct.Multiply(1 - tr).
		Add(transColor.Multiply(tr)).
		Add(reflColor).
		Clamp(0, 1)
}

// directLight sums the diffuse and specular contributions of every light above
// the surface horizon, each scaled by its shadow visibility
func (sh *Shader) directLight(hit Hit, normal core.Vec3, material scene.Material, sampler core.Sampler) core.Vec3 {
	var color core.Vec3
	view := hit.Ray.Direction.Negate()

	for _, light := range sh.scene.Lights {
		toLight := light.Position.Subtract(hit.Point).Normalize()
		nDotL := normal.Dot(toLight)
		if nDotL < 0 {
			continue
		}

		diffuse := light.Color.MultiplyVec(material.Diffuse).Multiply(nDotL)

		mirror := normal.Multiply(2 * nDotL).Subtract(toLight)
		specBase := max(0, mirror.Dot(view))
		specular := material.Specular.
			MultiplyVec(light.Color).
			Multiply(math.Pow(specBase, material.Shininess) * light.SpecularIntensity)

		visibility := sh.shadows.LightVisibility(hit.Point, light, sampler)
		color = color.Add(diffuse.Add(specular).Multiply(visibility))
	}

	return color
}

// facingNormal returns the unit surface normal flipped to oppose the ray
func facingNormal(hit Hit) core.Vec3 {
	normal := hit.Surface.NormalAt(hit.Point)
	if normal.Dot(hit.Ray.Direction) > 0 {
		normal = normal.Negate()
	}
	return normal.Normalize()
}

// transmittedRay continues the incoming ray straight through the surface
func transmittedRay(hit Hit) core.Ray {
	return core.NewRay(hit.Point, hit.Ray.Direction).Offset(ShadowBias)
}

// reflectedRay mirrors the incoming ray about the normal: R = D − 2(N·D)N
func reflectedRay(hit Hit, normal core.Vec3) core.Ray {
	return core.NewRay(hit.Point, hit.Ray.Direction.Reflect(normal).Normalize()).Offset(ShadowBias)
}
