package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// NewDefaultScene creates a single unit sphere at the origin lit from directly
// above, seen from a camera on the +Z axis
func NewDefaultScene() *Scene {
	s := NewScene(&Camera{
		Position:       core.NewVec3(0, 0, 5),
		LookAt:         core.NewVec3(0, 0, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 1.5,
		ScreenWidth:    1.5,
	})

	s.Settings = Settings{
		Background:   core.NewVec3(0, 0, 0),
		ShadowRays:   4,
		MaxRecursion: 4,
	}

	red := s.AddMaterial(Material{
		Diffuse:   core.NewVec3(0.9, 0.2, 0.2),
		Specular:  core.NewVec3(1, 1, 1),
		Shininess: 30,
	})

	s.AddSurface(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, red))

	s.AddLight(Light{
		Position:          core.NewVec3(0, 5, 0),
		Color:             core.NewVec3(1, 1, 1),
		SpecularIntensity: 1,
		ShadowIntensity:   0.9,
		Radius:            1,
	})
	s.AddLight(Light{
		Position:          core.NewVec3(0, 2, 6),
		Color:             core.NewVec3(0.6, 0.6, 0.6),
		SpecularIntensity: 0.5,
		ShadowIntensity:   0.5,
		Radius:            0.5,
	})

	return s
}
