package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// NewMirrorScene creates two facing mirror walls with a sphere and a cube
// between them, producing a corridor of recursive reflections
func NewMirrorScene() *Scene {
	s := NewScene(&Camera{
		Position:       core.NewVec3(0, 1.5, 7),
		LookAt:         core.NewVec3(0, 0.5, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 1.2,
		ScreenWidth:    1.6,
	})

	s.Settings = Settings{
		Background:   core.NewVec3(0.05, 0.05, 0.1),
		ShadowRays:   3,
		MaxRecursion: 8,
	}

	mirror := s.AddMaterial(Material{
		Diffuse:    core.NewVec3(0.02, 0.02, 0.02),
		Specular:   core.NewVec3(0.3, 0.3, 0.3),
		Reflection: core.NewVec3(0.85, 0.85, 0.9),
		Shininess:  100,
	})
	floor := s.AddMaterial(Material{
		Diffuse:   core.NewVec3(0.6, 0.6, 0.55),
		Specular:  core.NewVec3(0.1, 0.1, 0.1),
		Shininess: 5,
	})
	gold := s.AddMaterial(Material{
		Diffuse:    core.NewVec3(0.8, 0.6, 0.2),
		Specular:   core.NewVec3(1, 0.9, 0.6),
		Reflection: core.NewVec3(0.2, 0.15, 0.05),
		Shininess:  60,
	})
	teal := s.AddMaterial(Material{
		Diffuse:   core.NewVec3(0.1, 0.6, 0.6),
		Specular:  core.NewVec3(0.5, 0.5, 0.5),
		Shininess: 20,
	})

	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(1, 0, 0), -3, mirror))
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(-1, 0, 0), -3, mirror))
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(0, 1, 0), -1, floor))
	s.AddSurface(geometry.NewSphere(core.NewVec3(-0.8, 0, 0), 1, gold))
	s.AddSurface(geometry.NewCube(core.NewVec3(1.2, -0.4, 0.8), 1.2, teal))

	s.AddLight(Light{
		Position:          core.NewVec3(0, 5, 3),
		Color:             core.NewVec3(1, 1, 1),
		SpecularIntensity: 1,
		ShadowIntensity:   0.85,
		Radius:            1.5,
	})

	return s
}
