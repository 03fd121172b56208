package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// NewGlassScene creates transparent primitives of every kind over a checker of
// colored cubes, for exercising transparency and transparency-weighted shadows
func NewGlassScene() *Scene {
	s := NewScene(&Camera{
		Position:       core.NewVec3(0, 3, 8),
		LookAt:         core.NewVec3(0, 0, 0),
		Up:             core.NewVec3(0, 1, 0),
		ScreenDistance: 1.4,
		ScreenWidth:    1.4,
	})

	s.Settings = Settings{
		Background:   core.NewVec3(0.8, 0.85, 0.95),
		ShadowRays:   5,
		MaxRecursion: 6,
	}

	ground := s.AddMaterial(Material{
		Diffuse:   core.NewVec3(0.85, 0.85, 0.85),
		Specular:  core.NewVec3(0.2, 0.2, 0.2),
		Shininess: 10,
	})
	glass := s.AddMaterial(Material{
		Diffuse:      core.NewVec3(0.1, 0.1, 0.1),
		Specular:     core.NewVec3(1, 1, 1),
		Reflection:   core.NewVec3(0.1, 0.1, 0.1),
		Shininess:    120,
		Transparency: 0.8,
	})
	tinted := s.AddMaterial(Material{
		Diffuse:      core.NewVec3(0.2, 0.4, 0.9),
		Specular:     core.NewVec3(0.8, 0.8, 0.8),
		Shininess:    50,
		Transparency: 0.5,
	})
	warm := s.AddMaterial(Material{
		Diffuse:   core.NewVec3(0.9, 0.4, 0.1),
		Specular:  core.NewVec3(0.3, 0.3, 0.3),
		Shininess: 15,
	})
	cool := s.AddMaterial(Material{
		Diffuse:   core.NewVec3(0.2, 0.7, 0.3),
		Specular:  core.NewVec3(0.3, 0.3, 0.3),
		Shininess: 15,
	})

	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(0, 1, 0), -1, ground))

	// Colored cubes behind the glass objects
	for i := -2; i <= 2; i++ {
		mat := warm
		if i%2 == 0 {
			mat = cool
		}
		s.AddSurface(geometry.NewCube(core.NewVec3(float64(i)*1.2, -0.5, -2.5), 1, mat))
	}

	s.AddSurface(geometry.NewSphere(core.NewVec3(-1.5, 0, 0), 1, glass))
	s.AddSurface(geometry.NewCube(core.NewVec3(1.5, -0.25, 0), 1.5, tinted))
	s.AddSurface(geometry.NewTriangle(
		core.NewVec3(-0.6, -1, 1.5),
		core.NewVec3(0.6, -1, 1.5),
		core.NewVec3(0, 0.6, 1.2),
		tinted,
	))

	s.AddLight(Light{
		Position:          core.NewVec3(-3, 6, 4),
		Color:             core.NewVec3(1, 1, 1),
		SpecularIntensity: 1,
		ShadowIntensity:   0.9,
		Radius:            1,
	})
	s.AddLight(Light{
		Position:          core.NewVec3(4, 4, 2),
		Color:             core.NewVec3(0.5, 0.5, 0.45),
		SpecularIntensity: 0.6,
		ShadowIntensity:   0.7,
		Radius:            0.8,
	})

	return s
}
