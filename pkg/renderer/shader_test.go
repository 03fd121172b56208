package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// shadeFirstHit traces ray into s and shades the first hit at depth
func shadeFirstHit(t *testing.T, s *scene.Scene, ray core.Ray, depth int) core.Vec3 {
	t.Helper()
	hit, ok := Nearest(s.Surfaces, ray)
	if !ok {
		t.Fatal("test ray missed the scene")
	}
	return NewShader(s, BinaryOcclusion{}).Shade(hit, depth, cellCenters())
}

func frontalLight(position core.Vec3, color core.Vec3) scene.Light {
	return scene.Light{
		Position:          position,
		Color:             color,
		SpecularIntensity: 1,
		ShadowIntensity:   0,
	}
}

var towardOrigin = core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1))

func TestShade_DepthZeroReturnsBackground(t *testing.T) {
	s := newTestScene()
	s.Settings.Background = core.NewVec3(0.3, 0.6, 0.9)
	mat := s.AddMaterial(scene.Material{
		Diffuse:      core.NewVec3(1, 1, 1),
		Reflection:   core.NewVec3(1, 1, 1),
		Transparency: 0.5,
	})
	s.AddSurface(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))
	s.AddLight(frontalLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1)))

	if got := shadeFirstHit(t, s, towardOrigin, 0); got != s.Settings.Background {
		t.Errorf("Shade at depth 0 = %v, want background %v", got, s.Settings.Background)
	}
}

func TestShade_NoLightsIsBlack(t *testing.T) {
	s := newTestScene()
	s.Settings.Background = core.NewVec3(0.5, 0.5, 0.5)
	mat := s.AddMaterial(scene.Material{
		Diffuse:   core.NewVec3(1, 0.5, 0.25),
		Specular:  core.NewVec3(1, 1, 1),
		Shininess: 10,
	})
	s.AddSurface(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))

	if got := shadeFirstHit(t, s, towardOrigin, 3); got != (core.Vec3{}) {
		t.Errorf("Shade without lights = %v, want exactly (0,0,0)", got)
	}
}

func TestShade_DirectLighting(t *testing.T) {
	tests := []struct {
		name     string
		material scene.Material
		light    scene.Light
		want     core.Vec3
	}{
		{
			name:     "diffuse only",
			material: scene.Material{Diffuse: core.NewVec3(0.5, 0.25, 0)},
			light:    frontalLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1)),
			want:     core.NewVec3(0.5, 0.25, 0),
		},
		{
			name: "diffuse and specular",
			material: scene.Material{
				Diffuse:   core.NewVec3(0.5, 0.5, 0.5),
				Specular:  core.NewVec3(1, 1, 1),
				Shininess: 10,
			},
			light: scene.Light{
				Position:          core.NewVec3(0, 0, 10),
				Color:             core.NewVec3(1, 1, 1),
				SpecularIntensity: 0.2,
			},
			want: core.NewVec3(0.7, 0.7, 0.7),
		},
		{
			name:     "light behind the surface",
			material: scene.Material{Diffuse: core.NewVec3(1, 1, 1), Specular: core.NewVec3(1, 1, 1)},
			light:    frontalLight(core.NewVec3(0, 0, -10), core.NewVec3(1, 1, 1)),
			want:     core.NewVec3(0, 0, 0),
		},
		{
			name:     "overexposed light is clamped",
			material: scene.Material{Diffuse: core.NewVec3(1, 1, 1)},
			light:    frontalLight(core.NewVec3(0, 0, 10), core.NewVec3(5, 5, 5)),
			want:     core.NewVec3(1, 1, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene()
			mat := s.AddMaterial(tt.material)
			s.AddSurface(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, mat))
			s.AddLight(tt.light)

			got := shadeFirstHit(t, s, towardOrigin, 3)
			if !vecNear(got, tt.want, 1e-9) {
				t.Errorf("Shade = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShade_NormalFacesIncomingRay(t *testing.T) {
	s := newTestScene()
	mat := s.AddMaterial(scene.Material{Diffuse: core.NewVec3(1, 1, 1)})
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(0, 1, 0), 0, mat))
	// Light on the underside, where the stored normal points away from
	s.AddLight(frontalLight(core.NewVec3(0, -10, 0), core.NewVec3(1, 1, 1)))

	ray := core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0))
	if got := shadeFirstHit(t, s, ray, 3); !vecNear(got, core.NewVec3(1, 1, 1), 1e-9) {
		t.Errorf("Shade from below = %v, want (1,1,1)", got)
	}
}

func TestShade_ShadowedLight(t *testing.T) {
	s := newTestScene()
	mat := s.AddMaterial(scene.Material{Diffuse: core.NewVec3(1, 1, 1)})
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(0, 1, 0), 0, mat))
	s.AddSurface(geometry.NewSphere(core.NewVec3(0, 5, 0), 1, mat))
	s.AddLight(scene.Light{
		Position:        core.NewVec3(0, 10, 0),
		Color:           core.NewVec3(1, 1, 1),
		ShadowIntensity: 0.6,
		Radius:          0.5,
	})

	ray := core.NewRay(core.NewVec3(0, 5, 5), core.NewVec3(0, -5, -5).Normalize())
	got := shadeFirstHit(t, s, ray, 3)

	// Fully occluded: only the unshadowed share (1 − 0.6) of the light remains
	if !vecNear(got, core.NewVec3(0.4, 0.4, 0.4), 1e-9) {
		t.Errorf("Shade in shadow = %v, want (0.4,0.4,0.4)", got)
	}
}

func TestShade_Transparency(t *testing.T) {
	s := newTestScene()
	s.Settings.Background = core.NewVec3(0.4, 0.4, 0.4)
	mat := s.AddMaterial(scene.Material{
		Diffuse:      core.NewVec3(0.8, 0.8, 0.8),
		Transparency: 0.25,
	})
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(0, 0, 1), 0, mat))
	s.AddLight(frontalLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1)))

	// 0.75·0.8 direct + 0.25·0.4 background seen through the plane
	got := shadeFirstHit(t, s, towardOrigin, 3)
	if !vecNear(got, core.NewVec3(0.7, 0.7, 0.7), 1e-9) {
		t.Errorf("Shade = %v, want (0.7,0.7,0.7)", got)
	}
}

func TestShade_ReflectionOfBackground(t *testing.T) {
	s := newTestScene()
	s.Settings.Background = core.NewVec3(0.2, 0.4, 0.6)
	mirror := s.AddMaterial(scene.Material{Reflection: core.NewVec3(1, 1, 1)})
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(0, 0, 1), 0, mirror))

	got := shadeFirstHit(t, s, towardOrigin, 1)
	if !vecNear(got, s.Settings.Background, 1e-12) {
		t.Errorf("mirror reflecting the sky = %v, want %v", got, s.Settings.Background)
	}
}

// parallelMirrors returns mirrors at x = -1 and x = 1 with the given reflection
func parallelMirrors(reflection float64) *scene.Scene {
	s := newTestScene()
	s.Settings.Background = core.NewVec3(1, 1, 1)
	mirror := s.AddMaterial(scene.Material{
		Reflection: core.NewVec3(reflection, reflection, reflection),
	})
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(1, 0, 0), 1, mirror))
	s.AddSurface(geometry.NewInfinitePlane(core.NewVec3(1, 0, 0), -1, mirror))
	return s
}

func TestShade_RecursionDepthDecreases(t *testing.T) {
	s := parallelMirrors(0.5)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 1).Normalize())

	// The ray bounces forever, so only the depth bound ends recursion:
	// each level halves the background reached at depth 0
	for depth := 1; depth <= 4; depth++ {
		got := shadeFirstHit(t, s, ray, depth)
		want := math.Pow(0.5, float64(depth))
		if math.Abs(got.X-want) > 1e-12 {
			t.Errorf("depth %d: Shade = %v, want %v", depth, got.X, want)
		}
	}
}

func TestReflectedRay_ParallelMirrorPathLength(t *testing.T) {
	s := parallelMirrors(1)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 1).Normalize())

	first, ok := Nearest(s.Surfaces, ray)
	if !ok {
		t.Fatal("first bounce missed")
	}
	bounce := reflectedRay(first, facingNormal(first))
	second, ok := Nearest(s.Surfaces, bounce)
	if !ok {
		t.Fatal("second bounce missed")
	}

	// At 45° the ray covers sqrt(2) per unit of x: 1 to the first mirror, 2 to the second
	pathLength := first.T + ShadowBias + second.T
	if want := 3 * math.Sqrt2; math.Abs(pathLength-want) > 1e-9 {
		t.Errorf("path length = %v, want %v", pathLength, want)
	}
	if !vecNear(second.Point, core.NewVec3(-1, 0, 3), 1e-9) {
		t.Errorf("second bounce at %v, want (-1,0,3)", second.Point)
	}
	if !vecNear(bounce.Direction, core.NewVec3(-1, 0, 1).Normalize(), 1e-12) {
		t.Errorf("reflected direction = %v", bounce.Direction)
	}
}
