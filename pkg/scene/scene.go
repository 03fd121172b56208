package scene

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Load-time configuration errors. Validate wraps these so callers can use errors.Is.
var (
	ErrNoCamera         = errors.New("scene has no camera")
	ErrDegenerateCamera = errors.New("degenerate camera")
	ErrInvalidSettings  = errors.New("invalid scene settings")
	ErrInvalidMaterial  = errors.New("invalid material")
	ErrInvalidLight     = errors.New("invalid light")
	ErrMaterialIndex    = errors.New("material index out of range")
	ErrInvalidSurface   = errors.New("invalid surface")
)

// DefaultFisheyeK is the lens parameter used when a camera enables fisheye without one
const DefaultFisheyeK = 0.5

// parallelEpsilon bounds |to × up| below which the camera basis is degenerate
const parallelEpsilon = 1e-12

// Camera describes the pinhole (or fisheye) camera
type Camera struct {
	Position       core.Vec3
	LookAt         core.Vec3
	Up             core.Vec3
	ScreenDistance float64
	ScreenWidth    float64
	Fisheye        bool    // Map screen offsets through a fisheye lens model
	FisheyeK       float64 // Lens parameter in [-1, 1]; 0 is equidistant
}

// Settings contains the global rendering settings of a scene
type Settings struct {
	Background   core.Vec3 // RGB in [0,1]
	ShadowRays   int       // Root of the number of shadow rays per light (N×N grid)
	MaxRecursion int       // Maximum recursion depth for secondary rays
}

// Material describes Phong shading, mirror reflection and transparency
type Material struct {
	Diffuse      core.Vec3
	Specular     core.Vec3
	Reflection   core.Vec3
	Shininess    float64
	Transparency float64 // 0 opaque, 1 fully transparent
}

// Reflective reports whether any reflection channel is non-zero
func (m Material) Reflective() bool {
	return !m.Reflection.IsZero()
}

// Light is a square area light; a zero radius is a point light
type Light struct {
	Position          core.Vec3
	Color             core.Vec3
	SpecularIntensity float64
	ShadowIntensity   float64 // Blend between no shadow (0) and full soft shadow (1)
	Radius            float64 // Edge length of the light's footprint
}

// Scene contains all the elements needed for rendering.
// It is built once and read-only after Validate succeeds.
type Scene struct {
	Camera    *Camera
	Settings  Settings
	Materials []Material
	Lights    []Light
	Surfaces  []geometry.Surface
}

// DefaultSettings returns the settings used when a scene file omits "set"
func DefaultSettings() Settings {
	return Settings{
		Background:   core.NewVec3(0, 0, 0),
		ShadowRays:   1,
		MaxRecursion: 3,
	}
}

// NewScene creates an empty scene with default settings
func NewScene(camera *Camera) *Scene {
	return &Scene{
		Camera:    camera,
		Settings:  DefaultSettings(),
		Materials: make([]Material, 0),
		Lights:    make([]Light, 0),
		Surfaces:  make([]geometry.Surface, 0),
	}
}

// AddMaterial appends a material and returns its 0-based index
func (s *Scene) AddMaterial(m Material) int {
	s.Materials = append(s.Materials, m)
	return len(s.Materials) - 1
}

// AddSurface appends a surface to the scene
func (s *Scene) AddSurface(surface geometry.Surface) {
	s.Surfaces = append(s.Surfaces, surface)
}

// AddLight appends a light to the scene
func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

// MaterialOf returns the material referenced by a surface
func (s *Scene) MaterialOf(surface geometry.Surface) Material {
	return s.Materials[surface.MaterialIndex()]
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Surfaces)
}

// Validate checks the whole scene before rendering starts and reports every
// problem found, not just the first one.
func (s *Scene) Validate() error {
	var err error

	if s.Camera == nil {
		err = multierr.Append(err, ErrNoCamera)
	} else {
		err = multierr.Append(err, s.Camera.validate())
	}

	if s.Settings.ShadowRays < 1 {
		err = multierr.Append(err, fmt.Errorf("%w: shadow rays must be >= 1, got %d", ErrInvalidSettings, s.Settings.ShadowRays))
	}
	if s.Settings.MaxRecursion < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max recursion must be >= 0, got %d", ErrInvalidSettings, s.Settings.MaxRecursion))
	}

	for i, m := range s.Materials {
		if m.Shininess < 0 {
			err = multierr.Append(err, fmt.Errorf("%w %d: shininess must be >= 0, got %g", ErrInvalidMaterial, i+1, m.Shininess))
		}
		if m.Transparency < 0 || m.Transparency > 1 {
			err = multierr.Append(err, fmt.Errorf("%w %d: transparency must be in [0,1], got %g", ErrInvalidMaterial, i+1, m.Transparency))
		}
	}

	for i, l := range s.Lights {
		if l.ShadowIntensity < 0 || l.ShadowIntensity > 1 {
			err = multierr.Append(err, fmt.Errorf("%w %d: shadow intensity must be in [0,1], got %g", ErrInvalidLight, i+1, l.ShadowIntensity))
		}
		if l.Radius < 0 {
			err = multierr.Append(err, fmt.Errorf("%w %d: radius must be >= 0, got %g", ErrInvalidLight, i+1, l.Radius))
		}
	}

	for i, surface := range s.Surfaces {
		if surface == nil {
			err = multierr.Append(err, fmt.Errorf("%w %d: nil surface", ErrInvalidSurface, i+1))
			continue
		}
		if idx := surface.MaterialIndex(); idx < 0 || idx >= len(s.Materials) {
			err = multierr.Append(err, fmt.Errorf("%w: surface %d references material %d, scene has %d",
				ErrMaterialIndex, i+1, idx+1, len(s.Materials)))
		}
	}

	return err
}

func (c *Camera) validate() error {
	var err error

	to := c.LookAt.Subtract(c.Position)
	if to.IsZero() {
		err = multierr.Append(err, fmt.Errorf("%w: look-at point equals position", ErrDegenerateCamera))
	} else if to.Normalize().Cross(c.Up.Normalize()).Length() < parallelEpsilon {
		err = multierr.Append(err, fmt.Errorf("%w: up vector is parallel to the view direction", ErrDegenerateCamera))
	}
	if c.ScreenWidth <= 0 || math.IsNaN(c.ScreenWidth) {
		err = multierr.Append(err, fmt.Errorf("%w: screen width must be > 0, got %g", ErrDegenerateCamera, c.ScreenWidth))
	}
	if c.ScreenDistance <= 0 || math.IsNaN(c.ScreenDistance) {
		err = multierr.Append(err, fmt.Errorf("%w: screen distance must be > 0, got %g", ErrDegenerateCamera, c.ScreenDistance))
	}
	if c.Fisheye && (c.FisheyeK < -1 || c.FisheyeK > 1) {
		err = multierr.Append(err, fmt.Errorf("%w: fisheye k must be in [-1,1], got %g", ErrDegenerateCamera, c.FisheyeK))
	}

	return err
}
