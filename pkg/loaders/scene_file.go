package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Scene file syntax errors, wrapped with the offending line number
var (
	ErrUnknownTag      = errors.New("unknown tag")
	ErrArgumentCount   = errors.New("wrong number of arguments")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrDuplicateCamera = errors.New("camera defined more than once")
	ErrDuplicateSet    = errors.New("settings defined more than once")
)

// argument counts per tag, not including the tag itself
const (
	camArgs    = 11 // + optional fisheye flag and k
	setArgs    = 5
	mtlArgs    = 11
	sphArgs    = 5
	plnArgs    = 5
	boxArgs    = 5
	trgArgs    = 10
	lgtArgs    = 9
	camMaxArgs = camArgs + 2
)

// surfaceArgs counts include the trailing material index
var surfaceArgs = map[string]int{"sph": sphArgs, "pln": plnArgs, "box": boxArgs, "trg": trgArgs}

// LoadScene reads and validates a scene description file
func LoadScene(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene %s: %w", path, err)
	}
	return s, nil
}

// ParseScene reads a scene description and validates it.
//
// Each non-blank line is a tag followed by whitespace-separated numbers:
//
//	cam px py pz lx ly lz ux uy uz screen_dist screen_width [fisheye [k]]
//	set bgr bgg bgb shadow_rays max_recursion
//	mtl dr dg db sr sg sb rr rg rb shininess transparency
//	sph cx cy cz radius mat
//	pln nx ny nz offset mat
//	box cx cy cz scale mat
//	trg x1 y1 z1 x2 y2 z2 x3 y3 z3 mat
//	lgt px py pz r g b specular_intensity shadow_intensity radius
//
// Material indices are 1-based. Text after # is a comment.
func ParseScene(r io.Reader) (*scene.Scene, error) {
	p := &sceneParser{scene: scene.NewScene(nil)}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		tokens, err := shlex.Split(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(tokens) == 0 {
			continue
		}

		if err := p.parseLine(strings.ToLower(tokens[0]), tokens[1:]); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	if err := p.scene.Validate(); err != nil {
		return nil, err
	}
	return p.scene, nil
}

type sceneParser struct {
	scene       *scene.Scene
	settingsSet bool
}

func (p *sceneParser) parseLine(tag string, args []string) error {
	switch tag {
	case "cam":
		return p.parseCamera(args)
	case "set":
		return p.parseSettings(args)
	case "mtl":
		return p.parseMaterial(args)
	case "sph", "pln", "box", "trg":
		return p.parseSurface(tag, args)
	case "lgt":
		return p.parseLight(args)
	default:
		return fmt.Errorf("%w %q", ErrUnknownTag, tag)
	}
}

func (p *sceneParser) parseCamera(args []string) error {
	if p.scene.Camera != nil {
		return ErrDuplicateCamera
	}
	if len(args) < camArgs || len(args) > camMaxArgs {
		return arityError("cam", fmt.Sprintf("%d to %d", camArgs, camMaxArgs), len(args))
	}

	v, err := parseFloats(args[:camArgs])
	if err != nil {
		return err
	}

	cam := &scene.Camera{
		Position:       core.NewVec3(v[0], v[1], v[2]),
		LookAt:         core.NewVec3(v[3], v[4], v[5]),
		Up:             core.NewVec3(v[6], v[7], v[8]),
		ScreenDistance: v[9],
		ScreenWidth:    v[10],
		FisheyeK:       scene.DefaultFisheyeK,
	}

	if len(args) > camArgs {
		fisheye, err := strconv.ParseBool(args[camArgs])
		if err != nil {
			return fmt.Errorf("cam fisheye flag %q: %w", args[camArgs], err)
		}
		cam.Fisheye = fisheye
	}
	if len(args) > camArgs+1 {
		k, err := parseFloat(args[camArgs+1])
		if err != nil {
			return err
		}
		cam.FisheyeK = k
	}

	p.scene.Camera = cam
	return nil
}

func (p *sceneParser) parseSettings(args []string) error {
	if p.settingsSet {
		return ErrDuplicateSet
	}
	if len(args) != setArgs {
		return arityError("set", strconv.Itoa(setArgs), len(args))
	}

	v, err := parseFloats(args[:3])
	if err != nil {
		return err
	}
	shadowRays, err := parseCount(args[3])
	if err != nil {
		return err
	}
	maxRecursion, err := parseCount(args[4])
	if err != nil {
		return err
	}

	p.scene.Settings = scene.Settings{
		Background:   core.NewVec3(v[0], v[1], v[2]),
		ShadowRays:   shadowRays,
		MaxRecursion: maxRecursion,
	}
	p.settingsSet = true
	return nil
}

func (p *sceneParser) parseMaterial(args []string) error {
	if len(args) != mtlArgs {
		return arityError("mtl", strconv.Itoa(mtlArgs), len(args))
	}

	v, err := parseFloats(args)
	if err != nil {
		return err
	}

	p.scene.AddMaterial(scene.Material{
		Diffuse:      core.NewVec3(v[0], v[1], v[2]),
		Specular:     core.NewVec3(v[3], v[4], v[5]),
		Reflection:   core.NewVec3(v[6], v[7], v[8]),
		Shininess:    v[9],
		Transparency: v[10],
	})
	return nil
}

func (p *sceneParser) parseSurface(tag string, args []string) error {
	want := surfaceArgs[tag]
	if len(args) != want {
		return arityError(tag, strconv.Itoa(want), len(args))
	}

	v, err := parseFloats(args[:len(args)-1])
	if err != nil {
		return err
	}
	index, err := parseCount(args[len(args)-1])
	if err != nil {
		return fmt.Errorf("%s material index: %w", tag, err)
	}
	// Scene files count materials from 1
	material := index - 1

	var surface geometry.Surface
	switch tag {
	case "sph":
		surface = geometry.NewSphere(core.NewVec3(v[0], v[1], v[2]), v[3], material)
	case "pln":
		surface = geometry.NewInfinitePlane(core.NewVec3(v[0], v[1], v[2]), v[3], material)
	case "box":
		surface = geometry.NewCube(core.NewVec3(v[0], v[1], v[2]), v[3], material)
	case "trg":
		surface = geometry.NewTriangle(
			core.NewVec3(v[0], v[1], v[2]),
			core.NewVec3(v[3], v[4], v[5]),
			core.NewVec3(v[6], v[7], v[8]),
			material,
		)
	}

	p.scene.AddSurface(surface)
	return nil
}

func (p *sceneParser) parseLight(args []string) error {
	if len(args) != lgtArgs {
		return arityError("lgt", strconv.Itoa(lgtArgs), len(args))
	}

	v, err := parseFloats(args)
	if err != nil {
		return err
	}

	p.scene.AddLight(scene.Light{
		Position:          core.NewVec3(v[0], v[1], v[2]),
		Color:             core.NewVec3(v[3], v[4], v[5]),
		SpecularIntensity: v[6],
		ShadowIntensity:   v[7],
		Radius:            v[8],
	})
	return nil
}

func arityError(tag, want string, got int) error {
	return fmt.Errorf("%w: %s takes %s, got %d", ErrArgumentCount, tag, want, got)
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w %q", ErrInvalidNumber, s)
	}
	return f, nil
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		f, err := parseFloat(arg)
		if err != nil {
			return nil, err
		}
		values[i] = f
	}
	return values, nil
}

// parseCount accepts integers written either as "3" or "3.0"
func parseCount(s string) (int, error) {
	f, err := parseFloat(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%w %q: expected an integer", ErrInvalidNumber, s)
	}
	return int(f), nil
}
