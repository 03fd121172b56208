package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse describes the first surface seen through a pixel
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Material     *MaterialInfo          `json:"material,omitempty"`
	Geometry     map[string]interface{} `json:"geometry,omitempty"`
}

// MaterialInfo is the JSON form of a scene material
type MaterialInfo struct {
	Index        int        `json:"index"` // 1-based, as in scene files
	Color        string     `json:"color"` // Diffuse color as #rrggbb
	Diffuse      [3]float64 `json:"diffuse"`
	Specular     [3]float64 `json:"specular"`
	Reflection   [3]float64 `json:"reflection"`
	Shininess    float64    `json:"shininess"`
	Transparency float64    `json:"transparency"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// inspectPixel casts the primary ray of pixel (x, y) and describes the nearest hit
func inspectPixel(sceneObj *scene.Scene, width, height, x, y int) InspectResponse {
	camera := renderer.NewCamera(sceneObj.Camera, width, height)
	if camera.Direction(y, x).IsZero() {
		// Outside the fisheye image circle
		return InspectResponse{Hit: false}
	}

	ray := camera.GetRay(y, x)
	hit, ok := renderer.Nearest(sceneObj.Surfaces, ray)
	if !ok {
		return InspectResponse{Hit: false}
	}

	normal := hit.Surface.NormalAt(hit.Point)
	geometryType, geometryProps := extractGeometryInfo(hit.Surface)
	return InspectResponse{
		Hit:          true,
		GeometryType: geometryType,
		Point:        vec(hit.Point),
		Normal:       vec(normal),
		Distance:     hit.T,
		FrontFace:    normal.Dot(ray.Direction) < 0,
		Material:     extractMaterialInfo(sceneObj, hit.Surface),
		Geometry:     geometryProps,
	}
}

func extractMaterialInfo(sceneObj *scene.Scene, surface geometry.Surface) *MaterialInfo {
	m := sceneObj.MaterialOf(surface)
	return &MaterialInfo{
		Index:        surface.MaterialIndex() + 1,
		Color:        hexColor(m.Diffuse),
		Diffuse:      vec(m.Diffuse),
		Specular:     vec(m.Specular),
		Reflection:   vec(m.Reflection),
		Shininess:    m.Shininess,
		Transparency: m.Transparency,
	}
}

// extractGeometryInfo reports the primitive type and its defining parameters
func extractGeometryInfo(surface geometry.Surface) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := surface.(type) {
	case *geometry.Sphere:
		properties["center"] = vec(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.InfinitePlane:
		properties["normal"] = vec(geom.Normal)
		properties["d"] = geom.D
		return "plane", properties

	case *geometry.Cube:
		properties["center"] = vec(geom.Center)
		properties["scale"] = geom.Scale
		return "cube", properties

	case *geometry.Triangle:
		properties["vertices"] = [3][3]float64{vec(geom.V0), vec(geom.V1), vec(geom.V2)}
		return "triangle", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= req.Width || pixelY < 0 || pixelY >= req.Height {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	sceneObj, _, err := loaders.ResolveScene(req.Scene, s.scenesDir)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := sceneObj.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid scene: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sceneObj, req.Width, req.Height, pixelX, pixelY))
}
