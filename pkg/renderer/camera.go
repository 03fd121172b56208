package renderer

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Camera maps image pixels to primary ray directions. The orthonormal view
// basis is built once and the whole direction grid is precomputed, so the
// render loop only indexes into it.
type Camera struct {
	position core.Vec3
	forward  core.Vec3 // V_to
	right    core.Vec3 // V_right
	up       core.Vec3 // Corrected up, orthogonal to forward and right

	width, height int
	pixelWidth    float64
	pixelHeight   float64

	screenDistance float64
	fisheye        bool
	fisheyeK       float64

	directions []core.Vec3 // Row-major, width*height
}

// NewCamera creates a camera for an image of width x height pixels
func NewCamera(cam *scene.Camera, width, height int) *Camera {
	forward := cam.LookAt.Subtract(cam.Position).Normalize()
	right := forward.Cross(cam.Up.Normalize()).Normalize()
	up := right.Cross(forward).Normalize()

	// r_y = (Ry/Rx · screen_width) / Ry, which is the same as r_x
	pixelWidth := cam.ScreenWidth / float64(width)
	pixelHeight := (float64(height) / float64(width) * cam.ScreenWidth) / float64(height)

	c := &Camera{
		position:       cam.Position,
		forward:        forward,
		right:          right,
		up:             up,
		width:          width,
		height:         height,
		pixelWidth:     pixelWidth,
		pixelHeight:    pixelHeight,
		screenDistance: cam.ScreenDistance,
		fisheye:        cam.Fisheye,
		fisheyeK:       cam.FisheyeK,
	}
	c.directions = c.computeDirections()
	return c
}

// Position returns the eye point every primary ray starts from
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// Basis returns the forward, right and corrected up vectors
func (c *Camera) Basis() (forward, right, up core.Vec3) {
	return c.forward, c.right, c.up
}

// Directions returns the precomputed row-major direction grid
func (c *Camera) Directions() []core.Vec3 {
	return c.directions
}

// Direction returns the unit primary ray direction for a pixel, or the zero
// vector if the pixel has no ray (outside the fisheye image circle)
func (c *Camera) Direction(row, col int) core.Vec3 {
	return c.directions[row*c.width+col]
}

// GetRay returns the primary ray through a pixel
func (c *Camera) GetRay(row, col int) core.Ray {
	return core.NewRay(c.position, c.Direction(row, col))
}

func (c *Camera) computeDirections() []core.Vec3 {
	directions := make([]core.Vec3, c.width*c.height)

	halfX := c.width / 2
	halfY := c.height / 2

	for i := 0; i < c.height; i++ {
		vertical := c.up.Multiply(-c.pixelHeight * float64(i-halfY))
		for j := 0; j < c.width; j++ {
			offset := c.right.Multiply(c.pixelWidth * float64(j-halfX)).Add(vertical)

			if c.fisheye {
				directions[i*c.width+j] = c.fisheyeDirection(offset)
			} else {
				center := c.forward.Multiply(c.screenDistance)
				directions[i*c.width+j] = center.Add(offset).Normalize()
			}
		}
	}

	return directions
}

// fisheyeDirection bends a screen-plane offset through the lens model
// selected by k: k>0 atan, k=0 equidistant, k<0 asin
func (c *Camera) fisheyeDirection(offset core.Vec3) core.Vec3 {
	r := offset.Length()
	if r == 0 {
		return c.forward
	}

	f := c.screenDistance
	k := c.fisheyeK

	var theta float64
	switch {
	case k > 0:
		theta = math.Atan(k*r/f) / k
	case k == 0:
		theta = r / f
	default:
		arg := k * r / f
		if arg < -1 {
			return core.Vec3{}
		}
		theta = math.Asin(arg) / k
	}

	if theta > math.Pi/2 {
		return core.Vec3{}
	}

	radial := offset.Multiply(1 / r)
	return c.forward.Multiply(math.Cos(theta)).Add(radial.Multiply(math.Sin(theta))).Normalize()
}
