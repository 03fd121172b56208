package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Buffer is the rendered image: row-major RGB triples, 3 bytes per pixel
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a black buffer
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Set stores a color in [0,1]; channels are clamped then truncated to 0..255
func (b *Buffer) Set(row, col int, c core.Vec3) {
	c = c.Clamp(0, 1)
	i := (row*b.Width + col) * 3
	b.Pix[i] = uint8(c.X * 255)
	b.Pix[i+1] = uint8(c.Y * 255)
	b.Pix[i+2] = uint8(c.Z * 255)
}

// At returns the stored RGB triple of a pixel
func (b *Buffer) At(row, col int) (r, g, bl uint8) {
	i := (row*b.Width + col) * 3
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// RGBA converts the buffer to an opaque image for encoders
func (b *Buffer) RGBA() *image.RGBA {
	return b.SubImage(image.Rect(0, 0, b.Width, b.Height))
}

// SubImage copies the pixels inside bounds into a new image whose origin is
// the top-left of bounds
func (b *Buffer) SubImage(bounds image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, bl := b.At(y, x)
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: r, G: g, B: bl, A: 255})
		}
	}
	return img
}
