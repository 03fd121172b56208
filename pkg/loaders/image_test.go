package loaders

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(0, 1, color.RGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.RGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"out.png", "png"},
		{"out.PNG", "png"},
		{"dir/out.jpg", "jpeg"},
		{"out.jpeg", "jpeg"},
		{"out.bmp", "bmp"},
		{"out.tif", "tiff"},
		{"out.tiff", "tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if err != nil {
				t.Fatalf("FormatFromPath(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}

	for _, bad := range []string{"out.gif", "out", "out.webp"} {
		if _, err := FormatFromPath(bad); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("FormatFromPath(%q) error = %v, want ErrUnsupportedFormat", bad, err)
		}
	}
}

// Lossless formats must round-trip exactly through SaveImage and LoadImage
func TestSaveImage_LosslessRoundTrip(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	red := core.NewVec3(1, 0, 0)
	green := core.NewVec3(0, 1, 0)
	blue := core.NewVec3(0, 0, 1)
	want := []core.Vec3{white, red, green, blue}

	for _, name := range []string{"render.png", "render.bmp", "render.tiff"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			if err := SaveImage(path, testImage()); err != nil {
				t.Fatalf("SaveImage() error: %v", err)
			}

			data, err := LoadImage(path)
			if err != nil {
				t.Fatalf("LoadImage() error: %v", err)
			}
			if data.Width != 2 || data.Height != 2 {
				t.Fatalf("got %dx%d image, want 2x2", data.Width, data.Height)
			}
			for i, px := range data.Pixels {
				if px != want[i] {
					t.Errorf("pixel %d = %v, want %v", i, px, want[i])
				}
			}
		})
	}
}

func TestSaveImage_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.jpg")
	if err := SaveImage(path, testImage()); err != nil {
		t.Fatalf("SaveImage() error: %v", err)
	}

	data, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error: %v", err)
	}
	if data.Width != 2 || data.Height != 2 {
		t.Errorf("got %dx%d image, want 2x2", data.Width, data.Height)
	}
}

func TestSaveImage_UnsupportedFormat(t *testing.T) {
	err := SaveImage(filepath.Join(t.TempDir(), "render.gif"), testImage())
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SaveImage() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadImageNotFound(t *testing.T) {
	if _, err := LoadImage("nonexistent.png"); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}
