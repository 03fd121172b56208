package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCube_Intersect_FromEachFace(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	scale := 2.0
	cube := NewCube(center, scale, 0)

	axes := []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}

	const distance = 5.0
	for _, axis := range axes {
		// Start outside the face and travel along the inward normal
		origin := center.Add(axis.Multiply(distance))
		ray := core.NewRay(origin, axis.Negate())

		got := cube.Intersect(ray)
		expected := distance - scale/2
		if math.Abs(got-expected) > 1e-9 {
			t.Errorf("Face %v: expected t=%f, got %f", axis, expected, got)
		}

		normal := cube.NormalAt(ray.At(got))
		if normal != axis {
			t.Errorf("Face %v: expected normal %v, got %v", axis, axis, normal)
		}
	}
}

func TestCube_Intersect_Miss(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 1, 0)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{"aimed away", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))},
		{"passes beside", core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1))},
		{"diagonal miss", core.NewRay(core.NewVec3(0, 3, 5), core.NewVec3(1, 0, -1).Normalize())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cube.Intersect(tt.ray); IsHit(got) {
				t.Errorf("Expected miss, got t=%f", got)
			}
		})
	}
}

func TestCube_Intersect_FromInside(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 2, 0)

	got := cube.Intersect(core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, 1)))
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected exit at t=0.5, got %f", got)
	}
}

func TestCube_NormalAt_Interior(t *testing.T) {
	cube := NewCube(core.NewVec3(0, 0, 0), 2, 0)

	if n := cube.NormalAt(core.NewVec3(0.1, 0.2, 0.3)); !n.IsZero() {
		t.Errorf("Expected zero normal for interior point, got %v", n)
	}
}
