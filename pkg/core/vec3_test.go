package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec3
		expected Vec3
	}{
		{"unit X", NewVec3(3, 0, 0), NewVec3(1, 0, 0)},
		{"diagonal", NewVec3(1, 1, 0), NewVec3(1/math.Sqrt2, 1/math.Sqrt2, 0)},
		{"zero vector stays zero", NewVec3(0, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()
			if math.IsNaN(result.X) || math.IsNaN(result.Y) || math.IsNaN(result.Z) {
				t.Fatalf("Normalize produced NaN: %v", result)
			}
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Cross(t *testing.T) {
	x := NewVec3(1, 0, 0)
	y := NewVec3(0, 1, 0)

	if got := x.Cross(y); got != NewVec3(0, 0, 1) {
		t.Errorf("Expected X × Y = Z, got %v", got)
	}
	if got := y.Cross(x); got != NewVec3(0, 0, -1) {
		t.Errorf("Expected Y × X = -Z, got %v", got)
	}
}

func TestVec3_Reflect(t *testing.T) {
	incoming := NewVec3(1, -1, 0).Normalize()
	normal := NewVec3(0, 1, 0)

	reflected := incoming.Reflect(normal)
	expected := NewVec3(1, 1, 0).Normalize()

	if reflected.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, reflected)
	}
}

func TestVec3_Clamp(t *testing.T) {
	v := NewVec3(-0.5, 0.5, 1.5).Clamp(0, 1)
	if v != NewVec3(0, 0.5, 1) {
		t.Errorf("Expected (0, 0.5, 1), got %v", v)
	}
}

func TestOrthonormalBasis(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(0, -1, 0),
		NewVec3(1, 2, 3).Normalize(),
	}

	for _, n := range normals {
		u, v := OrthonormalBasis(n)

		if math.Abs(u.Length()-1) > 1e-9 || math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("Basis for %v is not unit length: u=%v v=%v", n, u, v)
		}
		if math.Abs(u.Dot(n)) > 1e-9 || math.Abs(v.Dot(n)) > 1e-9 || math.Abs(u.Dot(v)) > 1e-9 {
			t.Errorf("Basis for %v is not orthogonal: u=%v v=%v", n, u, v)
		}
	}
}

func TestRay_Offset(t *testing.T) {
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, -1))
	moved := ray.Offset(0.5)

	if moved.Origin != NewVec3(0, 0, -0.5) {
		t.Errorf("Expected origin (0,0,-0.5), got %v", moved.Origin)
	}
	if moved.Direction != ray.Direction {
		t.Errorf("Offset must not change direction, got %v", moved.Direction)
	}
}
