package core

import (
	"math/rand"
	randv2 "math/rand/v2"
)

// Vec2 represents a 2D sample in the unit square
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// Float64Source is satisfied by *rand.Rand from both math/rand and math/rand/v2
type Float64Source interface {
	Float64() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random Float64Source
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random Float64Source) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// ConstantSampler returns the same value for every dimension.
// A value of 0.5 places every stratified sample at its cell center.
type ConstantSampler struct {
	Value float64
}

// Get1D returns the constant value
func (c ConstantSampler) Get1D() float64 {
	return c.Value
}

// Get2D returns the constant value in both dimensions
func (c ConstantSampler) Get2D() Vec2 {
	return NewVec2(c.Value, c.Value)
}

// PixelSeed derives a seed that depends only on the base seed and the pixel
// coordinates, so results do not depend on the order pixels are rendered in.
func PixelSeed(base int64, row, col int) int64 {
	// splitmix64 finalizer over the packed coordinates
	z := uint64(base) ^ (uint64(uint32(row))<<32 | uint64(uint32(col)))
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	return int64(z)
}

// NewPixelSampler creates a deterministic sampler for a single pixel.
// PCG state is two words, so one generator per pixel stays cheap.
func NewPixelSampler(base int64, row, col int) *RandomSampler {
	seed := uint64(PixelSeed(base, row, col))
	return NewRandomSampler(randv2.New(randv2.NewPCG(seed, seed^0xda3e39cb94b95bdb)))
}

// NewSeededSampler creates a sampler over a single math/rand stream
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}
