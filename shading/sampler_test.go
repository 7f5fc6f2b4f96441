package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shading-engine/core"
	"shading-engine/math"
	"shading-engine/scene"
)

// 2x2 texture: red, green on top; blue, white below.
func quadTexture() *scene.Texture {
	return &scene.Texture{
		Name:   "Quad",
		Width:  2,
		Height: 2,
		Pixels: []byte{
			255, 0, 0, 255, 0, 255, 0, 255,
			0, 0, 255, 255, 255, 255, 255, 255,
		},
	}
}

func TestNilTextureSamplesWhite(t *testing.T) {
	var s Sampler
	c := s.Sample(nil, math.Vec2{X: 0.5, Y: 0.5})
	assert.Equal(t, core.ColorWhite, c)
}

func TestNearestSampling(t *testing.T) {
	s := Sampler{Filter: FilterNearest}
	tex := quadTexture()

	c := s.Sample(tex, math.Vec2{X: 0.25, Y: 0.25})
	assert.Equal(t, float32(1), c.R)
	assert.Equal(t, float32(0), c.G)

	c = s.Sample(tex, math.Vec2{X: 0.75, Y: 0.25})
	assert.Equal(t, float32(1), c.G)

	c = s.Sample(tex, math.Vec2{X: 0.25, Y: 0.75})
	assert.Equal(t, float32(1), c.B)
	assert.Equal(t, float32(0), c.R)
}

func TestRepeatWrapping(t *testing.T) {
	s := Sampler{Filter: FilterNearest, Wrap: WrapRepeat}
	tex := quadTexture()

	inside := s.Sample(tex, math.Vec2{X: 0.25, Y: 0.25})
	wrapped := s.Sample(tex, math.Vec2{X: 1.25, Y: -0.75})
	assert.Equal(t, inside, wrapped)
}

func TestClampWrapping(t *testing.T) {
	s := Sampler{Filter: FilterNearest, Wrap: WrapClamp}
	tex := quadTexture()

	corner := s.Sample(tex, math.Vec2{X: 0.9, Y: 0.9})
	outside := s.Sample(tex, math.Vec2{X: 4.0, Y: 4.0})
	assert.Equal(t, corner, outside)
}

func TestBilinearTexelCenterIsExact(t *testing.T) {
	s := Sampler{Filter: FilterBilinear, Wrap: WrapClamp}
	tex := quadTexture()

	// (0.25, 0.25) is the exact center of the top-left texel.
	c := s.Sample(tex, math.Vec2{X: 0.25, Y: 0.25})
	assert.InDelta(t, 1.0, c.R, 1e-6)
	assert.InDelta(t, 0.0, c.G, 1e-6)
}

func TestBilinearMidpointBlends(t *testing.T) {
	s := Sampler{Filter: FilterBilinear, Wrap: WrapClamp}
	tex := quadTexture()

	// Texture center: equal blend of all four texels.
	c := s.Sample(tex, math.Vec2{X: 0.5, Y: 0.5})
	assert.InDelta(t, 0.5, c.R, 1e-6)
	assert.InDelta(t, 0.5, c.G, 1e-6)
	assert.InDelta(t, 0.5, c.B, 1e-6)
}

func TestSolidTextureSampling(t *testing.T) {
	s := Sampler{Filter: FilterBilinear, Wrap: WrapRepeat}
	tex := scene.NewSolidTexture("Solid", 51, 102, 153, 204)

	c := s.Sample(tex, math.Vec2{X: 0.1, Y: 0.9})
	assert.InDelta(t, 51.0/255, c.R, 1e-6)
	assert.InDelta(t, 102.0/255, c.G, 1e-6)
	assert.InDelta(t, 153.0/255, c.B, 1e-6)
	assert.InDelta(t, 204.0/255, c.A, 1e-6)
}
