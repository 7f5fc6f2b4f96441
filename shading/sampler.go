package shading

import (
	"github.com/chewxy/math32"

	"shading-engine/core"
	"shading-engine/math"
	"shading-engine/scene"
)

// Filter selects the texel reconstruction mode of a Sampler.
type Filter int

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// Wrap selects how UV coordinates outside [0,1] are handled.
type Wrap int

const (
	WrapRepeat Wrap = iota
	WrapClamp
)

// Sampler reads texels from a CPU-side texture the way a GPU sampler would.
// The zero value is nearest filtering with repeat wrapping.
type Sampler struct {
	Filter Filter
	Wrap   Wrap
}

// Sample returns the filtered color at uv, components in [0,1].
// V grows downward, matching the texture's top-to-bottom pixel rows.
// A nil or empty texture samples as opaque white.
func (s Sampler) Sample(t *scene.Texture, uv math.Vec2) core.Color {
	if t == nil || t.Width == 0 || t.Height == 0 {
		return core.ColorWhite
	}

	if s.Filter == FilterBilinear {
		return s.sampleBilinear(t, uv)
	}

	x := s.wrapTexel(int(math32.Floor(uv.X*float32(t.Width))), t.Width)
	y := s.wrapTexel(int(math32.Floor(uv.Y*float32(t.Height))), t.Height)
	return texelAt(t, x, y)
}

func (s Sampler) sampleBilinear(t *scene.Texture, uv math.Vec2) core.Color {
	// Texel centers sit at half-texel offsets.
	fx := uv.X*float32(t.Width) - 0.5
	fy := uv.Y*float32(t.Height) - 0.5

	x0 := int(math32.Floor(fx))
	y0 := int(math32.Floor(fy))
	tx := fx - float32(x0)
	ty := fy - float32(y0)

	c00 := texelAt(t, s.wrapTexel(x0, t.Width), s.wrapTexel(y0, t.Height))
	c10 := texelAt(t, s.wrapTexel(x0+1, t.Width), s.wrapTexel(y0, t.Height))
	c01 := texelAt(t, s.wrapTexel(x0, t.Width), s.wrapTexel(y0+1, t.Height))
	c11 := texelAt(t, s.wrapTexel(x0+1, t.Width), s.wrapTexel(y0+1, t.Height))

	top := lerpColor(c00, c10, tx)
	bottom := lerpColor(c01, c11, tx)
	return lerpColor(top, bottom, ty)
}

func (s Sampler) wrapTexel(i, n int) int {
	switch s.Wrap {
	case WrapClamp:
		if i < 0 {
			return 0
		}
		if i >= n {
			return n - 1
		}
		return i
	default: // WrapRepeat
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
}

func texelAt(t *scene.Texture, x, y int) core.Color {
	idx := (y*t.Width + x) * 4
	return core.Color{
		R: float32(t.Pixels[idx]) / 255,
		G: float32(t.Pixels[idx+1]) / 255,
		B: float32(t.Pixels[idx+2]) / 255,
		A: float32(t.Pixels[idx+3]) / 255,
	}
}

func lerpColor(a, b core.Color, t float32) core.Color {
	return core.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}
