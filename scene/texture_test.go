package scene

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSolidTexture(t *testing.T) {
	tex := NewSolidTexture("Solid", 10, 20, 30, 40)
	assert.Equal(t, 1, tex.Width)
	assert.Equal(t, 1, tex.Height)
	assert.Equal(t, []byte{10, 20, 30, 40}, tex.Pixels)
}

func TestNewFlatNormalTexture(t *testing.T) {
	tex := NewFlatNormalTexture()
	require.Len(t, tex.Pixels, 4)
	assert.Equal(t, []byte{128, 128, 255, 255}, tex.Pixels)
}

func TestNewCheckerTexture(t *testing.T) {
	a := [4]uint8{255, 0, 0, 255}
	b := [4]uint8{0, 0, 255, 255}
	tex := NewCheckerTexture("Checker", 4, 2, a, b)

	require.Equal(t, 4, tex.Width)
	require.Equal(t, 4, tex.Height)
	require.Len(t, tex.Pixels, 4*4*4)

	texel := func(x, y int) [4]uint8 {
		i := (y*tex.Width + x) * 4
		return [4]uint8{tex.Pixels[i], tex.Pixels[i+1], tex.Pixels[i+2], tex.Pixels[i+3]}
	}

	assert.Equal(t, a, texel(0, 0))
	assert.Equal(t, b, texel(2, 0)) // next cell right
	assert.Equal(t, b, texel(0, 2)) // next cell down
	assert.Equal(t, a, texel(2, 2)) // diagonal cell matches origin
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 128})

	tex := FromImage("FromImage", img)
	require.Equal(t, 2, tex.Width)
	require.Equal(t, 1, tex.Height)
	assert.Equal(t, byte(255), tex.Pixels[0])
	assert.Equal(t, byte(255), tex.Pixels[5])
	assert.Equal(t, byte(128), tex.Pixels[7])
}

func TestLoadTextureMissingFile(t *testing.T) {
	_, err := LoadTexture("does-not-exist.png")
	assert.Error(t, err)
}
