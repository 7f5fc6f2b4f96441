package scene

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Texture holds CPU-side pixel data for a 2D texture.
// GLID is set by the OpenGL backend after upload; do not access directly.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in RGBA8 format (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
	// GLID is the OpenGL texture object ID, set by the renderer backend.
	GLID uint32
}

// LoadTexture reads a PNG or JPEG file from disk and returns a CPU-side Texture.
// The image is converted to RGBA8 automatically.
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	return FromImage(path, img), nil
}

// FromImage converts any decoded image to an RGBA8 Texture.
func FromImage(name string, img image.Image) *Texture {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	rgba := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x, y, img.At(x, y))
		}
	}

	return &Texture{
		Name:   name,
		Width:  w,
		Height: h,
		Pixels: rgba.Pix,
	}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0–255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// NewFlatNormalTexture creates a 1x1 normal map pointing straight up in
// tangent space (128,128,255 — the closest RGBA8 encoding of +Z). Surfaces
// using it shade as if they had no normal map at all.
func NewFlatNormalTexture() *Texture {
	return NewSolidTexture("FlatNormal", 128, 128, 255, 255)
}

// NewCheckerTexture creates a size x size texture of alternating cells of the
// two given colors, cellSize pixels each. Handy as a fallback diffuse map.
func NewCheckerTexture(name string, size, cellSize int, a, b [4]uint8) *Texture {
	if cellSize < 1 {
		cellSize = 1
	}
	pixels := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if ((x/cellSize)+(y/cellSize))%2 == 1 {
				c = b
			}
			idx := (y*size + x) * 4
			copy(pixels[idx:idx+4], c[:])
		}
	}
	return &Texture{
		Name:   name,
		Width:  size,
		Height: size,
		Pixels: pixels,
	}
}
