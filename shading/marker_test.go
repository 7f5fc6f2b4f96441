package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shading-engine/math"
)

// The marker's geometric center lands exactly on the light position, and the
// mesh shrinks by the marker scale around it.
func TestMarkerVertexPlacement(t *testing.T) {
	cam := NewCamera(math.Vec3{X: 0, Y: 5, Z: 10}, math.Mat4Identity())
	light := Light{
		Position: math.Vec3{X: 2, Y: 2, Z: 2},
		Color:    math.Vec3{X: 1, Y: 0.8, Z: 0.2},
	}

	center := MarkerVertex(math.Vec3Zero, cam, light)
	assert.Equal(t, light.Position.X, center.ClipPosition.X)
	assert.Equal(t, light.Position.Y, center.ClipPosition.Y)
	assert.Equal(t, light.Position.Z, center.ClipPosition.Z)

	offset := MarkerVertex(math.Vec3{X: 1, Y: 0, Z: 0}, cam, light)
	assert.Equal(t, light.Position.X+MarkerScale, offset.ClipPosition.X)
	assert.Equal(t, light.Position.Y, offset.ClipPosition.Y)
}

// Marker output is the light color at full opacity, no matter where the
// camera looks from.
func TestMarkerFragmentColor(t *testing.T) {
	light := Light{
		Position: math.Vec3{X: -3, Y: 1, Z: 4},
		Color:    math.Vec3{X: 0.2, Y: 0.9, Z: 0.4},
	}

	eyes := []math.Vec3{
		{X: 0, Y: 5, Z: 10},
		{X: -8, Y: 2, Z: -3},
		{X: 0, Y: 20, Z: 0},
	}
	for _, eye := range eyes {
		cam := NewCamera(eye, math.Mat4LookAt(eye, light.Position, math.Vec3Up))
		v := MarkerVertex(math.Vec3Zero, cam, light)
		c := MarkerFragment(v)

		assert.Equal(t, light.Color.X, c.R)
		assert.Equal(t, light.Color.Y, c.G)
		assert.Equal(t, light.Color.Z, c.B)
		assert.Equal(t, float32(1), c.A)
	}
}
