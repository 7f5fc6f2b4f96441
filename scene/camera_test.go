package scene

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"

	"shading-engine/math"
)

func TestCameraForward(t *testing.T) {
	// Yaw -90 degrees, level pitch: looking down -Z.
	c := NewCamera(math.Vec3Zero, -stdmath.Pi/2, 0, stdmath.Pi/4, 16.0/9.0, 0.1, 100)
	f := c.Forward()
	assert.InDelta(t, 0.0, f.X, 1e-6)
	assert.InDelta(t, 0.0, f.Y, 1e-6)
	assert.InDelta(t, -1.0, f.Z, 1e-6)
}

func TestCameraRightPerpendicularToForward(t *testing.T) {
	c := NewCamera(math.Vec3Zero, 0.7, -0.3, stdmath.Pi/4, 16.0/9.0, 0.1, 100)
	assert.InDelta(t, 0.0, c.Forward().Dot(c.Right()), 1e-6)
	assert.InDelta(t, 0.0, c.Right().Y, 1e-6)
}

// The view matrix maps the eye to the origin and a point straight ahead onto
// the view axis.
func TestCameraViewMatrix(t *testing.T) {
	eye := math.Vec3{X: 0, Y: 5, Z: 10}
	c := NewCamera(eye, -stdmath.Pi/2, 0, stdmath.Pi/4, 1.0, 0.1, 100)

	view := c.ViewMatrix()
	atOrigin := view.MulVec(eye.ToVec4(1))
	assert.InDelta(t, 0.0, atOrigin.X, 1e-5)
	assert.InDelta(t, 0.0, atOrigin.Y, 1e-5)
	assert.InDelta(t, 0.0, atOrigin.Z, 1e-5)

	ahead := view.MulVec(eye.Add(c.Forward().Mul(3)).ToVec4(1))
	assert.InDelta(t, 0.0, ahead.X, 1e-5)
	assert.InDelta(t, 0.0, ahead.Y, 1e-5)
}

// A point in front of the camera lands inside clip space after perspective
// division; a point behind gets a negative w.
func TestCameraViewProjection(t *testing.T) {
	c := NewCamera(math.Vec3{X: 0, Y: 0, Z: 5}, -stdmath.Pi/2, 0, stdmath.Pi/4, 1.0, 0.1, 100)
	vp := c.ViewProjectionMatrix()

	front := vp.MulVec(math.Vec3Zero.ToVec4(1))
	assert.Greater(t, front.W, float32(0))
	ndc := front.ToVec3DivW()
	assert.InDelta(t, 0.0, ndc.X, 1e-5)
	assert.InDelta(t, 0.0, ndc.Y, 1e-5)

	behind := vp.MulVec(math.Vec3{X: 0, Y: 0, Z: 10}.ToVec4(1))
	assert.Less(t, behind.W, float32(0))
}

func TestUpdateAspectRatio(t *testing.T) {
	c := NewCamera(math.Vec3Zero, 0, 0, stdmath.Pi/4, 1.0, 0.1, 100)
	c.UpdateAspectRatio(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, c.AspectRatio, 1e-6)

	c.UpdateAspectRatio(100, 0) // degenerate height is ignored
	assert.InDelta(t, 1920.0/1080.0, c.AspectRatio, 1e-6)
}
