package scene

import (
	stdmath "math"

	"shading-engine/math"
)

// Camera is a yaw/pitch fly camera. Angles are in radians: yaw is measured in
// the XZ plane from +X toward +Z, pitch positive looks up. The camera system
// is a host responsibility; the shading programs only ever see the uniform
// built from Position and ViewProjectionMatrix.
type Camera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(position math.Vec3, yaw, pitch, fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    position,
		Yaw:         yaw,
		Pitch:       pitch,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

// Forward returns the unit view direction derived from yaw and pitch.
func (c *Camera) Forward() math.Vec3 {
	cosPitch := float32(stdmath.Cos(float64(c.Pitch)))
	return math.Vec3{
		X: float32(stdmath.Cos(float64(c.Yaw))) * cosPitch,
		Y: float32(stdmath.Sin(float64(c.Pitch))),
		Z: float32(stdmath.Sin(float64(c.Yaw))) * cosPitch,
	}.Normalize()
}

// Right returns the unit right vector in the ground plane.
func (c *Camera) Right() math.Vec3 {
	return math.Vec3{
		X: -float32(stdmath.Sin(float64(c.Yaw))),
		Y: 0,
		Z: float32(stdmath.Cos(float64(c.Yaw))),
	}.Normalize()
}

func (c *Camera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.Position.Add(c.Forward()), math.Vec3Up)
}

func (c *Camera) ProjectionMatrix() math.Mat4 {
	return math.Mat4Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
}

// ViewProjectionMatrix combines view then projection (row-vector order).
func (c *Camera) ViewProjectionMatrix() math.Mat4 {
	return c.ViewMatrix().Mul(c.ProjectionMatrix())
}
