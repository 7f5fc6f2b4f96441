package shading

import (
	"shading-engine/core"
	"shading-engine/math"
)

// MarkerScale shrinks the unit marker mesh so it reads as a small gizmo
// rather than a scene object.
const MarkerScale = 0.25

// MarkerVarying is the interpolated data of the light marker program.
type MarkerVarying struct {
	ClipPosition math.Vec4
	Color        math.Vec3
}

// MarkerVertex places a unit-mesh vertex at the light's world position,
// scaled down, and passes the light color through. No lighting math and no
// dependency on normals, tangents or textures.
func MarkerVertex(position math.Vec3, cam Camera, light Light) MarkerVarying {
	world := position.Mul(MarkerScale).Add(light.Position)
	return MarkerVarying{
		ClipPosition: cam.ViewProjection.MulVec(world.ToVec4(1)),
		Color:        light.Color,
	}
}

// MarkerFragment emits the passed-through light color at full opacity.
func MarkerFragment(in MarkerVarying) core.Color {
	return core.Color{R: in.Color.X, G: in.Color.Y, B: in.Color.Z, A: 1}
}
