package shading

import "shading-engine/math"

// InterpolateSurface blends three vertex-stage outputs with barycentric
// weights (u + v + w = 1), producing the fragment-stage input the rasterizer
// would deliver for a point inside the triangle. Weights are applied linearly
// to every varying, clip position included.
func InterpolateSurface(a, b, c SurfaceVarying, u, v, w float32) SurfaceVarying {
	return SurfaceVarying{
		ClipPosition:    lerpVec4(a.ClipPosition, b.ClipPosition, c.ClipPosition, u, v, w),
		UV:              lerpVec2(a.UV, b.UV, c.UV, u, v, w),
		TangentLightPos: lerpVec3(a.TangentLightPos, b.TangentLightPos, c.TangentLightPos, u, v, w),
		TangentViewPos:  lerpVec3(a.TangentViewPos, b.TangentViewPos, c.TangentViewPos, u, v, w),
		TangentFragPos:  lerpVec3(a.TangentFragPos, b.TangentFragPos, c.TangentFragPos, u, v, w),
	}
}

func lerpVec2(a, b, c math.Vec2, u, v, w float32) math.Vec2 {
	return a.Mul(u).Add(b.Mul(v)).Add(c.Mul(w))
}

func lerpVec3(a, b, c math.Vec3, u, v, w float32) math.Vec3 {
	return a.Mul(u).Add(b.Mul(v)).Add(c.Mul(w))
}

func lerpVec4(a, b, c math.Vec4, u, v, w float32) math.Vec4 {
	return a.Mul(u).Add(b.Mul(v)).Add(c.Mul(w))
}
