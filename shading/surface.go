package shading

import (
	"github.com/chewxy/math32"

	"shading-engine/core"
	"shading-engine/math"
	"shading-engine/scene"
)

// Reflectance constants of the surface program. The reference implementation
// hardcodes both; they are compiled into the GLSL programs as well, so a
// change here must be mirrored in the opengl package.
const (
	AmbientStrength  = 0.1
	SpecularExponent = 32
)

// SurfaceMaterial is the read-only texture binding for one surface draw:
// a diffuse color map and a tangent-space normal map, each with its sampler.
// The material does not own the textures.
type SurfaceMaterial struct {
	Diffuse        *scene.Texture
	DiffuseSampler Sampler
	Normal         *scene.Texture
	NormalSampler  Sampler
}

// SurfaceVarying is the interpolated data flowing from the surface vertex
// stage to the fragment stage. It exists only for the duration of
// rasterization; nothing is persisted across invocations.
type SurfaceVarying struct {
	ClipPosition    math.Vec4
	UV              math.Vec2
	TangentLightPos math.Vec3
	TangentViewPos  math.Vec3
	TangentFragPos  math.Vec3
}

// SurfaceVertex runs the surface program's vertex stage for one vertex of one
// instance: clip-space position plus the fragment, view and light positions
// projected into the vertex's tangent space.
//
// Degenerate (zero-length) tangent frames are not validated here; they yield
// NaN shading downstream. Mesh preprocessing owns that guarantee.
func SurfaceVertex(v core.Vertex, inst core.Instance, cam Camera, light Light) SurfaceVarying {
	nm := inst.NormalMatrix
	normal := nm.MulVec(v.Normal).Normalize()
	tangent := nm.MulVec(v.Tangent).Normalize()
	bitangent := nm.MulVec(v.Bitangent).Normalize()

	// Rows are the world-space tangent frame. The basis is orthonormal, so
	// the transpose is the inverse; never substitute a general inverse here.
	worldToTangent := math.Mat3FromRows(tangent, bitangent, normal).Transpose()

	world := inst.ModelMatrix.MulVec(v.Position.ToVec4(1))
	worldPos := world.ToVec3()

	return SurfaceVarying{
		ClipPosition:    cam.ViewProjection.MulVec(world),
		UV:              v.UV,
		TangentLightPos: worldToTangent.MulVec(light.Position),
		TangentViewPos:  worldToTangent.MulVec(cam.ViewPosition.ToVec3()),
		TangentFragPos:  worldToTangent.MulVec(worldPos),
	}
}

// DecodeNormal remaps a sampled normal-map texel from [0,1] to a tangent-space
// direction in [-1,1]. The result is not re-normalized; quantized flat texels
// stay close to unit length and the reflectance terms tolerate the error.
func DecodeNormal(c core.Color) math.Vec3 {
	return math.Vec3{X: c.R*2 - 1, Y: c.G*2 - 1, Z: c.B*2 - 1}
}

// SurfaceFragment runs the surface program's fragment stage for one covered
// pixel: sample both textures, evaluate ambient + diffuse + specular entirely
// in tangent space, and modulate the sampled base color. Alpha is the diffuse
// texture's alpha, untouched by lighting.
func SurfaceFragment(in SurfaceVarying, mat SurfaceMaterial, light Light) core.Color {
	object := mat.DiffuseSampler.Sample(mat.Diffuse, in.UV)
	normal := DecodeNormal(mat.NormalSampler.Sample(mat.Normal, in.UV))

	lightDir := in.TangentLightPos.Sub(in.TangentFragPos).Normalize()
	viewDir := in.TangentViewPos.Sub(in.TangentFragPos).Normalize()
	halfDir := viewDir.Add(lightDir).Normalize()

	ambient := light.Color.Mul(AmbientStrength)
	diffuse := light.Color.Mul(saturateDot(normal, lightDir))
	specular := light.Color.Mul(math32.Pow(saturateDot(normal, halfDir), SpecularExponent))

	lit := ambient.Add(diffuse).Add(specular)
	return core.Color{
		R: lit.X * object.R,
		G: lit.Y * object.G,
		B: lit.Z * object.B,
		A: object.A,
	}
}

// BlinnPhong evaluates the reflectance terms directly in world space with an
// explicit normal. It is the space-independent reference for SurfaceFragment:
// feeding it the geometric normal reproduces classic per-vertex Blinn-Phong.
func BlinnPhong(normal, fragPos, viewPos math.Vec3, light Light) math.Vec3 {
	lightDir := light.Position.Sub(fragPos).Normalize()
	viewDir := viewPos.Sub(fragPos).Normalize()
	halfDir := viewDir.Add(lightDir).Normalize()

	ambient := light.Color.Mul(AmbientStrength)
	diffuse := light.Color.Mul(saturateDot(normal, lightDir))
	specular := light.Color.Mul(math32.Pow(saturateDot(normal, halfDir), SpecularExponent))
	return ambient.Add(diffuse).Add(specular)
}

// saturateDot clamps a dot product to zero so back-facing geometry receives
// no negative light.
func saturateDot(a, b math.Vec3) float32 {
	d := a.Dot(b)
	if d < 0 {
		return 0
	}
	return d
}
