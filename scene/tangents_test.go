package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shading-engine/core"
	"shading-engine/math"
)

func assertUnit(t *testing.T, v math.Vec3, what string, i int) {
	t.Helper()
	assert.InDelta(t, 1.0, v.Length(), 1e-3, "%s of vertex %d must be unit length", what, i)
}

func checkTangentFrames(t *testing.T, m *Mesh) {
	t.Helper()
	for i, v := range m.Vertices {
		assertUnit(t, v.Normal, "normal", i)
		assertUnit(t, v.Tangent, "tangent", i)
		assertUnit(t, v.Bitangent, "bitangent", i)

		assert.InDelta(t, 0.0, v.Normal.Dot(v.Tangent), 1e-3,
			"tangent of vertex %d must be perpendicular to the normal", i)
	}
}

func TestCubeTangentFrames(t *testing.T) {
	checkTangentFrames(t, CreateCube(1.0))
}

func TestQuadTangentFrames(t *testing.T) {
	checkTangentFrames(t, CreateQuad())
}

func TestPlaneTangentFrames(t *testing.T) {
	m := CreatePlane(10, 10, 4)
	checkTangentFrames(t, m)

	// A flat XZ plane has +Y normals everywhere; the tangent frame must lie
	// in the plane.
	for i, v := range m.Vertices {
		assert.InDelta(t, 0.0, v.Tangent.Y, 1e-4, "tangent %d must lie in the plane", i)
		assert.InDelta(t, 0.0, v.Bitangent.Y, 1e-4, "bitangent %d must lie in the plane", i)
	}
}

func TestSphereTangentFrames(t *testing.T) {
	checkTangentFrames(t, CreateSphere(2.0, 16, 8))
}

// Tangents follow the UV layout: on the quad's front face, U grows with +X,
// so the tangent points along +X.
func TestQuadTangentFollowsU(t *testing.T) {
	m := CreateQuad()
	for i, v := range m.Vertices {
		assert.Greater(t, v.Tangent.X, float32(0.9), "vertex %d tangent should follow +X", i)
	}
}

func TestDegenerateUVFallback(t *testing.T) {
	// All three vertices share one UV point: no valid UV derivative exists,
	// so the fallback must still produce a usable orthonormal frame.
	m := &Mesh{
		Name: "DegenerateUV",
		Vertices: []core.Vertex{
			{Position: math.Vec3{X: 0, Y: 0, Z: 0}, Normal: math.Vec3Up, UV: math.Vec2{X: 0.5, Y: 0.5}},
			{Position: math.Vec3{X: 1, Y: 0, Z: 0}, Normal: math.Vec3Up, UV: math.Vec2{X: 0.5, Y: 0.5}},
			{Position: math.Vec3{X: 0, Y: 0, Z: 1}, Normal: math.Vec3Up, UV: math.Vec2{X: 0.5, Y: 0.5}},
		},
		Indices: []uint32{0, 1, 2},
	}
	ComputeTangents(m)
	checkTangentFrames(t, m)
}
