package shading

import (
	"encoding/binary"
	stdmath "math"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shading-engine/core"
	"shading-engine/math"
)

func getFloat(buf []byte, off int) float32 {
	return stdmath.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}

// The attribute pointers in the opengl package derive offsets from the Go
// struct layout; it must match the packed record byte for byte.
func TestVertexStructMatchesPackedLayout(t *testing.T) {
	var v core.Vertex
	require.Equal(t, uintptr(SurfaceVertexSize), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(VertexPositionOffset), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(VertexUVOffset), unsafe.Offsetof(v.UV))
	assert.Equal(t, uintptr(VertexNormalOffset), unsafe.Offsetof(v.Normal))
	assert.Equal(t, uintptr(VertexTangentOffset), unsafe.Offsetof(v.Tangent))
	assert.Equal(t, uintptr(VertexBitangentOffset), unsafe.Offsetof(v.Bitangent))
}

func TestCameraPack(t *testing.T) {
	vp := math.Mat4Translation(math.Vec3{X: 1, Y: 2, Z: 3})
	cam := NewCamera(math.Vec3{X: 0, Y: 5, Z: 10}, vp)

	buf := cam.Pack()
	require.Len(t, buf, CameraUniformSize)

	assert.Equal(t, float32(0), getFloat(buf, 0))
	assert.Equal(t, float32(5), getFloat(buf, 4))
	assert.Equal(t, float32(10), getFloat(buf, 8))
	assert.Equal(t, float32(1), getFloat(buf, 12))

	// Matrix rows in memory order: translation sits in row 3.
	assert.Equal(t, float32(1), getFloat(buf, 16))        // [0][0]
	assert.Equal(t, float32(1), getFloat(buf, 16+12*4))   // [3][0]
	assert.Equal(t, float32(2), getFloat(buf, 16+13*4))   // [3][1]
	assert.Equal(t, float32(3), getFloat(buf, 16+14*4))   // [3][2]
	assert.Equal(t, float32(1), getFloat(buf, 16+15*4))   // [3][3]
}

func TestLightPack(t *testing.T) {
	light := Light{
		Position: math.Vec3{X: 2, Y: 2, Z: 2},
		Color:    math.Vec3{X: 1, Y: 0.5, Z: 0.25},
	}
	buf := light.Pack()
	require.Len(t, buf, LightUniformSize)

	assert.Equal(t, float32(2), getFloat(buf, 0))
	assert.Equal(t, float32(2), getFloat(buf, 4))
	assert.Equal(t, float32(2), getFloat(buf, 8))
	assert.Equal(t, float32(0), getFloat(buf, 12)) // pad

	assert.Equal(t, float32(1), getFloat(buf, 16))
	assert.Equal(t, float32(0.5), getFloat(buf, 20))
	assert.Equal(t, float32(0.25), getFloat(buf, 24))
	assert.Equal(t, float32(0), getFloat(buf, 28)) // pad
}

func TestPackInstance(t *testing.T) {
	rotation := math.QuaternionFromAxisAngle(math.Vec3Up, 0.5)
	inst := core.InstanceAt(math.Vec3{X: 3, Y: -1, Z: 2}, rotation)

	buf := PackInstance(inst)
	require.Len(t, buf, InstanceDataSize)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			off := InstanceModelOffset + (i*4+j)*4
			assert.Equal(t, inst.ModelMatrix[i][j], getFloat(buf, off),
				"model[%d][%d]", i, j)
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			off := InstanceNormalOffset + (i*3+j)*4
			assert.Equal(t, inst.NormalMatrix[i][j], getFloat(buf, off),
				"normal[%d][%d]", i, j)
		}
	}
}

func TestPackSurfaceVertex(t *testing.T) {
	v := core.Vertex{
		Position:  math.Vec3{X: 1, Y: 2, Z: 3},
		UV:        math.Vec2{X: 0.25, Y: 0.75},
		Normal:    math.Vec3{X: 0, Y: 0, Z: 1},
		Tangent:   math.Vec3{X: 1, Y: 0, Z: 0},
		Bitangent: math.Vec3{X: 0, Y: 1, Z: 0},
	}
	buf := PackSurfaceVertex(v)
	require.Len(t, buf, SurfaceVertexSize)

	assert.Equal(t, float32(1), getFloat(buf, VertexPositionOffset))
	assert.Equal(t, float32(0.25), getFloat(buf, VertexUVOffset))
	assert.Equal(t, float32(0.75), getFloat(buf, VertexUVOffset+4))
	assert.Equal(t, float32(1), getFloat(buf, VertexNormalOffset+8))
	assert.Equal(t, float32(1), getFloat(buf, VertexTangentOffset))
	assert.Equal(t, float32(1), getFloat(buf, VertexBitangentOffset+4))
}
