// Package shading implements the two render programs of the engine as pure,
// stateless stage functions: the surface program (tangent-space normal mapping
// with Blinn-Phong reflectance) and the light marker program. The same math is
// mirrored in GLSL by the OpenGL backend; the Go stages are the reference and
// run anywhere, one invocation per vertex or fragment, safe to call
// concurrently.
package shading

import (
	"encoding/binary"
	stdmath "math"

	"shading-engine/core"
	"shading-engine/math"
)

// Uniform and vertex-record byte sizes. These are a wire contract shared with
// the GPU backend; the Pack functions below and the attribute pointers in the
// opengl package must agree on every offset.
const (
	CameraUniformSize = 80  // vec4 view position + 4x4 view-projection
	LightUniformSize  = 32  // vec3 position + pad, vec3 color + pad
	InstanceDataSize  = 100 // 4 vec4 model rows + 3 vec3 normal rows
	SurfaceVertexSize = 56  // position + uv + normal + tangent + bitangent
	MarkerVertexSize  = 12  // position only
)

// Surface vertex record offsets in bytes.
const (
	VertexPositionOffset  = 0
	VertexUVOffset        = 12
	VertexNormalOffset    = 20
	VertexTangentOffset   = 32
	VertexBitangentOffset = 44
)

// Instance record offsets in bytes. The model matrix occupies four vec4 rows,
// the normal matrix three tightly packed vec3 rows.
const (
	InstanceModelOffset  = 0
	InstanceNormalOffset = 64
)

// Camera is the per-frame camera uniform. ViewPosition is the world-space eye
// in homogeneous form; ViewProjection maps world space to clip space. Both
// must be updated together each frame by the host camera system.
type Camera struct {
	ViewPosition   math.Vec4
	ViewProjection math.Mat4
}

// NewCamera builds the uniform from an eye position and a combined
// view-projection matrix.
func NewCamera(eye math.Vec3, viewProjection math.Mat4) Camera {
	return Camera{
		ViewPosition:   eye.ToVec4(1),
		ViewProjection: viewProjection,
	}
}

// Light is the per-frame point light uniform. Color is linear RGB intensity,
// unbounded positive; negative components produce undefined (but not
// erroneous) shading.
type Light struct {
	Position math.Vec3
	Color    math.Vec3
}

// Pack serializes the camera uniform into its 80-byte GPU layout:
// vec4 view position followed by the view-projection matrix in row order
// (which the GPU reads column-major, matching the row-vector convention of
// the math package).
func (c Camera) Pack() []byte {
	buf := make([]byte, CameraUniformSize)
	putVec4(buf, 0, c.ViewPosition)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			putFloat(buf, 16+(i*4+j)*4, c.ViewProjection[i][j])
		}
	}
	return buf
}

// Pack serializes the light uniform into its 32-byte GPU layout. Uniform
// blocks require 16-byte alignment for vec3, hence the padding word after
// each vector.
func (l Light) Pack() []byte {
	buf := make([]byte, LightUniformSize)
	putVec3(buf, 0, l.Position)
	putVec3(buf, 16, l.Color)
	return buf
}

// PackInstance serializes one instance into its 100-byte per-instance vertex
// record: four vec4 rows of the model matrix, then three vec3 rows of the
// normal matrix.
func PackInstance(inst core.Instance) []byte {
	buf := make([]byte, InstanceDataSize)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			putFloat(buf, InstanceModelOffset+(i*4+j)*4, inst.ModelMatrix[i][j])
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			putFloat(buf, InstanceNormalOffset+(i*3+j)*4, inst.NormalMatrix[i][j])
		}
	}
	return buf
}

// PackSurfaceVertex serializes one surface vertex into its 56-byte record.
func PackSurfaceVertex(v core.Vertex) []byte {
	buf := make([]byte, SurfaceVertexSize)
	putVec3(buf, VertexPositionOffset, v.Position)
	putFloat(buf, VertexUVOffset, v.UV.X)
	putFloat(buf, VertexUVOffset+4, v.UV.Y)
	putVec3(buf, VertexNormalOffset, v.Normal)
	putVec3(buf, VertexTangentOffset, v.Tangent)
	putVec3(buf, VertexBitangentOffset, v.Bitangent)
	return buf
}

func putFloat(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], stdmath.Float32bits(v))
}

func putVec3(buf []byte, off int, v math.Vec3) {
	putFloat(buf, off, v.X)
	putFloat(buf, off+4, v.Y)
	putFloat(buf, off+8, v.Z)
}

func putVec4(buf []byte, off int, v math.Vec4) {
	putFloat(buf, off, v.X)
	putFloat(buf, off+4, v.Y)
	putFloat(buf, off+8, v.Z)
	putFloat(buf, off+12, v.W)
}
