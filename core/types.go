package core

import (
	"shading-engine/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorBlack  = Color{0, 0, 0, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// Vertex is one mesh vertex in object space. Tangent and Bitangent form an
// orthonormal basis with Normal, precomputed from the UV layout
// (see scene.ComputeTangents).
type Vertex struct {
	Position  math.Vec3
	UV        math.Vec2
	Normal    math.Vec3
	Tangent   math.Vec3
	Bitangent math.Vec3
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// GetMatrix returns the object-to-world matrix. Row-vector convention:
// scale is applied first, then rotation, then translation.
func (t Transform) GetMatrix() math.Mat4 {
	scale := math.Mat4Scale(t.Scale)
	rotation := t.Rotation.ToMat4()
	translation := math.Mat4Translation(t.Position)
	return scale.Mul(rotation).Mul(translation)
}

func (t Transform) GetForward() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Front)
}

func (t Transform) GetRight() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Right)
}

func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}

// Instance is one drawn copy of a shared mesh. NormalMatrix is the
// inverse-transpose of the model matrix's upper 3x3 so normals stay
// perpendicular under non-uniform scale.
type Instance struct {
	ModelMatrix  math.Mat4
	NormalMatrix math.Mat3
}

// NewInstance derives both matrices from a transform.
func NewInstance(t Transform) Instance {
	model := t.GetMatrix()
	return Instance{
		ModelMatrix:  model,
		NormalMatrix: math.Mat3NormalMatrix(model),
	}
}

// InstanceAt places an unscaled rotated copy at position. The normal matrix
// is the rotation itself, no inversion needed.
func InstanceAt(position math.Vec3, rotation math.Quaternion) Instance {
	return Instance{
		ModelMatrix:  rotation.ToMat4().Mul(math.Mat4Translation(position)),
		NormalMatrix: rotation.ToMat3(),
	}
}
