package scene

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"shading-engine/core"
	"shading-engine/math"
)

// GLTFResult holds the meshes and textures loaded from a .glb / .gltf file.
// Before the first render, upload every texture in the Textures slice through
// the renderer backend.
type GLTFResult struct {
	Meshes   []*Mesh    // one entry per mesh primitive
	Textures []*Texture // textures that need GPU upload
}

// LoadGLTF opens a .glb or .gltf file and returns its mesh primitives with
// materials resolved to diffuse and normal textures. Tangent frames are taken
// from the file's TANGENT attribute when present and generated from the UV
// layout otherwise.
func LoadGLTF(path string) (*GLTFResult, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	dir := filepath.Dir(path)
	result := &GLTFResult{}

	// Textures
	texCache := make([]*Texture, len(doc.Textures))
	for i, gt := range doc.Textures {
		if gt.Source == nil {
			continue
		}
		img := doc.Images[*gt.Source]

		var tex *Texture
		if img.BufferView != nil {
			// Binary GLB: image data lives in a buffer view
			raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
			if err != nil {
				return nil, fmt.Errorf("gltf image %d bufferview: %w", *gt.Source, err)
			}
			name := img.Name
			if name == "" {
				name = fmt.Sprintf("gltf_img_%d", *gt.Source)
			}
			tex, err = decodeImageBytes(name, raw)
			if err != nil {
				return nil, fmt.Errorf("gltf image %d decode: %w", *gt.Source, err)
			}
		} else if img.URI != "" && !img.IsEmbeddedResource() {
			// External file referenced by relative URI
			tex, err = LoadTexture(filepath.Join(dir, img.URI))
			if err != nil {
				return nil, fmt.Errorf("gltf image %d (%s): %w", *gt.Source, img.URI, err)
			}
		}

		if tex != nil {
			texCache[i] = tex
			result.Textures = append(result.Textures, tex)
		}
	}

	// Materials: base color map → diffuse, normal map carried through.
	matCache := make([]*Material, len(doc.Materials))
	for i, gm := range doc.Materials {
		mat := DefaultMaterial()
		if gm.Name != "" {
			mat.Name = gm.Name
		}

		if pbr := gm.PBRMetallicRoughness; pbr != nil && pbr.BaseColorTexture != nil {
			idx := pbr.BaseColorTexture.Index
			if idx < len(texCache) && texCache[idx] != nil {
				mat.DiffuseTexture = texCache[idx]
			}
		}
		if gm.NormalTexture != nil && gm.NormalTexture.Index != nil {
			idx := *gm.NormalTexture.Index
			if idx >= 0 && idx < len(texCache) && texCache[idx] != nil {
				mat.NormalTexture = texCache[idx]
			}
		}
		matCache[i] = mat
	}

	// Mesh primitives
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			m, hasTangents, err := loadGLTFPrimitive(doc, gm.Name, pi, *prim)
			if err != nil {
				return nil, fmt.Errorf("gltf mesh %d prim %d: %w", mi, pi, err)
			}
			if !hasTangents {
				ComputeTangents(m)
			}
			if prim.Material != nil && *prim.Material < len(matCache) {
				m.Material = matCache[*prim.Material]
			}
			result.Meshes = append(result.Meshes, m)
		}
	}

	return result, nil
}

// loadGLTFPrimitive converts one glTF mesh primitive into a scene.Mesh.
// The second return reports whether the file supplied a tangent frame.
func loadGLTFPrimitive(doc *gltf.Document, meshName string, primIdx int, prim gltf.Primitive) (*Mesh, bool, error) {
	name := fmt.Sprintf("%s_p%d", meshName, primIdx)
	if meshName == "" {
		name = fmt.Sprintf("prim_%d", primIdx)
	}

	// Positions are required
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, false, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, false, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	var tangents [][4]float32

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TANGENT"]; ok {
		tangents, _ = modeler.ReadTangent(doc, doc.Accessors[idx], nil)
	}

	verts := make([]core.Vertex, len(positions))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
			Normal:   math.Vec3{X: 0, Y: 1, Z: 0},
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
		}
		if i < len(uvs) {
			v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
		}
		if i < len(tangents) {
			// glTF stores handedness in w: bitangent = cross(N, T) * w.
			t := tangents[i]
			v.Tangent = math.Vec3{X: t[0], Y: t[1], Z: t[2]}
			v.Bitangent = v.Normal.Cross(v.Tangent).Mul(t[3])
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, false, fmt.Errorf("indices: %w", err)
		}
	}

	return CreateMeshFromData(name, verts, indices), len(tangents) > 0, nil
}

// decodeImageBytes decodes a PNG or JPEG byte slice into an RGBA8 scene.Texture.
func decodeImageBytes(name string, data []byte) (*Texture, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromImage(name, img), nil
}
