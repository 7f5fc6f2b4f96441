package scene

// Material names the texture resources bound for one draw of the surface
// program: a diffuse color map and a tangent-space normal map. Textures are
// external resources; the material owns no GPU state.
//
// Upload via the renderer backend before rendering.
type Material struct {
	Name string

	// Diffuse color map. If nil, the surface samples as opaque white.
	DiffuseTexture *Texture

	// Tangent-space normal map (RGB → XYZ normals, stored 0-1 → -1..1).
	// If nil, a flat map is assumed and shading uses the geometric normal.
	NormalTexture *Texture
}

// DefaultMaterial returns a plain white material with a flat normal map.
func DefaultMaterial() *Material {
	return &Material{
		Name:           "Default",
		DiffuseTexture: NewSolidTexture("White", 255, 255, 255, 255),
		NormalTexture:  NewFlatNormalTexture(),
	}
}
