package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"shading-engine/core"
	"shading-engine/scene"
	"shading-engine/shading"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO         uint32
	VBO         uint32
	EBO         uint32
	IndexCount  int32
	HasIndices  bool
	InstanceVBO uint32 // per-instance data VBO (0 = not yet allocated)
	InstanceCap int    // capacity of InstanceVBO in instances
}

// Renderer is the OpenGL backend executing the two shading programs: the
// surface program (tangent-space normal mapping + Blinn-Phong) and the light
// marker program. The GLSL below mirrors the shading package's stage
// functions; both must change together.
type Renderer struct {
	surfaceProg uint32
	markerProg  uint32

	// Surface program uniforms
	surfViewProjLoc   int32
	surfViewPosLoc    int32
	surfLightPosLoc   int32
	surfLightColorLoc int32
	surfDiffuseTexLoc int32
	surfNormalTexLoc  int32

	// Marker program uniforms
	markViewProjLoc   int32
	markLightPosLoc   int32
	markLightColorLoc int32

	gpuMeshes map[*scene.Mesh]*GPUMesh

	logger *zap.Logger
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// Surface program vertex stage: clip-space position plus the fragment, view
// and light positions projected into tangent space. Per-instance model and
// normal matrices arrive as vertex attribute rows, stepped once per instance.
const surfaceVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec2 inUV;
layout(location = 2) in vec3 inNormal;
layout(location = 3) in vec3 inTangent;
layout(location = 4) in vec3 inBitangent;

// Per-instance data: four vec4 model rows, three vec3 normal-matrix rows.
layout(location = 5)  in vec4 instModel0;
layout(location = 6)  in vec4 instModel1;
layout(location = 7)  in vec4 instModel2;
layout(location = 8)  in vec4 instModel3;
layout(location = 9)  in vec3 instNormal0;
layout(location = 10) in vec3 instNormal1;
layout(location = 11) in vec3 instNormal2;

uniform mat4 viewProj;
uniform vec4 viewPos;
uniform vec3 lightPos;

out vec2 fragUV;
out vec3 tangentLightPos;
out vec3 tangentViewPos;
out vec3 tangentFragPos;

void main() {
    mat4 model     = mat4(instModel0, instModel1, instModel2, instModel3);
    mat3 normalMat = mat3(instNormal0, instNormal1, instNormal2);

    vec3 normal    = normalize(normalMat * inNormal);
    vec3 tangent   = normalize(normalMat * inTangent);
    vec3 bitangent = normalize(normalMat * inBitangent);

    // Orthonormal basis: transpose equals inverse.
    mat3 worldToTangent = transpose(mat3(tangent, bitangent, normal));

    vec4 worldPos = model * vec4(inPosition, 1.0);
    gl_Position   = viewProj * worldPos;

    fragUV          = inUV;
    tangentLightPos = worldToTangent * lightPos;
    tangentViewPos  = worldToTangent * viewPos.xyz;
    tangentFragPos  = worldToTangent * worldPos.xyz;
}
` + "\x00"

// Surface program fragment stage: ambient + diffuse + specular evaluated in
// tangent space so the normal-map sample needs no per-fragment re-orientation.
const surfaceFragSrc = `
#version 410 core
in vec2 fragUV;
in vec3 tangentLightPos;
in vec3 tangentViewPos;
in vec3 tangentFragPos;

out vec4 outColor;

uniform sampler2D diffuseTex; // unit 0
uniform sampler2D normalTex;  // unit 1
uniform vec3 lightColor;

const float ambientStrength  = 0.1;
const float specularExponent = 32.0;

void main() {
    vec4 objectColor   = texture(diffuseTex, fragUV);
    vec3 tangentNormal = texture(normalTex, fragUV).rgb * 2.0 - 1.0;

    vec3 lightDir = normalize(tangentLightPos - tangentFragPos);
    vec3 viewDir  = normalize(tangentViewPos - tangentFragPos);
    vec3 halfDir  = normalize(viewDir + lightDir);

    vec3 ambient  = lightColor * ambientStrength;
    vec3 diffuse  = lightColor * max(dot(tangentNormal, lightDir), 0.0);
    vec3 specular = lightColor * pow(max(dot(tangentNormal, halfDir), 0.0), specularExponent);

    outColor = vec4((ambient + diffuse + specular) * objectColor.rgb, objectColor.a);
}
` + "\x00"

// Light marker program: scale the unit mesh down, park it at the light's
// world position, fill with the light color. No lighting math.
const markerVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;

uniform mat4 viewProj;
uniform vec3 lightPos;
uniform vec3 lightColor;

out vec3 markerColor;

void main() {
    gl_Position = viewProj * vec4(inPosition * 0.25 + lightPos, 1.0);
    markerColor = lightColor;
}
` + "\x00"

const markerFragSrc = `
#version 410 core
in vec3 markerColor;
out vec4 outColor;

void main() {
    outColor = vec4(markerColor, 1.0);
}
` + "\x00"

// NewRenderer initialises OpenGL and compiles both programs.
// Must be called after the GLFW window context is made current.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	logger.Info("opengl initialized", zap.String("version", version))

	surfaceProg, err := newProgram(surfaceVertSrc, surfaceFragSrc)
	if err != nil {
		return nil, fmt.Errorf("surface program: %w", err)
	}
	markerProg, err := newProgram(markerVertSrc, markerFragSrc)
	if err != nil {
		return nil, fmt.Errorf("marker program: %w", err)
	}

	r := &Renderer{
		surfaceProg: surfaceProg,
		markerProg:  markerProg,
		gpuMeshes:   make(map[*scene.Mesh]*GPUMesh),
		logger:      logger,
	}

	r.surfViewProjLoc = gl.GetUniformLocation(surfaceProg, gl.Str("viewProj\x00"))
	r.surfViewPosLoc = gl.GetUniformLocation(surfaceProg, gl.Str("viewPos\x00"))
	r.surfLightPosLoc = gl.GetUniformLocation(surfaceProg, gl.Str("lightPos\x00"))
	r.surfLightColorLoc = gl.GetUniformLocation(surfaceProg, gl.Str("lightColor\x00"))
	r.surfDiffuseTexLoc = gl.GetUniformLocation(surfaceProg, gl.Str("diffuseTex\x00"))
	r.surfNormalTexLoc = gl.GetUniformLocation(surfaceProg, gl.Str("normalTex\x00"))

	r.markViewProjLoc = gl.GetUniformLocation(markerProg, gl.Str("viewProj\x00"))
	r.markLightPosLoc = gl.GetUniformLocation(markerProg, gl.Str("lightPos\x00"))
	r.markLightColorLoc = gl.GetUniformLocation(markerProg, gl.Str("lightColor\x00"))

	// Texture units are fixed: diffuse on 0, normal map on 1.
	gl.UseProgram(surfaceProg)
	gl.Uniform1i(r.surfDiffuseTexLoc, 0)
	gl.Uniform1i(r.surfNormalTexLoc, 1)
	gl.UseProgram(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	logger.Debug("shader programs created",
		zap.Uint32("surface", surfaceProg),
		zap.Uint32("marker", markerProg))

	return r, nil
}

// BeginFrame clears the color and depth attachments and sets the viewport.
func (r *Renderer) BeginFrame(width, height int32, clear core.Color) {
	gl.Viewport(0, 0, width, height)
	gl.ClearColor(clear.R, clear.G, clear.B, clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetFrame uploads the per-frame camera and light uniforms to both programs.
// Camera and light bindings are independent of material binds, so the host
// can update them once per frame without touching textures.
func (r *Renderer) SetFrame(cam shading.Camera, light shading.Light) {
	gl.UseProgram(r.surfaceProg)
	vp := cam.ViewProjection
	gl.UniformMatrix4fv(r.surfViewProjLoc, 1, false, &vp[0][0])
	gl.Uniform4f(r.surfViewPosLoc, cam.ViewPosition.X, cam.ViewPosition.Y, cam.ViewPosition.Z, cam.ViewPosition.W)
	gl.Uniform3f(r.surfLightPosLoc, light.Position.X, light.Position.Y, light.Position.Z)
	gl.Uniform3f(r.surfLightColorLoc, light.Color.X, light.Color.Y, light.Color.Z)

	gl.UseProgram(r.markerProg)
	gl.UniformMatrix4fv(r.markViewProjLoc, 1, false, &vp[0][0])
	gl.Uniform3f(r.markLightPosLoc, light.Position.X, light.Position.Y, light.Position.Z)
	gl.Uniform3f(r.markLightColorLoc, light.Color.X, light.Color.Y, light.Color.Z)

	gl.UseProgram(0)
}

// UploadInstances packs the instance records and uploads them to the mesh's
// per-instance VBO, growing it when the count exceeds the current capacity.
func (r *Renderer) UploadInstances(mesh *scene.Mesh, instances []core.Instance) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil || len(instances) == 0 {
		return
	}

	data := make([]byte, 0, len(instances)*shading.InstanceDataSize)
	for _, inst := range instances {
		data = append(data, shading.PackInstance(inst)...)
	}

	gl.BindVertexArray(gpu.VAO)

	if gpu.InstanceVBO == 0 {
		gl.GenBuffers(1, &gpu.InstanceVBO)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.InstanceVBO)
	if len(instances) > gpu.InstanceCap {
		gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.DYNAMIC_DRAW)
		gpu.InstanceCap = len(instances)
		r.configureInstanceAttribs()
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data), gl.Ptr(data))
	}

	gl.BindVertexArray(0)
}

// configureInstanceAttribs points locations 5-11 at the instance record:
// four vec4 model rows then three vec3 normal rows, divisor 1.
func (r *Renderer) configureInstanceAttribs() {
	stride := int32(shading.InstanceDataSize)
	for i := 0; i < 4; i++ {
		loc := uint32(5 + i)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, stride, gl.PtrOffset(shading.InstanceModelOffset+i*16))
		gl.VertexAttribDivisor(loc, 1)
	}
	for i := 0; i < 3; i++ {
		loc := uint32(9 + i)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 3, gl.FLOAT, false, stride, gl.PtrOffset(shading.InstanceNormalOffset+i*12))
		gl.VertexAttribDivisor(loc, 1)
	}
}

// DrawSurface renders count instances of the mesh with the surface program.
// The mesh's material textures must have been uploaded (see UploadTexture).
func (r *Renderer) DrawSurface(mesh *scene.Mesh, count int) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil || count == 0 {
		return
	}

	mat := mesh.Material
	if mat == nil {
		mat = scene.DefaultMaterial()
	}

	gl.UseProgram(r.surfaceProg)

	gl.ActiveTexture(gl.TEXTURE0)
	bindTexture(mat.DiffuseTexture)
	gl.ActiveTexture(gl.TEXTURE1)
	bindTexture(mat.NormalTexture)

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElementsInstanced(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil, int32(count))
	} else {
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, int32(len(mesh.Vertices)), int32(count))
	}
	gl.BindVertexArray(0)
}

// DrawMarker renders the mesh once with the light marker program. Only the
// position attribute is consumed; the light uniforms set in SetFrame place
// and color it.
func (r *Renderer) DrawMarker(mesh *scene.Mesh) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.markerProg)
	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

// DestroyMesh frees the GPU buffers of a previously uploaded mesh.
func (r *Renderer) DestroyMesh(mesh *scene.Mesh) {
	gpu, ok := r.gpuMeshes[mesh]
	if !ok {
		return
	}
	if gpu.InstanceVBO != 0 {
		gl.DeleteBuffers(1, &gpu.InstanceVBO)
	}
	if gpu.EBO != 0 {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	gl.DeleteBuffers(1, &gpu.VBO)
	gl.DeleteVertexArrays(1, &gpu.VAO)
	delete(r.gpuMeshes, mesh)
	mesh.GPUData = nil
}

// Destroy frees all GPU resources owned by the renderer.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.DestroyMesh(mesh)
	}
	gl.DeleteProgram(r.surfaceProg)
	gl.DeleteProgram(r.markerProg)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

func bindTexture(tex *scene.Texture) {
	if tex == nil || tex.GLID == 0 {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.GLID)
}

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	uvOff := int(unsafe.Offsetof(v.UV))
	normOff := int(unsafe.Offsetof(v.Normal))
	tangentOff := int(unsafe.Offsetof(v.Tangent))
	bitangentOff := int(unsafe.Offsetof(v.Bitangent))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 3, gl.FLOAT, false, stride, gl.PtrOffset(tangentOff))

	gl.EnableVertexAttribArray(4)
	gl.VertexAttribPointer(4, 3, gl.FLOAT, false, stride, gl.PtrOffset(bitangentOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("link failed: %v", infoLog)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		infoLog := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(infoLog))
		return 0, fmt.Errorf("compile failed: %v", infoLog)
	}
	return shader, nil
}
