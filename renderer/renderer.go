package renderer

import (
	"fmt"

	"go.uber.org/zap"

	"shading-engine/core"
	"shading-engine/internal/opengl"
	"shading-engine/scene"
	"shading-engine/shading"
)

// RenderEngine is the high-level renderer that drives the OpenGL backend.
// It owns the per-frame camera/light upload and the draw order: surfaces
// first, light marker last.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	logger *zap.Logger

	ClearColor core.Color

	// Per-frame stats (populated during Render)
	lastSurfaces  int
	lastInstances int
	lastTriangles int
}

func NewRenderEngine(window *core.Window, logger *zap.Logger) (*RenderEngine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	glRenderer, err := opengl.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	logger.Info("render engine initialized",
		zap.Int("width", window.Width),
		zap.Int("height", window.Height))

	return &RenderEngine{
		gl:         glRenderer,
		window:     window,
		logger:     logger,
		ClearColor: core.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
	}, nil
}

// Surface pairs a mesh with the instances to draw it at.
type Surface struct {
	Mesh      *scene.Mesh
	Instances []core.Instance
}

// Render draws one frame: clears, uploads the camera and light uniforms,
// draws every surface batch instanced, then the light marker on top of the
// depth buffer like any other geometry.
func (re *RenderEngine) Render(cam *scene.Camera, light shading.Light, surfaces []Surface, marker *scene.Mesh) error {
	if cam == nil {
		return fmt.Errorf("no camera")
	}

	re.gl.BeginFrame(int32(re.window.Width), int32(re.window.Height), re.ClearColor)

	frameCam := shading.NewCamera(cam.Position, cam.ViewProjectionMatrix())
	re.gl.SetFrame(frameCam, light)

	surfaceCount, instanceCount, triangles := 0, 0, 0
	for _, s := range surfaces {
		if s.Mesh == nil || len(s.Instances) == 0 {
			continue
		}
		re.gl.UploadInstances(s.Mesh, s.Instances)
		re.gl.DrawSurface(s.Mesh, len(s.Instances))
		surfaceCount++
		instanceCount += len(s.Instances)
		triangles += len(s.Mesh.Indices) / 3 * len(s.Instances)
	}

	if marker != nil {
		re.gl.DrawMarker(marker)
	}

	re.lastSurfaces = surfaceCount
	re.lastInstances = instanceCount
	re.lastTriangles = triangles

	return nil
}

// Present swaps buffers. Call after Render().
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
}

func (re *RenderEngine) Resize(width, height uint32, cam *scene.Camera) {
	if cam != nil {
		cam.UpdateAspectRatio(float32(width), float32(height))
	}
}

// UploadTexture uploads a texture to the GPU. Must be called from the main thread.
func (re *RenderEngine) UploadTexture(tex *scene.Texture, sampler shading.Sampler) error {
	return opengl.UploadTexture(tex, sampler)
}

// DeleteTexture frees a previously uploaded GPU texture.
func (re *RenderEngine) DeleteTexture(tex *scene.Texture) {
	opengl.DeleteTexture(tex)
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (surfaces, instances, triangles int) {
	return re.lastSurfaces, re.lastInstances, re.lastTriangles
}
