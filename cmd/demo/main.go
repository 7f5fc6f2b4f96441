package main

import (
	"flag"
	"fmt"
	stdmath "math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"shading-engine/core"
	"shading-engine/internal/config"
	"shading-engine/internal/logger"
	"shading-engine/math"
	"shading-engine/renderer"
	"shading-engine/scene"
	"shading-engine/shading"
)

// CameraController handles keyboard/mouse input for the fly camera.
type CameraController struct {
	moveSpeed  float32
	lookSpeed  float32
	lastMouseX float64
	lastMouseY float64
	firstMouse bool
}

func NewCameraController() *CameraController {
	return &CameraController{
		moveSpeed:  4.0,
		lookSpeed:  0.004,
		firstMouse: true,
	}
}

func (cc *CameraController) Update(window *core.Window, camera *scene.Camera, deltaTime float32) {
	// Cap deltaTime to avoid huge steps on first frames or hitches
	if deltaTime > 0.05 {
		deltaTime = 0.05
	}

	// Mouse look (right mouse drag)
	if window.IsMouseButtonPressed(1) {
		mouseX, mouseY := window.GetCursorPos()
		if cc.firstMouse {
			cc.lastMouseX = mouseX
			cc.lastMouseY = mouseY
			cc.firstMouse = false
		}
		camera.Yaw += float32(mouseX-cc.lastMouseX) * cc.lookSpeed
		camera.Pitch += float32(cc.lastMouseY-mouseY) * cc.lookSpeed

		limit := float32(88.0 * stdmath.Pi / 180.0)
		if camera.Pitch > limit {
			camera.Pitch = limit
		}
		if camera.Pitch < -limit {
			camera.Pitch = -limit
		}
		cc.lastMouseX = mouseX
		cc.lastMouseY = mouseY
	} else {
		cc.firstMouse = true
	}

	forward := camera.Forward()
	right := camera.Right()

	move := math.Vec3{}
	if window.IsKeyPressed(core.KeyW) || window.IsKeyPressed(core.KeyUp) {
		move = move.Add(forward)
	}
	if window.IsKeyPressed(core.KeyS) || window.IsKeyPressed(core.KeyDown) {
		move = move.Sub(forward)
	}
	if window.IsKeyPressed(core.KeyD) || window.IsKeyPressed(core.KeyRight) {
		move = move.Add(right)
	}
	if window.IsKeyPressed(core.KeyA) || window.IsKeyPressed(core.KeyLeft) {
		move = move.Sub(right)
	}
	if window.IsKeyPressed(core.KeySpace) {
		move = move.Add(math.Vec3Up)
	}
	if window.IsKeyPressed(core.KeyLeftShift) {
		move = move.Sub(math.Vec3Up)
	}

	if move.LengthSqr() > 0 {
		camera.Position = camera.Position.Add(move.Normalize().Mul(cc.moveSpeed * deltaTime))
	}
}

// buildInstanceGrid lays out an n-by-n grid in the XZ plane, each instance
// rotated 45 degrees about its own normalized position. The instance at the
// origin keeps the identity rotation so it is not scaled to nothing by a
// degenerate axis.
func buildInstanceGrid(perRow int, spacing float32) []core.Instance {
	instances := make([]core.Instance, 0, perRow*perRow)
	half := float32(perRow) / 2.0
	angle := float32(45.0 * stdmath.Pi / 180.0)

	for z := 0; z < perRow; z++ {
		for x := 0; x < perRow; x++ {
			position := math.Vec3{
				X: spacing * (float32(x) - half),
				Y: 0,
				Z: spacing * (float32(z) - half),
			}

			rotation := math.QuaternionIdentity()
			if position.LengthSqr() > 0 {
				rotation = math.QuaternionFromAxisAngle(position.Normalize(), angle)
			}

			instances = append(instances, core.InstanceAt(position, rotation))
		}
	}
	return instances
}

// loadSurfaceMesh returns the mesh to shade: a glTF or OBJ model when
// configured, the built-in cube otherwise.
func loadSurfaceMesh(cfg *config.Config, log *zap.Logger) (*scene.Mesh, error) {
	path := cfg.Scene.ModelPath
	if path == "" {
		return scene.CreateCube(1.0), nil
	}

	var meshes []*scene.Mesh
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		result, err := scene.LoadGLTF(path)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", path, err)
		}
		meshes = result.Meshes
	case ".obj":
		loaded, err := scene.LoadOBJ(path)
		if err != nil {
			return nil, fmt.Errorf("loading model %s: %w", path, err)
		}
		meshes = loaded
	default:
		return nil, fmt.Errorf("unsupported model format %q", path)
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("model %s contains no meshes", path)
	}
	log.Info("model loaded",
		zap.String("path", path),
		zap.Int("meshes", len(meshes)),
		zap.Int("vertices", len(meshes[0].Vertices)))
	return meshes[0], nil
}

// loadMaterial builds the surface material from the configured image paths,
// falling back to a checker diffuse and a flat normal map.
func loadMaterial(cfg *config.Config, log *zap.Logger) *scene.Material {
	mat := &scene.Material{Name: "Surface"}

	if cfg.Scene.DiffusePath != "" {
		tex, err := scene.LoadTexture(cfg.Scene.DiffusePath)
		if err != nil {
			log.Warn("diffuse texture load failed, using checker",
				zap.String("path", cfg.Scene.DiffusePath), zap.Error(err))
		} else {
			mat.DiffuseTexture = tex
		}
	}
	if mat.DiffuseTexture == nil {
		mat.DiffuseTexture = scene.NewCheckerTexture("Checker", 256, 32,
			[4]uint8{200, 200, 200, 255}, [4]uint8{60, 60, 60, 255})
	}

	if cfg.Scene.NormalPath != "" {
		tex, err := scene.LoadTexture(cfg.Scene.NormalPath)
		if err != nil {
			log.Warn("normal map load failed, using flat",
				zap.String("path", cfg.Scene.NormalPath), zap.Error(err))
		} else {
			mat.NormalTexture = tex
		}
	}
	if mat.NormalTexture == nil {
		mat.NormalTexture = scene.NewFlatNormalTexture()
	}

	return mat
}

func run() error {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger init: %w", err)
	}
	defer logger.Sync()
	log := logger.Log

	windowConfig := core.DefaultWindowConfig()
	windowConfig.Width = cfg.Graphics.Width
	windowConfig.Height = cfg.Graphics.Height
	windowConfig.Fullscreen = cfg.Graphics.Fullscreen
	windowConfig.VSync = cfg.Graphics.VSync

	window, err := core.NewWindow(windowConfig)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()

	renderEngine, err := renderer.NewRenderEngine(window, log)
	if err != nil {
		return fmt.Errorf("creating render engine: %w", err)
	}
	defer renderEngine.Destroy()

	// ── Scene setup ───────────────────────────────────────────────────────────
	surfaceMesh, err := loadSurfaceMesh(cfg, log)
	if err != nil {
		return err
	}
	if surfaceMesh.Material == nil {
		surfaceMesh.Material = loadMaterial(cfg, log)
	} else if surfaceMesh.Material.DiffuseTexture == nil || surfaceMesh.Material.NormalTexture == nil {
		// Loaded models may carry a diffuse map but no normal map, or neither.
		fallback := loadMaterial(cfg, log)
		if surfaceMesh.Material.DiffuseTexture == nil {
			surfaceMesh.Material.DiffuseTexture = fallback.DiffuseTexture
		}
		if surfaceMesh.Material.NormalTexture == nil {
			surfaceMesh.Material.NormalTexture = fallback.NormalTexture
		}
	}

	sampler := shading.Sampler{Filter: shading.FilterBilinear, Wrap: shading.WrapRepeat}
	if err := renderEngine.UploadTexture(surfaceMesh.Material.DiffuseTexture, sampler); err != nil {
		return fmt.Errorf("uploading diffuse texture: %w", err)
	}
	if err := renderEngine.UploadTexture(surfaceMesh.Material.NormalTexture, sampler); err != nil {
		return fmt.Errorf("uploading normal map: %w", err)
	}

	markerMesh := scene.CreateSphere(1.0, 16, 8)

	instances := buildInstanceGrid(cfg.Scene.InstancesPerRow, cfg.Scene.InstanceSpacing)
	surfaces := []renderer.Surface{{Mesh: surfaceMesh, Instances: instances}}

	aspect := float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height)
	camera := scene.NewCamera(
		math.Vec3{X: 0, Y: 5, Z: 10},
		-90.0*stdmath.Pi/180.0,
		-20.0*stdmath.Pi/180.0,
		45.0*stdmath.Pi/180.0,
		aspect,
		0.1, 100.0,
	)
	camController := NewCameraController()

	light := shading.Light{
		Position: math.Vec3{X: 2, Y: 2, Z: 2},
		Color:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
	lightSpeed := cfg.Scene.LightSpeedDeg * stdmath.Pi / 180.0

	log.Info("scene ready",
		zap.Int("instances", len(instances)),
		zap.Int("vertices", len(surfaceMesh.Vertices)))

	// ── Main loop ─────────────────────────────────────────────────────────────
	frameCount := 0
	lastTime := time.Now()
	titleTime := time.Now()
	deltaTime := float32(0.016)

	for !window.ShouldClose() {
		window.PollEvents()

		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		camController.Update(window, camera, deltaTime)

		// Orbit the light around the Y axis
		spin := math.QuaternionFromAxisAngle(math.Vec3Up, lightSpeed*deltaTime)
		light.Position = spin.RotateVector(light.Position)

		if w, h := window.GetFramebufferSize(); w > 0 && h > 0 {
			camera.UpdateAspectRatio(float32(w), float32(h))
		}

		if err := renderEngine.Render(camera, light, surfaces, markerMesh); err != nil {
			log.Error("render failed", zap.Error(err))
			break
		}
		renderEngine.Present()

		frameCount++
		now := time.Now()
		if now.Sub(titleTime).Seconds() >= 1.0 {
			window.SetTitle(fmt.Sprintf("Shading Engine | FPS: %d | (%.1f, %.1f, %.1f)",
				frameCount, camera.Position.X, camera.Position.Y, camera.Position.Z))
			frameCount = 0
			titleTime = now
		}

		deltaTime = float32(now.Sub(lastTime).Seconds())
		lastTime = now
	}

	log.Info("exiting")
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
