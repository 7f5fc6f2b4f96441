package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Scene.InstancesPerRow != 10 {
		t.Errorf("expected 10 instances per row, got %d", cfg.Scene.InstancesPerRow)
	}
	if cfg.Scene.InstanceSpacing != 3.0 {
		t.Errorf("expected spacing 3.0, got %f", cfg.Scene.InstanceSpacing)
	}
	if cfg.Scene.LightSpeedDeg != 60.0 {
		t.Errorf("expected light speed 60, got %f", cfg.Scene.LightSpeedDeg)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.yaml")

	content := `graphics:
  width: 1920
  height: 1080
  vsync: false
scene:
  instances_per_row: 4
  instance_spacing: 2.5
  normal_path: assets/normal.png
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync false from file")
	}
	if cfg.Scene.InstancesPerRow != 4 {
		t.Errorf("expected 4 instances per row, got %d", cfg.Scene.InstancesPerRow)
	}
	if cfg.Scene.InstanceSpacing != 2.5 {
		t.Errorf("expected spacing 2.5, got %f", cfg.Scene.InstanceSpacing)
	}
	if cfg.Scene.NormalPath != "assets/normal.png" {
		t.Errorf("unexpected normal path %q", cfg.Scene.NormalPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %s", cfg.Logging.Level)
	}

	// Values absent from the file keep their defaults.
	if cfg.Scene.LightSpeedDeg != 60.0 {
		t.Errorf("expected default light speed 60, got %f", cfg.Scene.LightSpeedDeg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	defer os.Chdir(wd)
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file should fall back to defaults: %v", err)
	}
	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected default width 1280, got %d", cfg.Graphics.Width)
	}
}
