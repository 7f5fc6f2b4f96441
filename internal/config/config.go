// Package config handles demo configuration loading.
package config

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// SceneConfig holds the demo scene layout and assets.
type SceneConfig struct {
	InstancesPerRow int     `yaml:"instances_per_row"`
	InstanceSpacing float32 `yaml:"instance_spacing"`
	ModelPath       string  `yaml:"model_path"`    // optional glTF model; built-in cube when empty
	DiffusePath     string  `yaml:"diffuse_path"`  // optional diffuse texture image
	NormalPath      string  `yaml:"normal_path"`   // optional tangent-space normal map image
	LightSpeedDeg   float32 `yaml:"light_speed_deg"` // light orbit speed, degrees per second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			InstancesPerRow: 10,
			InstanceSpacing: 3.0,
			LightSpeedDeg:   60.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
