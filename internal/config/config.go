package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Rotation RotationConfig `yaml:"rotation"`
	Camera   CameraConfig   `yaml:"camera"`
	Staging  StagingConfig  `yaml:"staging"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WindowConfig struct {
	Width     int32  `yaml:"width"`
	Height    int32  `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int32  `yaml:"target_fps"`
	HighDPI   bool   `yaml:"high_dpi"`
}

type RotationConfig struct {
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"` // radians per second
	StepDegrees     float64 `yaml:"step_degrees"`
	Damping         float64 `yaml:"damping"`
	MaxFrameTime    float64 `yaml:"max_frame_time"` // seconds, 0 disables clamping
}

type CameraConfig struct {
	Fovy      float32 `yaml:"fovy"`
	Distance  float32 `yaml:"distance"`
	LookSpeed float32 `yaml:"look_speed"`
	ZoomSpeed float32 `yaml:"zoom_speed"`
}

type StagingConfig struct {
	Dir string `yaml:"dir"` // empty uses the OS temp dir
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     1280,
			Height:    720,
			Title:     "GLB Spinner",
			TargetFPS: 120,
			HighDPI:   true,
		},
		Rotation: RotationConfig{
			AutoRotateSpeed: 0.5,
			StepDegrees:     45,
			Damping:         5,
			MaxFrameTime:    0.25,
		},
		Camera: CameraConfig{
			Fovy:      50,
			Distance:  4,
			LookSpeed: 0.3,
			ZoomSpeed: 0.1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TargetFPS < 0 {
		errs = append(errs, errors.New("window.target_fps must not be negative"))
	}
	if c.Rotation.StepDegrees <= 0 {
		errs = append(errs, errors.New("rotation.step_degrees must be positive"))
	}
	if c.Rotation.Damping <= 0 {
		errs = append(errs, errors.New("rotation.damping must be positive"))
	}
	if c.Rotation.MaxFrameTime < 0 {
		errs = append(errs, errors.New("rotation.max_frame_time must not be negative"))
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		errs = append(errs, errors.New("camera.fovy must be within (0, 180)"))
	}
	if c.Camera.Distance <= 0 {
		errs = append(errs, errors.New("camera.distance must be positive"))
	}
	return errors.Join(errs...)
}

// MaxFrameDuration returns rotation.max_frame_time as a duration.
func (c *Config) MaxFrameDuration() time.Duration {
	return time.Duration(c.Rotation.MaxFrameTime * float64(time.Second))
}
