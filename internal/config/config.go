// Package config loads viewer settings from YAML on top of built-in defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/philipparndt/meshview/internal/orbit"
	"github.com/philipparndt/meshview/internal/scene"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Window is the initial window geometry
type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// ColorSet holds one theme's colors as hex strings
type ColorSet struct {
	Background string `yaml:"background"`
	Chroma     string `yaml:"chroma"`
	Tint       string `yaml:"tint"`
}

// Palette holds both themes
type Palette struct {
	Light ColorSet `yaml:"light"`
	Dark  ColorSet `yaml:"dark"`
}

// Orbit tunes camera interaction
type Orbit struct {
	RotateSpeed  float64 `yaml:"rotateSpeed"`
	ZoomSpeed    float64 `yaml:"zoomSpeed"`
	PanSpeed     float64 `yaml:"panSpeed"`
	Frequency    float64 `yaml:"frequency"`
	DampingRatio float64 `yaml:"dampingRatio"`
	MinDistance  float64 `yaml:"minDistance"`
	MaxDistance  float64 `yaml:"maxDistance"`
}

// Watch controls reloading when the model file changes on disk
type Watch struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Config is the complete viewer configuration
type Config struct {
	Window    Window   `yaml:"window"`
	FPS       int      `yaml:"fps"`
	Theme     string   `yaml:"theme"`
	Palette   Palette  `yaml:"palette"`
	Models    []string `yaml:"models"`
	ModelsDir string   `yaml:"modelsDir"`
	Orbit     Orbit    `yaml:"orbit"`
	Watch     Watch    `yaml:"watch"`
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("config: broken default.yaml: %v", err))
	}
	return cfg
}

// Parse decodes data over the defaults; keys missing from data keep their default.
// Lists such as models are replaced, not merged.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the config file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.FPS))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if len(c.Models) == 0 {
		errs = append(errs, errors.New("models must not be empty"))
	}
	if _, err := scene.ParseTheme(c.Theme); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.ScenePalette(); err != nil {
		errs = append(errs, err)
	}
	if c.Orbit.MinDistance <= 0 || c.Orbit.MaxDistance < c.Orbit.MinDistance {
		errs = append(errs, fmt.Errorf("orbit distance range [%g, %g] is invalid", c.Orbit.MinDistance, c.Orbit.MaxDistance))
	}
	return errors.Join(errs...)
}

// InitialTheme returns the configured start theme
func (c *Config) InitialTheme() scene.Theme {
	t, _ := scene.ParseTheme(c.Theme)
	return t
}

// ScenePalette converts the hex palette
func (c *Config) ScenePalette() (scene.Palette, error) {
	light, err := c.Palette.Light.colors()
	if err != nil {
		return scene.Palette{}, fmt.Errorf("palette.light: %w", err)
	}
	dark, err := c.Palette.Dark.colors()
	if err != nil {
		return scene.Palette{}, fmt.Errorf("palette.dark: %w", err)
	}
	return scene.Palette{Light: light, Dark: dark}, nil
}

func (s ColorSet) colors() (scene.Colors, error) {
	var out scene.Colors
	var err error
	if out.Background, err = scene.ParseHex(s.Background); err != nil {
		return out, fmt.Errorf("background: %w", err)
	}
	if out.Chroma, err = scene.ParseHex(s.Chroma); err != nil {
		return out, fmt.Errorf("chroma: %w", err)
	}
	if out.Tint, err = scene.ParseHex(s.Tint); err != nil {
		return out, fmt.Errorf("tint: %w", err)
	}
	return out, nil
}

// OrbitSettings converts the orbit section for the given frame rate
func (c *Config) OrbitSettings() orbit.Settings {
	return orbit.Settings{
		FPS:          c.FPS,
		RotateSpeed:  c.Orbit.RotateSpeed,
		ZoomSpeed:    c.Orbit.ZoomSpeed,
		PanSpeed:     c.Orbit.PanSpeed,
		Frequency:    c.Orbit.Frequency,
		DampingRatio: c.Orbit.DampingRatio,
		MinDistance:  c.Orbit.MinDistance,
		MaxDistance:  c.Orbit.MaxDistance,
	}
}
