package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/meshview/internal/orbit"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 60, cfg.FPS)
	assert.Equal(t, scene.ThemeLight, cfg.InitialTheme())
	assert.Equal(t, []string{
		"models/box.stl",
		"models/nut.stl",
		"models/stand.stl",
		"models/cable-gland-10mm.stl",
		"models/cable-gland-5mm.stl",
	}, cfg.Models)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)

	palette, err := cfg.ScenePalette()
	require.NoError(t, err)
	assert.Equal(t, scene.DefaultPalette, palette)

	assert.Equal(t, orbit.DefaultSettings(), cfg.OrbitSettings())
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte(`
theme: dark
fps: 30
models:
  - models/only.stl
palette:
  dark:
    tint: "#ff0000"
`))
	require.NoError(t, err)

	assert.Equal(t, scene.ThemeDark, cfg.InitialTheme())
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, []string{"models/only.stl"}, cfg.Models)
	assert.Equal(t, "#ff0000", cfg.Palette.Dark.Tint)
	assert.Equal(t, "#282828", cfg.Palette.Dark.Background)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero fps", "fps: 0"},
		{"empty models", "models: []"},
		{"bad color", "palette:\n  light:\n    tint: blue"},
		{"unknown theme", "theme: sepia"},
		{"distance range", "orbit:\n  minDistance: 10\n  maxDistance: 1"},
		{"not yaml", "fps: [1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 640\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 800, cfg.Window.Height)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
