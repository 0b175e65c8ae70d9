package main

import (
	"testing"

	"fyne.io/fyne/v2/theme"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/stretchr/testify/assert"
)

func TestMeshThemeColors(t *testing.T) {
	dark := scene.DefaultPalette.Dark
	th := newMeshTheme(scene.ThemeDark, dark)

	assert.Equal(t, theme.VariantDark, th.variant)
	assert.Equal(t, dark.Chroma, th.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, dark.Tint, th.Color(theme.ColorNamePrimary, theme.VariantLight))
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNameForeground, theme.VariantDark),
		th.Color(theme.ColorNameForeground, theme.VariantLight))

	light := newMeshTheme(scene.ThemeLight, scene.DefaultPalette.Light)
	assert.Equal(t, theme.VariantLight, light.variant)
}
