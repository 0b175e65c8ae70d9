package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/philipparndt/meshview/internal/scene"
)

// meshTheme is the fyne default theme in a forced variant, with the viewer's
// chroma as window background.
type meshTheme struct {
	variant fyne.ThemeVariant
	colors  scene.Colors
}

func newMeshTheme(t scene.Theme, colors scene.Colors) *meshTheme {
	variant := theme.VariantLight
	if t == scene.ThemeDark {
		variant = theme.VariantDark
	}
	return &meshTheme{variant: variant, colors: colors}
}

func (m *meshTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return m.colors.Chroma
	case theme.ColorNamePrimary:
		return m.colors.Tint
	}
	return theme.DefaultTheme().Color(name, m.variant)
}

func (m *meshTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (m *meshTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (m *meshTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
