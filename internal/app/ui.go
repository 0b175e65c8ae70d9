package app

import (
	"context"
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshview/internal/scene"
)

const (
	buttonWidth  = 120
	buttonHeight = 30
	margin       = 10
	fontSize     = 16
	lineHeight   = 20
)

// toolbar returns the button rectangles, right aligned at the top
func toolbar() (next, theme, open rl.Rectangle) {
	x := float32(rl.GetScreenWidth()) - margin - buttonWidth
	row := func(i int) rl.Rectangle {
		return rl.NewRectangle(x, float32(margin+i*(buttonHeight+margin/2)), buttonWidth, buttonHeight)
	}
	return row(0), row(1), row(2)
}

func overToolbar(p rl.Vector2) bool {
	next, theme, open := toolbar()
	return rl.CheckCollisionPointRec(p, next) || rl.CheckCollisionPointRec(p, theme) || rl.CheckCollisionPointRec(p, open)
}

// applyStyle colors the raygui controls for the theme
func applyStyle(colors scene.Colors) {
	text := textColor(colors)
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(toColor(colors.Chroma)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(toColor(colors.Chroma)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(toColor(colors.Tint)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(toColor(colors.Tint)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(text))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(text))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, fontSize)
}

// textColor picks dark text on light chroma and light text on dark chroma
func textColor(colors scene.Colors) rl.Color {
	c := colors.Chroma
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if luma > 128 {
		return rl.NewColor(40, 40, 40, 255)
	}
	return rl.NewColor(220, 220, 220, 255)
}

// drawUI draws the HUD, the toolbar and any pending alert
func (app *App) drawUI(ctx context.Context) {
	colors := app.ctrl.Colors()
	text := textColor(colors)
	y := int32(margin)

	line := func(s string) {
		rl.DrawText(s, margin, y, fontSize, text)
		y += lineHeight
	}

	if node := app.ctrl.Current(); node != nil {
		s := app.UI.summary
		line(fmt.Sprintf("Model: %s", app.UI.modelName))
		line(fmt.Sprintf("Triangles: %d", s.TriangleCount))
		line(fmt.Sprintf("Size: %.2f x %.2f x %.2f", s.Dimensions.X, s.Dimensions.Y, s.Dimensions.Z))
	} else {
		line("No model loaded")
	}
	if app.ctrl.Loading() {
		line("Loading...")
	}
	if app.UI.picking {
		line("Waiting for file dialog...")
	}
	y += lineHeight

	line(fmt.Sprintf("Theme: %s", app.ctrl.Theme()))
	line("Drag: rotate | Shift/right drag: pan | Wheel: zoom")
	line("N: next model | T: theme | O: open | Home: reset view")
	line("Drop .stl, .obj (+ .mtl, textures) onto the window")

	next, theme, open := toolbar()
	if gui.Button(next, "Next model") && app.UI.alert == "" {
		_ = app.ctrl.AdvanceModel(ctx)
	}
	if gui.Button(theme, "Toggle theme") && app.UI.alert == "" {
		app.ctrl.ToggleTheme()
	}
	if gui.Button(open, "Open file...") && app.UI.alert == "" {
		app.openFileDialog(ctx)
	}

	if app.UI.alert != "" {
		w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		bounds := rl.NewRectangle(w/2-200, h/2-70, 400, 140)
		if gui.MessageBox(bounds, "Error", app.UI.alert, "OK") >= 0 {
			app.UI.alert = ""
		}
	}
}
