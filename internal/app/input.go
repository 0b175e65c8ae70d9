package app

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshview/internal/source"
)

// handleInput processes user input
func (app *App) handleInput(ctx context.Context) {
	// A modal message box swallows input until dismissed
	if app.UI.alert != "" {
		return
	}

	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		rl.UnloadDroppedFiles()
		app.log.Info("files dropped", "count", len(files))
		_ = app.ctrl.SelectSource(ctx, source.FromPaths(files...))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyN):
		_ = app.ctrl.AdvanceModel(ctx)
	case rl.IsKeyPressed(rl.KeyT):
		app.ctrl.ToggleTheme()
	case rl.IsKeyPressed(rl.KeyO):
		app.openFileDialog(ctx)
	case rl.IsKeyPressed(rl.KeyHome):
		app.ctrl.ResetView()
	}

	controls := app.ctrl.Controls()
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) || rl.IsMouseButtonPressed(rl.MouseRightButton) || rl.IsMouseButtonPressed(rl.MouseMiddleButton) {
		if !overToolbar(mouse) {
			shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
			app.Interaction.dragging = true
			app.Interaction.isPanning = shiftPressed || !rl.IsMouseButtonDown(rl.MouseLeftButton)
			app.Interaction.lastMousePos = mouse
		}
	}

	if app.Interaction.dragging {
		if !rl.IsMouseButtonDown(rl.MouseLeftButton) && !rl.IsMouseButtonDown(rl.MouseRightButton) && !rl.IsMouseButtonDown(rl.MouseMiddleButton) {
			app.Interaction.dragging = false
		} else {
			dx := float64(mouse.X - app.Interaction.lastMousePos.X)
			dy := float64(mouse.Y - app.Interaction.lastMousePos.Y)
			if app.Interaction.isPanning {
				controls.Pan(dx, dy)
			} else {
				controls.Rotate(dx, dy)
			}
			app.Interaction.lastMousePos = mouse
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		controls.Zoom(float64(wheel))
	}
}
