package viewer

import (
	"context"
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/meshview/internal/orbit"
	"github.com/philipparndt/meshview/internal/scene"
)

// View is a fyne widget showing a scene through the software renderer.
// Primary drag orbits, secondary drag pans, scrolling zooms.
type View struct {
	widget.BaseWidget

	scene    *scene.Scene
	controls *orbit.Controls
	renderer *Renderer
	raster   *canvas.Raster

	panning bool
}

// NewView creates a view of sc driven by controls
func NewView(sc *scene.Scene, controls *orbit.Controls) *View {
	v := &View{
		scene:    sc,
		controls: controls,
		renderer: NewRenderer(),
	}
	v.raster = canvas.NewRaster(v.draw)
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer creates the renderer for the widget
func (v *View) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize keeps the view usable in small windows
func (v *View) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// draw is the raster generator; w and h are in device pixels
func (v *View) draw(w, h int) image.Image {
	if w != v.scene.Camera.Width || h != v.scene.Camera.Height {
		v.scene.Camera.Resize(w, h)
	}
	return v.renderer.Render(v.scene).Image
}

// Invalidate redraws the view after the scene changed
func (v *View) Invalidate() {
	v.raster.Refresh()
}

// Animate advances damped camera motion at fps frames per second until ctx is done
func (v *View) Animate(ctx context.Context, fps int) {
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fyne.Do(v.step)
		}
	}
}

func (v *View) step() {
	if !v.controls.Moving() {
		return
	}
	v.controls.Update()
	v.controls.Apply(&v.scene.Camera)
	v.raster.Refresh()
}

// MouseDown picks orbit or pan for the next drag
func (v *View) MouseDown(ev *desktop.MouseEvent) {
	v.panning = ev.Button == desktop.MouseButtonSecondary || ev.Modifier&fyne.KeyModifierShift != 0
}

// MouseUp ends the gesture
func (v *View) MouseUp(*desktop.MouseEvent) {}

// Dragged feeds pointer motion into the controls
func (v *View) Dragged(ev *fyne.DragEvent) {
	dx, dy := float64(ev.Dragged.DX), float64(ev.Dragged.DY)
	if v.panning {
		v.controls.Pan(dx, dy)
	} else {
		v.controls.Rotate(dx, dy)
	}
}

// DragEnd handles the end of a drag event
func (v *View) DragEnd() {
	v.panning = false
}

// Scrolled zooms; one wheel notch is roughly 10 units in fyne
func (v *View) Scrolled(ev *fyne.ScrollEvent) {
	v.controls.Zoom(float64(ev.Scrolled.DY) / 10)
}
