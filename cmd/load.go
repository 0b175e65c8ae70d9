package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/philipparndt/meshview/internal/orbit"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/internal/source"
	"github.com/philipparndt/meshview/internal/viewer"
)

// loadScene runs files through the viewer pipeline without a window and
// returns the framed scene and its controller.
func loadScene(ctx context.Context, files []string, width, height int, palette scene.Palette, theme scene.Theme, r viewer.Renderer) (*scene.Scene, *viewer.Controller, error) {
	sc := scene.New(width, height, palette.For(theme).Background)
	queue := viewer.NewQueue(4)

	var loadErr error
	ctrl, err := viewer.New(viewer.Options{
		Scene:      sc,
		Renderer:   r,
		Notifier:   viewer.NotifierFunc(func(err error) { loadErr = err }),
		Dispatcher: queue,
		Controls:   orbit.New(orbit.DefaultSettings()),
		Palette:    palette,
		Theme:      theme,
	})
	if err != nil {
		return nil, nil, err
	}

	if err := ctrl.SelectSource(ctx, source.FromPaths(files...)); err != nil {
		return nil, nil, err
	}
	for ctrl.Loading() {
		if !queue.Wait(ctx) {
			return nil, nil, ctx.Err()
		}
	}
	if loadErr != nil {
		return nil, nil, loadErr
	}
	if sc.Current() == nil {
		return nil, nil, errors.New("nothing loaded")
	}
	return sc, ctrl, nil
}

// nopRenderer satisfies viewer.Renderer when nothing is drawn
type nopRenderer struct{}

func (nopRenderer) Upload(*scene.Node) error { return nil }
func (nopRenderer) Release(*scene.Node)      {}

func describe(files []string) string {
	if len(files) == 1 {
		return files[0]
	}
	return fmt.Sprintf("%s (+%d)", files[0], len(files)-1)
}
