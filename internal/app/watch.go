package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/philipparndt/meshview/pkg/watcher"
)

// setupFileWatcher reloads the displayed model when its files change on disk
func (app *App) setupFileWatcher(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(app.cfg.Watch.Debounce, app.log, func(string) {
		// timer goroutine; the reload itself must start on the frame loop
		app.queue.Post(func() {
			_ = app.ctrl.Reload(ctx)
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	go fw.Run(ctx)
	app.FileWatch.watcher = fw
	return nil
}

// watch points the watcher at paths; embedded models have none
func (app *App) watch(paths []string) {
	if app.FileWatch.watcher == nil || slices.Equal(paths, app.FileWatch.paths) {
		return
	}
	if err := app.FileWatch.watcher.Replace(paths); err != nil {
		app.log.Warn("failed to watch model files", "err", err)
		return
	}
	app.FileWatch.paths = paths
}
