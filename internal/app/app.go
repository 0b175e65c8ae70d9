// Package app is the raylib front end: a window showing the current model with
// buttons to cycle bundled models, switch theme and open files.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshview/internal/config"
	"github.com/philipparndt/meshview/internal/logging"
	"github.com/philipparndt/meshview/internal/orbit"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/internal/source"
	"github.com/philipparndt/meshview/internal/viewer"
	"github.com/philipparndt/meshview/pkg/analysis"
)

// Options configure Run
type Options struct {
	Config *config.Config
	Bundle fs.FS    // bundled models, used when Config.ModelsDir is empty
	Files  []string // opened instead of the first bundled model
}

type App struct {
	cfg      *config.Config
	log      *slog.Logger
	scene    *scene.Scene
	queue    *viewer.Queue
	renderer *meshRenderer
	ctrl     *viewer.Controller

	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState
}

// Run opens the window and blocks until it is closed or ctx is done
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	palette, err := cfg.ScenePalette()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))

	app := &App{
		cfg:   cfg,
		log:   logging.Logger().With("component", "app"),
		scene: scene.New(rl.GetScreenWidth(), rl.GetScreenHeight(), palette.For(cfg.InitialTheme()).Background),
		queue: viewer.NewQueue(64),
	}
	app.renderer = newMeshRenderer(app.scene)

	app.ctrl, err = viewer.New(viewer.Options{
		Scene:      app.scene,
		Renderer:   app.renderer,
		Notifier:   viewer.NotifierFunc(app.alert),
		Dispatcher: app.queue,
		Controls:   orbit.New(cfg.OrbitSettings()),
		Palette:    palette,
		Theme:      cfg.InitialTheme(),
		Bundle:     opts.Bundle,
		BundleDir:  cfg.ModelsDir,
		Models:     cfg.Models,
		OnTheme:    func(_ scene.Theme, colors scene.Colors) { applyStyle(colors) },
		OnModel:    app.modelChanged,
	})
	if err != nil {
		return fmt.Errorf("failed to create viewer: %w", err)
	}
	defer app.ctrl.Close()

	if cfg.Watch.Enabled {
		if err := app.setupFileWatcher(ctx); err != nil {
			app.log.Warn("auto-reload not available", "err", err)
		} else {
			defer app.FileWatch.watcher.Close()
		}
	}

	if len(opts.Files) > 0 {
		_ = app.ctrl.SelectSource(ctx, source.FromPaths(opts.Files...))
	} else {
		_ = app.ctrl.LoadBundled(ctx)
	}

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		// Loads finish here, on the thread that owns the GL context
		app.queue.Drain()

		if rl.IsWindowResized() {
			app.scene.Camera.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
		}

		app.handleInput(ctx)
		app.ctrl.Tick()

		rl.BeginDrawing()
		rl.ClearBackground(toColor(app.scene.Background))

		rl.SetClipPlanes(app.scene.Camera.Near, app.scene.Camera.Far)
		rl.BeginMode3D(camera3D(app.scene.Camera))
		app.renderer.Draw(app.scene.Current())
		rl.EndMode3D()

		app.drawUI(ctx)
		rl.EndDrawing()
	}
	return nil
}

// modelChanged refreshes the HUD statistics and the watched file set
func (app *App) modelChanged(src source.Source, node *scene.Node) {
	app.UI.summary = analysis.Analyze(node.Triangles())
	app.UI.modelName = src.Name()
	app.watch(src.DiskPaths())
}

func (app *App) alert(err error) {
	app.UI.alert = err.Error()
}

func camera3D(c scene.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       float32(c.FOV),
		Projection: rl.CameraPerspective,
	}
}
