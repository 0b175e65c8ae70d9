package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/meshview/assets"
	"github.com/philipparndt/meshview/internal/config"
	"github.com/philipparndt/meshview/internal/logging"
	"github.com/philipparndt/meshview/internal/orbit"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/internal/source"
	"github.com/philipparndt/meshview/internal/viewer"
	"github.com/philipparndt/meshview/pkg/analysis"
	raster "github.com/philipparndt/meshview/pkg/viewer"
	"github.com/spf13/cobra"
)

type App struct {
	app    fyne.App
	window fyne.Window
	ctx    context.Context

	scene *scene.Scene
	view  *raster.View
	ctrl  *viewer.Controller

	modelInfo *widget.Label
	status    *widget.Label
}

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "meshview-gui [files...]",
	Short:        "Software rendered STL and OBJ viewer",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(logLevel, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logging.SetLogger(logger)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cfg, args)
	},
}

func main() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, files []string) error {
	palette, err := cfg.ScenePalette()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a := &App{
		app:       app.New(),
		ctx:       ctx,
		modelInfo: widget.NewLabel("No model loaded"),
		status:    widget.NewLabel("Drop .stl or .obj files (with .mtl and textures) here"),
	}
	a.window = a.app.NewWindow(cfg.Window.Title)
	a.status.Wrapping = fyne.TextWrapWord

	controls := orbit.New(cfg.OrbitSettings())
	a.scene = scene.New(cfg.Window.Width, cfg.Window.Height, palette.For(cfg.InitialTheme()).Background)
	a.view = raster.NewView(a.scene, controls)

	a.ctrl, err = viewer.New(viewer.Options{
		Scene:      a.scene,
		Renderer:   raster.NewRenderer(),
		Notifier:   viewer.NotifierFunc(a.alert),
		Dispatcher: viewer.DispatcherFunc(fyne.Do),
		Controls:   controls,
		Palette:    palette,
		Theme:      cfg.InitialTheme(),
		Bundle:     assets.Models(),
		BundleDir:  cfg.ModelsDir,
		Models:     cfg.Models,
		OnTheme:    a.themeChanged,
		OnModel:    a.modelChanged,
	})
	if err != nil {
		return err
	}
	defer a.ctrl.Close()

	a.setupMainUI()
	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		a.open(uris)
	})

	if len(files) > 0 {
		_ = a.ctrl.SelectSource(ctx, source.FromPaths(files...))
	} else {
		_ = a.ctrl.LoadBundled(ctx)
	}

	go a.view.Animate(ctx, cfg.FPS)

	a.window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	a.window.ShowAndRun()
	return nil
}

func (a *App) setupMainUI() {
	openButton := widget.NewButton("Open File", a.showFileDialog)
	themeButton := widget.NewButton("Toggle Theme", a.ctrl.ToggleTheme)
	nextButton := widget.NewButton("Next Model", func() {
		_ = a.ctrl.AdvanceModel(a.ctx)
	})
	resetButton := widget.NewButton("Reset View", func() {
		a.ctrl.ResetView()
		a.view.Invalidate()
	})

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Drag to rotate the view\n" +
			"• Right or Shift drag to pan\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		a.modelInfo,
		widget.NewSeparator(),
		openButton,
		nextButton,
		themeButton,
		resetButton,
		widget.NewSeparator(),
		instructions,
		a.status,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(260, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.view,     // center
	)
	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.open([]fyne.URI{reader.URI()})
	}, a.window)
}

func (a *App) open(uris []fyne.URI) {
	paths := make([]string, 0, len(uris))
	for _, u := range uris {
		if u.Scheme() == "file" {
			paths = append(paths, u.Path())
		}
	}
	if len(paths) == 0 {
		return
	}
	a.status.SetText("Loading...")
	_ = a.ctrl.SelectSource(a.ctx, source.FromPaths(paths...))
}

func (a *App) alert(err error) {
	a.status.SetText("")
	dialog.ShowError(err, a.window)
}

func (a *App) themeChanged(t scene.Theme, colors scene.Colors) {
	a.app.Settings().SetTheme(newMeshTheme(t, colors))
	a.view.Invalidate()
}

func (a *App) modelChanged(src source.Source, node *scene.Node) {
	result := analysis.Analyze(node.Triangles())
	a.modelInfo.SetText(fmt.Sprintf(
		"Model: %s\nTriangles: %d\nSurface Area: %.2f\n\nDimensions:\n  X: %.2f\n  Y: %.2f\n  Z: %.2f",
		src.Name(),
		result.TriangleCount,
		result.SurfaceArea,
		result.Dimensions.X,
		result.Dimensions.Y,
		result.Dimensions.Z,
	))
	a.status.SetText("")
	a.view.Invalidate()
}
