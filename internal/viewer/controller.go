// Package viewer owns the displayed model: it turns UI intent into loads, swaps
// models in and out of the scene, frames the camera and applies the theme.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/philipparndt/meshview/internal/loader"
	"github.com/philipparndt/meshview/internal/logging"
	"github.com/philipparndt/meshview/internal/orbit"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/internal/source"
	"github.com/philipparndt/meshview/pkg/geometry"
)

// ErrNoModels is returned by AdvanceModel when nothing is bundled
var ErrNoModels = errors.New("no bundled models")

// Renderer owns the graphics resources behind scene nodes
type Renderer interface {
	// Upload allocates resources for n before it is first drawn
	Upload(n *scene.Node) error
	// Release frees everything Upload allocated for n
	Release(n *scene.Node)
}

// Notifier shows an error to the user
type Notifier interface {
	Alert(err error)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(error)

// Alert calls f(err)
func (f NotifierFunc) Alert(err error) { f(err) }

// Options configure a Controller
type Options struct {
	Scene      *scene.Scene
	Renderer   Renderer
	Notifier   Notifier
	Dispatcher Dispatcher
	Controls   *orbit.Controls

	Palette scene.Palette
	Theme   scene.Theme

	// Bundled models, resolved against Bundle; BundleDir is set when Bundle is a disk directory
	Bundle    fs.FS
	BundleDir string
	Models    []string

	// OnTheme is called after the theme changed, to restyle surrounding UI
	OnTheme func(scene.Theme, scene.Colors)
	// OnModel is called after a model replaced the previous one
	OnModel func(source.Source, *scene.Node)
}

// Controller is the viewer state machine. All methods must be called from the UI
// goroutine; loads run in the background and complete through the Dispatcher.
type Controller struct {
	opts   Options
	log    *slog.Logger
	theme  scene.Theme
	cursor int

	current source.Source
	loaded  bool

	seq     uint64
	pending int
	cancel  context.CancelFunc
}

// New validates opts and applies the initial theme to the scene
func New(opts Options) (*Controller, error) {
	if opts.Scene == nil {
		return nil, errors.New("viewer: scene is required")
	}
	if opts.Renderer == nil {
		return nil, errors.New("viewer: renderer is required")
	}
	if opts.Dispatcher == nil {
		return nil, errors.New("viewer: dispatcher is required")
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(error) {})
	}
	if opts.Controls == nil {
		opts.Controls = orbit.New(orbit.DefaultSettings())
	}

	c := &Controller{
		opts:  opts,
		log:   logging.Logger().With("component", "viewer"),
		theme: opts.Theme,
	}
	c.applyTheme()
	return c, nil
}

// Theme returns the current theme
func (c *Controller) Theme() scene.Theme { return c.theme }

// Colors returns the palette entry of the current theme
func (c *Controller) Colors() scene.Colors { return c.opts.Palette.For(c.theme) }

// Cursor returns the index of the current bundled model
func (c *Controller) Cursor() int { return c.cursor }

// ModelPath returns the bundled path under the cursor, or ""
func (c *Controller) ModelPath() string {
	if len(c.opts.Models) == 0 {
		return ""
	}
	return c.opts.Models[c.cursor]
}

// Current returns the displayed node, or nil
func (c *Controller) Current() *scene.Node { return c.opts.Scene.Current() }

// CurrentSource returns the source of the displayed node
func (c *Controller) CurrentSource() (source.Source, bool) { return c.current, c.loaded }

// Loading reports whether a load is still in flight
func (c *Controller) Loading() bool { return c.pending > 0 }

// Controls returns the orbit controls driving the camera
func (c *Controller) Controls() *orbit.Controls { return c.opts.Controls }

// BundledSource returns the source for the bundled model at index i
func (c *Controller) BundledSource(i int) source.Source {
	p := c.opts.Models[i]
	if c.opts.BundleDir != "" {
		return source.BundledDir(c.opts.BundleDir, p)
	}
	return source.Bundled(c.opts.Bundle, p)
}

// SelectSource detects the format of src and starts loading it. Unsupported input is
// reported to the notifier and returned; the scene is left untouched.
func (c *Controller) SelectSource(ctx context.Context, src source.Source) error {
	return c.load(ctx, src, false)
}

// Reload loads the displayed source again, keeping the current view
func (c *Controller) Reload(ctx context.Context) error {
	if !c.loaded {
		return nil
	}
	return c.load(ctx, c.current, true)
}

// LoadBundled loads the bundled model under the cursor
func (c *Controller) LoadBundled(ctx context.Context) error {
	if len(c.opts.Models) == 0 {
		return ErrNoModels
	}
	return c.SelectSource(ctx, c.BundledSource(c.cursor))
}

// AdvanceModel moves the cursor to the next bundled model, wrapping around, and loads it
func (c *Controller) AdvanceModel(ctx context.Context) error {
	if len(c.opts.Models) == 0 {
		return ErrNoModels
	}
	c.cursor = (c.cursor + 1) % len(c.opts.Models)
	return c.LoadBundled(ctx)
}

func (c *Controller) load(ctx context.Context, src source.Source, keepView bool) error {
	plan, err := src.Plan()
	if err != nil {
		c.log.Warn("rejected source", "source", src.Name(), "err", err)
		c.opts.Notifier.Alert(err)
		return err
	}

	// A newer request supersedes whatever is still in flight.
	if c.cancel != nil {
		c.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.seq++
	seq := c.seq
	c.pending++

	c.log.Info("loading model", "source", src.Name(), "format", plan.Format.String(), "seq", seq)
	start := time.Now()

	go func() {
		parsed, err := loader.LoadPlan(loadCtx, src, plan)
		c.opts.Dispatcher.Post(func() {
			c.pending--
			c.complete(seq, src, parsed, err, keepView, time.Since(start))
		})
	}()
	return nil
}

func (c *Controller) complete(seq uint64, src source.Source, parsed *loader.Parsed, err error, keepView bool, elapsed time.Duration) {
	if seq != c.seq {
		c.log.Debug("discarding superseded load", "source", src.Name(), "seq", seq)
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.log.Error("model load failed", "source", src.Name(), "err", err)
		c.opts.Notifier.Alert(err)
		return
	}

	node := loader.Materialize(parsed, c.Colors().Tint)

	var saved orbit.Controls
	keep := keepView && c.opts.Scene.Current() != nil
	if keep {
		saved = *c.opts.Controls
	}

	if err := c.ReplaceModel(node); err != nil {
		c.log.Error("model upload failed", "source", src.Name(), "err", err)
		c.opts.Notifier.Alert(err)
		return
	}
	if keep {
		*c.opts.Controls = saved
		c.opts.Controls.Stop()
		c.opts.Controls.Apply(&c.opts.Scene.Camera)
	}

	c.current = src
	c.loaded = true
	c.log.Info("model loaded",
		"source", src.Name(),
		"kind", node.Kind.String(),
		"triangles", node.TriangleCount(),
		"missing_textures", len(parsed.MissingTextures),
		"elapsed", elapsed)

	if c.opts.OnModel != nil {
		c.opts.OnModel(src, node)
	}
}

// ReplaceModel uploads node, swaps it in for the displayed one centered on the origin
// and frames the camera on it from the +Z axis. The previous node is released right
// after the swap; a failed upload leaves the scene as it was.
func (c *Controller) ReplaceModel(node *scene.Node) error {
	if err := c.opts.Renderer.Upload(node); err != nil {
		return fmt.Errorf("upload %s: %w", node.Name, err)
	}

	fit := scene.ComputeFit(node.LocalBounds())
	node.Position = fit.Translation

	old := c.opts.Scene.Detach()
	if err := c.opts.Scene.Attach(node); err != nil {
		c.opts.Renderer.Release(node)
		if old != nil {
			_ = c.opts.Scene.Attach(old)
		}
		return err
	}
	if old != nil {
		c.opts.Renderer.Release(old)
	}

	c.opts.Controls.Reset(geometry.Vector3{}, fit.Distance)
	c.opts.Controls.Apply(&c.opts.Scene.Camera)

	c.log.Debug("model replaced", "name", node.Name, "distance", fit.Distance)
	return nil
}

// ToggleTheme flips light and dark and recolors the displayed model in place
func (c *Controller) ToggleTheme() {
	c.theme = c.theme.Toggle()
	c.applyTheme()
	c.log.Info("theme changed", "theme", c.theme.String())
}

func (c *Controller) applyTheme() {
	colors := c.Colors()
	c.opts.Scene.Background = colors.Background
	scene.Retint(c.opts.Scene.Current(), colors.Tint)
	if c.opts.OnTheme != nil {
		c.opts.OnTheme(c.theme, colors)
	}
}

// ResetView frames the displayed model again
func (c *Controller) ResetView() {
	node := c.opts.Scene.Current()
	if node == nil {
		return
	}
	fit := scene.ComputeFit(node.LocalBounds())
	c.opts.Controls.Reset(geometry.Vector3{}, fit.Distance)
	c.opts.Controls.Apply(&c.opts.Scene.Camera)
}

// Tick advances the damped camera by one frame
func (c *Controller) Tick() {
	c.opts.Controls.Update()
	c.opts.Controls.Apply(&c.opts.Scene.Camera)
}

// Close cancels any load in flight and releases the displayed model
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if old := c.opts.Scene.Detach(); old != nil {
		c.opts.Renderer.Release(old)
	}
}
