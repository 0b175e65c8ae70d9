package viewer

import (
	"context"
	"errors"
	"math"
	"testing"
	"testing/fstest"
	"time"

	"github.com/philipparndt/meshview/internal/loader"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/internal/source"
	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wideSTL = `solid wide
facet normal 0 0 1
outer loop
vertex 10 10 10
vertex 30 10 10
vertex 10 14 10
endloop
endfacet
facet normal 0 0 1
outer loop
vertex 10 10 16
vertex 30 14 16
vertex 10 14 16
endloop
endfacet
endsolid wide
`

const tinySTL = `solid tiny
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid tiny
`

const quadOBJ = `v 0 0 0
v 2 0 0
v 2 2 0
v 0 2 0
f 1 2 3 4
`

type fakeRenderer struct {
	live    map[*scene.Node]bool
	events  []string
	maxLive int
	failing error
}

func (r *fakeRenderer) Upload(n *scene.Node) error {
	if r.failing != nil {
		return r.failing
	}
	r.live[n] = true
	r.events = append(r.events, "upload:"+n.Name)
	if len(r.live) > r.maxLive {
		r.maxLive = len(r.live)
	}
	return nil
}

func (r *fakeRenderer) Release(n *scene.Node) {
	delete(r.live, n)
	r.events = append(r.events, "release:"+n.Name)
}

type fixture struct {
	ctrl     *Controller
	scene    *scene.Scene
	renderer *fakeRenderer
	queue    *Queue
	alerts   []error
	themes   []scene.Theme
}

var bundle = fstest.MapFS{
	"models/wide.stl": {Data: []byte(wideSTL)},
	"models/tiny.stl": {Data: []byte(tinySTL)},
	"models/quad.obj": {Data: []byte(quadOBJ)},
}

func newFixture(t *testing.T, models ...string) *fixture {
	t.Helper()
	f := &fixture{
		scene: scene.New(800, 600, scene.DefaultPalette.Light.Background),
		queue: NewQueue(8),
	}
	f.renderer = &fakeRenderer{live: map[*scene.Node]bool{}}

	ctrl, err := New(Options{
		Scene:      f.scene,
		Renderer:   f.renderer,
		Notifier:   NotifierFunc(func(err error) { f.alerts = append(f.alerts, err) }),
		Dispatcher: f.queue,
		Palette:    scene.DefaultPalette,
		Theme:      scene.ThemeLight,
		Bundle:     bundle,
		Models:     models,
		OnTheme:    func(th scene.Theme, _ scene.Colors) { f.themes = append(f.themes, th) },
	})
	require.NoError(t, err)
	f.ctrl = ctrl
	t.Cleanup(ctrl.Close)
	return f
}

// settle runs posted completions until no load is pending
func (f *fixture) settle(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for f.ctrl.Loading() {
		require.True(t, f.queue.Wait(ctx), "load did not complete")
	}
}

func upload(files map[string]string) source.Source {
	var list []source.File
	for name, data := range files {
		list = append(list, source.FromBytes(name, []byte(data)))
	}
	return source.Upload(list...)
}

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)

	_, err = New(Options{Scene: scene.New(1, 1, scene.DefaultPalette.Light.Background)})
	assert.Error(t, err)
}

func TestLoadFitsCamera(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"wide.stl": wideSTL})))
	f.settle(t)

	node := f.ctrl.Current()
	require.NotNil(t, node)
	assert.Empty(t, f.alerts)

	center := node.WorldBounds().Center()
	assert.InDelta(t, 0, center.X, 1e-9)
	assert.InDelta(t, 0, center.Y, 1e-9)
	assert.InDelta(t, 0, center.Z, 1e-9)

	cam := f.scene.Camera
	assert.InDelta(t, 0, cam.Position.X, 1e-9)
	assert.InDelta(t, 0, cam.Position.Y, 1e-9)
	assert.InDelta(t, 40, cam.Position.Z, 1e-9)
	assert.InDelta(t, 0, cam.Target.Length(), 1e-9)
}

func TestReloadKeepsPositionAbsolute(t *testing.T) {
	f := newFixture(t)
	src := upload(map[string]string{"wide.stl": wideSTL})

	for i := 0; i < 3; i++ {
		require.NoError(t, f.ctrl.SelectSource(context.Background(), src))
		f.settle(t)
	}
	assert.InDelta(t, 0, f.ctrl.Current().WorldBounds().Center().Length(), 1e-9)
}

func TestReplaceReleasesOldOnAttach(t *testing.T) {
	f := newFixture(t, "models/wide.stl", "models/tiny.stl", "models/quad.obj")

	require.NoError(t, f.ctrl.LoadBundled(context.Background()))
	f.settle(t)
	for i := 0; i < 3; i++ {
		require.NoError(t, f.ctrl.AdvanceModel(context.Background()))
		f.settle(t)
	}

	assert.Equal(t, 2, f.renderer.maxLive, "only the incoming node overlaps the displayed one")
	assert.Len(t, f.renderer.live, 1)
	assert.True(t, f.renderer.live[f.ctrl.Current()])
	assert.Equal(t, []string{
		"upload:wide",
		"upload:tiny",
		"release:wide",
		"upload:quad.obj",
		"release:tiny",
		"upload:wide",
		"release:quad.obj",
	}, f.renderer.events)
}

func TestFitClipsAroundModelScale(t *testing.T) {
	for _, size := range []float64{0.01, 1000} {
		f := newFixture(t)
		mesh := &scene.Mesh{Vertices: []scene.Vertex{
			{Position: geometry.NewVector3(0, 0, 0)},
			{Position: geometry.NewVector3(size, 0, 0)},
			{Position: geometry.NewVector3(0, size, size)},
		}}
		require.NoError(t, f.ctrl.ReplaceModel(scene.NewNode(scene.KindMesh, "scaled", mesh)))

		cam := f.scene.Camera
		distance := 2 * size
		assert.InDelta(t, distance, cam.Position.Z, 1e-9)
		assert.Less(t, cam.Near, distance-size, "size %v", size)
		assert.Greater(t, cam.Far, distance+size, "size %v", size)
	}
}

func TestAdvanceWrapsAround(t *testing.T) {
	models := []string{"models/wide.stl", "models/tiny.stl", "models/quad.obj"}
	f := newFixture(t, models...)
	start := f.ctrl.ModelPath()

	for i := 0; i < len(models); i++ {
		require.NoError(t, f.ctrl.AdvanceModel(context.Background()))
		f.settle(t)
	}

	assert.Equal(t, start, f.ctrl.ModelPath())
	assert.Equal(t, 0, f.ctrl.Cursor())
	assert.Empty(t, f.alerts)
}

func TestAdvanceWithoutModels(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.ctrl.AdvanceModel(context.Background()), ErrNoModels)
}

func TestToggleThemeRoundTrip(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"tiny.stl": tinySTL})))
	f.settle(t)

	mat := f.ctrl.Current().Meshes[0].Material
	bg, tint := f.scene.Background, mat.Color
	assert.Equal(t, scene.DefaultPalette.Light.Tint, tint)

	f.ctrl.ToggleTheme()
	assert.Equal(t, scene.ThemeDark, f.ctrl.Theme())
	assert.Equal(t, scene.DefaultPalette.Dark.Background, f.scene.Background)
	assert.Equal(t, scene.DefaultPalette.Dark.Tint, mat.Color)

	f.ctrl.ToggleTheme()
	assert.Equal(t, bg, f.scene.Background)
	assert.Equal(t, tint, mat.Color)
	assert.Equal(t, []scene.Theme{scene.ThemeLight, scene.ThemeDark, scene.ThemeLight}, f.themes)
}

func TestNextModelUsesThemeTint(t *testing.T) {
	f := newFixture(t, "models/wide.stl", "models/tiny.stl")
	f.ctrl.ToggleTheme()

	require.NoError(t, f.ctrl.AdvanceModel(context.Background()))
	f.settle(t)

	assert.Equal(t, scene.DefaultPalette.Dark.Tint, f.ctrl.Current().Meshes[0].Material.Color)
}

func TestUnsupportedUploadLeavesState(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"tiny.stl": tinySTL})))
	f.settle(t)
	before := f.ctrl.Current()

	err := f.ctrl.SelectSource(context.Background(), upload(map[string]string{"notes.txt": "hello", "photo.png": "x"}))
	assert.ErrorIs(t, err, source.ErrUnsupportedFormat)
	require.Len(t, f.alerts, 1)
	assert.ErrorIs(t, f.alerts[0], source.ErrUnsupportedFormat)

	assert.False(t, f.ctrl.Loading())
	assert.Same(t, before, f.ctrl.Current())
	assert.Len(t, f.renderer.live, 1)
}

func TestParseFailureAlerts(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"broken.stl": "solid x\nfacet normal a b c\n"})))
	f.settle(t)

	require.Len(t, f.alerts, 1)
	assert.ErrorIs(t, f.alerts[0], loader.ErrParseFailure)
	assert.Nil(t, f.ctrl.Current())
}

func TestLatestSelectionWins(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"wide.stl": wideSTL})))
	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"tiny.stl": tinySTL})))
	f.settle(t)

	require.NotNil(t, f.ctrl.Current())
	assert.Equal(t, "tiny", f.ctrl.Current().Name)
	assert.Len(t, f.renderer.live, 1)
	assert.Empty(t, f.alerts)
}

func TestUploadFailureAlerts(t *testing.T) {
	f := newFixture(t)
	f.renderer.failing = errors.New("out of memory")

	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"tiny.stl": tinySTL})))
	f.settle(t)

	require.Len(t, f.alerts, 1)
	assert.Nil(t, f.ctrl.Current())
}

func TestUploadFailureKeepsDisplayedModel(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"wide.stl": wideSTL})))
	f.settle(t)
	before := f.ctrl.Current()
	camera := f.scene.Camera

	f.renderer.failing = errors.New("out of memory")
	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"tiny.stl": tinySTL})))
	f.settle(t)

	require.Len(t, f.alerts, 1)
	assert.Same(t, before, f.ctrl.Current())
	assert.True(t, f.renderer.live[before])
	assert.Equal(t, camera, f.scene.Camera)
}

// countingContext reports how many cancel registrations were made on it
// and how many were undone again.
type countingContext struct {
	context.Context
	registered int
	stopped    int
}

func (c *countingContext) AfterFunc(fn func()) func() bool {
	c.registered++
	stop := context.AfterFunc(c.Context, fn)
	return func() bool {
		c.stopped++
		return stop()
	}
}

// Value hides the embedded cancel context so children register through AfterFunc
func (c *countingContext) Value(any) any { return nil }

func TestCompletedLoadReleasesContext(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx := &countingContext{Context: base}

	f := newFixture(t, "models/wide.stl", "models/tiny.stl")
	require.NoError(t, f.ctrl.LoadBundled(ctx))
	f.settle(t)
	require.NoError(t, f.ctrl.AdvanceModel(ctx))
	f.settle(t)

	assert.Equal(t, 2, ctx.registered)
	assert.Equal(t, ctx.registered, ctx.stopped)
}

func TestReloadKeepsView(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectSource(context.Background(), upload(map[string]string{"wide.stl": wideSTL})))
	f.settle(t)

	f.ctrl.Controls().Yaw = math.Pi / 4
	f.ctrl.Controls().Distance = 12
	require.NoError(t, f.ctrl.Reload(context.Background()))
	f.settle(t)

	assert.InDelta(t, math.Pi/4, f.ctrl.Controls().Yaw, 1e-9)
	assert.InDelta(t, 12, f.ctrl.Controls().Distance, 1e-9)

	f.ctrl.ResetView()
	assert.InDelta(t, 0, f.ctrl.Controls().Yaw, 1e-9)
	assert.InDelta(t, 40, f.scene.Camera.Position.Z, 1e-9)
}

func TestQueueDrain(t *testing.T) {
	q := NewQueue(4)
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		q.Post(func() { got = append(got, i) })
	}
	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, q.Drain())
}
