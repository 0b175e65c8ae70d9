package scene

import (
	"testing"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangleMesh(a, b, c geometry.Vector3, m *Material) *Mesh {
	return &Mesh{
		Vertices: []Vertex{{Position: a}, {Position: b}, {Position: c}},
		Material: m,
	}
}

func TestNodeBounds(t *testing.T) {
	n := NewNode(KindMesh, "tri", triangleMesh(
		geometry.NewVector3(10, 10, 10),
		geometry.NewVector3(14, 10, 10),
		geometry.NewVector3(10, 12, 11),
		NewStandardMaterial(DefaultPalette.Light.Tint),
	))

	assert.Equal(t, geometry.NewVector3(4, 2, 1), n.LocalBounds().Size())
	assert.Equal(t, 1, n.TriangleCount())

	n.Position = n.LocalBounds().Center().Neg()
	assert.Equal(t, geometry.Vector3{}, n.WorldBounds().Center())
	assert.Equal(t, "mesh", n.Kind.String())
	assert.Len(t, n.Triangles(), 1)
}

func TestSceneHoldsOneNode(t *testing.T) {
	s := New(800, 600, DefaultPalette.Light.Background)
	a := NewNode(KindMesh, "a")
	b := NewNode(KindGroup, "b")

	require.NoError(t, s.Attach(a))
	assert.ErrorIs(t, s.Attach(b), ErrOccupied)
	assert.Same(t, a, s.Current())

	assert.Same(t, a, s.Detach())
	assert.Nil(t, s.Current())
	assert.Nil(t, s.Detach())
	require.NoError(t, s.Attach(b))
}

func TestComputeFit(t *testing.T) {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(100, -5, 3))
	bbox.Extend(geometry.NewVector3(130, 5, 4))

	fit := ComputeFit(bbox)
	assert.Equal(t, geometry.NewVector3(-115, 0, -3.5), fit.Translation)
	assert.InDelta(t, 60.0, fit.Distance, 1e-9)
	assert.Equal(t, geometry.NewVector3(0, 0, 60), fit.CameraPosition())

	point := geometry.NewBoundingBox()
	point.Extend(geometry.NewVector3(1, 1, 1))
	assert.Equal(t, degenerateDistance, ComputeFit(point).Distance)
}

func TestRetintOnlyThemed(t *testing.T) {
	themed := NewStandardMaterial(DefaultPalette.Light.Tint)
	own := &Material{Name: "mtl", Color: MustParseHex("#ff0000")}
	n := NewNode(KindGroup, "g",
		triangleMesh(geometry.Vector3{}, geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0), themed),
		triangleMesh(geometry.Vector3{}, geometry.NewVector3(1, 0, 0), geometry.NewVector3(0, 1, 0), own),
	)

	assert.Equal(t, 1, Retint(n, DefaultPalette.Dark.Tint))
	assert.Equal(t, DefaultPalette.Dark.Tint, themed.Color)
	assert.Equal(t, MustParseHex("#ff0000"), own.Color)
	assert.Zero(t, Retint(nil, DefaultPalette.Dark.Tint))
}

func TestThemeAndColors(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeLight.Toggle().Toggle())

	th, err := ParseTheme("Dark")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, th)
	_, err = ParseTheme("sepia")
	assert.Error(t, err)

	c, err := ParseHex("0x0077ff")
	require.NoError(t, err)
	assert.Equal(t, "#0077ff", Hex(c))
	_, err = ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#zzzzzz")
	assert.Error(t, err)

	assert.Equal(t, DefaultPalette.Dark, DefaultPalette.For(ThemeDark))
}

func TestLightingShade(t *testing.T) {
	l := DefaultLighting()
	front := l.Shade(geometry.NewVector3(0, 0, 1))
	back := l.Shade(geometry.NewVector3(0, 0, -1))

	assert.Greater(t, front, back)
	assert.LessOrEqual(t, front, 1.0)
	assert.Greater(t, back, 0.0)
	assert.InDelta(t, l.Ambient*l.Exposure, l.Shade(geometry.Vector3{}), 1e-9)
}

func TestCameraProject(t *testing.T) {
	c := NewCamera(200, 100)
	assert.InDelta(t, 2.0, c.Aspect(), 1e-9)

	x, y, depth := c.Project(geometry.Vector3{})
	assert.InDelta(t, 100, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
	assert.InDelta(t, 10, depth, 1e-9)

	_, yUp, _ := c.Project(geometry.NewVector3(0, 1, 0))
	assert.Less(t, yUp, 50.0, "up is towards the top of the image")

	c.Resize(0, 0)
	assert.Equal(t, 1.0, c.Aspect())
}

func TestCameraClipAround(t *testing.T) {
	cam := NewCamera(100, 100)
	cam.ClipAround(0.02)
	assert.InDelta(t, 0.0002, cam.Near, 1e-12)
	assert.InDelta(t, 2, cam.Far, 1e-9)

	cam.ClipAround(0)
	assert.InDelta(t, 2, cam.Far, 1e-9, "non-positive distance keeps the planes")
}
