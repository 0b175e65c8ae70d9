package cmd

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tetraSTL = `solid tetra
facet normal 0 0 -1
outer loop
vertex 0 0 0
vertex 0 10 0
vertex 10 0 0
endloop
endfacet
facet normal 0 -1 0
outer loop
vertex 0 0 0
vertex 10 0 0
vertex 0 0 10
endloop
endfacet
facet normal -1 0 0
outer loop
vertex 0 0 0
vertex 0 0 10
vertex 0 10 0
endloop
endfacet
facet normal 1 1 1
outer loop
vertex 10 0 0
vertex 0 10 0
vertex 0 0 10
endloop
endfacet
endsolid tetra
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestInfo(t *testing.T) {
	model := writeFile(t, "tetra.stl", tetraSTL)

	out, err := execute(t, "info", model)
	require.NoError(t, err)

	assert.Contains(t, out, "Name: tetra")
	assert.Contains(t, out, "Kind: mesh (1 meshes)")
	assert.Contains(t, out, "Triangles: 4")
	assert.Contains(t, out, "Width (X): 10.000000 units")
	assert.Contains(t, out, "Volume: 166.666667 cubic units")
}

func TestInfoUnsupported(t *testing.T) {
	notes := writeFile(t, "notes.txt", "hello")

	_, err := execute(t, "info", notes)
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	model := writeFile(t, "tetra.stl", tetraSTL)
	output := filepath.Join(t.TempDir(), "out.png")

	out, err := execute(t, "render", model, "-o", output, "--width", "64", "--height", "48", "--theme", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "Rendered")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "meshview dev")
}
