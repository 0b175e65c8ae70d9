package stl

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiTetra = `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 0
    endloop
  endfacet
endsolid tetra
`

func TestParseBytesASCII(t *testing.T) {
	model, err := ParseBytes([]byte(asciiTetra))
	require.NoError(t, err)

	assert.Equal(t, "tetra", model.Name)
	assert.Equal(t, 2, model.TriangleCount())
	assert.Equal(t, geometry.NewVector3(0, 0, -1), model.Triangles[0].Normal)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), model.Triangles[1].V2)
}

func TestParseBytesBinaryRoundTrip(t *testing.T) {
	src := NewModel("solid-looking header")
	src.AddTriangle(geometry.NewTriangle(
		geometry.NewVector3(0, 0, 1),
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(2, 0, 0),
		geometry.NewVector3(0, 2, 0),
	))

	var buf bytes.Buffer
	require.NoError(t, WriteBinary(&buf, src))
	// Header starts with "solid" but the size matches the binary layout.
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("solid")))

	model, err := ParseBytes(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, 1, model.TriangleCount())
	assert.Equal(t, src.Triangles[0], model.Triangles[0])
	assert.Equal(t, "solid-looking header", model.Name)
}

func TestParseBytesErrors(t *testing.T) {
	_, err := ParseBytes(nil)
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ParseBytes([]byte("not an stl"))
	assert.Error(t, err, "short binary data must fail")

	_, err = ParseBytes([]byte("solid x\nfacet normal 0 0 1\nvertex a b c\n"))
	assert.Error(t, err)

	oversized := make([]byte, binaryHeaderSize+4)
	binary.LittleEndian.PutUint32(oversized[binaryHeaderSize:], 0xFFFFFFFF)
	_, err = ParseBytes(oversized)
	assert.ErrorContains(t, err, "declares 4294967295 triangles")

	truncated := make([]byte, binaryHeaderSize+4+binaryTriangleSize)
	binary.LittleEndian.PutUint32(truncated[binaryHeaderSize:], 2)
	_, err = ParseBytes(truncated)
	assert.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetra.stl")
	require.NoError(t, os.WriteFile(path, []byte(asciiTetra), 0o644))

	model, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, 2, model.TriangleCount())

	_, err = Parse(filepath.Join(t.TempDir(), "missing.stl"))
	assert.Error(t, err)
}

func TestModelBoundingBox(t *testing.T) {
	model, err := ParseReader(bytes.NewReader([]byte(asciiTetra)))
	require.NoError(t, err)

	bbox := model.BoundingBox()
	assert.Equal(t, geometry.NewVector3(0, 0, 0), bbox.Min)
	assert.Equal(t, geometry.NewVector3(1, 1, 1), bbox.Max)
	assert.InDelta(t, 1.0, model.SurfaceArea(), 1e-9)
}
