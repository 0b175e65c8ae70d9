package assets

import (
	"io/fs"
	"testing"

	"github.com/philipparndt/meshview/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledModelsParse(t *testing.T) {
	names, err := fs.Glob(Models(), "models/*.stl")
	require.NoError(t, err)
	assert.Len(t, names, 5)

	for _, name := range names {
		data, err := fs.ReadFile(Models(), name)
		require.NoError(t, err, name)

		model, err := stl.ParseBytes(data)
		require.NoError(t, err, name)
		assert.Positive(t, model.TriangleCount(), name)
		assert.Positive(t, model.BoundingBox().MaxDimension(), name)
	}
}
