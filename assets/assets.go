// Package assets embeds the models shipped with meshview.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed models/*.stl
var models embed.FS

// Models returns the bundled model filesystem; paths look like "models/box.stl"
func Models() fs.FS {
	return models
}
