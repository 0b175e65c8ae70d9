package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// File is one named input. Content is opened lazily so it can be read off the UI goroutine.
type File struct {
	Name string // base name, used for format and texture matching
	Path string // on-disk path, empty for in-memory or embedded files

	open func() (io.ReadCloser, error)
}

// NewFile wraps an opener under the given name
func NewFile(name string, open func() (io.ReadCloser, error)) File {
	return File{Name: path.Base(filepath.ToSlash(name)), open: open}
}

// FromPath references a file on disk
func FromPath(p string) File {
	f := NewFile(filepath.Base(p), func() (io.ReadCloser, error) { return os.Open(p) })
	f.Path = p
	return f
}

// FromBytes wraps in-memory content
func FromBytes(name string, data []byte) File {
	return NewFile(name, func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FromFS references a file inside fsys
func FromFS(fsys fs.FS, name string) File {
	return NewFile(name, func() (io.ReadCloser, error) { return fsys.Open(name) })
}

// Read returns the whole content. It gives up early when ctx is done.
func (f File) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.open == nil {
		return nil, fmt.Errorf("read %s: no content", f.Name)
	}
	rc, err := f.open()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}
