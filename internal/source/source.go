// Package source describes where a model comes from and decides which loader
// handles a set of files.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned when no .obj or .stl is among the files
var ErrUnsupportedFormat = errors.New("unsupported file")

// Kind distinguishes bundled paths from user supplied files
type Kind int

const (
	KindBundled Kind = iota
	KindUpload
)

// Format is the loader a plan needs
type Format int

const (
	FormatSTL Format = iota
	FormatOBJ
)

func (f Format) String() string {
	if f == FormatOBJ {
		return "obj"
	}
	return "stl"
}

// Source is an immutable reference to a model to load
type Source struct {
	Kind  Kind
	Path  string // bundled path inside FS
	FS    fs.FS
	Dir   string // directory FS was opened from, when bundled models live on disk
	Files []File // user supplied set
}

// Bundled references a model shipped with the application
func Bundled(fsys fs.FS, p string) Source {
	return Source{Kind: KindBundled, Path: p, FS: fsys}
}

// BundledDir references a bundled model served from a directory on disk
func BundledDir(dir, p string) Source {
	return Source{Kind: KindBundled, Path: p, FS: os.DirFS(dir), Dir: dir}
}

// Upload references a set of user supplied files
func Upload(files ...File) Source {
	return Source{Kind: KindUpload, Files: append([]File(nil), files...)}
}

// FromPaths references files on disk as a user supplied set
func FromPaths(paths ...string) Source {
	files := make([]File, len(paths))
	for i, p := range paths {
		files[i] = FromPath(p)
	}
	return Upload(files...)
}

// Name describes the source for logs and the HUD
func (s Source) Name() string {
	if s.Kind == KindBundled {
		return s.Path
	}
	names := make([]string, len(s.Files))
	for i, f := range s.Files {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

// DiskPaths lists the on-disk files behind the source, for change watching
func (s Source) DiskPaths() []string {
	if s.Kind == KindBundled {
		if s.Dir == "" {
			return nil
		}
		return []string{filepath.Join(s.Dir, filepath.FromSlash(s.Path))}
	}
	var out []string
	for _, f := range s.Files {
		if f.Path != "" {
			out = append(out, f.Path)
		}
	}
	return out
}

// Plan is the outcome of format detection
type Plan struct {
	Format   Format
	Model    File
	Material *File // MTL paired with an OBJ, if any
	Siblings []File
}

// Lookup finds a sibling by exact file name, ignoring case
func (p Plan) Lookup(name string) (File, bool) {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	for _, f := range p.Siblings {
		if strings.EqualFold(f.Name, base) {
			return f, true
		}
	}
	return File{}, false
}

// Plan resolves the source into the files the loader needs
func (s Source) Plan() (Plan, error) {
	if s.Kind == KindUpload {
		plan, err := Detect(s.Files)
		if err != nil {
			return Plan{}, err
		}
		// A lone OBJ picked from disk finds its MTL and textures next to it.
		if plan.Format == FormatOBJ && len(s.Files) == 1 && plan.Model.Path != "" {
			plan.Siblings = append(plan.Siblings, neighbours(plan.Model.Path)...)
			plan.Material = pairMaterial(plan.Model, plan.Siblings)
		}
		return plan, nil
	}
	if s.FS == nil {
		return Plan{}, fmt.Errorf("%s: no bundle filesystem", s.Path)
	}

	dir := path.Dir(s.Path)
	files := []File{FromFS(s.FS, s.Path)}
	if entries, err := fs.ReadDir(s.FS, dir); err == nil {
		for _, e := range entries {
			p := path.Join(dir, e.Name())
			if e.IsDir() || p == path.Clean(s.Path) {
				continue
			}
			files = append(files, FromFS(s.FS, p))
		}
	}

	plan, err := Detect(files[:1])
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", s.Path, err)
	}
	plan.Siblings = files
	if plan.Format == FormatOBJ {
		plan.Material = pairMaterial(plan.Model, files)
	}
	return plan, nil
}

// Detect picks the loader for a file set: an OBJ wins over an STL, an OBJ takes
// the MTL with the same base name, anything else only rides along for texture lookup.
func Detect(files []File) (Plan, error) {
	if f, ok := firstWithExt(files, ".obj"); ok {
		return Plan{
			Format:   FormatOBJ,
			Model:    f,
			Material: pairMaterial(f, files),
			Siblings: files,
		}, nil
	}
	if f, ok := firstWithExt(files, ".stl"); ok {
		return Plan{Format: FormatSTL, Model: f, Siblings: files}, nil
	}
	return Plan{}, ErrUnsupportedFormat
}

// neighbours lists the other regular files in the directory of p
func neighbours(p string) []File {
	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil {
		return nil
	}
	var out []File
	for _, e := range entries {
		if e.IsDir() || e.Name() == filepath.Base(p) {
			continue
		}
		out = append(out, FromPath(filepath.Join(filepath.Dir(p), e.Name())))
	}
	return out
}

func ext(name string) string {
	return strings.ToLower(path.Ext(name))
}

func stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

func firstWithExt(files []File, want string) (File, bool) {
	for _, f := range files {
		if ext(f.Name) == want {
			return f, true
		}
	}
	return File{}, false
}

func pairMaterial(model File, files []File) *File {
	want := stem(model.Name)
	for _, f := range files {
		if ext(f.Name) == ".mtl" && strings.EqualFold(stem(f.Name), want) {
			m := f
			return &m
		}
	}
	return nil
}
