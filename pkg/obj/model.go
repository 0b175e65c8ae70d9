// Package obj turns Wavefront OBJ text, plus optional MTL text, into per-material
// triangle lists. Decoding itself is done by the g3n OBJ loader.
package obj

import (
	"image/color"
	"path"
	"strings"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Vertex is one corner of a triangle
type Vertex struct {
	Position geometry.Vector3
	Normal   geometry.Vector3
	U, V     float64
}

// Material is the subset of an MTL material the viewer uses
type Material struct {
	Name       string
	Diffuse    color.NRGBA
	Opacity    float64
	DiffuseMap string // map_Kd as written in the MTL
	Defined    bool   // false when usemtl names a material the MTL does not define
}

// TextureName returns the bare file name of the diffuse map, or "" when there is none
func (m Material) TextureName() string {
	if m.DiffuseMap == "" {
		return ""
	}
	return path.Base(strings.ReplaceAll(m.DiffuseMap, "\\", "/"))
}

// Mesh groups the triangles of one object that share a material
type Mesh struct {
	Object   string
	Material Material
	Vertices []Vertex // three per triangle
	HasUVs   bool
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Triangles returns the mesh as geometry triangles
func (m *Mesh) Triangles() []geometry.Triangle {
	tris := make([]geometry.Triangle, 0, m.TriangleCount())
	for i := 0; i+2 < len(m.Vertices); i += 3 {
		t := geometry.NewTriangle(geometry.Vector3{}, m.Vertices[i].Position, m.Vertices[i+1].Position, m.Vertices[i+2].Position)
		t.Normal = t.CalculateNormal()
		tris = append(tris, t)
	}
	return tris
}

// Model is a decoded OBJ object graph
type Model struct {
	MaterialLib string // mtllib reference from the OBJ, informational
	Meshes      []*Mesh
	Warnings    []string
}

// BoundingBox calculates the bounding box over all meshes
func (m *Model) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, mesh := range m.Meshes {
		for _, v := range mesh.Vertices {
			bbox.Extend(v.Position)
		}
	}
	return bbox
}

// TriangleCount returns the number of triangles over all meshes
func (m *Model) TriangleCount() int {
	n := 0
	for _, mesh := range m.Meshes {
		n += mesh.TriangleCount()
	}
	return n
}

// TextureNames lists the distinct diffuse map file names referenced by the model
func (m *Model) TextureNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, mesh := range m.Meshes {
		name := mesh.Material.TextureName()
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		names = append(names, name)
	}
	return names
}
