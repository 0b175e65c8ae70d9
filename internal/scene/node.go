// Package scene is the renderer-neutral model of what the viewer displays: one
// loaded node, the camera looking at it, the lights and the background.
package scene

import (
	"image"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Kind tags a node so the owner never has to inspect renderer types
type Kind int

const (
	// KindMesh is a single geometry (STL)
	KindMesh Kind = iota
	// KindGroup is an object graph with one mesh per material (OBJ)
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Vertex is one triangle corner in model space
type Vertex struct {
	Position geometry.Vector3
	Normal   geometry.Vector3
	U, V     float64
}

// Mesh is a triangle list drawn with one material
type Mesh struct {
	Name     string
	Vertices []Vertex // three per triangle
	Material *Material
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Vertices) / 3
}

// Node is a loaded model: what the viewer attaches to the scene
type Node struct {
	Kind     Kind
	Name     string
	Meshes   []*Mesh
	Position geometry.Vector3 // model-space offset applied when drawing

	bounds geometry.BoundingBox
}

// NewNode builds a node and computes its model-space bounds
func NewNode(kind Kind, name string, meshes ...*Mesh) *Node {
	n := &Node{Kind: kind, Name: name, Meshes: meshes}
	n.UpdateBounds()
	return n
}

// UpdateBounds recomputes the model-space bounding box from the vertices
func (n *Node) UpdateBounds() {
	bbox := geometry.NewBoundingBox()
	for _, m := range n.Meshes {
		for _, v := range m.Vertices {
			bbox.Extend(v.Position)
		}
	}
	n.bounds = bbox
}

// LocalBounds returns the bounding box without the node position
func (n *Node) LocalBounds() geometry.BoundingBox {
	return n.bounds
}

// WorldBounds returns the bounding box as drawn
func (n *Node) WorldBounds() geometry.BoundingBox {
	return n.bounds.Translate(n.Position)
}

// TriangleCount returns the number of triangles over all meshes
func (n *Node) TriangleCount() int {
	total := 0
	for _, m := range n.Meshes {
		total += m.TriangleCount()
	}
	return total
}

// Textures returns the distinct textures bound to the node's materials
func (n *Node) Textures() []image.Image {
	var out []image.Image
	for _, m := range n.Meshes {
		if m.Material != nil && m.Material.Texture != nil {
			out = append(out, m.Material.Texture)
		}
	}
	return out
}

// Triangles flattens the node into geometry triangles in model space
func (n *Node) Triangles() []geometry.Triangle {
	tris := make([]geometry.Triangle, 0, n.TriangleCount())
	for _, m := range n.Meshes {
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			t := geometry.NewTriangle(geometry.Vector3{}, m.Vertices[i].Position, m.Vertices[i+1].Position, m.Vertices[i+2].Position)
			t.Normal = t.CalculateNormal()
			tris = append(tris, t)
		}
	}
	return tris
}
