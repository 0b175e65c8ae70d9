package loader

import (
	"image"
	"image/color"
	"strings"

	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/pkg/obj"
	"github.com/philipparndt/meshview/pkg/stl"
)

// Materialize builds the scene node for a parsed model. Geometry without a material of
// its own gets the standard material in tint.
func Materialize(p *Parsed, tint color.NRGBA) *scene.Node {
	var node *scene.Node
	switch {
	case p.STL != nil:
		node = stlNode(p.Name(), p.STL, tint)
	case p.OBJ != nil:
		node = objNode(p.Name(), p.OBJ, p.Textures, tint)
	default:
		node = scene.NewNode(scene.KindMesh, p.Name())
	}
	return node
}

func stlNode(name string, model *stl.Model, tint color.NRGBA) *scene.Node {
	mesh := &scene.Mesh{
		Name:     name,
		Vertices: make([]scene.Vertex, 0, len(model.Triangles)*3),
		Material: scene.NewStandardMaterial(tint),
	}
	for _, t := range model.Triangles {
		n := t.Normal
		if n.Length() < 0.5 {
			n = t.CalculateNormal()
		} else {
			n = n.Normalize()
		}
		mesh.Vertices = append(mesh.Vertices,
			scene.Vertex{Position: t.V1, Normal: n},
			scene.Vertex{Position: t.V2, Normal: n},
			scene.Vertex{Position: t.V3, Normal: n},
		)
	}
	return scene.NewNode(scene.KindMesh, name, mesh)
}

func objNode(name string, model *obj.Model, textures map[string]image.Image, tint color.NRGBA) *scene.Node {
	materials := make(map[string]*scene.Material)
	meshes := make([]*scene.Mesh, 0, len(model.Meshes))

	for _, m := range model.Meshes {
		mat, ok := materials[m.Material.Name]
		if !ok {
			mat = objMaterial(m.Material, textures, tint)
			materials[m.Material.Name] = mat
		}
		// A texture without texture coordinates would sample one texel; skip it.
		if mat.Texture != nil && !m.HasUVs {
			untextured := *mat
			untextured.Texture = nil
			mat = &untextured
		}

		verts := make([]scene.Vertex, len(m.Vertices))
		for i, v := range m.Vertices {
			verts[i] = scene.Vertex{Position: v.Position, Normal: v.Normal, U: v.U, V: v.V}
		}
		meshes = append(meshes, &scene.Mesh{
			Name:     meshName(m),
			Vertices: verts,
			Material: mat,
		})
	}
	return scene.NewNode(scene.KindGroup, name, meshes...)
}

func objMaterial(m obj.Material, textures map[string]image.Image, tint color.NRGBA) *scene.Material {
	if !m.Defined {
		mat := scene.NewStandardMaterial(tint)
		if m.Name != "" {
			mat.Name = m.Name
		}
		return mat
	}
	mat := &scene.Material{
		Name:      m.Name,
		Color:     m.Diffuse,
		Metalness: 0,
		Roughness: 1,
	}
	if name := m.TextureName(); name != "" {
		if tex, ok := textures[strings.ToLower(name)]; ok {
			mat.Texture = tex
		}
	}
	return mat
}

func meshName(m *obj.Mesh) string {
	switch {
	case m.Object != "" && m.Material.Name != "":
		return m.Object + "/" + m.Material.Name
	case m.Object != "":
		return m.Object
	default:
		return m.Material.Name
	}
}
