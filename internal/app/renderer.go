package app

import (
	"errors"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshview/internal/scene"
)

// gpuMesh is one uploaded scene mesh with the material it is drawn with
type gpuMesh struct {
	source   *scene.Mesh
	mesh     rl.Mesh
	material rl.Material
}

// meshRenderer uploads scene nodes to the GPU. Lighting is baked into vertex colors
// and the material color is applied at draw time, so retinting needs no upload.
type meshRenderer struct {
	scene    *scene.Scene
	uploaded map[*scene.Node][]gpuMesh
}

func newMeshRenderer(sc *scene.Scene) *meshRenderer {
	return &meshRenderer{
		scene:    sc,
		uploaded: make(map[*scene.Node][]gpuMesh),
	}
}

// Upload converts every mesh of n to a raylib mesh
func (r *meshRenderer) Upload(n *scene.Node) error {
	if _, ok := r.uploaded[n]; ok {
		return nil
	}

	meshes := make([]gpuMesh, 0, len(n.Meshes))
	for _, m := range n.Meshes {
		if m.TriangleCount() == 0 {
			continue
		}
		g := gpuMesh{
			source:   m,
			mesh:     toRaylibMesh(m, r.scene.Lighting),
			material: rl.LoadMaterialDefault(),
		}
		if m.Material != nil && m.Material.Texture != nil {
			img := rl.NewImageFromImage(m.Material.Texture)
			tex := rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			if !rl.IsTextureValid(tex) {
				r.unload(append(meshes, g))
				return errors.New("failed to upload texture")
			}
			rl.SetMaterialTexture(&g.material, rl.MapDiffuse, tex)
		}
		meshes = append(meshes, g)
	}

	r.uploaded[n] = meshes
	return nil
}

// Release frees the GPU resources of n
func (r *meshRenderer) Release(n *scene.Node) {
	meshes, ok := r.uploaded[n]
	if !ok {
		return
	}
	r.unload(meshes)
	delete(r.uploaded, n)
}

func (r *meshRenderer) unload(meshes []gpuMesh) {
	for i := range meshes {
		rl.UnloadMesh(&meshes[i].mesh)
		// also unloads a bound diffuse texture
		rl.UnloadMaterial(meshes[i].material)
	}
}

// Draw renders n at its position; call between BeginMode3D and EndMode3D
func (r *meshRenderer) Draw(n *scene.Node) {
	if n == nil {
		return
	}
	transform := rl.MatrixTranslate(float32(n.Position.X), float32(n.Position.Y), float32(n.Position.Z))
	for _, g := range r.uploaded[n] {
		g.material.GetMap(rl.MapDiffuse).Color = materialColor(g.source.Material)
		rl.DrawMesh(g.mesh, g.material, transform)
	}
}

func materialColor(m *scene.Material) rl.Color {
	if m == nil {
		return rl.White
	}
	c := m.Color
	// metals reflect less diffuse light
	k := 1 - 0.4*m.Metalness
	return toColor(color.NRGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	})
}

// toRaylibMesh converts a scene mesh to a raylib mesh with baked lighting
func toRaylibMesh(m *scene.Mesh, lights scene.Lighting) rl.Mesh {
	vertexCount := len(m.Vertices) / 3 * 3

	mesh := rl.Mesh{
		VertexCount:   int32(vertexCount),
		TriangleCount: int32(vertexCount / 3),
	}

	vertices := make([]float32, vertexCount*3)
	normals := make([]float32, vertexCount*3)
	texcoords := make([]float32, vertexCount*2)
	colors := make([]uint8, vertexCount*4)

	for i := 0; i < vertexCount; i++ {
		v := m.Vertices[i]
		vertices[i*3+0] = float32(v.Position.X)
		vertices[i*3+1] = float32(v.Position.Y)
		vertices[i*3+2] = float32(v.Position.Z)
		normals[i*3+0] = float32(v.Normal.X)
		normals[i*3+1] = float32(v.Normal.Y)
		normals[i*3+2] = float32(v.Normal.Z)
		texcoords[i*2+0] = float32(v.U)
		texcoords[i*2+1] = float32(v.V)

		shade := uint8(255 * lights.Shade(v.Normal))
		colors[i*4+0] = shade
		colors[i*4+1] = shade
		colors[i*4+2] = shade
		colors[i*4+3] = 255
	}

	mesh.Vertices = &vertices[0]
	mesh.Normals = &normals[0]
	mesh.Texcoords = &texcoords[0]
	mesh.Colors = &colors[0]

	// Upload mesh data to GPU
	rl.UploadMesh(&mesh, false)
	return mesh
}
