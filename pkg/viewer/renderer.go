// Package viewer rasterizes a scene on the CPU. It backs the fyne front end and
// headless rendering.
package viewer

import (
	"image/color"
	"math"

	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/pkg/geometry"
)

// specular highlight strength of a fully smooth material
const specularStrength = 0.6

// Renderer draws scenes into frames it keeps between calls
type Renderer struct {
	frame *Frame
}

// NewRenderer returns a renderer with no frame allocated yet
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws sc at the camera's viewport size and returns the frame.
// The frame is reused by the next call.
func (r *Renderer) Render(sc *scene.Scene) *Frame {
	w, h := sc.Camera.Width, sc.Camera.Height
	if r.frame == nil {
		r.frame = NewFrame(w, h)
	} else if fw, fh := r.frame.Size(); fw != max(w, 1) || fh != max(h, 1) {
		r.frame = NewFrame(w, h)
	}

	r.frame.Clear(sc.Background)
	if node := sc.Current(); node != nil {
		DrawNode(r.frame, sc.Camera, sc.Lighting, node)
	}
	return r.frame
}

// Upload is a no-op; nodes are drawn straight from their vertex data
func (r *Renderer) Upload(*scene.Node) error { return nil }

// Release is a no-op
func (r *Renderer) Release(*scene.Node) {}

// DrawNode rasterizes every mesh of node, offset by its position
func DrawNode(f *Frame, cam scene.Camera, lights scene.Lighting, node *scene.Node) {
	eye := cam.Position
	for _, m := range node.Meshes {
		mat := m.Material
		if mat == nil {
			mat = scene.NewStandardMaterial(color.NRGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff})
		}
		for i := 0; i+2 < len(m.Vertices); i += 3 {
			drawTriangle(f, cam, lights, eye, node.Position, m.Vertices[i:i+3], mat)
		}
	}
}

func drawTriangle(f *Frame, cam scene.Camera, lights scene.Lighting, eye, offset geometry.Vector3, verts []scene.Vertex, mat *scene.Material) {
	var pos [3]geometry.Vector3
	var sv [3]screenVertex
	for k := range verts {
		pos[k] = verts[k].Position.Add(offset)
		x, y, depth := cam.Project(pos[k])
		if depth <= cam.Near || depth >= cam.Far {
			return
		}
		sv[k] = screenVertex{x: x, y: y, depth: depth, u: verts[k].U, v: verts[k].V}
	}

	normal := pos[1].Sub(pos[0]).Cross(pos[2].Sub(pos[0])).Normalize()
	center := pos[0].Add(pos[1]).Add(pos[2]).Mul(1.0 / 3)
	toEye := eye.Sub(center).Normalize()
	// light both sides of open meshes
	if normal.Dot(toEye) < 0 {
		normal = normal.Neg()
	}

	diffuse := lights.Shade(normal) * (1 - 0.4*mat.Metalness)
	spec := specular(lights, normal, toEye, mat.Roughness)

	base := mat.Color
	if mat.Texture == nil {
		col := lit(base, diffuse, spec)
		f.fillTriangle(sv[0], sv[1], sv[2], func(float64, float64) color.NRGBA { return col })
		return
	}
	f.fillTriangle(sv[0], sv[1], sv[2], func(u, v float64) color.NRGBA {
		t := sampleTexture(mat.Texture, u, v)
		return lit(modulate(base, t), diffuse, spec)
	})
}

// specular is a Blinn-Phong term of the strongest directional light
func specular(lights scene.Lighting, normal, toEye geometry.Vector3, roughness float64) float64 {
	if len(lights.Directional) == 0 || roughness >= 1 {
		return 0
	}
	key := lights.Directional[0]
	half := key.Direction.Add(toEye).Normalize()
	shininess := 2 + 126*(1-roughness)*(1-roughness)
	s := math.Pow(math.Max(0, normal.Dot(half)), shininess)
	return s * (1 - roughness) * specularStrength * key.Intensity * lights.Exposure
}

func lit(c color.NRGBA, diffuse, spec float64) color.NRGBA {
	ch := func(v uint8) uint8 {
		out := float64(v)*diffuse + 255*spec
		return uint8(math.Max(0, math.Min(255, out)))
	}
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

func modulate(a, b color.NRGBA) color.NRGBA {
	mul := func(x, y uint8) uint8 { return uint8(uint16(x) * uint16(y) / 255) }
	return color.NRGBA{R: mul(a.R, b.R), G: mul(a.G, b.G), B: mul(a.B, b.B), A: mul(a.A, b.A)}
}
