package obj

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	g3nobj "github.com/g3n/engine/loader/obj"
	"github.com/g3n/engine/math32"
	"github.com/philipparndt/meshview/pkg/geometry"
)

// ErrNoGeometry is returned when the OBJ decodes but holds no faces
var ErrNoGeometry = errors.New("obj contains no faces")

var defaultDiffuse = color.NRGBA{R: 204, G: 204, B: 204, A: 255}

// Parse decodes OBJ content and, when mtlData is non-nil, its material library.
func Parse(objData, mtlData []byte) (*Model, error) {
	// The decoder reads the MTL stream unconditionally; an empty one means "no materials".
	dec, err := g3nobj.DecodeReader(bytes.NewReader(objData), bytes.NewReader(mtlData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode obj: %w", err)
	}

	declared := declaredMaterials(mtlData)
	model := &Model{
		MaterialLib: dec.Matlib,
		Warnings:    append([]string(nil), dec.Warnings...),
	}

	for _, object := range dec.Objects {
		byMaterial := make(map[string]*Mesh)
		for _, face := range object.Faces {
			mesh, ok := byMaterial[face.Material]
			if !ok {
				mesh = &Mesh{
					Object:   object.Name,
					Material: convertMaterial(face.Material, declared[face.Material], dec.Materials[face.Material]),
				}
				byMaterial[face.Material] = mesh
				model.Meshes = append(model.Meshes, mesh)
			}
			if err := appendFace(dec, mesh, face); err != nil {
				return nil, fmt.Errorf("object %q: %w", object.Name, err)
			}
		}
	}

	// Drop groups whose faces were all degenerate
	meshes := model.Meshes[:0]
	for _, m := range model.Meshes {
		if len(m.Vertices) > 0 {
			meshes = append(meshes, m)
		}
	}
	model.Meshes = meshes

	if len(model.Meshes) == 0 {
		return nil, ErrNoGeometry
	}
	return model, nil
}

// declaredMaterials lists the newmtl names of a material library. The decoder
// invents a black placeholder for every usemtl it cannot resolve, so only
// these names count as defined.
func declaredMaterials(mtlData []byte) map[string]bool {
	names := make(map[string]bool)
	for _, line := range bytes.Split(mtlData, []byte("\n")) {
		fields := strings.Fields(string(line))
		if len(fields) >= 2 && fields[0] == "newmtl" {
			names[fields[1]] = true
		}
	}
	return names
}

func convertMaterial(name string, declared bool, m *g3nobj.Material) Material {
	if m == nil || !declared {
		return Material{Name: name, Diffuse: defaultDiffuse, Opacity: 1}
	}
	opacity := float64(m.Opacity)
	if opacity <= 0 {
		opacity = 1
	}
	return Material{
		Name:       name,
		Diffuse:    toNRGBA(m.Diffuse, opacity),
		Opacity:    opacity,
		DiffuseMap: m.MapKd,
		Defined:    true,
	}
}

func toNRGBA(c math32.Color, opacity float64) color.NRGBA {
	return color.NRGBA{
		R: channel(float64(c.R)),
		G: channel(float64(c.G)),
		B: channel(float64(c.B)),
		A: channel(opacity),
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// appendFace fan-triangulates one polygon into the mesh
func appendFace(dec *g3nobj.Decoder, mesh *Mesh, face g3nobj.Face) error {
	if len(face.Vertices) < 3 {
		return nil
	}

	corners := make([]Vertex, len(face.Vertices))
	hasNormals := true
	hasUVs := true
	for i, vi := range face.Vertices {
		pos, ok := vec3(dec.Vertices, vi)
		if !ok {
			return fmt.Errorf("vertex index %d out of range", vi)
		}
		corners[i].Position = pos

		if i < len(face.Normals) {
			if n, ok := vec3(dec.Normals, face.Normals[i]); ok {
				corners[i].Normal = n
			} else {
				hasNormals = false
			}
		} else {
			hasNormals = false
		}

		if i < len(face.Uvs) {
			if u, v, ok := vec2(dec.Uvs, face.Uvs[i]); ok {
				corners[i].U, corners[i].V = u, v
			} else {
				hasUVs = false
			}
		} else {
			hasUVs = false
		}
	}

	if !hasNormals {
		t := geometry.NewTriangle(geometry.Vector3{}, corners[0].Position, corners[1].Position, corners[2].Position)
		n := t.CalculateNormal()
		for i := range corners {
			corners[i].Normal = n
		}
	}
	if len(mesh.Vertices) == 0 {
		mesh.HasUVs = hasUVs
	} else {
		mesh.HasUVs = mesh.HasUVs && hasUVs
	}

	for i := 1; i+1 < len(corners); i++ {
		mesh.Vertices = append(mesh.Vertices, corners[0], corners[i], corners[i+1])
	}
	return nil
}

func vec3(arr math32.ArrayF32, idx int) (geometry.Vector3, bool) {
	if idx < 0 || 3*idx+2 >= len(arr) {
		return geometry.Vector3{}, false
	}
	return geometry.NewVector3(float64(arr[3*idx]), float64(arr[3*idx+1]), float64(arr[3*idx+2])), true
}

func vec2(arr math32.ArrayF32, idx int) (float64, float64, bool) {
	if idx < 0 || 2*idx+1 >= len(arr) {
		return 0, 0, false
	}
	return float64(arr[2*idx]), float64(arr[2*idx+1]), true
}
