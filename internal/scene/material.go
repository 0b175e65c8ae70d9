package scene

import (
	"image"
	"image/color"
)

// Standard material parameters for meshes that carry no material of their own
const (
	DefaultMetalness = 0.5
	DefaultRoughness = 0.5
)

// Material describes the surface of a mesh
type Material struct {
	Name      string
	Color     color.NRGBA
	Metalness float64
	Roughness float64
	Texture   image.Image // diffuse map, already flipped to image row order

	// Themed materials follow the theme tint; MTL materials keep their own color.
	Themed bool
}

// NewStandardMaterial returns the default metal/rough material in the given tint
func NewStandardMaterial(tint color.NRGBA) *Material {
	return &Material{
		Name:      "standard",
		Color:     tint,
		Metalness: DefaultMetalness,
		Roughness: DefaultRoughness,
		Themed:    true,
	}
}

// Retint replaces the color of every themed material of the node in place and
// returns how many materials changed.
func Retint(n *Node, tint color.NRGBA) int {
	if n == nil {
		return 0
	}
	changed := 0
	for _, m := range n.Meshes {
		if m.Material == nil || !m.Material.Themed {
			continue
		}
		m.Material.Color = tint
		changed++
	}
	return changed
}
