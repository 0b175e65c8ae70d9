package scene

import (
	"math"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// DirectionalLight shines from Direction towards the origin
type DirectionalLight struct {
	Direction geometry.Vector3 // from the surface towards the light
	Intensity float64
}

// Lighting is an ambient term, a sky/ground hemisphere and directional lights
type Lighting struct {
	Ambient     float64
	SkyLevel    float64
	GroundLevel float64
	Hemisphere  float64 // hemisphere intensity
	Up          geometry.Vector3
	Directional []DirectionalLight
	Exposure    float64 // scales the summed radiance into [0, 1]
}

// DefaultLighting is a key light from the upper right front, a weaker fill from
// the lower left front, a hemisphere and a dim ambient floor.
func DefaultLighting() Lighting {
	return Lighting{
		Ambient:     float64(0x40) / 255,
		SkyLevel:    1,
		GroundLevel: float64(0x44) / 255,
		Hemisphere:  1.2,
		Up:          geometry.NewVector3(0, 1, 0),
		Directional: []DirectionalLight{
			{Direction: geometry.NewVector3(5, 5, 5).Normalize(), Intensity: 1.5},
			{Direction: geometry.NewVector3(-5, -5, 5).Normalize(), Intensity: 0.8},
		},
		Exposure: 0.4,
	}
}

// Shade returns the brightness of a surface with the given normal, in [0, 1]
func (l Lighting) Shade(normal geometry.Vector3) float64 {
	n := normal.Normalize()
	if n == (geometry.Vector3{}) {
		return clamp01(l.Ambient * l.Exposure)
	}

	total := l.Ambient

	w := 0.5*n.Dot(l.Up) + 0.5
	total += (l.GroundLevel + (l.SkyLevel-l.GroundLevel)*w) * l.Hemisphere

	for _, d := range l.Directional {
		total += math.Max(0, n.Dot(d.Direction)) * d.Intensity
	}
	return clamp01(total * l.Exposure)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
