package scene

import (
	"math"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Camera is a perspective camera
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in degrees
	Near     float64
	Far      float64
	Width    int // viewport size in pixels
	Height   int
}

// NewCamera returns a 60 degree camera at (0, 0, 10) looking at the origin
func NewCamera(width, height int) Camera {
	return Camera{
		Position: geometry.NewVector3(0, 0, 10),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      60,
		Near:     0.1,
		Far:      1000,
		Width:    width,
		Height:   height,
	}
}

// clipRatio spaces the clip planes around the viewing distance
const clipRatio = 100

// ClipAround places the near and far planes relative to the distance from the
// camera to what it frames, so models of any scale stay inside the frustum.
func (c *Camera) ClipAround(distance float64) {
	if distance <= 0 {
		return
	}
	c.Near = distance / clipRatio
	c.Far = distance * clipRatio
}

// Resize records a new viewport size
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// Aspect returns width / height, or 1 before the first resize
func (c Camera) Aspect() float64 {
	if c.Width <= 0 || c.Height <= 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// Basis returns the camera's forward, right and up unit vectors
func (c Camera) Basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project maps a world point to pixel coordinates plus view depth.
// Depth <= Near means the point is behind the camera.
func (c Camera) Project(p geometry.Vector3) (x, y, depth float64) {
	forward, right, up := c.Basis()
	rel := p.Sub(c.Position)
	cx := rel.Dot(right)
	cy := rel.Dot(up)
	depth = rel.Dot(forward)

	z := math.Max(depth, 1e-6)
	scale := math.Tan(c.FOV * math.Pi / 360)
	w := float64(c.Width)
	h := float64(c.Height)

	x = (cx/(z*scale*c.Aspect()))*(w/2) + w/2
	y = (-cy/(z*scale))*(h/2) + h/2
	return x, y, depth
}
