// Package orbit turns pointer drags and wheel steps into a damped orbit camera.
package orbit

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/philipparndt/meshview/internal/scene"
	"github.com/philipparndt/meshview/pkg/geometry"
)

// maxPitch keeps the camera off the poles where the up vector degenerates
const maxPitch = math.Pi/2 - 0.01

// rest is the velocity below which damping snaps to zero
const rest = 1e-6

// Settings tune the controls
type Settings struct {
	FPS          int
	RotateSpeed  float64 // radians per pixel of drag
	ZoomSpeed    float64 // fraction of distance per wheel step
	PanSpeed     float64 // fraction of distance per pixel of drag
	Frequency    float64 // damping spring angular frequency
	DampingRatio float64 // 1 is critically damped
	MinDistance  float64
	MaxDistance  float64
}

// DefaultSettings matches a 60 fps loop with gentle damping
func DefaultSettings() Settings {
	return Settings{
		FPS:          60,
		RotateSpeed:  0.0035,
		ZoomSpeed:    0.06,
		PanSpeed:     0.001,
		Frequency:    6.0,
		DampingRatio: 1.0,
		MinDistance:  1e-3,
		MaxDistance:  1e6,
	}
}

// axis is one damped degree of freedom
type axis struct {
	velocity float64
	accel    float64
}

func (a *axis) step(s harmonica.Spring) float64 {
	v := a.velocity
	a.velocity, a.accel = s.Update(a.velocity, a.accel, 0)
	if math.Abs(a.velocity) < rest && math.Abs(a.accel) < rest {
		a.velocity, a.accel = 0, 0
	}
	return v
}

func (a *axis) stop() {
	a.velocity, a.accel = 0, 0
}

// Controls is an orbit camera around Target
type Controls struct {
	Target   geometry.Vector3
	Distance float64
	Yaw      float64 // around the up axis, 0 looks down -Z
	Pitch    float64 // elevation

	settings Settings
	spring   harmonica.Spring

	yaw, pitch, zoom axis
	panX, panY       axis
}

// New creates controls looking at the origin from distance 10
func New(settings Settings) *Controls {
	if settings.FPS <= 0 {
		settings.FPS = 60
	}
	return &Controls{
		Distance: 10,
		settings: settings,
		spring:   harmonica.NewSpring(harmonica.FPS(settings.FPS), settings.Frequency, settings.DampingRatio),
	}
}

// Reset looks at target from distance along +Z and stops all motion
func (c *Controls) Reset(target geometry.Vector3, distance float64) {
	c.Target = target
	c.Distance = distance
	c.Yaw = 0
	c.Pitch = 0
	c.Stop()
}

// Stop cancels any remaining damped motion
func (c *Controls) Stop() {
	c.yaw.stop()
	c.pitch.stop()
	c.zoom.stop()
	c.panX.stop()
	c.panY.stop()
}

// Rotate queues an orbit by a pointer drag of dx, dy pixels
func (c *Controls) Rotate(dx, dy float64) {
	c.yaw.velocity -= dx * c.settings.RotateSpeed
	c.pitch.velocity += dy * c.settings.RotateSpeed
}

// Zoom queues a dolly by wheel steps; positive moves closer
func (c *Controls) Zoom(steps float64) {
	c.zoom.velocity -= steps * c.settings.ZoomSpeed
}

// Pan queues a screen-space translation of the target by dx, dy pixels
func (c *Controls) Pan(dx, dy float64) {
	c.panX.velocity -= dx * c.settings.PanSpeed
	c.panY.velocity += dy * c.settings.PanSpeed
}

// Moving reports whether damped motion is still in progress
func (c *Controls) Moving() bool {
	for _, a := range []axis{c.yaw, c.pitch, c.zoom, c.panX, c.panY} {
		if a.velocity != 0 {
			return true
		}
	}
	return false
}

// Update advances the damped state by one frame
func (c *Controls) Update() {
	c.Yaw += c.yaw.step(c.spring)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+c.pitch.step(c.spring)))

	c.Distance *= math.Exp(c.zoom.step(c.spring))
	c.Distance = math.Max(c.settings.MinDistance, math.Min(c.settings.MaxDistance, c.Distance))

	px := c.panX.step(c.spring)
	py := c.panY.step(c.spring)
	if px != 0 || py != 0 {
		_, right, up := c.basis()
		c.Target = c.Target.Add(right.Mul(px * c.Distance)).Add(up.Mul(py * c.Distance))
	}
}

// Position returns the camera position for the current state
func (c *Controls) Position() geometry.Vector3 {
	offset := geometry.NewVector3(
		c.Distance*math.Cos(c.Pitch)*math.Sin(c.Yaw),
		c.Distance*math.Sin(c.Pitch),
		c.Distance*math.Cos(c.Pitch)*math.Cos(c.Yaw),
	)
	return c.Target.Add(offset)
}

// Apply writes position and target into the camera
func (c *Controls) Apply(cam *scene.Camera) {
	cam.Position = c.Position()
	cam.Target = c.Target
	cam.Up = geometry.NewVector3(0, 1, 0)
	cam.ClipAround(c.Distance)
}

func (c *Controls) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(geometry.NewVector3(0, 1, 0)).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}
