package scene

import "github.com/philipparndt/meshview/pkg/geometry"

// degenerateDistance frames models whose bounding box has no extent
const degenerateDistance = 1.0

// Fit is the centering translation and camera distance for a model
type Fit struct {
	Translation geometry.Vector3
	Distance    float64
}

// ComputeFit centers the box on the origin and backs the camera off to twice its largest edge
func ComputeFit(bbox geometry.BoundingBox) Fit {
	distance := 2 * bbox.MaxDimension()
	if distance <= 0 {
		distance = degenerateDistance
	}
	return Fit{
		Translation: bbox.Center().Neg(),
		Distance:    distance,
	}
}

// CameraPosition places the camera on the +Z axis looking at the origin
func (f Fit) CameraPosition() geometry.Vector3 {
	return geometry.NewVector3(0, 0, f.Distance)
}
