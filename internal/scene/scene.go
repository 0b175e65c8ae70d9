package scene

import (
	"errors"
	"image/color"
)

// ErrOccupied is returned by Attach while another node is attached
var ErrOccupied = errors.New("scene already holds a model")

// Scene holds at most one loaded node plus what it is viewed with
type Scene struct {
	Background color.NRGBA
	Camera     Camera
	Lighting   Lighting

	current *Node
}

// New returns an empty scene with default camera and lights
func New(width, height int, background color.NRGBA) *Scene {
	return &Scene{
		Background: background,
		Camera:     NewCamera(width, height),
		Lighting:   DefaultLighting(),
	}
}

// Attach makes n the displayed node
func (s *Scene) Attach(n *Node) error {
	if s.current != nil {
		return ErrOccupied
	}
	s.current = n
	return nil
}

// Detach removes and returns the displayed node, or nil
func (s *Scene) Detach() *Node {
	n := s.current
	s.current = nil
	return n
}

// Current returns the displayed node, or nil
func (s *Scene) Current() *Node {
	return s.current
}
