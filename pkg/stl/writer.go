package stl

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteBinary encodes the model in binary STL form
func WriteBinary(w io.Writer, m *Model) error {
	header := make([]byte, binaryHeaderSize)
	copy(header, m.Name)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}
	for i, t := range m.Triangles {
		facet := binaryFacet{
			Normal: [3]float32{float32(t.Normal.X), float32(t.Normal.Y), float32(t.Normal.Z)},
			V1:     [3]float32{float32(t.V1.X), float32(t.V1.Y), float32(t.V1.Z)},
			V2:     [3]float32{float32(t.V2.X), float32(t.V2.Y), float32(t.V2.Z)},
			V3:     [3]float32{float32(t.V3.X), float32(t.V3.Y), float32(t.V3.Z)},
		}
		if err := binary.Write(w, binary.LittleEndian, facet); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
	}
	return nil
}
