// Package analysis computes statistics of triangle meshes.
package analysis

import (
	"math"
	"sort"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Edge is one triangle edge
type Edge struct {
	Start    geometry.Vector3
	End      geometry.Vector3
	Length   float64
	Triangle int
}

// Summary describes a mesh
type Summary struct {
	TriangleCount int
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	// Volume is the enclosed volume; only meaningful for closed, consistently wound meshes
	Volume        float64
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	Degenerate    int // triangles with zero area
}

// Analyze summarizes triangles
func Analyze(triangles []geometry.Triangle) Summary {
	s := Summary{
		TriangleCount: len(triangles),
		BoundingBox:   geometry.NewBoundingBox(),
	}

	minLength := math.MaxFloat64
	total := 0.0
	signed := 0.0

	for _, t := range triangles {
		s.BoundingBox.Extend(t.V1)
		s.BoundingBox.Extend(t.V2)
		s.BoundingBox.Extend(t.V3)

		area := t.Area()
		if area == 0 {
			s.Degenerate++
		}
		s.SurfaceArea += area

		// signed tetrahedron volume against the origin
		signed += t.V1.Dot(t.V2.Cross(t.V3)) / 6

		for _, l := range t.EdgeLengths() {
			total += l
			minLength = math.Min(minLength, l)
			s.MaxEdgeLength = math.Max(s.MaxEdgeLength, l)
		}
	}

	s.Dimensions = s.BoundingBox.Size()
	s.Volume = math.Abs(signed)
	s.EdgeCount = 3 * len(triangles)
	if s.EdgeCount > 0 {
		s.MinEdgeLength = minLength
		s.AvgEdgeLength = total / float64(s.EdgeCount)
	}
	return s
}

// LongestEdges returns the count longest edges, longest first
func LongestEdges(triangles []geometry.Triangle, count int) []Edge {
	edges := make([]Edge, 0, 3*len(triangles))
	for i, t := range triangles {
		for _, e := range [][2]geometry.Vector3{{t.V1, t.V2}, {t.V2, t.V3}, {t.V3, t.V1}} {
			edges = append(edges, Edge{Start: e[0], End: e[1], Length: e[0].Distance(e[1]), Triangle: i})
		}
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Length > edges[j].Length
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}
