// Package debug builds the line geometry the viewer draws for each mesh and
// captures screenshots of the result.
package debug

import (
	"github.com/Faultbox/assembly-guide/internal/scene"
	"github.com/Faultbox/assembly-guide/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a box wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the padding, relative to the box diagonal, of the
// highlight box drawn around selected meshes.
const DefaultBBoxPadding = 0.04

// boxEdges indexes scene.Bounds.Corners: bit 0 selects max X, bit 1 max Y,
// bit 2 max Z.
var boxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// WireframeVertices returns line vertices, [x, y, z] per vertex, for the
// edges of local bounds b placed by world. Rotated meshes get an oriented
// box rather than their world-space AABB.
func WireframeVertices(b scene.Bounds, world math.Mat4, padding float32) []float32 {
	if padding != 0 {
		pad := math.Vec3{X: padding, Y: padding, Z: padding}
		b = scene.Bounds{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
	}

	corners := b.Corners()
	for i := range corners {
		corners[i] = world.TransformVec3(corners[i])
	}

	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	for _, e := range boxEdges {
		a, c := corners[e[0]], corners[e[1]]
		out = append(out, a.X, a.Y, a.Z, c.X, c.Y, c.Z)
	}
	return out
}
