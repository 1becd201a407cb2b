package debug

import (
	"github.com/Faultbox/assembly-guide/internal/outline"
	"github.com/Faultbox/assembly-guide/internal/scene"
)

// Highlight is the per-frame outline state the renderer consumes.
type Highlight interface {
	IsSelected(m *scene.Mesh) bool
	On() bool
	Color() outline.Color
}

// Batch is one mesh's worth of line geometry in a single colour.
type Batch struct {
	Mesh        *scene.Mesh
	Vertices    []float32
	Color       [4]float32
	Transparent bool
}

// BuildDrawList returns the batches for one frame: opaque meshes first,
// then transparent meshes, then the highlight boxes when the outline is in
// its on phase. Invisible and fully faded meshes are skipped.
func BuildDrawList(meshes []*scene.Mesh, hl Highlight) []Batch {
	var opaque, transparent, highlight []Batch
	for _, m := range meshes {
		if !m.Visible || m.Opacity() <= 0 {
			continue
		}
		world := m.WorldMatrix()
		c := [3]float32{1, 1, 1}
		if m.Material != nil {
			c = m.Material.Color
		}
		b := Batch{
			Mesh:        m,
			Vertices:    WireframeVertices(m.Bounds, world, 0),
			Color:       [4]float32{c[0], c[1], c[2], m.Opacity()},
			Transparent: m.Transparent() || m.Opacity() < 1,
		}
		if b.Transparent {
			transparent = append(transparent, b)
		} else {
			opaque = append(opaque, b)
		}

		if hl != nil && hl.On() && hl.IsSelected(m) {
			col := hl.Color()
			pad := m.Bounds.Size().Length() * DefaultBBoxPadding
			highlight = append(highlight, Batch{
				Mesh:        m,
				Vertices:    WireframeVertices(m.Bounds, world, pad),
				Color:       [4]float32{col.R, col.G, col.B, col.A},
				Transparent: col.A < 1,
			})
		}
	}

	out := make([]Batch, 0, len(opaque)+len(transparent)+len(highlight))
	out = append(out, opaque...)
	out = append(out, transparent...)
	return append(out, highlight...)
}
