package scene

// Mesh is a renderable primitive: a node with geometry bounds and a material.
// The core holds *Mesh references and compares them by identity.
type Mesh struct {
	Node

	// Bounds is the geometry's box in the mesh's local space.
	Bounds   Bounds
	Material *Material
	Visible  bool

	id uint64
}

// ID returns the stable handle assigned when the mesh joined its scene.
func (m *Mesh) ID() uint64 {
	return m.id
}

// Opacity returns the material opacity, 1 when no material is attached.
func (m *Mesh) Opacity() float32 {
	if m.Material == nil {
		return 1
	}
	return m.Material.Opacity
}

// SetOpacity writes the material opacity.
func (m *Mesh) SetOpacity(v float32) {
	if m.Material == nil {
		m.Material = DefaultMaterial()
	}
	m.Material.Opacity = v
}

// Transparent returns the material transparency flag.
func (m *Mesh) Transparent() bool {
	return m.Material != nil && m.Material.Transparent
}

// SetTransparent writes the material transparency flag.
func (m *Mesh) SetTransparent(v bool) {
	if m.Material == nil {
		m.Material = DefaultMaterial()
	}
	m.Material.Transparent = v
}

// WorldBounds returns the mesh geometry box in world space.
func (m *Mesh) WorldBounds() Bounds {
	if m.Bounds.IsEmpty() {
		p := m.WorldPosition()
		return Bounds{Min: p, Max: p}
	}
	return m.Bounds.Transform(m.WorldMatrix())
}
