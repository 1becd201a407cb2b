// Package scene models the renderable primitives the step engine drives:
// a transform hierarchy of nodes, meshes with local bounds, and materials
// that may be shared by reference between meshes.
//
// The scene is owned by the host application; the engine only mutates
// mesh opacity, transparency, visibility and local position.
package scene

// Scene is a flat registry of nodes and meshes.
type Scene struct {
	Name string

	nodes  map[string]*Node
	meshes []*Mesh
	nextID uint64
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{
		Name:  name,
		nodes: make(map[string]*Node),
	}
}

// AddNode creates a transform node. A later node with the same name
// replaces the earlier one in name lookups.
func (s *Scene) AddNode(name string, parent *Node) *Node {
	n := NewNode(name)
	n.SetParent(parent)
	s.nodes[name] = n
	return n
}

// Node looks up a node by name.
func (s *Scene) Node(name string) *Node {
	return s.nodes[name]
}

// AddMesh creates a visible mesh. A nil material gets a private default.
func (s *Scene) AddMesh(name string, parent *Node, bounds Bounds, mat *Material) *Mesh {
	if mat == nil {
		mat = DefaultMaterial()
	}
	s.nextID++
	m := &Mesh{
		Node:     *NewNode(name),
		Bounds:   bounds,
		Material: mat,
		Visible:  true,
		id:       s.nextID,
	}
	m.SetParent(parent)
	s.meshes = append(s.meshes, m)
	return m
}

// Meshes returns every mesh in insertion order.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Bounds returns the world-space box enclosing all meshes.
func (s *Scene) Bounds() Bounds {
	b := EmptyBounds()
	for _, m := range s.meshes {
		b = b.Union(m.WorldBounds())
	}
	return b
}
