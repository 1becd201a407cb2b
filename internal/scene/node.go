package scene

import "github.com/Faultbox/assembly-guide/pkg/math"

// maxDepth bounds parent walks so a malformed hierarchy cannot loop forever.
const maxDepth = 256

// Node is a transform in the scene hierarchy.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3

	parent *Node
}

// NewNode creates a node with the identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Parent returns the owning node, or nil for roots.
func (n *Node) Parent() *Node {
	return n.parent
}

// SetParent attaches n below parent. Attaching a node to one of its own
// descendants (or itself) is refused and reported as false.
func (n *Node) SetParent(parent *Node) bool {
	for p := parent; p != nil; p = p.parent {
		if p == n {
			return false
		}
	}
	n.parent = parent
	return true
}

// LocalMatrix returns Position * Rotation * Scale.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the node's transform in world space.
func (n *Node) WorldMatrix() math.Mat4 {
	return n.ParentWorldMatrix().Mul(n.LocalMatrix())
}

// ParentWorldMatrix returns the world transform of the parent chain, or the
// identity for root nodes.
func (n *Node) ParentWorldMatrix() math.Mat4 {
	var chain []*Node
	for p := n.parent; p != nil && len(chain) < maxDepth; p = p.parent {
		chain = append(chain, p)
	}

	world := math.Identity()
	for i := len(chain) - 1; i >= 0; i-- {
		world = world.Mul(chain[i].LocalMatrix())
	}
	return world
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// WorldToLocal converts a world-space point into the space n.Position is
// expressed in (its parent's space).
func (n *Node) WorldToLocal(p math.Vec3) math.Vec3 {
	if n.parent == nil {
		return p
	}
	return n.ParentWorldMatrix().Inverse().TransformVec3(p)
}
