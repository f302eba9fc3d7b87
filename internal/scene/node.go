// Package scene holds the live scene graph: a tree of named, typed nodes
// with local transforms, plus the active camera. The graph has exactly one
// mutator at a time (the runtime frame loop), so nodes carry no locks.
package scene

import (
	"strings"

	"cogentcore.org/core/math32"
	"github.com/jinzhu/copier"
)

// Kind is the structural type tag of a node. Path lookup matches segments
// against kinds as well as names.
type Kind string

const (
	KindRoot     Kind = "root"
	KindGroup    Kind = "group"
	KindBox      Kind = "box"
	KindSphere   Kind = "sphere"
	KindPlane    Kind = "plane"
	KindCylinder Kind = "cylinder"
	KindCone     Kind = "cone"
	KindCamera   Kind = "camera"
	KindLight    Kind = "light"
)

// primitiveKinds are the shapes object_spawn accepts.
var primitiveKinds = map[Kind]bool{
	KindGroup:    true,
	KindBox:      true,
	KindSphere:   true,
	KindPlane:    true,
	KindCylinder: true,
	KindCone:     true,
}

// ValidPrimitive reports whether the kind can be spawned as a primitive.
func ValidPrimitive(kind Kind) bool {
	return primitiveKinds[kind]
}

// Material carries the surface properties the bridge can address.
type Material struct {
	Color [4]float32
}

// Node is one element of the scene graph. Position is local to the parent;
// Rotation is Euler angles in degrees; Scale is per-axis.
type Node struct {
	Name     string
	Kind     Kind
	Position math32.Vector3
	Rotation math32.Vector3
	Scale    math32.Vector3
	Visible  bool
	Material Material

	Parent   *Node   `copier:"-"`
	Children []*Node `copier:"-"`
}

// NewNode creates a node with identity transform and full visibility.
func NewNode(name string, kind Kind) *Node {
	return &Node{
		Name:     name,
		Kind:     kind,
		Scale:    math32.Vec3(1, 1, 1),
		Visible:  true,
		Material: Material{Color: [4]float32{1, 1, 1, 1}},
	}
}

// NewRoot creates the sentinel graph root.
func NewRoot() *Node {
	return NewNode("", KindRoot)
}

// AddChild attaches child to n, detaching it from any previous parent.
func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
}

// Detach removes n from its parent. Detaching the root is a no-op.
func (n *Node) Detach() {
	if n.Parent == nil {
		return
	}
	n.Parent.removeChild(n)
	n.Parent = nil
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// IsRoot reports whether n is the sentinel graph root.
func (n *Node) IsRoot() bool {
	return n.Kind == KindRoot
}

// Path returns the slash-separated name path from the root to n, using the
// kind tag for unnamed nodes.
func (n *Node) Path() string {
	if n.IsRoot() {
		return "/"
	}
	var segs []string
	for cur := n; cur != nil && !cur.IsRoot(); cur = cur.Parent {
		seg := cur.Name
		if seg == "" {
			seg = string(cur.Kind)
		}
		segs = append(segs, seg)
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return "/" + strings.Join(segs, "/")
}

// Walk visits n and every descendant in depth-first order.
func (n *Node) Walk(visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Clone deep-copies the subtree rooted at n. The clone is parentless; value
// fields are copied via copier, tree links are rebuilt by recursion.
func (n *Node) Clone() *Node {
	clone := &Node{}
	// Parent and Children are excluded by their copier:"-" tags; a
	// same-type value copy cannot fail.
	_ = copier.Copy(clone, n)
	for _, c := range n.Children {
		clone.AddChild(c.Clone())
	}
	return clone
}
