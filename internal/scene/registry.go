package scene

import (
	"strings"

	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/errors"
)

// Registry maps stable names and hierarchical paths to live graph nodes.
//
// The two lookup tiers exist because not every node is registered by name:
// bridge-created objects land in the name index, while pre-existing stage
// nodes are only reachable by walking the graph. Duplicate names are
// tolerated; the index keeps the last registration while path lookup can
// still address shadowed nodes structurally.
type Registry struct {
	root   *Node
	byName map[string]*Node
}

// NewRegistry creates a registry over the graph rooted at root.
func NewRegistry(root *Node) *Registry {
	return &Registry{root: root, byName: make(map[string]*Node)}
}

// Root returns the sentinel graph root.
func (r *Registry) Root() *Node {
	return r.root
}

// Register adds a node to the name index. Last registration wins.
func (r *Registry) Register(name string, n *Node) {
	r.byName[name] = n
}

// Create attaches a new node under parent (the root when nil) and registers
// it by name.
func (r *Registry) Create(name string, n *Node, parent *Node) {
	if parent == nil {
		parent = r.root
	}
	parent.AddChild(n)
	r.Register(name, n)
}

// Get resolves a name or hierarchical path to a node. The name index is
// consulted first; on a miss the reference is walked as a path from the
// graph root, each segment matching a child's name or its kind tag. A
// reference that resolves to the root sentinel is a miss.
func (r *Registry) Get(ref string) (*Node, error) {
	if n, ok := r.byName[ref]; ok {
		return n, nil
	}
	segs := splitPath(ref)
	if len(segs) == 0 {
		return nil, errors.New(errors.CodeObjectNotFound, "object %q not found", ref)
	}
	cur := r.root
	for _, seg := range segs {
		next := childMatching(cur, seg)
		if next == nil {
			return nil, errors.New(errors.CodeObjectNotFound, "object %q not found", ref)
		}
		cur = next
	}
	if cur.IsRoot() {
		return nil, errors.New(errors.CodeObjectNotFound, "object %q not found", ref)
	}
	return cur, nil
}

// Remove detaches the referenced node from its parent and drops its name
// index entry. Subsequent lookups by that name report not-found.
func (r *Registry) Remove(ref string) (*Node, error) {
	n, err := r.Get(ref)
	if err != nil {
		return nil, err
	}
	if n.IsRoot() {
		return nil, errors.New(errors.CodeInvalidArgument, "cannot remove the graph root")
	}
	n.Detach()
	if indexed, ok := r.byName[n.Name]; ok && indexed == n {
		delete(r.byName, n.Name)
	}
	return n, nil
}

// Duplicate deep-clones the subtree at ref, offsets the clone's local
// position by offset (fixed at clone time), re-parents it under the source's
// current parent (the root when the source is top-level), and registers it
// under newName.
func (r *Registry) Duplicate(ref, newName string, offset math32.Vector3) (*Node, error) {
	src, err := r.Get(ref)
	if err != nil {
		return nil, err
	}
	if src.IsRoot() {
		return nil, errors.New(errors.CodeInvalidArgument, "cannot duplicate the graph root")
	}
	if newName == "" {
		return nil, errors.New(errors.CodeInvalidArgument, "duplicate requires a new name")
	}
	clone := src.Clone()
	clone.Name = newName
	clone.Position = src.Position.Add(offset)
	parent := src.Parent
	if parent == nil {
		parent = r.root
	}
	parent.AddChild(clone)
	r.Register(newName, clone)
	return clone, nil
}

// Find returns the registered or structural nodes matching the selector:
// exact name, name substring, or kind tag. Exactly one selector applies;
// name wins over contains over kind.
func (r *Registry) Find(name, contains string, kind Kind) []*Node {
	var out []*Node
	r.root.Walk(func(n *Node) {
		if n.IsRoot() {
			return
		}
		switch {
		case name != "":
			if n.Name == name {
				out = append(out, n)
			}
		case contains != "":
			if strings.Contains(n.Name, contains) {
				out = append(out, n)
			}
		case kind != "":
			if n.Kind == kind {
				out = append(out, n)
			}
		}
	})
	return out
}

func splitPath(ref string) []string {
	trimmed := strings.Trim(ref, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func childMatching(n *Node, seg string) *Node {
	for _, c := range n.Children {
		if c.Name == seg || string(c.Kind) == seg {
			return c
		}
	}
	return nil
}
