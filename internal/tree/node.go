// Package tree models the window manager's layout tree as returned by the
// GET_TREE IPC request.
package tree

// Kind is the node type discriminator ("type" in the IPC document).
type Kind string

const (
	KindRoot      Kind = "root"
	KindOutput    Kind = "output"
	KindWorkspace Kind = "workspace"
	KindCon       Kind = "con" // window or split container
)

// Valid reports whether k is one of the kinds the model understands.
func (k Kind) Valid() bool {
	switch k {
	case KindRoot, KindOutput, KindWorkspace, KindCon:
		return true
	default:
		return false
	}
}

// Node is one element of the layout tree.
//
// ID and Focused are only meaningful for KindCon. A tree returned by Decode
// is a snapshot: callers hold read-only pointers into it and must not mutate
// it.
type Node struct {
	Kind    Kind
	ID      int64
	Focused bool
	Nodes   []*Node
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Nodes) == 0
}

// Walk visits n and its descendants depth-first in child order. Returning
// false from fn stops the walk.
func Walk(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, child := range n.Nodes {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// FocusedWindow returns the first focused window (leaf con) in depth-first
// order, or nil. A focused split container is not a window.
func FocusedWindow(root *Node) *Node {
	var focused *Node
	Walk(root, func(n *Node) bool {
		if n.Kind == KindCon && n.IsLeaf() && n.Focused {
			focused = n
			return false
		}
		return true
	})
	return focused
}

// Windows returns the leaf cons under n in depth-first order.
func Windows(n *Node) []*Node {
	var out []*Node
	Walk(n, func(node *Node) bool {
		if node.Kind == KindCon && node.IsLeaf() {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Workspaces returns the workspace nodes under n in depth-first order.
func Workspaces(n *Node) []*Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindWorkspace:
		return []*Node{n}
	case KindRoot, KindOutput:
		var out []*Node
		for _, child := range n.Nodes {
			out = append(out, Workspaces(child)...)
		}
		return out
	default:
		return nil
	}
}
