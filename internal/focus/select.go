// Package focus picks the window that should receive focus when cycling
// through a workspace.
//
// Windows of a workspace are ordered depth-first by child order. Next moves
// one step forward in that order and Prev one step backward; both wrap at the
// ends. Prev runs the same reduction over children visited back to front.
package focus

import (
	"fmt"

	"github.com/1broseidon/wscycle/internal/tree"
)

// InvariantViolation is the panic value raised when the tree has a shape the
// window manager guarantees cannot occur (an output below a workspace, a
// window directly under an output). It signals a bug in an assumption, not bad
// input, so it is never returned as an error.
type InvariantViolation struct {
	Kind  tree.Kind
	Stage string
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("layout tree invariant violated: %q node reached during %s", v.Kind, v.Stage)
}

// Select returns the window to focus, or nil when the workspace holding the
// focus has no focused window to move away from.
//
// Root and output nodes route to their children in the given order and the
// first workspace that yields a window wins; direction only applies inside a
// workspace.
func Select(n *tree.Node, dir Direction) *tree.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case tree.KindRoot, tree.KindOutput:
		for _, child := range n.Nodes {
			if w := Select(child, dir); w != nil {
				return w
			}
		}
		return nil
	case tree.KindWorkspace:
		r := reduce(n, dir)
		if r.found {
			return r.window
		}
		if r.rightmostFocused {
			// The focused window is last in traversal order: wrap.
			return r.window
		}
		return nil
	default:
		panic(InvariantViolation{Kind: n.Kind, Stage: "output routing"})
	}
}

// result is the accumulator of the reduction. When found is set, window is
// the answer. Otherwise window is the leftmost window seen so far and
// rightmostFocused tells whether the rightmost window seen so far is the
// focused one.
type result struct {
	found            bool
	window           *tree.Node
	rightmostFocused bool
}

func found(w *tree.Node) result {
	return result{found: true, window: w}
}

func searching(leftmost *tree.Node, rightmostFocused bool) result {
	return result{window: leftmost, rightmostFocused: rightmostFocused}
}

// merge folds b, which follows a in traversal order, into a.
func merge(a, b result) result {
	if a.found {
		return a
	}
	if b.found {
		return b
	}
	if a.rightmostFocused {
		return found(b.window)
	}
	return searching(a.window, b.rightmostFocused)
}

func reduce(n *tree.Node, dir Direction) result {
	switch n.Kind {
	case tree.KindWorkspace:
		return reduceChildren(n, false, dir)
	case tree.KindCon:
		return reduceChildren(n, n.Focused, dir)
	default:
		panic(InvariantViolation{Kind: n.Kind, Stage: "workspace reduction"})
	}
}

// reduceChildren folds the children of n. A childless node stands for itself,
// so it is both the leftmost and the rightmost window of its subtree.
func reduceChildren(n *tree.Node, focused bool, dir Direction) result {
	count := len(n.Nodes)
	if count == 0 {
		return searching(n, focused)
	}

	acc := reduce(childAt(n.Nodes, 0, dir), dir)
	// Every child is reduced even after a hit so a malformed subtree anywhere
	// in the workspace still trips the invariant check.
	for i := 1; i < count; i++ {
		acc = merge(acc, reduce(childAt(n.Nodes, i, dir), dir))
	}
	return acc
}

// childAt returns the i-th child in traversal order.
func childAt(nodes []*tree.Node, i int, dir Direction) *tree.Node {
	if dir.Reversed() {
		return nodes[len(nodes)-1-i]
	}
	return nodes[i]
}
