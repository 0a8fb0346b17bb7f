package mdast

import (
	"errors"
	"iter"
)

// WalkFunc is called by Walk for each node. Returning SkipChildren skips the
// node's subtree; any other non-nil error stops the walk.
type WalkFunc func(n *Node) error

// SkipChildren may be returned by a WalkFunc to skip the current node's children.
var SkipChildren = errors.New("skip children")

// Walk visits root and its descendants in document order.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// All yields root and every descendant in document order.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		descend(root, yield)
	}
}

func descend(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !descend(child, yield) {
			return false
		}
	}
	return true
}

// FindAll returns all nodes matching the predicate.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node
	for n := range All(root) {
		if predicate(n) {
			result = append(result, n)
		}
	}
	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	for n := range All(root) {
		if predicate(n) {
			return n
		}
	}
	return nil
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool { return n.Kind == kind })
}
