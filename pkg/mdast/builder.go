package mdast

import (
	"errors"
	"fmt"
)

// ErrInvalidSpan is returned by Validate when a node's span is malformed.
var ErrInvalidSpan = errors.New("invalid node span")

// NewNode creates a new node of the specified kind.
// The node has no parent, children, or span.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild appends a child node to a parent.
// It maintains the parent/child/sibling relationships correctly.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// RemoveChild removes a child from its parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *FileSnapshot) {
	if node == nil {
		return
	}

	for child := range All(node) {
		child.File = file
	}
}

// Validate checks the span invariants of the tree rooted at root: every span
// is ordered and lies within the content, and every child's span lies within
// its parent's.
func Validate(root *Node, contentLen int) error {
	return Walk(root, func(n *Node) error {
		if n.Span.Start < 0 || n.Span.End < n.Span.Start || n.Span.End > contentLen {
			return fmt.Errorf("%w: %s [%d,%d)", ErrInvalidSpan, n.Kind, n.Span.Start, n.Span.End)
		}
		if n.Parent != nil && !n.Parent.Span.Contains(n.Span) {
			return fmt.Errorf("%w: %s [%d,%d) outside parent %s [%d,%d)", ErrInvalidSpan,
				n.Kind, n.Span.Start, n.Span.End, n.Parent.Kind, n.Parent.Span.Start, n.Parent.Span.End)
		}
		return nil
	})
}
