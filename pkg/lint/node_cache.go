package lint

import "github.com/yaklabco/checkmark/pkg/mdast"

// NodeCache indexes the nodes of one document by kind, in document order.
//
// The AST is walked once, on first access, and every rule run against the
// same file shares the result. Returned slices are shared: callers must copy
// before sorting or filtering in place.
//
// NodeCache is not safe for concurrent use. Each file gets its own cache.
type NodeCache struct {
	root   *mdast.Node
	byKind map[mdast.NodeKind][]*mdast.Node
}

// NewNodeCache creates a cache for the tree rooted at root.
func NewNodeCache(root *mdast.Node) *NodeCache {
	return &NodeCache{root: root}
}

func (nc *NodeCache) build() {
	if nc.byKind != nil {
		return
	}

	nc.byKind = make(map[mdast.NodeKind][]*mdast.Node)
	if nc.root == nil {
		return
	}

	for node := range mdast.All(nc.root) {
		nc.byKind[node.Kind] = append(nc.byKind[node.Kind], node)
	}
}

// Nodes returns every node of the given kind in document order.
func (nc *NodeCache) Nodes(kind mdast.NodeKind) []*mdast.Node {
	if nc == nil {
		return nil
	}
	nc.build()
	return nc.byKind[kind]
}

// Headings returns all heading nodes.
func (nc *NodeCache) Headings() []*mdast.Node { return nc.Nodes(mdast.NodeHeading) }

// Lists returns all list nodes.
func (nc *NodeCache) Lists() []*mdast.Node { return nc.Nodes(mdast.NodeList) }

// CodeBlocks returns all code block nodes.
func (nc *NodeCache) CodeBlocks() []*mdast.Node { return nc.Nodes(mdast.NodeCodeBlock) }

// HTMLInlines returns all inline HTML nodes.
func (nc *NodeCache) HTMLInlines() []*mdast.Node { return nc.Nodes(mdast.NodeHTMLInline) }

// HTMLBlocks returns all HTML block nodes.
func (nc *NodeCache) HTMLBlocks() []*mdast.Node { return nc.Nodes(mdast.NodeHTMLBlock) }

// Strong returns all strong emphasis nodes.
func (nc *NodeCache) Strong() []*mdast.Node { return nc.Nodes(mdast.NodeStrong) }
