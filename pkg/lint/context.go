package lint

import (
	"context"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// RuleContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per file, not a long-lived struct.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *mdast.FileSnapshot

	// Root is the AST root node (convenience alias for File.Root).
	Root *mdast.Node

	// Config is the resolved configuration. Rules only read it.
	Config *config.Config

	nodes *NodeCache
}

// NewRuleContext creates a RuleContext for the given file and configuration.
// A nil cfg is replaced with the defaults.
func NewRuleContext(ctx context.Context, file *mdast.FileSnapshot, cfg *config.Config) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	return &RuleContext{
		Ctx:    ctx,
		File:   file,
		Root:   root,
		Config: cfg,
		nodes:  NewNodeCache(root),
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	if rc.Ctx == nil {
		return false
	}
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Err returns the context error, if any.
func (rc *RuleContext) Err() error {
	if rc.Ctx == nil {
		return nil
	}
	return rc.Ctx.Err()
}

// Nodes returns the cached nodes of the given kind.
func (rc *RuleContext) Nodes(kind mdast.NodeKind) []*mdast.Node {
	return rc.nodes.Nodes(kind)
}

// Headings returns all heading nodes.
func (rc *RuleContext) Headings() []*mdast.Node {
	return rc.nodes.Headings()
}

// Lists returns all list nodes.
func (rc *RuleContext) Lists() []*mdast.Node {
	return rc.nodes.Lists()
}

// CodeBlocks returns all code block nodes.
func (rc *RuleContext) CodeBlocks() []*mdast.Node {
	return rc.nodes.CodeBlocks()
}

// HTMLInlines returns all inline HTML nodes.
func (rc *RuleContext) HTMLInlines() []*mdast.Node {
	return rc.nodes.HTMLInlines()
}

// HTMLBlocks returns all HTML block nodes.
func (rc *RuleContext) HTMLBlocks() []*mdast.Node {
	return rc.nodes.HTMLBlocks()
}

// Strong returns all strong emphasis nodes.
func (rc *RuleContext) Strong() []*mdast.Node {
	return rc.nodes.Strong()
}

// PositionAt converts a byte range of the file into a Position.
func (rc *RuleContext) PositionAt(start, end int) mdast.Position {
	if rc.File == nil {
		return mdast.Position{}
	}
	return rc.File.PositionAt(start, end)
}
