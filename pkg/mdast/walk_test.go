package mdast_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// buildTestTree builds a tree over the content "# Hi\n\nsome *em*":
//
//	Document
//	  Heading
//	    Text
//	  Paragraph
//	    Text
//	    Emphasis
//	      Text
func buildTestTree() *mdast.Node {
	file := mdast.NewFileSnapshot("test.md", []byte("# Hi\n\nsome *em*"))

	doc := mdast.NewDocument()
	doc.Span = mdast.Span{Start: 0, End: 15}

	heading := mdast.NewNode(mdast.NodeHeading)
	heading.Span = mdast.Span{Start: 0, End: 4}
	headingText := mdast.NewNode(mdast.NodeText)
	headingText.Span = mdast.Span{Start: 2, End: 4}
	mdast.AppendChild(heading, headingText)
	mdast.AppendChild(doc, heading)

	para := mdast.NewNode(mdast.NodeParagraph)
	para.Span = mdast.Span{Start: 6, End: 15}
	paraText := mdast.NewNode(mdast.NodeText)
	paraText.Span = mdast.Span{Start: 6, End: 11}
	mdast.AppendChild(para, paraText)

	emphasis := mdast.NewNode(mdast.NodeEmphasis)
	emphasis.Span = mdast.Span{Start: 11, End: 15}
	emphText := mdast.NewNode(mdast.NodeText)
	emphText.Span = mdast.Span{Start: 12, End: 14}
	mdast.AppendChild(emphasis, emphText)
	mdast.AppendChild(para, emphasis)

	mdast.AppendChild(doc, para)

	file.Root = doc
	mdast.SetFile(doc, file)

	return doc
}

func kinds(nodes []*mdast.Node) []mdast.NodeKind {
	out := make([]mdast.NodeKind, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Kind)
	}
	return out
}

func TestWalk_PreOrderExactlyOnce(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	var visited []*mdast.Node
	err := mdast.Walk(doc, func(n *mdast.Node) error {
		visited = append(visited, n)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeParagraph,
		mdast.NodeText,
		mdast.NodeEmphasis,
		mdast.NodeText,
	}, kinds(visited))

	seen := make(map[*mdast.Node]bool)
	for _, n := range visited {
		assert.False(t, seen[n], "node visited twice")
		seen[n] = true
		if n.Parent != nil {
			assert.True(t, seen[n.Parent], "child visited before parent")
		}
	}
}

func TestWalk_NilRoot(t *testing.T) {
	t.Parallel()

	called := false
	err := mdast.Walk(nil, func(_ *mdast.Node) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.False(t, called)
}

func TestWalk_EarlyTermination(t *testing.T) {
	t.Parallel()

	stop := errors.New("stop")
	count := 0
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		count++
		if n.Kind == mdast.NodeParagraph {
			return stop
		}
		return nil
	})

	require.ErrorIs(t, err, stop)
	assert.Equal(t, 4, count)
}

func TestWalk_SkipChildren(t *testing.T) {
	t.Parallel()

	var visited []mdast.NodeKind
	err := mdast.Walk(buildTestTree(), func(n *mdast.Node) error {
		visited = append(visited, n.Kind)
		if n.Kind == mdast.NodeHeading || n.Kind == mdast.NodeEmphasis {
			return mdast.SkipChildren
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeParagraph,
		mdast.NodeText,
		mdast.NodeEmphasis,
	}, visited)
}

func TestAll(t *testing.T) {
	t.Parallel()

	var all []*mdast.Node
	for n := range mdast.All(buildTestTree()) {
		all = append(all, n)
	}
	assert.Len(t, all, 7)
	assert.Equal(t, mdast.NodeDocument, all[0].Kind)

	var firstTwo []mdast.NodeKind
	for n := range mdast.All(buildTestTree()) {
		firstTwo = append(firstTwo, n.Kind)
		if len(firstTwo) == 2 {
			break
		}
	}
	assert.Equal(t, []mdast.NodeKind{mdast.NodeDocument, mdast.NodeHeading}, firstTwo)

	for range mdast.All(nil) {
		t.Fatal("nil root yields nothing")
	}
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()

	texts := mdast.FindByKind(doc, mdast.NodeText)
	assert.Len(t, texts, 3)

	first := mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeText })
	require.NotNil(t, first)
	assert.Equal(t, "Hi", string(first.Text()))

	assert.Nil(t, mdast.FindFirst(doc, func(n *mdast.Node) bool { return n.Kind == mdast.NodeLink }))

	blocks := mdast.FindAll(doc, func(n *mdast.Node) bool { return n.IsBlock() })
	assert.Equal(t, []mdast.NodeKind{mdast.NodeDocument, mdast.NodeHeading, mdast.NodeParagraph}, kinds(blocks))
}

func TestNode_PositionAndText(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	emphasis := mdast.FindByKind(doc, mdast.NodeEmphasis)[0]

	assert.Equal(t, "*em*", string(emphasis.Text()))
	assert.Equal(t, mdast.Position{
		StartLine: 3, StartColumn: 6, EndLine: 3, EndColumn: 10, StartOffset: 11, EndOffset: 15,
	}, emphasis.Position())

	detached := mdast.NewNode(mdast.NodeText)
	assert.Nil(t, detached.Text())
	assert.Equal(t, mdast.Position{}, detached.Position())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	doc := buildTestTree()
	require.NoError(t, mdast.Validate(doc, 15))

	emphText := mdast.FindByKind(doc, mdast.NodeText)[2]
	emphText.Span = mdast.Span{Start: 10, End: 14}
	require.ErrorIs(t, mdast.Validate(doc, 15), mdast.ErrInvalidSpan)

	emphText.Span = mdast.Span{Start: 13, End: 12}
	require.ErrorIs(t, mdast.Validate(doc, 15), mdast.ErrInvalidSpan)
}

func TestNodeKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Heading", mdast.NodeHeading.String())
	assert.Equal(t, "AutoLink", mdast.NodeAutoLink.String())
	assert.Equal(t, "Unknown", mdast.NodeKind(999).String())
}
