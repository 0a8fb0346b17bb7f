package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

func TestNodeAttrAccessors(t *testing.T) {
	t.Parallel()

	heading := mdast.NewNode(mdast.NodeHeading)
	heading.Block = &mdast.BlockAttrs{HeadingLevel: 2}

	list := mdast.NewNode(mdast.NodeList)
	list.Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{BulletMarker: "*"}}

	code := mdast.NewNode(mdast.NodeCodeBlock)
	code.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Info: "go"}}

	strong := mdast.NewNode(mdast.NodeStrong)
	strong.Inline = &mdast.InlineAttrs{EmphasisLevel: 2, Delimiter: '_'}

	var nilNode *mdast.Node
	para := mdast.NewNode(mdast.NodeParagraph)

	assert.Equal(t, 2, heading.HeadingLevel())
	assert.Equal(t, "*", list.ListAttrs().BulletMarker)
	assert.Equal(t, "go", code.CodeBlockAttrs().Info)
	assert.Equal(t, byte('_'), strong.Delimiter())

	for _, n := range []*mdast.Node{nilNode, para} {
		assert.Zero(t, n.HeadingLevel())
		assert.Nil(t, n.ListAttrs())
		assert.Nil(t, n.CodeBlockAttrs())
		assert.Zero(t, n.Delimiter())
	}
	assert.Nil(t, heading.ListAttrs(), "kind mismatch")
}
