package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
	"github.com/yaklabco/checkmark/pkg/parser/goldmark"
)

// flatParser yields a document root with no children.
//
//nolint:gochecknoglobals // Shared test parser.
var flatParser = lint.ParserFunc(func(_ context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	snapshot := mdast.NewFileSnapshot(path, content)
	snapshot.Root = mdast.NewDocument()
	snapshot.Root.Span = mdast.Span{Start: 0, End: len(content)}
	mdast.SetFile(snapshot.Root, snapshot)
	return snapshot, nil
})

func flatSnapshot(t *testing.T, content string) *mdast.FileSnapshot {
	t.Helper()
	snapshot, err := flatParser.Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)
	return snapshot
}

func violationWithCode(code string) lint.Violation {
	return lint.NewViolation().Code(code).Message(code).Build()
}

func TestEngine_ConcatenatesInDeclarationOrder(t *testing.T) {
	t.Parallel()

	second := newStubRule("MD002", "second")
	second.violations = []lint.Violation{violationWithCode("MD002"), violationWithCode("MD002")}
	first := newStubRule("MD009", "first")
	first.violations = []lint.Violation{violationWithCode("MD009")}

	registry := lint.NewRegistry()
	registry.Register(first)
	registry.Register(second)

	violations, err := lint.NewEngine(registry).
		LintSnapshot(context.Background(), flatSnapshot(t, "text"), config.NewConfig())
	require.NoError(t, err)

	codes := make([]string, 0, len(violations))
	for _, v := range violations {
		codes = append(codes, v.Code)
	}
	assert.Equal(t, []string{"MD009", "MD002", "MD002"}, codes)
}

func TestEngine_SkipsDisabledRules(t *testing.T) {
	t.Parallel()

	calls := 0
	disabled := newStubRule("MD033", "no-inline-html")
	disabled.calls = &calls

	registry := lint.NewRegistry()
	registry.Register(disabled)

	cfg := config.NewConfig()
	cfg.Lint.Disabled = []string{"no-inline-html"}

	violations, err := lint.NewEngine(registry).LintSnapshot(context.Background(), flatSnapshot(t, "<br>"), cfg)
	require.NoError(t, err)

	assert.Empty(t, violations)
	assert.Zero(t, calls)
}

func TestEngine_RuleErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := newStubRule("MD001", "failing")
	failing.err = boom

	registry := lint.NewRegistry()
	registry.Register(failing)

	violations, err := lint.NewEngine(registry).LintSnapshot(context.Background(), flatSnapshot(t, "# x"), nil)

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "MD001")
	assert.Nil(t, violations)
}

func TestEngine_NilRegistry(t *testing.T) {
	t.Parallel()

	violations, err := lint.NewEngine(nil).LintSnapshot(context.Background(), flatSnapshot(t, "x"), nil)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(newStubRule("MD001", "a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := lint.NewEngine(registry).LintSnapshot(ctx, flatSnapshot(t, "x"), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRuleContext_NodesInDocumentOrder(t *testing.T) {
	t.Parallel()

	snapshot, err := goldmark.New(string(config.FlavorGFM)).Parse(context.Background(), "doc.md",
		[]byte("# One\n\ntext\n\n## Two\n\n- item\n"))
	require.NoError(t, err)

	ctx := lint.NewRuleContext(context.Background(), snapshot, nil)

	headings := ctx.Headings()
	require.Len(t, headings, 2)
	assert.Equal(t, 1, headings[0].HeadingLevel())
	assert.Equal(t, 2, headings[1].HeadingLevel())

	lists := ctx.Lists()
	require.Len(t, lists, 1)
	assert.Equal(t, "-", lists[0].ListAttrs().BulletMarker)
	assert.Len(t, lists[0].Children(), 1)
	assert.NotNil(t, ctx.Config)
}

func TestExtractHTMLTagName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"<br>", "br"},
		{"<DIV class=\"x\">", "div"},
		{"</div>", ""},
		{"<!-- comment -->", ""},
		{"<custom-tag/>", "custom-tag"},
		{"text", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, lint.ExtractHTMLTagName([]byte(tc.input)))
		})
	}
}

func TestLinesCoveredBy(t *testing.T) {
	t.Parallel()

	snapshot, err := goldmark.New(string(config.FlavorGFM)).Parse(context.Background(), "doc.md",
		[]byte("text\n\n```\n#  not a heading\n```\n"))
	require.NoError(t, err)

	covered := lint.LinesCoveredBy(snapshot, lint.NewNodeCache(snapshot.Root).CodeBlocks())
	assert.Equal(t, []bool{false, false, false, true, true, true, false}, covered)
}
