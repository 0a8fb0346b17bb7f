package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
	"github.com/yaklabco/checkmark/pkg/parser/goldmark"
)

func parse(t *testing.T, input string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := goldmark.New(string(config.FlavorGFM)).Parse(context.Background(), "test.md", []byte(input))
	require.NoError(t, err)
	return snapshot
}

func applyRule(t *testing.T, rule lint.Rule, input string, cfg *config.Config) []lint.Violation {
	t.Helper()

	snapshot := parse(t, input)
	violations, err := rule.Apply(lint.NewRuleContext(context.Background(), snapshot, cfg))
	require.NoError(t, err)
	return violations
}

func pos(startLine, startCol, endLine, endCol, startOffset, endOffset int) mdast.Position {
	return mdast.Position{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
		StartOffset: startOffset,
		EndOffset:   endOffset,
	}
}

func messages(violations []lint.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, v.Message)
	}
	return out
}
