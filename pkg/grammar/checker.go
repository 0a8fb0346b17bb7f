package grammar

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/checkmark/internal/logging"
	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// Message is the text of every grammar issue.
const Message = "Statement/sentence does not look like standard English"

// Checker submits each prose range of a document to a Client.
type Checker struct {
	client Client
}

// NewChecker creates a checker.
func NewChecker(client Client) *Checker {
	return &Checker{client: client}
}

// Check returns one issue per prose range the client suggests changing.
// Client errors abort the check.
func (c *Checker) Check(ctx context.Context, file *mdast.FileSnapshot) ([]issue.Issue, error) {
	if file == nil || file.Root == nil {
		return nil, nil
	}

	logger := logging.FromContext(ctx)

	var issues []issue.Issue
	for _, span := range mdast.ProseSpans(file.Root) {
		text := string(file.Content[span.Start:span.End])
		if strings.TrimSpace(text) == "" {
			continue
		}

		suggestion, ok, err := c.client.Suggest(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("grammar check %s: %w", file.Path, err)
		}
		if !ok || suggestion == text {
			continue
		}

		logger.Debug("grammar suggestion", logging.FieldPath, file.Path, "offset", span.Start)
		issues = append(issues, issue.New(issue.CategoryGrammar, file.Path).
			Message(Message).
			PushFix("Consider changing to: \n"+suggestion).
			Position(file.PositionAt(span.Start, span.End)).
			Build())
	}

	return issues, nil
}
