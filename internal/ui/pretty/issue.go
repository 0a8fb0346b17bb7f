package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/checkmark/pkg/issue"
)

const (
	issueIndent = "    "
	minFixWidth = 20
)

// FormatIssue formats one issue for terminal output. Fix suggestions are
// wrapped to width columns.
func (s *Styles) FormatIssue(iss issue.Issue, sourceLine string, width int) string {
	var builder strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(iss.FilePath), iss.RowStart, iss.ColStart)

	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(iss.Severity),
		s.Category.Render("["+string(iss.Category)+"]"),
		s.Message.Render(iss.Message),
	)

	if sourceLine != "" {
		builder.WriteString(s.FormatSourceContext(sourceLine, iss.ColStart))
	}

	fixWidth := max(width-len(issueIndent)-2, minFixWidth)
	wrap := lipgloss.NewStyle().Width(fixWidth)
	for _, fix := range iss.Fixes {
		lines := strings.Split(wrap.Render(fix), "\n")
		for i, line := range lines {
			prefix := issueIndent + "  "
			if i == 0 {
				prefix = issueIndent + s.Dim.Render("-") + " "
			}
			builder.WriteString(prefix + s.Fix.Render(strings.TrimRight(line, " ")) + "\n")
		}
	}

	return builder.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev issue.Severity) string {
	switch sev {
	case issue.SeverityError:
		return s.Error.Render("error")
	case issue.SeverityWarning:
		return s.Warning.Render("warning")
	case issue.SeverityHelp:
		return s.Help.Render("help")
	case issue.SeverityNote:
		return s.Note.Render("note")
	default:
		return strings.ToLower(string(sev))
	}
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	builder.WriteString(issueIndent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := issueIndent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	switch {
	case issueCount == 1:
		header += s.Dim.Render(" (1 issue)")
	case issueCount > 1:
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatDiff colors a unified diff line by line.
func (s *Styles) FormatDiff(diff string) string {
	if diff == "" {
		return ""
	}

	var builder strings.Builder
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		body := strings.TrimSuffix(line, "\n")
		var styled string
		switch {
		case strings.HasPrefix(body, "+++"), strings.HasPrefix(body, "---"):
			styled = s.DiffHeader.Render(body)
		case strings.HasPrefix(body, "@@"):
			styled = s.DiffHunk.Render(body)
		case strings.HasPrefix(body, "+"):
			styled = s.DiffAdd.Render(body)
		case strings.HasPrefix(body, "-"):
			styled = s.DiffRemove.Render(body)
		default:
			styled = s.DiffContext.Render(body)
		}
		builder.WriteString(styled + "\n")
	}
	return builder.String()
}
