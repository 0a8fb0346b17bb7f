// Package format detects and fixes Markdown formatting drift.
package format

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
)

// Formatter rewrites Markdown into its canonical form.
type Formatter interface {
	Format(ctx context.Context, content []byte) ([]byte, error)
}

// RoundTrip formats by rendering Markdown to HTML and converting the HTML
// back to Markdown.
type RoundTrip struct {
	md   goldmark.Markdown
	conv *converter.Converter
}

// NewRoundTrip creates a round-trip formatter for GitHub Flavored Markdown.
func NewRoundTrip() *RoundTrip {
	return &RoundTrip{
		md: newRenderer(),
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
				strikethrough.NewStrikethroughPlugin(),
				taskListPlugin{},
			),
		),
	}
}

func newRenderer() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
}

// Format implements Formatter. The output ends with exactly one newline;
// empty input stays empty.
func (f *RoundTrip) Format(ctx context.Context, content []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("format cancelled: %w", err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return []byte{}, nil
	}

	var rendered bytes.Buffer
	if err := f.md.Convert(content, &rendered); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	markdown, err := f.conv.ConvertString(rendered.String(), converter.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("convert html: %w", err)
	}

	return []byte(strings.TrimRight(markdown, "\n") + "\n"), nil
}

// taskListPlugin keeps GFM task list checkboxes, which the base plugin
// drops together with every other <input>.
type taskListPlugin struct{}

func (taskListPlugin) Name() string { return "tasklist" }

func (p taskListPlugin) Init(conv *converter.Converter) error {
	conv.Register.RendererFor("input", converter.TagTypeInline, p.render, converter.PriorityEarly)
	return nil
}

func (taskListPlugin) render(_ converter.Context, w converter.Writer, n *xhtml.Node) converter.RenderStatus {
	if dom.GetAttributeOr(n, "type", "") != "checkbox" {
		return converter.RenderSuccess
	}
	if _, checked := dom.GetAttribute(n, "checked"); checked {
		_, _ = w.WriteString("[x]")
	} else {
		_, _ = w.WriteString("[ ]")
	}
	return converter.RenderSuccess
}
