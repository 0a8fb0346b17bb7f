package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output encoding.
	Format FileFormat
}

// RuleInfo contains rule metadata for template generation.
type RuleInfo struct {
	Code        string
	Name        string
	Description string
}

// RuleInfoProvider is a function that returns rule information.
// This allows decoupling from the lint package to avoid circular imports.
type RuleInfoProvider func() []RuleInfo

// DefaultRuleInfoProvider is set by the lint rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleInfoProvider RuleInfoProvider

// GenerateTemplate renders the default configuration with a commented header
// listing the available rules.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	format := opts.Format
	if format == "" {
		format = FileFormatTOML
	}

	cfg := NewConfig()
	timeout := DefaultLinkTimeout
	retries := DefaultLinkMaxRetries
	cfg.LinkChecker.Timeout = &timeout
	cfg.LinkChecker.MaxRetries = &retries
	cfg.LinkChecker.IgnoreWildcards = []string{}
	cfg.Lint.AllowedHTMLTags = []string{}
	cfg.Lint.Disabled = []string{}
	cfg.Spelling.Words = []string{}
	cfg.Global.Exclude = []string{}

	body, err := cfg.Encode(format)
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("#\n# Style values:\n")
	buf.WriteString("#   headings:        consistent | atx | setext\n")
	buf.WriteString("#   unordered_lists: consistent | dash | asterisk | plus\n")
	buf.WriteString("#   bold:            consistent | asterisk | underscore\n")

	if DefaultRuleInfoProvider != nil {
		buf.WriteString("#\n# Rules (disable with lint.disabled_rules):\n")
		for _, rule := range DefaultRuleInfoProvider() {
			fmt.Fprintf(&buf, "#   %s %-22s %s\n", rule.Code, rule.Name, rule.Description)
		}
	}
	buf.WriteString("\n")
	buf.Write(body)

	return buf.Bytes(), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return strings.Join([]string{
		"# checkmark configuration",
		"# The grammar pass runs only when SAPLING_API_KEY is set in the environment.",
		"",
	}, "\n")
}
