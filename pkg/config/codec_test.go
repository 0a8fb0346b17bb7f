package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/config"
)

func TestFileFormatFromPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.FileFormatTOML, config.FileFormatFromPath("checkmark.toml"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFromPath(".checkmark.yml"))
	assert.Equal(t, config.FileFormatYAML, config.FileFormatFromPath("conf/.checkmark.YAML"))
	assert.Equal(t, config.FileFormatTOML, config.FileFormatFromPath("config"))
}

func TestDecode_TOML(t *testing.T) {
	t.Parallel()

	data := []byte(`
[style]
headings = "setext"
bold = "wavy"

[link_checker]
ignore_wildcards = ["https://localhost*"]
timeout = 5

[spelling]
words = ["goldmark"]

[global]
exclude = ["vendor/**"]
mystery = true
`)

	cfg, notes, err := config.Decode(data, config.FileFormatTOML, config.NewConfig())
	require.NoError(t, err)

	assert.Equal(t, config.HeadingSetext, cfg.Style.Headings)
	assert.Equal(t, config.BoldConsistent, cfg.Style.Bold)
	assert.Equal(t, config.UnorderedListConsistent, cfg.Style.UnorderedLists)
	assert.Equal(t, []string{"https://localhost*"}, cfg.LinkChecker.IgnoreWildcards)
	assert.Equal(t, 5, cfg.LinkChecker.TimeoutSeconds())
	assert.Equal(t, config.DefaultLinkMaxRetries, cfg.LinkChecker.Retries())
	assert.Equal(t, config.DefaultLinkConcurrency, cfg.LinkChecker.Concurrency)
	assert.Equal(t, []string{"goldmark"}, cfg.Spelling.Words)
	assert.Equal(t, []string{"vendor/**"}, cfg.Global.Exclude)
	assert.Equal(t, config.FlavorGFM, cfg.Lint.Flavor)

	require.Len(t, notes, 2)
	assert.Contains(t, notes[0], "global.mystery")
	assert.Contains(t, notes[1], `"wavy"`)
}

func TestDecode_YAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
style:
  unordered_lists: dash
lint:
  allowed_html_tags: [br, kbd]
link_checker:
  max_retries: 0
fmt:
  show_diff: true
`)

	cfg, notes, err := config.Decode(data, config.FileFormatYAML, config.NewConfig())
	require.NoError(t, err)
	assert.Empty(t, notes)

	assert.Equal(t, config.UnorderedListDash, cfg.Style.UnorderedLists)
	assert.Equal(t, []string{"br", "kbd"}, cfg.Lint.AllowedHTMLTags)
	assert.Equal(t, 0, cfg.LinkChecker.Retries())
	assert.True(t, cfg.Fmt.ShowDiff)
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	_, _, err := config.Decode([]byte("[style\nheadings ="), config.FileFormatTOML, nil)
	require.Error(t, err)

	_, _, err = config.Decode([]byte("style: [unterminated"), config.FileFormatYAML, nil)
	require.Error(t, err)
}

func TestDecode_DoesNotMutateBase(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Global.Exclude = []string{"a"}

	cfg, _, err := config.Decode([]byte("[global]\nexclude = [\"b\"]\n"), config.FileFormatTOML, base)
	require.NoError(t, err)

	assert.Equal(t, []string{"b"}, cfg.Global.Exclude)
	assert.Equal(t, []string{"a"}, base.Global.Exclude)
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, format := range []config.FileFormat{config.FileFormatTOML, config.FileFormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			original := config.NewConfig()
			original.Style.Headings = config.HeadingATX
			original.LinkChecker.IgnoreWildcards = []string{"*.local"}

			data, err := original.Encode(format)
			require.NoError(t, err)

			decoded, notes, err := config.Decode(data, format, config.NewConfig())
			require.NoError(t, err)
			assert.Empty(t, notes)
			assert.Equal(t, original.Style, decoded.Style)
			assert.Equal(t, original.LinkChecker.IgnoreWildcards, decoded.LinkChecker.IgnoreWildcards)
		})
	}
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	for _, format := range []config.FileFormat{config.FileFormatTOML, config.FileFormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(config.TemplateOptions{Format: format})
			require.NoError(t, err)
			assert.Contains(t, string(data), "# checkmark configuration")

			cfg, notes, err := config.Decode(data, format, config.NewConfig())
			require.NoError(t, err)
			assert.Empty(t, notes)
			assert.Equal(t, config.DefaultLinkTimeout, cfg.LinkChecker.TimeoutSeconds())
		})
	}
}

func TestConfig_IsRuleDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Lint.Disabled = []string{"MD033", "heading-style"}

	assert.True(t, cfg.IsRuleDisabled("MD033", "no-inline-html"))
	assert.True(t, cfg.IsRuleDisabled("MD003", "heading-style"))
	assert.False(t, cfg.IsRuleDisabled("MD019", "no-multiple-space-atx"))
}
