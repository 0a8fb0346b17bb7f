package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/grammar"
	_ "github.com/yaklabco/checkmark/pkg/lint/rules" // Register rules
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func ptr[T any](v T) *T { return &v }

func TestLoad_Defaults(t *testing.T) {
	result, err := Load(context.Background(), LoadOptions{WorkingDir: t.TempDir(), IgnoreEnv: true})
	require.NoError(t, err)

	assert.Empty(t, result.Path)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, config.NewConfig(), result.Config)
}

func TestDefaultLocations(t *testing.T) {
	assert.Equal(t, []string{
		"checkmark.toml",
		".checkmark.toml",
		filepath.Join("config", "checkmark.toml"),
		filepath.Join("config", ".checkmark.toml"),
		filepath.Join("conf", "checkmark.toml"),
		filepath.Join("conf", ".checkmark.toml"),
		filepath.Join("cfg", "checkmark.toml"),
		filepath.Join("cfg", ".checkmark.toml"),
		filepath.Join(".github", "checkmark.toml"),
		filepath.Join(".github", ".checkmark.toml"),
		".checkmark.yml",
		".checkmark.yaml",
	}, DefaultLocations())
}

func TestFindConfig_Order(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  string
	}{
		{name: "none", files: nil, want: ""},
		{name: "root wins over subdirectories", files: []string{".github/checkmark.toml", "checkmark.toml"}, want: "checkmark.toml"},
		{name: "config dir before github", files: []string{".github/checkmark.toml", "config/.checkmark.toml"}, want: "config/.checkmark.toml"},
		{name: "toml before yaml", files: []string{".checkmark.yml", "cfg/checkmark.toml"}, want: "cfg/checkmark.toml"},
		{name: "yaml at root", files: []string{".checkmark.yaml"}, want: ".checkmark.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(dir, f), "")
			}

			got, err := FindConfig(context.Background(), dir)
			require.NoError(t, err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, filepath.Join(dir, filepath.FromSlash(tt.want)), got)
		})
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".github", "checkmark.toml"), `
[style]
headings = "setext"
bold = "fancy"

[link_checker]
ignore_wildcards = ["https://example.com/**"]
timeout = 5

[lint]
disabled_rules = ["MD033", "MD999"]
`)

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, filepath.Join(dir, ".github", "checkmark.toml"), result.Path)
	assert.Equal(t, config.HeadingSetext, cfg.Style.Headings)
	assert.Equal(t, config.BoldConsistent, cfg.Style.Bold, "unknown value keeps the default")
	assert.Equal(t, []string{"https://example.com/**"}, cfg.LinkChecker.IgnoreWildcards)
	assert.Equal(t, 5, cfg.LinkChecker.TimeoutSeconds())
	assert.Equal(t, config.DefaultLinkMaxRetries, cfg.LinkChecker.Retries())

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `"fancy"`)
	assert.Contains(t, result.Warnings[1], `unknown rule "MD999"`)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".checkmark.yml"), `
style:
  unordered_lists: plus
spelling:
  words: [checkmark, goldmark]
`)

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, config.UnorderedListPlus, result.Config.Style.UnorderedLists)
	assert.Equal(t, []string{"checkmark", "goldmark"}, result.Config.Spelling.Words)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkmark.toml"), "[style]\nheadings = \"atx\"\n")
	explicit := filepath.Join(dir, "custom.toml")
	writeFile(t, explicit, "[style]\nheadings = \"setext\"\n")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: dir, ExplicitPath: explicit, IgnoreEnv: true})
	require.NoError(t, err)

	assert.Equal(t, explicit, result.Path)
	assert.Equal(t, config.HeadingSetext, result.Config.Style.Headings)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	dir := t.TempDir()

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir:   dir,
		ExplicitPath: filepath.Join(dir, "absent.toml"),
		IgnoreEnv:    true,
	})
	require.NoError(t, err)

	assert.Empty(t, result.Path)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "config file not found")
	assert.Equal(t, config.NewConfig(), result.Config)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkmark.toml"), "[style\n")

	_, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse toml")
}

func TestLoad_ValidationError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkmark.toml"), "[global]\nexclude = [\"[\"]\n")

	_, err := Load(context.Background(), LoadOptions{WorkingDir: dir, IgnoreEnv: true})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "global.exclude[0]", verr.Field)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "checkmark.toml"), `
[style]
headings = "atx"
bold = "asterisk"

[link_checker]
max_retries = 4
`)
	t.Setenv("CHECKMARK_STYLE_HEADINGS", "setext")
	t.Setenv("CHECKMARK_STYLE_BOLD", "underscore")
	t.Setenv("CHECKMARK_LINK_MAX_RETRIES", "2")

	result, err := Load(context.Background(), LoadOptions{
		WorkingDir: dir,
		Overrides: &Overrides{
			StyleBold:   ptr("asterisk"),
			Exclude:     []string{"vendor/**"},
			FmtShowDiff: true,
		},
	})
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, config.HeadingSetext, cfg.Style.Headings, "env beats file")
	assert.Equal(t, config.BoldAsterisk, cfg.Style.Bold, "flag beats env")
	assert.Equal(t, 2, cfg.LinkChecker.Retries())
	assert.Equal(t, []string{"vendor/**"}, cfg.Global.Exclude)
	assert.True(t, cfg.Fmt.ShowDiff)
	assert.False(t, cfg.Fmt.Check)
}

func TestLoad_InvalidEnvInteger(t *testing.T) {
	t.Setenv("CHECKMARK_LINK_TIMEOUT", "soon")

	_, err := Load(context.Background(), LoadOptions{WorkingDir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHECKMARK_LINK_TIMEOUT")
}

func TestLoad_UnknownOverrideStyleWarns(t *testing.T) {
	result, err := Load(context.Background(), LoadOptions{
		WorkingDir: t.TempDir(),
		IgnoreEnv:  true,
		Overrides:  &Overrides{StyleHeadings: ptr("fancy")},
	})
	require.NoError(t, err)

	assert.Equal(t, config.HeadingConsistent, result.Config.Style.Headings)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "style.headings")
}

func TestLoad_GrammarKey(t *testing.T) {
	t.Setenv(grammar.CredentialEnv, "secret")

	result, err := Load(context.Background(), LoadOptions{WorkingDir: t.TempDir(), IgnoreEnv: true})
	require.NoError(t, err)
	assert.Equal(t, "secret", result.GrammarKey)
}

func TestParseSliceValue(t *testing.T) {
	assert.Nil(t, parseSliceValue(""))
	assert.Equal(t, []string{"a", "b"}, parseSliceValue(" a, ,b "))
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checkmark.toml")
	ctx := context.Background()

	written, err := WriteConfig(ctx, path, []byte("a = 1\n"), false)
	require.NoError(t, err)
	assert.True(t, written)

	_, err = WriteConfig(ctx, path, []byte("a = 2\n"), false)
	require.Error(t, err)

	written, err = WriteConfig(ctx, path, []byte("a = 2\n"), true)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = WriteConfig(ctx, path, []byte("a = 2\n"), true)
	require.NoError(t, err)
	assert.False(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a = 2\n", string(content))
}
