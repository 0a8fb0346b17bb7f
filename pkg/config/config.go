// Package config defines core configuration types for checkmark.
// These types are pure data structures; discovery and layering live in
// internal/configloader.
package config

import "slices"

// OutputFormat specifies the output format for issues.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Default values for link checking.
const (
	DefaultLinkTimeout     = 30
	DefaultLinkMaxRetries  = 1
	DefaultLinkConcurrency = 8
)

// StyleConfig selects the preferred style for the consistency rules.
type StyleConfig struct {
	Headings       HeadingStyle       `toml:"headings" yaml:"headings"`
	UnorderedLists UnorderedListStyle `toml:"unordered_lists" yaml:"unordered_lists"`
	Bold           BoldStyle          `toml:"bold" yaml:"bold"`
}

// LintConfig configures the rule engine.
type LintConfig struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `toml:"flavor" yaml:"flavor"`

	// AllowedHTMLTags lists inline HTML elements MD033 accepts.
	AllowedHTMLTags []string `toml:"allowed_html_tags" yaml:"allowed_html_tags"`

	// Disabled lists rule codes or names that are not run.
	Disabled []string `toml:"disabled_rules" yaml:"disabled_rules"`
}

// LinkCheckerConfig configures link collection and resolution.
type LinkCheckerConfig struct {
	// IgnoreWildcards are glob patterns; matching URIs are not checked.
	IgnoreWildcards []string `toml:"ignore_wildcards" yaml:"ignore_wildcards"`

	// Timeout is the per-request timeout in seconds.
	Timeout *int `toml:"timeout" yaml:"timeout"`

	// MaxRetries is the number of retries after a failed request.
	MaxRetries *int `toml:"max_retries" yaml:"max_retries"`

	// Concurrency bounds the number of in-flight requests.
	Concurrency int `toml:"concurrency" yaml:"concurrency"`
}

// TimeoutSeconds returns the configured timeout or the default.
func (c LinkCheckerConfig) TimeoutSeconds() int {
	if c.Timeout == nil || *c.Timeout <= 0 {
		return DefaultLinkTimeout
	}
	return *c.Timeout
}

// Retries returns the configured retry count or the default.
func (c LinkCheckerConfig) Retries() int {
	if c.MaxRetries == nil || *c.MaxRetries < 0 {
		return DefaultLinkMaxRetries
	}
	return *c.MaxRetries
}

// SpellingConfig configures the spelling pass.
type SpellingConfig struct {
	// Words are accepted in addition to the dictionary.
	Words []string `toml:"words" yaml:"words"`

	// Dictionary is a word-list file, one word per line.
	Dictionary string `toml:"dictionary" yaml:"dictionary"`
}

// GrammarConfig configures the grammar pass. The credential itself is only
// read from the environment.
type GrammarConfig struct {
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
}

// FmtConfig configures the format pass.
type FmtConfig struct {
	// Check reports formatting drift instead of rewriting files.
	Check bool `toml:"check" yaml:"check"`

	// ShowDiff prints a unified diff for files that would change.
	ShowDiff bool `toml:"show_diff" yaml:"show_diff"`
}

// GlobalConfig holds settings shared by every pass.
type GlobalConfig struct {
	// Exclude contains glob patterns for files to skip.
	Exclude []string `toml:"exclude" yaml:"exclude"`

	// Proxy is an HTTP proxy URL for network passes.
	Proxy string `toml:"proxy" yaml:"proxy"`
}

// Config is the root configuration structure for checkmark.
type Config struct {
	Style       StyleConfig       `toml:"style" yaml:"style"`
	Lint        LintConfig        `toml:"lint" yaml:"lint"`
	LinkChecker LinkCheckerConfig `toml:"link_checker" yaml:"link_checker"`
	Spelling    SpellingConfig    `toml:"spelling" yaml:"spelling"`
	Grammar     GrammarConfig     `toml:"grammar" yaml:"grammar"`
	Fmt         FmtConfig         `toml:"fmt" yaml:"fmt"`
	Global      GlobalConfig      `toml:"global" yaml:"global"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `toml:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `toml:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Style: StyleConfig{
			Headings:       HeadingConsistent,
			UnorderedLists: UnorderedListConsistent,
			Bold:           BoldConsistent,
		},
		Lint: LintConfig{
			Flavor: FlavorGFM,
		},
		LinkChecker: LinkCheckerConfig{
			Concurrency: DefaultLinkConcurrency,
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// IsRuleDisabled reports whether the rule with the given code or name is
// listed in Lint.Disabled.
func (c *Config) IsRuleDisabled(code, name string) bool {
	return slices.Contains(c.Lint.Disabled, code) || (name != "" && slices.Contains(c.Lint.Disabled, name))
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Lint.AllowedHTMLTags = slices.Clone(c.Lint.AllowedHTMLTags)
	clone.Lint.Disabled = slices.Clone(c.Lint.Disabled)
	clone.LinkChecker.IgnoreWildcards = slices.Clone(c.LinkChecker.IgnoreWildcards)
	clone.LinkChecker.Timeout = clonePtr(c.LinkChecker.Timeout)
	clone.LinkChecker.MaxRetries = clonePtr(c.LinkChecker.MaxRetries)
	clone.Spelling.Words = slices.Clone(c.Spelling.Words)
	clone.Global.Exclude = slices.Clone(c.Global.Exclude)

	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
