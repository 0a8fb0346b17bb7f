package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g. "link_checker.timeout").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// knownFormats lists valid output format values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFormats = map[config.OutputFormat]bool{
	config.FormatText: true,
	config.FormatJSON: true,
}

// Validate checks a configuration for errors and warnings. Disabled rules
// are looked up in registry; a nil registry skips that check.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Lint.Flavor != "" && !knownFlavors[cfg.Lint.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "lint.flavor",
			Value:   cfg.Lint.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Lint.Flavor),
		})
	}

	if cfg.Format != "" && !knownFormats[cfg.Format] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateLinkChecker(cfg.LinkChecker, result)
	validateGlobs("global.exclude", cfg.Global.Exclude, result, '/')
	validateDisabledRules(cfg.Lint.Disabled, registry, result)

	return result
}

// validateLinkChecker checks numeric limits and ignore patterns.
func validateLinkChecker(lc config.LinkCheckerConfig, result *ValidationResult) {
	if lc.Timeout != nil && *lc.Timeout < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "link_checker.timeout",
			Value:   *lc.Timeout,
			Message: "timeout must be >= 0 seconds",
		})
	}
	if lc.MaxRetries != nil && *lc.MaxRetries < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "link_checker.max_retries",
			Value:   *lc.MaxRetries,
			Message: "max_retries must be >= 0",
		})
	}
	if lc.Concurrency < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "link_checker.concurrency",
			Value:   lc.Concurrency,
			Message: "concurrency must be >= 0 (0 means default)",
		})
	}
	validateGlobs("link_checker.ignore_wildcards", lc.IgnoreWildcards, result)
}

// validateGlobs checks that every pattern compiles.
func validateGlobs(field string, patterns []string, result *ValidationResult, separators ...rune) {
	for i, pattern := range patterns {
		if _, err := glob.Compile(pattern, separators...); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// validateDisabledRules warns about disabled rules the registry does not know.
func validateDisabledRules(disabled []string, registry *lint.Registry, result *ValidationResult) {
	if registry == nil {
		return
	}
	for _, key := range disabled {
		if _, exists := registry.Get(key); !exists {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "lint.disabled_rules",
				Value:   key,
				Message: fmt.Sprintf("unknown rule %q; it will be ignored", key),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
