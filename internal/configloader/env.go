package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/checkmark/pkg/config"
)

// envVarPrefix is the prefix for all checkmark environment variables.
const envVarPrefix = "CHECKMARK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	suffix string
	field  string
	typ    envFieldType
}

// envMappings maps environment variable names (without prefix) to config
// fields. The order is the order in which they are applied.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envMapping{
	{suffix: "STYLE_HEADINGS", field: "style.headings", typ: envTypeString},
	{suffix: "STYLE_UNORDERED_LISTS", field: "style.unordered_lists", typ: envTypeString},
	{suffix: "STYLE_BOLD", field: "style.bold", typ: envTypeString},
	{suffix: "IGNORE_WILDCARDS", field: "link_checker.ignore_wildcards", typ: envTypeSlice},
	{suffix: "LINK_TIMEOUT", field: "link_checker.timeout", typ: envTypeInt},
	{suffix: "LINK_MAX_RETRIES", field: "link_checker.max_retries", typ: envTypeInt},
	{suffix: "LINK_CONCURRENCY", field: "link_checker.concurrency", typ: envTypeInt},
	{suffix: "EXCLUDE", field: "global.exclude", typ: envTypeSlice},
	{suffix: "PROXY", field: "global.proxy", typ: envTypeString},
	{suffix: "FLAVOR", field: "lint.flavor", typ: envTypeString},
	{suffix: "DICTIONARY", field: "spelling.dictionary", typ: envTypeString},
	{suffix: "JOBS", field: "jobs", typ: envTypeInt},
	{suffix: "FORMAT", field: "format", typ: envTypeString},
}

// EnvVar describes one environment variable LoadFromEnv understands.
type EnvVar struct {
	Name  string
	Field string
}

// EnvVars lists the recognised environment variables in application order.
func EnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for _, m := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + m.suffix, Field: m.field})
	}
	return vars
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with CHECKMARK_ (e.g. CHECKMARK_STYLE_BOLD).
// Unknown style values are kept out of cfg and returned as warnings.
func LoadFromEnv(cfg *config.Config) ([]string, error) {
	if cfg == nil {
		return nil, nil
	}

	var warnings []string
	for _, mapping := range envMappings {
		envVar := envVarPrefix + mapping.suffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		warning, err := applyEnvValue(cfg, mapping, value, envVar)
		if err != nil {
			return nil, err
		}
		if warning != "" {
			warnings = append(warnings, envVar+": "+warning)
		}
	}

	return warnings, nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) (string, error) {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return "", setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return "", setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return "", fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path. Style
// fields return a warning instead of an error for unknown values.
func setStringField(cfg *config.Config, field, value string) (string, error) {
	var warning *config.Warning

	switch field {
	case "style.headings":
		cfg.Style.Headings, warning = config.ParseHeadingStyle(value, cfg.Style.Headings)
	case "style.unordered_lists":
		cfg.Style.UnorderedLists, warning = config.ParseUnorderedListStyle(value, cfg.Style.UnorderedLists)
	case "style.bold":
		cfg.Style.Bold, warning = config.ParseBoldStyle(value, cfg.Style.Bold)
	case "global.proxy":
		cfg.Global.Proxy = value
	case "lint.flavor":
		cfg.Lint.Flavor = config.Flavor(value)
	case "spelling.dictionary":
		cfg.Spelling.Dictionary = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return "", fmt.Errorf("unknown string field: %s", field)
	}

	if warning != nil {
		return warning.String(), nil
	}
	return "", nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "link_checker.timeout":
		cfg.LinkChecker.Timeout = &value
	case "link_checker.max_retries":
		cfg.LinkChecker.MaxRetries = &value
	case "link_checker.concurrency":
		cfg.LinkChecker.Concurrency = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a string slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "link_checker.ignore_wildcards":
		cfg.LinkChecker.IgnoreWildcards = value
	case "global.exclude":
		cfg.Global.Exclude = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}
