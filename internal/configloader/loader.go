// Package configloader resolves the effective configuration: defaults, one
// config file, CHECKMARK_* environment variables, then CLI overrides.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/fsutil"
	"github.com/yaklabco/checkmark/pkg/grammar"
	"github.com/yaklabco/checkmark/pkg/lint"
)

// configFilePermissions is the file mode for generated configuration files.
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory default locations are resolved against.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, default locations are not searched.
	ExplicitPath string

	// IgnoreEnv skips CHECKMARK_* environment variables.
	IgnoreEnv bool

	// Overrides contains configuration from CLI flags.
	// These take highest precedence.
	Overrides *Overrides

	// Registry is used to validate disabled rule names. Nil uses
	// lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final configuration.
	Config *config.Config

	// Path is the config file that was loaded, or empty.
	Path string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// GrammarKey is the grammar service credential. Empty disables the
	// grammar pass.
	GrammarKey string
}

// Load resolves the final configuration.
// Precedence (highest to lowest):
//  1. CLI flags (opts.Overrides)
//  2. Environment variables (CHECKMARK_*)
//  3. Explicit config file (opts.ExplicitPath) or the first default location
//  4. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	cfg := config.NewConfig()

	path := opts.ExplicitPath
	if path == "" {
		found, err := FindConfig(ctx, opts.WorkingDir)
		if err != nil {
			return nil, fmt.Errorf("discover config: %w", err)
		}
		path = found
	}

	if path != "" {
		loaded, notes, err := loadConfigFile(ctx, path, cfg)
		switch {
		case errors.Is(err, fsutil.ErrNotFound) && opts.ExplicitPath != "":
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("config file not found in %s; using defaults", path))
		case err != nil:
			return nil, fmt.Errorf("load config %s: %w", path, err)
		default:
			cfg = loaded
			result.Path = path
			for _, note := range notes {
				result.Warnings = append(result.Warnings, path+": "+note)
			}
		}
	}

	if !opts.IgnoreEnv {
		warnings, err := LoadFromEnv(cfg)
		if err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
		result.Warnings = append(result.Warnings, warnings...)
	}

	result.Warnings = append(result.Warnings, opts.Overrides.apply(cfg)...)

	validation := ValidateWithFile(cfg, registry, result.Path)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	result.GrammarKey = os.Getenv(grammar.CredentialEnv)
	return result, nil
}

// loadConfigFile decodes path on top of base.
func loadConfigFile(ctx context.Context, path string, base *config.Config) (*config.Config, []string, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	cfg, notes, err := config.Decode(content, config.FileFormatFromPath(path), base)
	if err != nil {
		return nil, nil, err
	}
	return cfg, notes, nil
}

// WriteConfig writes content to path, refusing to replace an existing file
// unless force is set. It reports false when the file already held content.
func WriteConfig(ctx context.Context, path string, content []byte, force bool) (bool, error) {
	if !force && fileExists(path) {
		return false, fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	written, err := fsutil.WriteIfChanged(ctx, path, content, configFilePermissions)
	if err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return written, nil
}
