package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// configDirs are searched in order, relative to the working directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configDirs = []string{"", "config", "conf", "cfg", ".github"}

// configNames are the file names tried in every config directory.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configNames = []string{"checkmark.toml", ".checkmark.toml"}

// rootYAMLNames are accepted only at the working directory root, after every
// TOML location.
//
//nolint:gochecknoglobals // Read-only lookup table.
var rootYAMLNames = []string{".checkmark.yml", ".checkmark.yaml"}

// DefaultLocations returns the candidate config paths relative to the
// working directory, in search order.
func DefaultLocations() []string {
	locations := make([]string, 0, len(configDirs)*len(configNames)+len(rootYAMLNames))
	for _, dir := range configDirs {
		for _, name := range configNames {
			locations = append(locations, filepath.Join(dir, name))
		}
	}
	return append(locations, rootYAMLNames...)
}

// FindConfig returns the first existing default location under workDir, or
// an empty string when none exists.
func FindConfig(ctx context.Context, workDir string) (string, error) {
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	for _, rel := range DefaultLocations() {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		path := filepath.Join(workDir, rel)
		if fileExists(path) {
			return path, nil
		}
	}

	return "", nil
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
