package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileFormat identifies a configuration file encoding.
type FileFormat string

const (
	FileFormatTOML FileFormat = "toml"
	FileFormatYAML FileFormat = "yaml"
)

// FileFormatFromPath infers the encoding from a file extension.
// Unknown extensions are treated as TOML.
func FileFormatFromPath(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FileFormatYAML
	default:
		return FileFormatTOML
	}
}

// Decode parses data on top of base, so keys absent from the file keep the
// values already in base. Unknown style values are reset to base's values
// and reported as warnings, as are unrecognized TOML keys.
func Decode(data []byte, format FileFormat, base *Config) (*Config, []string, error) {
	cfg := base.Clone()
	if cfg == nil {
		cfg = NewConfig()
	}
	prevStyle := cfg.Style

	var notes []string

	switch format {
	case FileFormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("parse toml: %w", err)
		}
		for _, key := range meta.Undecoded() {
			notes = append(notes, fmt.Sprintf("unknown configuration key %q", key.String()))
		}
	}

	style, warnings := cfg.Style.Normalize(prevStyle)
	cfg.Style = style
	for _, w := range warnings {
		notes = append(notes, w.String())
	}

	return cfg, notes, nil
}

// Encode serializes the persisted part of the configuration.
func (c *Config) Encode(format FileFormat) ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer

	switch format {
	case FileFormatYAML:
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(c); err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("close encoder: %w", err)
		}
	default:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, fmt.Errorf("encode config: %w", err)
		}
	}

	return buf.Bytes(), nil
}
