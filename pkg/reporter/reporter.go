// Package reporter writes check results for humans and machines.
package reporter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/runner"
)

// Reporter formats and writes check results.
type Reporter interface {
	// Report writes result and returns the number of issues it reported.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Format is an output format. It shares its values with the configuration
// file's format key.
type Format = config.OutputFormat

// Output formats supported by New.
const (
	FormatText = config.FormatText
	FormatJSON = config.FormatJSON
)

//nolint:gochecknoglobals // Read-only constructor table.
var constructors = map[Format]func(Options) Reporter{
	FormatText: func(opts Options) Reporter { return NewTextReporter(opts) },
	FormatJSON: func(opts Options) Reporter { return NewJSONReporter(opts) },
}

// Formats returns the supported output formats in sorted order.
func Formats() []Format {
	formats := make([]Format, 0, len(constructors))
	for f := range constructors {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// ParseFormat parses a format name. The empty string means text.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(strings.ToLower(name))
	if _, ok := constructors[format]; !ok {
		names := make([]string, 0, len(constructors))
		for _, f := range Formats() {
			names = append(names, string(f))
		}
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, strings.Join(names, ", "))
	}
	return format, nil
}

// New creates the Reporter for opts.Format, defaulting to text.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}

	construct, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return construct(opts), nil
}
