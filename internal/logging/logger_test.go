package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		expected log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"invalid", log.InfoLevel},
		{"", log.InfoLevel},
		{" DEBUG ", log.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, logging.ParseLevel(tc.level))
			assert.Equal(t, tc.expected, logging.New(tc.level).GetLevel())
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")

	logger.Debug("pass finished", logging.FieldPass, "lint", logging.FieldCount, 3)

	out := buf.String()
	assert.Contains(t, out, "checkmark")
	assert.Contains(t, out, "pass finished")
	assert.Contains(t, out, "pass=lint")
	assert.Contains(t, out, "count=3")
}

func TestSetDefaultAndLevel(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	fresh := logging.New("info")
	logging.SetDefault(fresh)
	require.Same(t, fresh, logging.Default())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("warn")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))

	tagged := logging.WithFields(ctx, logging.FieldPass, "lint")
	assert.NotSame(t, logger, logging.FromContext(tagged))
	assert.Same(t, logger, logging.FromContext(ctx))
}

func TestWithFieldsTagsEntries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	ctx := logging.WithFields(logging.WithLogger(context.Background(), logger),
		logging.FieldPath, "doc.md")
	ctx = logging.WithFields(ctx, logging.FieldPass, "spelling")

	logging.FromContext(ctx).Debug("pass started")

	out := buf.String()
	assert.Contains(t, out, "pass started")
	assert.Contains(t, out, "path=doc.md")
	assert.Contains(t, out, "pass=spelling")
}
