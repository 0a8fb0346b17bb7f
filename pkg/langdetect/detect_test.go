package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/checkmark/pkg/langdetect"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		expected  string
		confident bool
	}{
		{"shebang bash", "#!/bin/bash\necho hello", "bash", true},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", "python", true},
		{"go", "package main\n\nfunc main() {}\n", "go", true},
		{"python", "def foo():\n    pass\n", "python", true},
		{"json", `{"key": "value"}`, "json", true},
		{"toml", "[style]\nheadings = \"atx\"\n", "toml", true},
		{"yaml", "key: value\nother: 123\n", "yaml", true},
		{"sql", "select * from t", "sql", true},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", "rust", true},
		{"dockerfile", "FROM golang:1.25\nRUN go build", "dockerfile", true},
		{"empty", "", langdetect.Text, false},
		{"blank", "  \n\t\n", langdetect.Text, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lang, confident := langdetect.Suggest([]byte(tc.content))
			assert.Equal(t, tc.expected, lang)
			assert.Equal(t, tc.confident, confident)
			assert.Equal(t, tc.expected, langdetect.Detect([]byte(tc.content)))
		})
	}
}
