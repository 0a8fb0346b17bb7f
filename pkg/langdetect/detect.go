// Package langdetect guesses the language of a code snippet so that fenced
// code blocks without an info string can be given one.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined with confidence.
const Text = "text"

// classifierCandidates bounds the go-enry classifier to languages that
// commonly appear in documentation.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "TOML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// detector recognizes one language from highly indicative patterns.
type detector struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// detectors are tried in order of specificity.
//
//nolint:gochecknoglobals // Read-only lookup table.
var detectors = []detector{
	{"go", isGo},
	{"python", isPython},
	{"html", isHTML},
	{"toml", isTOML},
	{"json", isJSON},
	{"dockerfile", isDockerfile},
	{"sql", isSQL},
	{"rust", isRust},
	{"javascript", isJavaScript},
	{"yaml", isYAML},
}

// Detect returns the fence tag for content, or Text when unsure.
func Detect(content []byte) string {
	lang, _ := Suggest(content)
	return lang
}

// Suggest returns the fence tag for content and whether the guess is
// confident enough to recommend. It tries, in order, the shebang line,
// the pattern detectors and the go-enry classifier.
func Suggest(content []byte) (string, bool) {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text, false
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang), true
	}

	trimmed := bytes.TrimSpace(content)
	for _, d := range detectors {
		if d.match(content, trimmed) {
			return d.lang, true
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang), true
	}

	return Text, false
}

func isGo(_, trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("package "))
}

func isPython(content, _ []byte) bool {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ") {
			return true
		}
	}
	return strings.Contains(s, "__name__") || strings.Contains(s, "__main__")
}

func isHTML(_, trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return true
		}
	}
	return false
}

func isJSON(_, trimmed []byte) bool {
	return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`))
}

func isDockerfile(content, trimmed []byte) bool {
	return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")))
}

func isSQL(_, trimmed []byte) bool {
	upper := strings.ToUpper(string(trimmed))
	for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

func isRust(content, _ []byte) bool {
	s := string(content)
	return strings.Contains(s, "fn main()") ||
		strings.Contains(s, "println!") ||
		strings.Contains(s, "let mut ")
}

// isTOML looks for a [table] header followed by key = value lines.
func isTOML(content, trimmed []byte) bool {
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		return false
	}
	first, _, _ := bytes.Cut(trimmed, []byte("\n"))
	first = bytes.TrimSpace(first)
	return bytes.HasSuffix(first, []byte("]")) && bytes.Contains(content, []byte(" = "))
}

func isJavaScript(content, _ []byte) bool {
	s := string(content)
	return strings.Contains(s, "=>") ||
		strings.Contains(s, "const ") ||
		strings.Contains(s, "let ") ||
		strings.Contains(s, "console.log")
}

// isYAML counts key: value pairs and root-level list items.
func isYAML(content, _ []byte) bool {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
