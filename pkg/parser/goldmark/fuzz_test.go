package goldmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// FuzzParse checks that parsing never panics and always yields a tree whose
// spans satisfy the containment invariants.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"# Heading",
		"#   spaced",
		"Title\n=====",
		"- list item\n+ other",
		"1) ordered",
		"> blockquote",
		"```go\nfunc main() {}\n```",
		"*emphasis* **strong** ***both***",
		"`code` ``co`de``",
		"[link](url) ![image](src) <https://a.b>",
		"[a]: http://x\n[a]",
		"---\n***\n___",
		"<div>html</div>",
		"line1\r\nline2",
		"| a |\n|---|\n| b |",
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		snapshot, err := New(FlavorGFM).Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		if !bytes.Equal(snapshot.Content, data) {
			t.Fatal("content mismatch")
		}
		if err := mdast.Validate(snapshot.Root, len(data)); err != nil {
			t.Fatalf("invalid spans: %v", err)
		}
	})
}
