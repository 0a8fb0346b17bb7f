package spelling

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"

	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// DictionaryFix is the last fix of every spelling issue.
const DictionaryFix = "If you're sure that this word is correct - add it to the spellcheck dictionary(TBD)"

// contractionSuffixes are accepted without a dictionary lookup.
//
//nolint:gochecknoglobals // read-only table
var contractionSuffixes = []string{"n't", "'re", "'ll", "'ve", "'d", "'m"}

// Checker reports unknown words in prose.
type Checker struct {
	dict *Dictionary
}

// NewChecker creates a checker backed by dict.
func NewChecker(dict *Dictionary) *Checker {
	if dict == nil {
		dict = NewDictionary()
	}
	return &Checker{dict: dict}
}

// Check returns one issue per unknown word, in source order. Rows and
// columns span the enclosing text run; offsets span the word.
func (c *Checker) Check(ctx context.Context, file *mdast.FileSnapshot) ([]issue.Issue, error) {
	if file == nil || file.Root == nil {
		return nil, nil
	}

	var issues []issue.Issue
	for _, run := range mdast.ProseSpans(file.Root) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("spellcheck cancelled: %w", err)
		}

		runPos := file.PositionAt(run.Start, run.End)
		text := string(file.Content[run.Start:run.End])

		offset := run.Start
		tokens := words.FromString(text)
		for tokens.Next() {
			word := tokens.Value()
			start := offset
			offset += len(word)

			stem, ok := c.known(word)
			if ok {
				continue
			}

			issues = append(issues, c.issueFor(file.Path, word, stem, runPos, start))
		}
	}

	return issues, nil
}

func (c *Checker) issueFor(path, word, stem string, runPos mdast.Position, start int) issue.Issue {
	b := issue.New(issue.CategorySpelling, path).
		Message(fmt.Sprintf("Word %q is unknown or miss-spelled", word)).
		Position(runPos).
		Offsets(start, start+len(word))

	if suggestion, ok := c.dict.Suggest(stem); ok {
		b = b.PushFix(fmt.Sprintf("Consider changing %q to %q", stem, suggestion))
	} else {
		b = b.PushFix(fmt.Sprintf("Cannot find any suggestion for word %q", stem))
	}

	return b.PushFix(DictionaryFix).Build()
}

// known reports whether token needs no issue. For unknown words it also
// returns the stem used for suggestions.
func (c *Checker) known(token string) (string, bool) {
	word := strings.ReplaceAll(token, "’", "'")

	if !strings.ContainsFunc(word, unicode.IsLetter) {
		return "", true
	}
	// Numbers, file names, abbreviations with dots and identifiers.
	if strings.ContainsFunc(word, unicode.IsDigit) || strings.ContainsAny(word, "._/:@") {
		return "", true
	}
	if isAcronym(word) {
		return "", true
	}

	lower := strings.ToLower(word)
	for _, suffix := range contractionSuffixes {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) {
			return "", true
		}
	}

	stem := strings.TrimSuffix(strings.TrimSuffix(word, "'s"), "'")
	if c.dict.Contains(stem) {
		return "", true
	}
	return stem, false
}

func isAcronym(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 1
}
