// Package spelling checks the prose of a Markdown document against a word
// list.
package spelling

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/checkmark/pkg/fsutil"
)

// DefaultWordsPath is the system word list used when no dictionary is
// configured.
const DefaultWordsPath = "/usr/share/dict/words"

// maxSuggestDistance bounds the edit distance of suggestions.
const maxSuggestDistance = 2

// builtinWords are accepted regardless of the loaded word list.
//
//nolint:gochecknoglobals // read-only table
var builtinWords = []string{
	"a", "i", "aka", "eg", "etc", "ie", "ps", "vs",
	"markdown", "readme", "url", "urls", "json", "yaml", "toml", "html",
}

// Dictionary is a case-insensitive word set.
type Dictionary struct {
	words map[string]struct{}
	// byLen groups words by rune count, each group sorted.
	byLen map[int][]string
}

// NewDictionary creates a dictionary holding the built-in words plus words.
func NewDictionary(words ...string) *Dictionary {
	d := &Dictionary{
		words: make(map[string]struct{}, len(words)+len(builtinWords)),
		byLen: make(map[int][]string),
	}
	d.Add(builtinWords...)
	d.Add(words...)
	return d
}

// LoadDictionary reads one word per line from r. Blank lines and lines
// starting with "#" are skipped.
func LoadDictionary(r io.Reader, extra ...string) (*Dictionary, error) {
	d := NewDictionary(extra...)

	scanner := bufio.NewScanner(r)
	var batch []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		batch = append(batch, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}

	d.Add(batch...)
	return d, nil
}

// LoadFile loads the word list at path. An empty path selects
// DefaultWordsPath.
func LoadFile(ctx context.Context, path string, extra ...string) (*Dictionary, error) {
	if path == "" {
		path = DefaultWordsPath
	}
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return LoadDictionary(bytes.NewReader(content), extra...)
}

// Add inserts words.
func (d *Dictionary) Add(words ...string) {
	touched := make(map[int]bool)
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := d.words[w]; ok {
			continue
		}
		d.words[w] = struct{}{}
		n := utf8.RuneCountInString(w)
		d.byLen[n] = append(d.byLen[n], w)
		touched[n] = true
	}
	for n := range touched {
		slices.Sort(d.byLen[n])
	}
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether word is known, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Suggest returns the closest known word within a small edit distance.
// Ties go to the alphabetically first candidate.
func (d *Dictionary) Suggest(word string) (string, bool) {
	target := []rune(strings.ToLower(word))

	best, bestDist := "", maxSuggestDistance+1
	for n := len(target) - maxSuggestDistance; n <= len(target)+maxSuggestDistance; n++ {
		for _, candidate := range d.byLen[n] {
			dist := editDistance(target, []rune(candidate), bestDist+1)
			if dist < bestDist || (dist == bestDist && candidate < best) {
				best, bestDist = candidate, dist
			}
		}
	}

	if bestDist > maxSuggestDistance {
		return "", false
	}
	return best, true
}

// editDistance is the optimal string alignment distance between a and b.
// It returns limit as soon as the distance is known to reach it.
func editDistance(a, b []rune, limit int) int {
	if abs(len(a)-len(b)) >= limit {
		return limit
	}

	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				curr[j] = min(curr[j], prev2[j-2]+1)
			}
			rowMin = min(rowMin, curr[j])
		}
		if rowMin >= limit {
			return limit
		}
		prev2, prev, curr = prev, curr, prev2
	}

	return min(prev[len(b)], limit)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
