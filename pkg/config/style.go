package config

import (
	"fmt"
	"strings"
)

// HeadingStyle is the preferred heading syntax.
type HeadingStyle string

const (
	HeadingConsistent HeadingStyle = "consistent"
	HeadingATX        HeadingStyle = "atx"
	HeadingSetext     HeadingStyle = "setext"
)

// UnorderedListStyle is the preferred bullet marker.
type UnorderedListStyle string

const (
	UnorderedListConsistent UnorderedListStyle = "consistent"
	UnorderedListDash       UnorderedListStyle = "dash"
	UnorderedListAsterisk   UnorderedListStyle = "asterisk"
	UnorderedListPlus       UnorderedListStyle = "plus"
)

// BoldStyle is the preferred strong-emphasis delimiter.
type BoldStyle string

const (
	BoldConsistent BoldStyle = "consistent"
	BoldAsterisk   BoldStyle = "asterisk"
	BoldUnderscore BoldStyle = "underscore"
)

// Warning reports a configuration value that was ignored.
type Warning struct {
	Key     string
	Value   string
	Allowed []string
	Kept    string
}

func (w *Warning) String() string {
	return fmt.Sprintf("unknown value %q for %s (allowed: %s); keeping %q",
		w.Value, w.Key, strings.Join(w.Allowed, ", "), w.Kept)
}

// ParseHeadingStyle parses s case-insensitively. Unknown values return prev
// and a warning.
func ParseHeadingStyle(s string, prev HeadingStyle) (HeadingStyle, *Warning) {
	return parseEnum("style.headings", s, prev,
		[]HeadingStyle{HeadingConsistent, HeadingATX, HeadingSetext})
}

// ParseUnorderedListStyle parses s case-insensitively. Unknown values return
// prev and a warning.
func ParseUnorderedListStyle(s string, prev UnorderedListStyle) (UnorderedListStyle, *Warning) {
	return parseEnum("style.unordered_lists", s, prev,
		[]UnorderedListStyle{UnorderedListConsistent, UnorderedListDash, UnorderedListAsterisk, UnorderedListPlus})
}

// ParseBoldStyle parses s case-insensitively. Unknown values return prev and
// a warning.
func ParseBoldStyle(s string, prev BoldStyle) (BoldStyle, *Warning) {
	return parseEnum("style.bold", s, prev,
		[]BoldStyle{BoldConsistent, BoldAsterisk, BoldUnderscore})
}

func parseEnum[T ~string](key, s string, prev T, allowed []T) (T, *Warning) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, candidate := range allowed {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}

	names := make([]string, 0, len(allowed))
	for _, candidate := range allowed {
		names = append(names, string(candidate))
	}
	return prev, &Warning{Key: key, Value: s, Allowed: names, Kept: string(prev)}
}

// Normalize validates every style value in s, replacing unknown values with
// the corresponding value from prev.
func (s StyleConfig) Normalize(prev StyleConfig) (StyleConfig, []*Warning) {
	var warnings []*Warning
	out := prev

	if s.Headings != "" {
		v, w := ParseHeadingStyle(string(s.Headings), prev.Headings)
		out.Headings = v
		warnings = appendWarning(warnings, w)
	}
	if s.UnorderedLists != "" {
		v, w := ParseUnorderedListStyle(string(s.UnorderedLists), prev.UnorderedLists)
		out.UnorderedLists = v
		warnings = appendWarning(warnings, w)
	}
	if s.Bold != "" {
		v, w := ParseBoldStyle(string(s.Bold), prev.Bold)
		out.Bold = v
		warnings = appendWarning(warnings, w)
	}

	return out, warnings
}

func appendWarning(warnings []*Warning, w *Warning) []*Warning {
	if w == nil {
		return warnings
	}
	return append(warnings, w)
}
