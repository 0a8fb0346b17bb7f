// Package rules provides the built-in lint rules for checkmark.
//
// Rules run in the order RegisterAll declares them:
//
//   - MD001: heading-increment - Heading levels should only increment by one
//   - MD003: heading-style - Heading style should be consistent
//   - MD004: ul-style - Unordered list style should be consistent
//   - MD018: no-missing-space-atx - No space after hash on ATX headings
//   - MD019: no-multiple-space-atx - Multiple spaces after hash on ATX headings
//   - MD033: no-inline-html - Inline HTML
//   - MD040: fenced-code-language - Fenced code blocks should have a language
//   - MD050: strong-style - Strong style should be consistent
//
// MD003, MD004 and MD050 are consistency rules. Their target style comes
// from the [style] configuration or, in "consistent" mode, from the first
// qualifying node of the document.
package rules
