package configloader

import "github.com/yaklabco/checkmark/pkg/config"

// Overrides holds values taken from CLI flags. Nil pointers and nil slices
// mean the flag was not given; given flags replace the file value.
type Overrides struct {
	StyleHeadings       *string
	StyleUnorderedLists *string
	StyleBold           *string

	IgnoreWildcards []string
	Timeout         *int
	MaxRetries      *int

	AllowedHTMLTags []string
	Exclude         []string
	Proxy           *string

	// FmtCheck and FmtShowDiff only switch the setting on; a false flag
	// keeps the file value.
	FmtCheck    bool
	FmtShowDiff bool

	Format *string
	Jobs   *int
}

// apply writes the set overrides into cfg and returns warnings for ignored
// style values.
func (o *Overrides) apply(cfg *config.Config) []string {
	if o == nil {
		return nil
	}

	var warnings []*config.Warning
	var w *config.Warning

	if o.StyleHeadings != nil {
		cfg.Style.Headings, w = config.ParseHeadingStyle(*o.StyleHeadings, cfg.Style.Headings)
		warnings = appendWarning(warnings, w)
	}
	if o.StyleUnorderedLists != nil {
		cfg.Style.UnorderedLists, w = config.ParseUnorderedListStyle(*o.StyleUnorderedLists, cfg.Style.UnorderedLists)
		warnings = appendWarning(warnings, w)
	}
	if o.StyleBold != nil {
		cfg.Style.Bold, w = config.ParseBoldStyle(*o.StyleBold, cfg.Style.Bold)
		warnings = appendWarning(warnings, w)
	}

	if o.IgnoreWildcards != nil {
		cfg.LinkChecker.IgnoreWildcards = o.IgnoreWildcards
	}
	if o.Timeout != nil {
		timeout := *o.Timeout
		cfg.LinkChecker.Timeout = &timeout
	}
	if o.MaxRetries != nil {
		retries := *o.MaxRetries
		cfg.LinkChecker.MaxRetries = &retries
	}
	if o.AllowedHTMLTags != nil {
		cfg.Lint.AllowedHTMLTags = o.AllowedHTMLTags
	}
	if o.Exclude != nil {
		cfg.Global.Exclude = o.Exclude
	}
	if o.Proxy != nil {
		cfg.Global.Proxy = *o.Proxy
	}
	if o.FmtCheck {
		cfg.Fmt.Check = true
	}
	if o.FmtShowDiff {
		cfg.Fmt.ShowDiff = true
	}
	if o.Format != nil {
		cfg.Format = config.OutputFormat(*o.Format)
	}
	if o.Jobs != nil {
		cfg.Jobs = *o.Jobs
	}

	messages := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		messages = append(messages, warning.String())
	}
	return messages
}

func appendWarning(warnings []*config.Warning, w *config.Warning) []*config.Warning {
	if w == nil {
		return warnings
	}
	return append(warnings, w)
}
