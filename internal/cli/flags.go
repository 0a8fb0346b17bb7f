package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/checkmark/internal/configloader"
)

// globalFlags are persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	format     string
	noContext  bool
	jobs       int

	styleHeadings       string
	styleUnorderedLists string
	styleBold           string

	exclude         []string
	proxy           string
	ignoreWildcards []string
	timeout         int
	maxRetries      int
	allowedHTMLTags []string
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()

	pf.BoolVar(&f.debug, "debug", false, "enable debug logging")
	pf.StringVar(&f.configPath, "config", "", "path to config file")
	pf.StringVar(&f.color, "color", "auto", "colorize output: auto, always, never")
	pf.StringVar(&f.format, "format", "text", "output format: text, json")
	pf.BoolVar(&f.noContext, "no-context", false, "hide source line context in output")
	pf.IntVar(&f.jobs, "jobs", 0, "number of files checked in parallel (0 = auto)")

	pf.StringVar(&f.styleHeadings, "style-headings", "", "heading style: consistent, atx, setext")
	pf.StringVar(&f.styleUnorderedLists, "style-unordered-lists", "",
		"unordered list style: consistent, dash, asterisk, plus")
	pf.StringVar(&f.styleBold, "style-bold", "", "bold style: consistent, asterisk, underscore")

	pf.StringSliceVar(&f.exclude, "exclude", nil, "glob patterns of files to skip")
	pf.StringVar(&f.proxy, "proxy", "", "HTTP proxy URL for network checks")
	pf.StringSliceVar(&f.ignoreWildcards, "ignore-wildcards", nil, "glob patterns of links to skip")
	pf.IntVar(&f.timeout, "timeout", 0, "link request timeout in seconds")
	pf.IntVar(&f.maxRetries, "max-retries", 0, "retries after a failed link request")
	pf.StringSliceVar(&f.allowedHTMLTags, "allowed-html-tags", nil, "inline HTML tags MD033 accepts")
}

// overrides returns the flags the user set explicitly.
func (f *globalFlags) overrides(cmd *cobra.Command) *configloader.Overrides {
	changed := func(name string) bool {
		flag := cmd.Flags().Lookup(name)
		return flag != nil && flag.Changed
	}

	o := &configloader.Overrides{}
	if changed("style-headings") {
		o.StyleHeadings = &f.styleHeadings
	}
	if changed("style-unordered-lists") {
		o.StyleUnorderedLists = &f.styleUnorderedLists
	}
	if changed("style-bold") {
		o.StyleBold = &f.styleBold
	}
	if changed("exclude") {
		o.Exclude = f.exclude
	}
	if changed("proxy") {
		o.Proxy = &f.proxy
	}
	if changed("ignore-wildcards") {
		o.IgnoreWildcards = f.ignoreWildcards
	}
	if changed("timeout") {
		o.Timeout = &f.timeout
	}
	if changed("max-retries") {
		o.MaxRetries = &f.maxRetries
	}
	if changed("allowed-html-tags") {
		o.AllowedHTMLTags = f.allowedHTMLTags
	}
	if changed("format") {
		o.Format = &f.format
	}
	if changed("jobs") {
		o.Jobs = &f.jobs
	}
	return o
}
