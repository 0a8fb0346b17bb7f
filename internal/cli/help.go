package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/checkmark/internal/configloader"
	"github.com/yaklabco/checkmark/internal/ui/pretty"
	"github.com/yaklabco/checkmark/pkg/grammar"
)

// helpTemplate is shared by every command. The environment section is only
// rendered for the root command.
const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}
{{- if not .HasParent}}

{{ heading "Environment:" }}
{{ environment }}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

// HelpFormatter renders Cobra help and usage text with the report styles.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":     h.styles.SummaryTitle.Render,
		"command":     h.styles.Bold.Render,
		"subcommand":  h.styles.Category.Render,
		"dim":         h.styles.Dim.Render,
		"flags":       h.flagUsages,
		"environment": h.environment,
		"rpad":        rpad,
		"trim":        trimTrailingWhitespaces,
	}
}

// ApplyToCommand installs the styled help and usage functions on cmd. Cobra
// inherits them into every subcommand.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	tmpl := template.Must(template.New("help").Funcs(h.funcs()).Parse(helpTemplate))

	render := func(command *cobra.Command) error {
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			return fmt.Errorf("render help: %w", err)
		}
		return nil
	}

	cmd.SetUsageFunc(render)
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render(command); err != nil {
			command.PrintErrln(err)
		}
	})
}

// flagUsages colors the flag names in pflag's own column layout.
func (h *HelpFormatter) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimRight(set.FlagUsages(), "\n")
	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *HelpFormatter) styleFlagLine(line string) string {
	body := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(body)]

	// pflag separates the flag column from the description by at least
	// three spaces.
	split := strings.Index(body, "   ")
	if split < 0 {
		return line
	}
	names, rest := body[:split], body[split:]

	tokens := strings.Fields(names)
	for i, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "-"):
			name := strings.TrimSuffix(tok, ",")
			tokens[i] = h.styles.Location.Render(name) + tok[len(name):]
		default:
			tokens[i] = h.styles.Dim.Render(tok)
		}
	}
	return indent + strings.Join(tokens, " ") + rest
}

func (h *HelpFormatter) environment() string {
	vars := configloader.EnvVars()
	width := len(grammar.CredentialEnv)
	for _, v := range vars {
		width = max(width, len(v.Name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s   %s", h.styles.Location.Render(rpad(grammar.CredentialEnv, width)),
		"grammar service API key; enables the grammar pass")
	for _, v := range vars {
		fmt.Fprintf(&b, "\n  %s   overrides %s", h.styles.Location.Render(rpad(v.Name, width)), v.Field)
	}
	return b.String()
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
