package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/checkmark/internal/ui/pretty"
	"github.com/yaklabco/checkmark/pkg/lint"
)

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	FmtFixable  bool     `json:"fmtFixable"`
	DocLink     string   `json:"docLink"`
}

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all lint rules in the order their issues are reported, with
their codes, names, descriptions, and whether the formatter fixes them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()
			out := cmd.OutOrStdout()

			outputFormat, _ := cmd.Flags().GetString("format")
			if outputFormat == formatJSON {
				return outputRulesJSON(out, rules)
			}

			color, _ := cmd.Flags().GetString("color")
			outputRulesText(out, rules, pretty.NewStyles(pretty.IsColorEnabled(color, out)))
			return nil
		},
	}
}

func outputRulesText(out io.Writer, rules []lint.Rule, styles *pretty.Styles) {
	for _, rule := range rules {
		fixable := ""
		if rule.FmtFixable() {
			fixable = styles.Fix.Render(" (fixed by fmt)")
		}
		fmt.Fprintf(out, "%s %s%s\n    %s\n",
			styles.Bold.Render(rule.Code()),
			styles.Category.Render(rule.Name()),
			fixable,
			rule.Description(),
		)
		if tags := rule.Tags(); len(tags) > 0 {
			fmt.Fprintf(out, "    %s\n", styles.Dim.Render("tags: "+strings.Join(tags, ", ")))
		}
	}
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, rules []lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			Code:        rule.Code(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Tags:        rule.Tags(),
			FmtFixable:  rule.FmtFixable(),
			DocLink:     lint.DocLink(rule.Code()),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
