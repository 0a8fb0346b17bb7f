package rules

import (
	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
// Registration order is the order in which violations are reported.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewHeadingIncrementRule())   // MD001
	registry.Register(NewHeadingStyleRule())       // MD003
	registry.Register(NewUnorderedListStyleRule()) // MD004
	registry.Register(NewNoMissingSpaceATXRule())  // MD018
	registry.Register(NewNoMultipleSpaceATXRule()) // MD019
	registry.Register(NewInlineHTMLRule())         // MD033
	registry.Register(NewCodeBlockLanguageRule())  // MD040
	registry.Register(NewStrongStyleRule())        // MD050
}

// RuleInfos returns template metadata for the rules in registry.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			Code:        rule.Code(),
			Name:        rule.Name(),
			Description: rule.Description(),
		})
	}
	return infos
}

//nolint:gochecknoinits // Rules register themselves with the default registry.
func init() {
	RegisterAll(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = func() []config.RuleInfo {
		return RuleInfos(lint.DefaultRegistry)
	}
}
