package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// Engine runs the rules of a registry over parsed files.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine over registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// EnabledRules returns the rules of the registry that cfg does not
// disable, in declaration order.
func (e *Engine) EnabledRules(cfg *config.Config) []Rule {
	if e.Registry == nil {
		return nil
	}

	rules := e.Registry.Rules()
	if cfg == nil {
		return rules
	}

	enabled := rules[:0]
	for _, rule := range rules {
		if !cfg.IsRuleDisabled(rule.Code(), rule.Name()) {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// LintSnapshot runs every enabled rule against an already parsed file and
// concatenates their violations in rule declaration order.
// The first rule error aborts the run.
func (e *Engine) LintSnapshot(
	ctx context.Context,
	snapshot *mdast.FileSnapshot,
	cfg *config.Config,
) ([]Violation, error) {
	ruleCtx := NewRuleContext(ctx, snapshot, cfg)

	var violations []Violation

	for _, rule := range e.EnabledRules(ruleCtx.Config) {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		found, err := rule.Apply(ruleCtx)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Code(), err)
		}

		violations = append(violations, found...)
	}

	return violations, nil
}
