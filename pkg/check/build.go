package check

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/format"
	"github.com/yaklabco/checkmark/pkg/grammar"
	"github.com/yaklabco/checkmark/pkg/lint"
	_ "github.com/yaklabco/checkmark/pkg/lint/rules" // registers the built-in rules
	"github.com/yaklabco/checkmark/pkg/links"
	"github.com/yaklabco/checkmark/pkg/parser/goldmark"
	"github.com/yaklabco/checkmark/pkg/spelling"
)

// Selection chooses the passes Build wires.
type Selection struct {
	Format   bool
	Link     bool
	Grammar  bool
	Spelling bool
	Lint     bool
}

// AllPasses selects every pass.
func AllPasses() Selection {
	return Selection{Format: true, Link: true, Grammar: true, Spelling: true, Lint: true}
}

// BuildOptions configure Build.
type BuildOptions struct {
	Config    *config.Config
	Selection Selection

	// GrammarKey is the grammar service credential. Empty disables the
	// grammar pass.
	GrammarKey string

	// Registry defaults to lint.DefaultRegistry.
	Registry *lint.Registry

	// HTTPClient overrides the client of the network passes.
	HTTPClient *http.Client
}

// Build wires the selected passes from configuration.
func Build(ctx context.Context, opts BuildOptions) (*Checker, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	parser := goldmark.New(string(cfg.Lint.Flavor))
	sel := opts.Selection

	var passes Passes

	if sel.Format {
		passes.Format = &FormatPass{Checker: format.NewChecker(nil)}
	}

	if sel.Link {
		pass, err := buildLinkPass(cfg, opts.HTTPClient)
		if err != nil {
			return nil, err
		}
		passes.Link = pass
	}

	grammarAvailable := sel.Grammar && opts.GrammarKey != ""
	if grammarAvailable {
		client, err := grammar.NewSaplingClient(grammar.ClientOptions{
			Endpoint:   cfg.Grammar.Endpoint,
			Key:        opts.GrammarKey,
			HTTPClient: opts.HTTPClient,
		})
		if err != nil {
			return nil, fmt.Errorf("grammar client: %w", err)
		}
		passes.Grammar = &GrammarPass{Checker: grammar.NewChecker(client)}
	}

	if sel.Spelling {
		dict, err := spelling.LoadFile(ctx, cfg.Spelling.Dictionary, cfg.Spelling.Words...)
		if err != nil {
			return nil, err
		}
		passes.Spelling = &SpellingPass{Checker: spelling.NewChecker(dict)}
	}

	if sel.Lint {
		passes.Lint = &LintPass{Engine: lint.NewEngine(registry), Config: cfg}
	}

	return New(Options{
		Passes:           passes,
		GrammarAvailable: grammarAvailable,
		Parser:           parser,
	}), nil
}

func buildLinkPass(cfg *config.Config, client *http.Client) (*LinkPass, error) {
	collector, err := links.NewCollector(cfg.LinkChecker.IgnoreWildcards)
	if err != nil {
		return nil, err
	}

	resolver, err := links.NewHTTPResolver(links.ResolverOptions{
		Timeout:     time.Duration(cfg.LinkChecker.TimeoutSeconds()) * time.Second,
		MaxRetries:  cfg.LinkChecker.Retries(),
		Concurrency: cfg.LinkChecker.Concurrency,
		Proxy:       cfg.Global.Proxy,
		Client:      client,
	})
	if err != nil {
		return nil, err
	}

	return &LinkPass{Collector: collector, Resolver: resolver}, nil
}
