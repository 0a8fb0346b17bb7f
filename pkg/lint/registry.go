package lint

import (
	"slices"
	"sync"
)

// Registry holds lint rules in declaration order.
type Registry struct {
	mu     sync.RWMutex
	order  []Rule
	byCode map[string]Rule
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byCode: make(map[string]Rule),
		byName: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// If a rule with the same code already exists, it is replaced in place and
// keeps its original position.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byCode[rule.Code()]; ok {
		idx := slices.Index(r.order, prev)
		r.order[idx] = rule
		delete(r.byName, prev.Name())
	} else {
		r.order = append(r.order, rule)
	}

	r.byCode[rule.Code()] = rule
	r.byName[rule.Name()] = rule
}

// Get retrieves a rule by code or name.
// It tries the code first, then falls back to name lookup.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byCode[key]; ok {
		return rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule, true
	}
	return nil, false
}

// Rules returns all registered rules in declaration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.order)
}

// Codes returns all registered rule codes in declaration order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.order))
	for _, rule := range r.order {
		result = append(result, rule.Code())
	}
	return result
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
