package lint

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/doccheck/pkg/core"
)

// globalRegistry is the single global registry for all check rules.
var globalRegistry = &Registry{
	rules: make(map[string]RuleDef),
}

// Registry stores registered rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef // keyed by ID
}

// RuleDef describes one kind of finding produced by the checks.
// Rules carry metadata only; the decision logic lives in the check functions
// so that related rules keep their precedence.
type RuleDef struct {
	ID          string        // Unique identifier, e.g., "DF01"
	Name        string        // Human-readable name, e.g., "source-installed"
	Group       string        // Category: "file", "include", "entity", "class", "member"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity

	// Documentation fields
	Rationale string // Why this rule exists, what problems it prevents
	Fix       string // How to fix violations
}

// Info converts the definition to the tooling DTO.
func (r RuleDef) Info() core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Rationale:       r.Rationale,
		Fix:             r.Fix,
	}
}

// Register adds a rule to the global registry.
// Call this from init() functions.
func Register(rule RuleDef) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.rules[rule.ID] = rule
}

// GetAll returns all registered rules sorted by ID.
func GetAll() []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]RuleDef, 0, len(globalRegistry.rules))
	for _, rule := range globalRegistry.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })
	return rules
}

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	rule, ok := globalRegistry.rules[id]
	return rule, ok
}

// GetByGroup returns all rules in a specific group, sorted by ID.
func GetByGroup(group string) []RuleDef {
	var rules []RuleDef
	for _, rule := range GetAll() {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	return rules
}

// AllRules returns metadata for every registered rule.
func AllRules() []core.RuleInfo {
	all := GetAll()
	infos := make([]core.RuleInfo, len(all))
	for i, r := range all {
		infos[i] = r.Info()
	}
	return infos
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.rules)
}
