package lint

import "sync"

// globalRegistry is the single global registry for all validation rules.
var globalRegistry = &Registry{
	byID: make(map[string]int),
}

// Registry stores registered rules in registration order. Order matters:
// diagnostics are reported in the order their rules were registered.
type Registry struct {
	mu    sync.RWMutex
	rules []RuleDef
	byID  map[string]int // index into rules
}

// Register adds a rule to the global registry. Registering an ID twice
// replaces the earlier definition in place.
// Call this from init() functions.
func Register(rule RuleDef) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()

	if i, ok := globalRegistry.byID[rule.ID]; ok {
		globalRegistry.rules[i] = rule
		return
	}
	globalRegistry.byID[rule.ID] = len(globalRegistry.rules)
	globalRegistry.rules = append(globalRegistry.rules, rule)
}

// GetAll returns all registered rules in registration order.
func GetAll() []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	rules := make([]RuleDef, len(globalRegistry.rules))
	copy(rules, globalRegistry.rules)
	return rules
}

// GetByID returns a rule by its ID.
func GetByID(id string) (RuleDef, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	i, ok := globalRegistry.byID[id]
	if !ok {
		return RuleDef{}, false
	}
	return globalRegistry.rules[i], true
}

// GetByGroup returns all rules in a specific group.
func GetByGroup(group string) []RuleDef {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	var rules []RuleDef
	for _, rule := range globalRegistry.rules {
		if rule.Group == group {
			rules = append(rules, rule)
		}
	}
	return rules
}
