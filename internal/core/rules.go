package core

import "familycore/pkg/domain"

type (
	// Rule aliases domain.Rule evaluated within a transaction boundary.
	Rule = domain.Rule
	// RuleView aliases the read-only state exposed to rules.
	RuleView = domain.RuleView
	// RulesEngine aliases domain.RulesEngine.
	RulesEngine = domain.RulesEngine
)

// NewRulesEngine constructs an empty engine instance.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}

// NewDefaultRulesEngine builds a rules engine with the built-in policy set:
// the invariants every familycore store must uphold regardless of caller.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewOwnerPreservationRule())
	engine.Register(NewDefaultListRule())
	engine.Register(NewCurrentUserResolutionRule())
	return engine
}
