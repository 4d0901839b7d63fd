// Package rules applies the fixed convention rule set to tool definitions.
//
// Rules are pure and independent: no rule reads another rule's verdict, so
// evaluation order never changes the outcome. Adding a rule means appending
// to the default list, never touching existing ones.
package rules

import (
	"github.com/soundmesh/toolwright/pkg/domain"
)

// CheckFunc is one predicate over a tool definition. It returns the verdict
// and, on failure, an actionable diagnostic.
type CheckFunc func(def *domain.ToolDefinition) (passed bool, message string)

// Rule pairs a stable identifier with its predicate.
type Rule struct {
	ID          string
	Description string
	Check       CheckFunc
}

// Evaluate runs the rule and wraps the outcome in a Verdict.
func (r Rule) Evaluate(def *domain.ToolDefinition) domain.Verdict {
	passed, message := r.Check(def)
	if passed && message == "" {
		message = "ok"
	}
	return domain.Verdict{RuleID: r.ID, Passed: passed, Message: message}
}
