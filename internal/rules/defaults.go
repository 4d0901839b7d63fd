package rules

import (
	"fmt"
	"strings"

	"github.com/soundmesh/toolwright/pkg/domain"
)

// Defaults returns the canonical rule set in its fixed evaluation order.
func Defaults() []Rule {
	return []Rule{
		{
			ID:          "registration-marker",
			Description: "tool carries a well-formed //mcp:tool marker",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				if def.HasMarker {
					return true, ""
				}
				if def.MarkerName != "" {
					return false, fmt.Sprintf("marker %q is not canonical; expected \"//mcp:tool <snake_case_name>\"", def.MarkerName)
				}
				return false, "missing //mcp:tool marker above the function"
			},
		},
		{
			ID:          "async-context",
			Description: "tool is asynchronously invocable",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				if def.AcceptsContext {
					return true, ""
				}
				return false, "first parameter must be a context.Context"
			},
		},
		{
			ID:          "textual-return",
			Description: "return contract is textual-only",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				if def.ReturnsText {
					return true, ""
				}
				return false, "tool must return exactly one string; encode failures as \"Error: ...\" text"
			},
		},
		{
			ID:          "init-guard",
			Description: "registry availability is checked before delegation",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				if !def.Delegates || def.Body.HasInitGuard {
					return true, ""
				}
				return false, "nil-check the registry and return \"" + domain.NotInitialized + "\" before delegating"
			},
		},
		{
			ID:          "failure-boundary",
			Description: "delegation failures are converted to textual errors",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				if !def.Delegates || def.Body.HasFailureBoundary {
					return true, ""
				}
				return false, "every delegation call's error must be checked and returned as an \"Error: \"-prefixed string"
			},
		},
		{
			ID:          "error-prefix",
			Description: "failure returns start with the canonical prefix",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				if def.Body.ErrorPrefixConsistent {
					return true, ""
				}
				return false, fmt.Sprintf("every failure-path return must start with %q", domain.ErrorPrefix)
			},
		},
		{
			ID:          "docstring",
			Description: "doc comment has a summary and documents every parameter",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				if def.Doc.Summary == "" {
					return false, "doc comment must open with a summary line"
				}
				var missing []string
				for _, p := range def.Parameters {
					if _, ok := def.Doc.Args[p.Name]; !ok {
						missing = append(missing, p.Name)
					}
				}
				if len(missing) > 0 {
					return false, "parameters missing from the Args: section: " + strings.Join(missing, ", ")
				}
				return true, ""
			},
		},
		{
			ID:          "param-guards",
			Description: "restricted-domain parameters are validated before delegation",
			Check: func(def *domain.ToolDefinition) (bool, string) {
				var unguarded []string
				for _, p := range def.ConstrainedParams() {
					if !def.GuardedParams[p.Name] {
						unguarded = append(unguarded, p.Name)
					}
				}
				if len(unguarded) > 0 {
					return false, "constrained parameters without a validation guard: " + strings.Join(unguarded, ", ")
				}
				return true, ""
			},
		},
	}
}
