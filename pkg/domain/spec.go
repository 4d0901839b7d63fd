package domain

import (
	"fmt"
	"regexp"
)

// snakeCase matches the naming convention for exposed tool and parameter
// names (the wire names, not the Go identifiers).
var snakeCase = regexp.MustCompile(`^[a-z][a-z0-9]*(?:_[a-z0-9]+)*$`)

// SpecParameter describes one parameter in a ToolSpec, in the order it will
// appear in the generated signature.
type SpecParameter struct {
	Name        string `yaml:"name" json:"name" mapstructure:"name"`
	Type        string `yaml:"type" json:"type" mapstructure:"type"`
	Description string `yaml:"description" json:"description" mapstructure:"description"`
	Optional    bool   `yaml:"optional,omitempty" json:"optional,omitempty" mapstructure:"optional"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty" mapstructure:"default"`
}

// ToolSpec is the declarative input to the template generator. The same spec
// always yields byte-identical output.
type ToolSpec struct {
	Name        string          `yaml:"name" json:"name" mapstructure:"name"`
	Description string          `yaml:"description" json:"description" mapstructure:"description"`
	Mode        string          `yaml:"mode,omitempty" json:"mode,omitempty" mapstructure:"mode"` // "delegated" (default) or "direct"
	Handler     string          `yaml:"handler,omitempty" json:"handler,omitempty" mapstructure:"handler"`
	Method      string          `yaml:"method,omitempty" json:"method,omitempty" mapstructure:"method"`
	Parameters  []SpecParameter `yaml:"parameters,omitempty" json:"parameters,omitempty" mapstructure:"parameters"`
}

// specTypes are the parameter types the generator knows how to emit.
var specTypes = map[string]bool{
	"string": true,
	"int":    true,
	"float":  true,
	"bool":   true,
}

// Validate checks the spec before any emission occurs. It returns a
// *SpecError describing the first problem found, or nil.
func (s *ToolSpec) Validate() error {
	if s.Name == "" {
		return &SpecError{Field: "name", Reason: "required"}
	}
	if !snakeCase.MatchString(s.Name) {
		return &SpecError{Field: "name", Reason: fmt.Sprintf("%q is not snake_case", s.Name)}
	}
	if s.Description == "" {
		return &SpecError{Field: "description", Reason: "required"}
	}
	switch s.Mode {
	case "", "delegated":
		if s.Handler == "" {
			return &SpecError{Field: "handler", Reason: "required in delegated mode"}
		}
	case "direct":
		if s.Handler != "" {
			return &SpecError{Field: "handler", Reason: "must be empty in direct mode"}
		}
	default:
		return &SpecError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s.Mode)}
	}
	seen := make(map[string]bool, len(s.Parameters))
	for i, p := range s.Parameters {
		field := fmt.Sprintf("parameters[%d]", i)
		if p.Name == "" {
			return &SpecError{Field: field + ".name", Reason: "required"}
		}
		if !snakeCase.MatchString(p.Name) {
			return &SpecError{Field: field + ".name", Reason: fmt.Sprintf("%q is not snake_case", p.Name)}
		}
		if seen[p.Name] {
			return &SpecError{Field: field + ".name", Reason: fmt.Sprintf("duplicate parameter %q", p.Name)}
		}
		seen[p.Name] = true
		if !specTypes[p.Type] {
			return &SpecError{Field: field + ".type", Reason: fmt.Sprintf("unknown type %q", p.Type)}
		}
		if p.Description == "" {
			return &SpecError{Field: field + ".description", Reason: "required"}
		}
		if p.Optional && p.Default == "" {
			return &SpecError{Field: field + ".default", Reason: "required for optional parameters"}
		}
		if !p.Optional && p.Default != "" {
			return &SpecError{Field: field + ".default", Reason: "only allowed for optional parameters"}
		}
	}
	return nil
}

// ResolvedMode maps the spec's mode string to the tagged variant.
func (s *ToolSpec) ResolvedMode() Mode {
	if s.Mode == "direct" {
		return ModeDirect
	}
	return ModeDelegated
}

// ResolvedMethod is the delegation method: explicit, or the tool name.
func (s *ToolSpec) ResolvedMethod() string {
	if s.Method != "" {
		return s.Method
	}
	return s.Name
}
