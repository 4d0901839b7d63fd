package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ConstraintKind tags the two restricted-domain shapes we recognize.
type ConstraintKind int

const (
	ConstraintRange ConstraintKind = iota
	ConstraintEnum
)

// Constraint is a restricted parameter domain inferred from the parameter's
// description text. The generator and the validator share this parser so the
// guard they emit and the guard they expect can never drift apart.
//
// Prose-derived constraints are a best-effort heuristic: a description the
// patterns below don't match simply yields no constraint.
type Constraint struct {
	Kind     ConstraintKind
	Min, Max float64
	Choices  []string
}

var (
	rangeParen   = regexp.MustCompile(`\((-?\d+(?:\.\d+)?)\s*-\s*(-?\d+(?:\.\d+)?)\)`)
	rangeBetween = regexp.MustCompile(`(?i)between\s+(-?\d+(?:\.\d+)?)\s+and\s+(-?\d+(?:\.\d+)?)`)
	// rangeBare matches a standalone "60-200" token, delimited so it never
	// fires inside a parenthesized range or a larger word.
	rangeBare = regexp.MustCompile(`(?:^|[\s:,])(-?\d+(?:\.\d+)?)\s*-\s*(-?\d+(?:\.\d+)?)(?:[\s.,;]|$)`)
	enumOneOf    = regexp.MustCompile(`(?i)one of:?\s+([a-z][a-z0-9_]*(?:\s*,\s*[a-z][a-z0-9_]*)+)`)
	enumParen    = regexp.MustCompile(`\(([a-z][a-z0-9_]*(?:\s*,\s*[a-z][a-z0-9_]*)+)\)`)
)

// ParseConstraint inspects a parameter description and returns the domain it
// declares, or nil when no recognizable phrasing is found. Recognized forms:
//
//	"Tempo in beats per minute (60-200)"
//	"60-200"
//	"Length in bars, between 4 and 64"
//	"Type of track to create (audio, midi, return)"
//	"Genre style, one of: techno, industrial, house, minimal"
func ParseConstraint(description string) *Constraint {
	if description == "" {
		return nil
	}
	for _, re := range []*regexp.Regexp{rangeParen, rangeBetween, rangeBare} {
		if m := re.FindStringSubmatch(description); m != nil {
			min, err1 := strconv.ParseFloat(m[1], 64)
			max, err2 := strconv.ParseFloat(m[2], 64)
			if err1 == nil && err2 == nil && min < max {
				return &Constraint{Kind: ConstraintRange, Min: min, Max: max}
			}
		}
	}
	for _, re := range []*regexp.Regexp{enumOneOf, enumParen} {
		if m := re.FindStringSubmatch(description); m != nil {
			var choices []string
			for _, c := range strings.Split(m[1], ",") {
				choices = append(choices, strings.TrimSpace(c))
			}
			return &Constraint{Kind: ConstraintEnum, Choices: choices}
		}
	}
	return nil
}

// ConstraintFor returns the constraint declared by desc only when the
// parameter's type can express it: ranges for numeric parameters, enums for
// string parameters. Both the generator and the param-guards rule go through
// this helper, which is what keeps them agreeing on when a guard is due.
func ConstraintFor(p Parameter, desc string) *Constraint {
	c := ParseConstraint(desc)
	if c == nil {
		return nil
	}
	switch c.Kind {
	case ConstraintRange:
		if p.Type == "int" || p.Type == "float64" || p.Type == "float" {
			return c
		}
	case ConstraintEnum:
		if p.Type == "string" {
			return c
		}
	}
	return nil
}

// Allows reports whether the value falls inside the domain. Unknown value
// types are out of domain.
func (c *Constraint) Allows(v any) bool {
	switch c.Kind {
	case ConstraintRange:
		switch n := v.(type) {
		case float64:
			return n >= c.Min && n <= c.Max
		case int:
			return float64(n) >= c.Min && float64(n) <= c.Max
		}
		return false
	case ConstraintEnum:
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, choice := range c.Choices {
			if s == choice {
				return true
			}
		}
	}
	return false
}

// Violation returns the canonical guard message for the named parameter.
// The generator emits this exact string and the harness expects it.
func (c *Constraint) Violation(name string) string {
	if c.Kind == ConstraintEnum {
		return fmt.Sprintf("%s%s must be one of: %s", ErrorPrefix, name, strings.Join(c.Choices, ", "))
	}
	return fmt.Sprintf("%s%s must be between %s and %s", ErrorPrefix, name, FormatNumber(c.Min), FormatNumber(c.Max))
}

// OutOfDomain returns a sample value guaranteed to violate the constraint,
// used by the harness to probe validation guards.
func (c *Constraint) OutOfDomain() any {
	if c.Kind == ConstraintEnum {
		return "out_of_domain"
	}
	return c.Max + 1
}

// FormatNumber renders a bound without a trailing ".0" for whole numbers, so
// guard messages read "between 60 and 200" rather than "between 60.0 and 200.0".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
