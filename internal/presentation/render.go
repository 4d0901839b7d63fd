// Package presentation renders validation and test reports for humans: one
// line per rule or case with a pass/fail glyph, plain or colored depending
// on the terminal, plus a markdown form for rich rendering.
package presentation

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/soundmesh/toolwright/pkg/domain"
)

const (
	glyphPass = "✅"
	glyphFail = "❌"
	glyphSkip = "⏭️"
)

// IsTerminal reports whether stdout is interactive. Callers use it to pick
// between plain and glamour-rendered output.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func statusLabel(passed bool) string {
	p := termenv.ColorProfile()
	if passed {
		return termenv.String("PASSED").Foreground(p.Color("#22c55e")).String()
	}
	return termenv.String("FAILED").Foreground(p.Color("#ef4444")).String()
}

// Validation renders one validation report, one line per rule verdict.
func Validation(r domain.ValidationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", glyph(r.OverallPassed, false), r.ToolName, statusLabel(r.OverallPassed))
	for _, v := range r.Verdicts {
		fmt.Fprintf(&b, "  %s %-20s %s\n", glyph(v.Passed, false), v.RuleID, v.Message)
	}
	return b.String()
}

// Test renders one harness report, one line per case.
func Test(r domain.TestReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", glyph(r.OverallPassed, false), r.ToolName, statusLabel(r.OverallPassed))
	for _, res := range r.Results {
		line := fmt.Sprintf("  %s %-24s", glyph(res.Passed, res.Skipped), res.Case)
		if res.Detail != "" {
			line += " " + res.Detail
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Summary renders the suite footer with overall counts and status.
func Summary(validations []domain.ValidationReport, tests []domain.TestReport) string {
	passed := true
	validOK := 0
	for _, r := range validations {
		if r.OverallPassed {
			validOK++
		} else {
			passed = false
		}
	}
	testOK := 0
	for _, r := range tests {
		if r.OverallPassed {
			testOK++
		} else {
			passed = false
		}
	}

	var b strings.Builder
	b.WriteString("Suite Summary\n")
	b.WriteString(strings.Repeat("-", 30) + "\n")
	fmt.Fprintf(&b, "Pattern validation: %d/%d tools\n", validOK, len(validations))
	if len(tests) > 0 {
		fmt.Fprintf(&b, "Functional testing: %d/%d tools\n", testOK, len(tests))
	}
	fmt.Fprintf(&b, "Overall: %s\n", statusLabel(passed))
	return b.String()
}

func glyph(passed, skipped bool) string {
	switch {
	case skipped:
		return glyphSkip
	case passed:
		return glyphPass
	default:
		return glyphFail
	}
}
