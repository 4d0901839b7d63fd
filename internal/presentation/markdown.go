package presentation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/soundmesh/toolwright/pkg/domain"
)

// Markdown renders the full suite report as a markdown document, suitable
// for CI artifacts or glamour terminal rendering.
func Markdown(validations []domain.ValidationReport, tests []domain.TestReport) string {
	var b strings.Builder
	b.WriteString("# Tool Conformance Report\n\n")

	if len(validations) > 0 {
		b.WriteString("## Pattern Validation\n\n")
		b.WriteString("| Tool | Rule | Status | Detail |\n|---|---|---|---|\n")
		for _, r := range validations {
			for _, v := range r.Verdicts {
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.ToolName, v.RuleID, mdStatus(v.Passed, false), v.Message)
			}
		}
		b.WriteString("\n")
	}

	if len(tests) > 0 {
		b.WriteString("## Functional Testing\n\n")
		b.WriteString("| Tool | Case | Status | Detail |\n|---|---|---|---|\n")
		for _, r := range tests {
			for _, res := range r.Results {
				fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.ToolName, res.Case, mdStatus(res.Passed, res.Skipped), res.Detail)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func mdStatus(passed, skipped bool) string {
	switch {
	case skipped:
		return "skipped"
	case passed:
		return "pass"
	default:
		return "**fail**"
	}
}

// NewRenderer returns a markdown-to-terminal renderer.
// It auto-detects light/dark background the way the rest of the CLI does.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
