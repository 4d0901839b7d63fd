package domain

// Verdict is the outcome of one rule against one tool definition.
type Verdict struct {
	RuleID  string `json:"rule_id"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// ValidationReport aggregates every rule verdict for one tool. Evaluation is
// exhaustive: all rules run, no short-circuit, so the report is complete even
// when the first rule already failed.
type ValidationReport struct {
	ToolName      string    `json:"tool_name"`
	Verdicts      []Verdict `json:"verdicts"`
	OverallPassed bool      `json:"overall_passed"`
}

// FailedVerdicts returns the failing subset, in rule order.
func (r *ValidationReport) FailedVerdicts() []Verdict {
	var out []Verdict
	for _, v := range r.Verdicts {
		if !v.Passed {
			out = append(out, v)
		}
	}
	return out
}

// RuleInfo describes one rule for introspection surfaces (CLI listing, the
// HTTP rules endpoint) without exposing the rule engine itself.
type RuleInfo struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// OutcomeKind classifies what a tool invocation actually did under the mock
// harness.
type OutcomeKind string

const (
	// OutcomeText is a plain textual result without the error prefix.
	OutcomeText OutcomeKind = "text"
	// OutcomeErrorText is a textual result carrying the canonical error prefix.
	OutcomeErrorText OutcomeKind = "error_text"
	// OutcomePanicked means the tool raised instead of returning text. A
	// violation against the tool, never a harness crash.
	OutcomePanicked OutcomeKind = "panicked"
	// OutcomeHung means the tool exceeded the per-case timeout.
	OutcomeHung OutcomeKind = "hung"
)

// TestResult records what one harness case observed.
type TestResult struct {
	Case    string      `json:"case"`
	Passed  bool        `json:"passed"`
	Skipped bool        `json:"skipped,omitempty"`
	Outcome OutcomeKind `json:"outcome,omitempty"`
	Detail  string      `json:"detail,omitempty"`
}

// TestReport aggregates the harness results for one tool, the functional
// counterpart of ValidationReport.
type TestReport struct {
	ToolName      string       `json:"tool_name"`
	Results       []TestResult `json:"results"`
	OverallPassed bool         `json:"overall_passed"`
}
