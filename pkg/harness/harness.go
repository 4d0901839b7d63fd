// Package harness functionally exercises live tool callables against a
// simulated delegation layer. It verifies the behavioral half of the
// contract the rule engine verifies statically: textual results, canonical
// error strings, and guards that short-circuit before delegation.
package harness

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/soundmesh/toolwright/internal/logging"
	"github.com/soundmesh/toolwright/pkg/domain"
	"github.com/soundmesh/toolwright/pkg/ports"
)

// HappyPayload is the textual payload the standard battery configures the
// mock delegation layer to return.
const HappyPayload = "delegation ok"

const defaultTimeout = 5 * time.Second

// TestCase drives one harness invocation. Args are the tool's own
// parameters, positionally, excluding the leading context and registry.
// A nil Configure means the delegation layer is absent: the tool receives a
// nil registry.
type TestCase struct {
	Name      string
	Args      []any
	Configure func(*MockRegistry)
	Expect    domain.OutcomeKind
	// ExpectText, when set, must match the returned text exactly.
	ExpectText string
	// ExpectNoCalls asserts the registry was never reached, via the
	// mock's invocation record.
	ExpectNoCalls bool
	// Skip records the case as skipped (not failed), with SkipReason as
	// the detail. Used when a battery case does not apply to the tool.
	Skip       bool
	SkipReason string
}

// Harness runs test cases sequentially, one fresh MockRegistry per case, so
// invocation records stay unambiguous and no state leaks between cases.
type Harness struct {
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the harness.
type Option func(*Harness)

// WithTimeout bounds each case; a tool exceeding it is recorded as hung.
func WithTimeout(d time.Duration) Option {
	return func(h *Harness) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a harness with the default per-case timeout.
func New(opts ...Option) *Harness {
	h := &Harness{timeout: defaultTimeout, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run exercises fn against the given cases, or against the standard battery
// derived from def when no custom cases are supplied.
func (h *Harness) Run(ctx context.Context, fn any, def *domain.ToolDefinition, cases ...TestCase) domain.TestReport {
	report := domain.TestReport{ToolName: def.Name, OverallPassed: true}

	if len(cases) == 0 {
		cases = Battery(def)
	}
	for _, tc := range cases {
		result := h.runCase(ctx, fn, tc)
		if !result.Passed && !result.Skipped {
			report.OverallPassed = false
			h.logger.Debug("case failed", "tool", def.Name, "case", tc.Name, "detail", result.Detail)
		}
		report.Results = append(report.Results, result)
	}
	return report
}

// Battery builds the standard four-case battery for a definition. Tools
// with no delegation dependency skip the registry-dependent cases; tools
// with no constrained parameter get the invalid-parameter case marked
// skipped rather than failed.
func Battery(def *domain.ToolDefinition) []TestCase {
	args := defaultArgs(def)
	var cases []TestCase

	if def.Delegates {
		cases = append(cases, TestCase{
			Name:          "unavailable dependency",
			Args:          args,
			Expect:        domain.OutcomeErrorText,
			ExpectText:    domain.NotInitialized,
			ExpectNoCalls: true,
		})
	}

	happy := TestCase{
		Name:      "happy path",
		Args:      args,
		Configure: func(m *MockRegistry) {},
		Expect:    domain.OutcomeText,
	}
	if def.Delegates {
		happy.Configure = func(m *MockRegistry) { configureTarget(m, def).Return(HappyPayload) }
		happy.ExpectText = HappyPayload
	}
	cases = append(cases, happy)

	if def.Delegates {
		cases = append(cases, TestCase{
			Name:      "delegation failure",
			Args:      args,
			Configure: func(m *MockRegistry) { configureTarget(m, def).Fail(fmt.Errorf("delegation boom")) },
			Expect:    domain.OutcomeErrorText,
		})
	}

	if tc, ok := invalidParamCase(def); ok {
		cases = append(cases, tc)
	} else {
		cases = append(cases, TestCase{
			Name:       "invalid parameter",
			Skip:       true,
			SkipReason: "no constrained parameter declared",
		})
	}
	return cases
}

func configureTarget(m *MockRegistry, def *domain.ToolDefinition) *MockHandler {
	if def.Mode == domain.ModeDirect {
		return m.OnBackend()
	}
	return m.On(def.Handler)
}

// invalidParamCase builds case 4 from the first constrained parameter.
func invalidParamCase(def *domain.ToolDefinition) (TestCase, bool) {
	constrained := def.ConstrainedParams()
	if len(constrained) == 0 {
		return TestCase{}, false
	}
	bad := constrained[0]
	c := domain.ConstraintFor(bad, def.Doc.Args[bad.Name])

	args := defaultArgs(def)
	for i, p := range def.Parameters {
		if p.Name == bad.Name {
			args[i] = c.OutOfDomain()
		}
	}
	return TestCase{
		Name:          "invalid parameter",
		Args:          args,
		Configure:     func(m *MockRegistry) { configureTarget(m, def).Return(HappyPayload) },
		Expect:        domain.OutcomeErrorText,
		ExpectText:    c.Violation(bad.Name),
		ExpectNoCalls: true,
	}, true
}

// defaultArgs synthesizes in-domain values for every declared parameter.
func defaultArgs(def *domain.ToolDefinition) []any {
	args := make([]any, len(def.Parameters))
	for i, p := range def.Parameters {
		if c := domain.ConstraintFor(p, def.Doc.Args[p.Name]); c != nil {
			if c.Kind == domain.ConstraintEnum {
				args[i] = c.Choices[0]
			} else if p.Type == "int" {
				args[i] = int(c.Min)
			} else {
				args[i] = c.Min
			}
			continue
		}
		switch p.Type {
		case "int":
			args[i] = 1
		case "float64":
			args[i] = 1.0
		case "bool":
			args[i] = true
		default:
			args[i] = "test value"
		}
	}
	return args
}

// runCase invokes the tool once, under timeout, with panic containment.
// A tool that panics or hangs is a recorded violation, never a harness
// crash.
func (h *Harness) runCase(ctx context.Context, fn any, tc TestCase) domain.TestResult {
	result := domain.TestResult{Case: tc.Name}
	if tc.Skip {
		result.Skipped = true
		result.Passed = true
		result.Detail = tc.SkipReason
		return result
	}

	var reg *MockRegistry
	var regValue ports.Registry // nil when the dependency is "absent"
	if tc.Configure != nil {
		reg = NewMockRegistry()
		tc.Configure(reg)
		regValue = reg
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	text, outcome, detail := h.invoke(ctx, fn, regValue, tc.Args)
	result.Outcome = outcome
	result.Detail = detail

	switch {
	case outcome != tc.Expect:
		result.Detail = fmt.Sprintf("expected outcome %s, got %s: %s", tc.Expect, outcome, detail)
	case tc.ExpectText != "" && text != tc.ExpectText:
		result.Detail = fmt.Sprintf("expected %q, got %q", tc.ExpectText, text)
	case tc.ExpectNoCalls && reg != nil && len(reg.Calls()) > 0:
		result.Detail = fmt.Sprintf("registry reached %d time(s) before validation", len(reg.Calls()))
	default:
		result.Passed = true
		result.Detail = detail
	}
	return result
}

// invoke calls the tool via reflection: fn(ctx, reg, args...).
func (h *Harness) invoke(ctx context.Context, fn any, reg ports.Registry, args []any) (string, domain.OutcomeKind, string) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return "", domain.OutcomePanicked, "not a function"
	}
	t := v.Type()
	if t.NumIn() != len(args)+2 || t.IsVariadic() {
		return "", domain.OutcomePanicked, fmt.Sprintf("signature takes %d arguments, battery supplies %d", t.NumIn(), len(args)+2)
	}

	in := make([]reflect.Value, 0, t.NumIn())
	in = append(in, reflect.ValueOf(ctx))
	if reg == nil {
		in = append(in, reflect.Zero(t.In(1)))
	} else {
		in = append(in, reflect.ValueOf(reg))
	}
	for i, arg := range args {
		want := t.In(i + 2)
		av := reflect.ValueOf(arg)
		if av.Type() != want {
			if !av.Type().ConvertibleTo(want) {
				return "", domain.OutcomePanicked, fmt.Sprintf("argument %d: cannot convert %s to %s", i, av.Type(), want)
			}
			av = av.Convert(want)
		}
		in = append(in, av)
	}

	type callResult struct {
		text string
		err  string
	}
	done := make(chan callResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- callResult{err: fmt.Sprintf("panic: %v", r)}
			}
		}()
		out := v.Call(in)
		if len(out) != 1 || out[0].Kind() != reflect.String {
			done <- callResult{err: "tool must return a single string"}
			return
		}
		done <- callResult{text: out[0].String()}
	}()

	select {
	case r := <-done:
		if r.err != "" {
			return "", domain.OutcomePanicked, r.err
		}
		if strings.HasPrefix(r.text, domain.ErrorPrefix) {
			return r.text, domain.OutcomeErrorText, ""
		}
		return r.text, domain.OutcomeText, ""
	case <-ctx.Done():
		return "", domain.OutcomeHung, fmt.Sprintf("exceeded %s timeout", h.timeout)
	}
}
