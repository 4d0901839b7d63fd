package toolwright

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/soundmesh/toolwright/internal/extract"
	"github.com/soundmesh/toolwright/internal/generate"
	"github.com/soundmesh/toolwright/internal/logging"
	"github.com/soundmesh/toolwright/internal/rules"
	"github.com/soundmesh/toolwright/pkg/domain"
	"github.com/soundmesh/toolwright/pkg/harness"
)

// Suite is the high-level entry point for the library. It wires the
// extractor, the rule engine and the mock harness around one shared
// structural model, so the three can never disagree about what a conformant
// tool looks like.
type Suite struct {
	logger     *slog.Logger
	timeout    time.Duration
	workers    int
	extraRules []rules.Rule

	engine *rules.Engine
	runner *harness.Harness
}

// Option defines a functional option for configuring the Suite.
type Option func(*Suite)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Suite) {
		s.logger = logger
	}
}

// WithTimeout sets the per-case harness timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Suite) {
		s.timeout = d
	}
}

// WithWorkers bounds catalog-validation parallelism.
func WithWorkers(n int) Option {
	return func(s *Suite) {
		s.workers = n
	}
}

// WithRules appends project-specific rules after the canonical set.
func WithRules(extra ...rules.Rule) Option {
	return func(s *Suite) {
		s.extraRules = append(s.extraRules, extra...)
	}
}

// New creates a Suite with the canonical rule set and default limits.
func New(opts ...Option) *Suite {
	s := &Suite{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.engine = rules.New(
		rules.WithLogger(s.logger),
		rules.WithWorkers(s.workers),
		rules.WithRules(s.extraRules...),
	)
	var hopts []harness.Option
	hopts = append(hopts, harness.WithLogger(s.logger))
	if s.timeout > 0 {
		hopts = append(hopts, harness.WithTimeout(s.timeout))
	}
	s.runner = harness.New(hopts...)
	return s
}

// Rules returns the active rule list in evaluation order.
func (s *Suite) Rules() []rules.Rule {
	return s.engine.Rules()
}

// RuleIndex returns id and description for every active rule, for
// introspection surfaces that must not depend on the engine.
func (s *Suite) RuleIndex() []domain.RuleInfo {
	var out []domain.RuleInfo
	for _, r := range s.engine.Rules() {
		out = append(out, domain.RuleInfo{ID: r.ID, Description: r.Description})
	}
	return out
}

// Extract parses tool source into definitions, in declaration order. The
// error joins per-unit extraction failures; definitions that did extract
// are still returned alongside it.
func (s *Suite) Extract(src string) ([]domain.ToolDefinition, error) {
	return extract.Source(src)
}

// ValidateSource extracts every tool in src and validates each against the
// rule set. One malformed unit fails only itself, never the batch.
func (s *Suite) ValidateSource(src string) ([]domain.ValidationReport, error) {
	defs, err := extract.Source(src)
	if defs == nil && err != nil {
		return nil, err
	}
	return s.engine.ValidateAll(defs), err
}

// ValidateFile reads and validates every tool in the file.
func (s *Suite) ValidateFile(path string) ([]domain.ValidationReport, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.ValidateSource(string(src))
}

// Validate runs the rule set over an already-extracted definition.
func (s *Suite) Validate(def *domain.ToolDefinition) domain.ValidationReport {
	return s.engine.Validate(def)
}

// Generate emits convention-correct source for the spec.
func (s *Suite) Generate(spec domain.ToolSpec) (string, error) {
	return generate.Tool(spec)
}

// GenerateFile emits a complete source file for a list of specs.
func (s *Suite) GenerateFile(pkg string, specs []domain.ToolSpec) (string, error) {
	return generate.File(pkg, specs)
}

// SelfCheck generates from the spec, re-extracts the output and validates
// it: the generator/validator agreement loop. A failing report here is a
// toolchain bug, not a user error.
func (s *Suite) SelfCheck(spec domain.ToolSpec) (domain.ValidationReport, error) {
	src, err := generate.Tool(spec)
	if err != nil {
		return domain.ValidationReport{}, err
	}
	def, err := extract.Function(src, "")
	if err != nil {
		return domain.ValidationReport{}, err
	}
	return s.engine.Validate(def), nil
}

// Exercise runs the mock harness battery (or the given custom cases)
// against a live tool callable.
func (s *Suite) Exercise(ctx context.Context, fn any, def *domain.ToolDefinition, cases ...harness.TestCase) domain.TestReport {
	return s.runner.Run(ctx, fn, def, cases...)
}
