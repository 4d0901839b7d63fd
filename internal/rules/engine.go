package rules

import (
	"log/slog"
	"sync"

	"github.com/soundmesh/toolwright/internal/logging"
	"github.com/soundmesh/toolwright/pkg/domain"
)

const defaultWorkers = 4

// Engine evaluates the rule set against tool definitions. Evaluation is
// exhaustive: every rule runs even after the first failure, so reports are
// always complete.
type Engine struct {
	rules   []Rule
	workers int
	logger  *slog.Logger
}

// Option configures the engine.
type Option func(*Engine)

// WithRules appends extra rules after the defaults.
func WithRules(extra ...Rule) Option {
	return func(e *Engine) {
		e.rules = append(e.rules, extra...)
	}
}

// WithWorkers bounds catalog-validation parallelism.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an engine carrying the canonical rule set.
func New(opts ...Option) *Engine {
	e := &Engine{
		rules:   Defaults(),
		workers: defaultWorkers,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the rule list in evaluation order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Validate runs every rule against one definition and aggregates the
// verdicts. The only aggregation logic is the AND across verdicts.
func (e *Engine) Validate(def *domain.ToolDefinition) domain.ValidationReport {
	report := domain.ValidationReport{
		ToolName:      def.Name,
		Verdicts:      make([]domain.Verdict, 0, len(e.rules)),
		OverallPassed: true,
	}
	for _, rule := range e.rules {
		verdict := rule.Evaluate(def)
		if !verdict.Passed {
			report.OverallPassed = false
			e.logger.Debug("rule failed",
				"tool", def.Name,
				"rule", verdict.RuleID,
				"message", verdict.Message,
			)
		}
		report.Verdicts = append(report.Verdicts, verdict)
	}
	return report
}

// ValidateAll validates a catalog on a bounded worker pool. Reports come
// back in declaration order regardless of completion order; the ordering is
// a presentation guarantee, the validations themselves are independent.
func (e *Engine) ValidateAll(defs []domain.ToolDefinition) []domain.ValidationReport {
	reports := make([]domain.ValidationReport, len(defs))
	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i := range defs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			reports[i] = e.Validate(&defs[i])
		}(i)
	}
	wg.Wait()
	return reports
}
