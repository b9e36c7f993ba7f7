// Package runner executes bank suites through an assertion engine.
// It supports single, sequential and parallel execution with
// lifecycle hooks, and turns every suite into a report.Run.
//
// runner is an optional outer layer over the declarative engine.
// None of the core packages (value, format, equality, message,
// backend, expect) import it; expectations work without it.
package runner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/bank"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/report"
)

// Runner defines the interface for suite execution.
type Runner interface {
	// Run executes a single suite by name.
	Run(ctx context.Context, name string) (*report.Run, error)

	// RunAll executes every suite of the bank in name order.
	RunAll(ctx context.Context) ([]*report.Run, error)

	// RunParallel executes the named suites concurrently with
	// the given concurrency limit.
	RunParallel(ctx context.Context, names []string, maxConcurrency int) ([]*report.Run, error)
}

// Hook is a function invoked before or after a suite runs.
type Hook func(ctx context.Context, s *bank.Suite) error

// DefaultRunner is the standard Runner implementation.
type DefaultRunner struct {
	bank        *bank.Bank
	engine      assertion.Engine
	logger      logging.Logger
	values      map[string]any
	historyPath string
	preHooks    []Hook
	postHooks   []Hook
	limiter     *rate.Limiter
}

// NewRunner creates a DefaultRunner over b with the supplied
// options. Without WithEngine it evaluates with a fresh
// assertion engine.
func NewRunner(b *bank.Bank, opts ...RunnerOption) *DefaultRunner {
	r := &DefaultRunner{
		bank:   b,
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.engine == nil {
		r.engine = assertion.NewEngine(assertion.WithLogger(r.logger))
	}
	return r
}

// Run executes a single suite by name.
func (r *DefaultRunner) Run(ctx context.Context, name string) (*report.Run, error) {
	s, ok := r.bank.Get(name)
	if !ok {
		return nil, fmt.Errorf("suite not found: %s", name)
	}
	return r.execute(ctx, s)
}

// RunAll executes every suite of the bank in name order and stops
// at the first error. Failed assertions are not errors.
func (r *DefaultRunner) RunAll(ctx context.Context) ([]*report.Run, error) {
	suites := r.bank.All()
	runs := make([]*report.Run, 0, len(suites))
	for _, s := range suites {
		run, err := r.execute(ctx, s)
		if err != nil {
			return runs, fmt.Errorf("suite %s: %w", s.Name, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// RunParallel executes the named suites concurrently. Runs are
// returned in the order of names.
func (r *DefaultRunner) RunParallel(
	ctx context.Context,
	names []string,
	maxConcurrency int,
) ([]*report.Run, error) {
	return runParallel(ctx, r, names, maxConcurrency)
}

func (r *DefaultRunner) execute(ctx context.Context, s *bank.Suite) (*report.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	for _, hook := range r.preHooks {
		if err := hook(ctx, s); err != nil {
			return nil, fmt.Errorf("pre-hook failed: %w", err)
		}
	}

	start := time.Now()
	results := s.EvaluateWith(r.engine, r.values)
	run := report.NewRun(s.Name, results, start)

	r.logger.Info("suite finished",
		logging.StringField("suite", s.Name),
		logging.StringField("status", run.Status()),
		logging.IntField("passed", run.Summary.Passed),
		logging.IntField("total", run.Summary.Total),
		logging.DurationField("duration", run.Duration),
	)

	for _, hook := range r.postHooks {
		if err := hook(ctx, s); err != nil {
			r.logger.Warn("post-hook failed",
				logging.StringField("suite", s.Name),
				logging.ErrorField(err),
			)
		}
	}

	if r.historyPath != "" {
		if err := report.AppendToHistory(r.historyPath, run); err != nil {
			return run, fmt.Errorf("record history: %w", err)
		}
	}
	return run, nil
}
