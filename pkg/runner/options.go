package runner

import (
	"golang.org/x/time/rate"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/logging"
)

// RunnerOption configures a DefaultRunner.
type RunnerOption func(*DefaultRunner)

// WithEngine sets the engine suites are evaluated with.
func WithEngine(e assertion.Engine) RunnerOption {
	return func(r *DefaultRunner) {
		r.engine = e
	}
}

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *DefaultRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithValues supplies values that override the suites' own values
// of the same name.
func WithValues(values map[string]any) RunnerOption {
	return func(r *DefaultRunner) {
		r.values = values
	}
}

// WithHistory appends every run to the JSON lines log at path.
func WithHistory(path string) RunnerOption {
	return func(r *DefaultRunner) {
		r.historyPath = path
	}
}

// WithPreHook adds a pre-execution hook. A failing pre-hook
// aborts the suite.
func WithPreHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a post-execution hook. Failures are logged.
func WithPostHook(h Hook) RunnerOption {
	return func(r *DefaultRunner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithRateLimit starts at most perSecond suites per second, across
// sequential and parallel runs. A non-positive rate disables the
// limit.
func WithRateLimit(perSecond float64) RunnerOption {
	return func(r *DefaultRunner) {
		if perSecond <= 0 {
			r.limiter = nil
			return
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}
