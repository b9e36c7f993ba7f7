package report

import (
	"time"

	"github.com/google/uuid"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/format"
)

// Run is the rendered outcome of evaluating one suite.
type Run struct {
	ID         string            `json:"id" yaml:"id"`
	Suite      string            `json:"suite" yaml:"suite"`
	StartTime  time.Time         `json:"start_time" yaml:"start_time"`
	EndTime    time.Time         `json:"end_time" yaml:"end_time"`
	Duration   time.Duration     `json:"duration" yaml:"duration"`
	Summary    Summary           `json:"summary" yaml:"summary"`
	Assertions []AssertionReport `json:"assertions" yaml:"assertions"`
}

// AssertionReport is a Result with its values rendered as text, so
// that functions and cyclic values can be serialized.
type AssertionReport struct {
	Matcher  string        `json:"matcher" yaml:"matcher"`
	Target   string        `json:"target" yaml:"target"`
	Negated  bool          `json:"negated,omitempty" yaml:"negated,omitempty"`
	Passed   bool          `json:"passed" yaml:"passed"`
	Expected string        `json:"expected,omitempty" yaml:"expected,omitempty"`
	Actual   string        `json:"actual" yaml:"actual"`
	Message  string        `json:"message" yaml:"message"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewRun builds a Run for suite from results evaluated since start.
func NewRun(suite string, results []assertion.Result, start time.Time) *Run {
	end := time.Now()
	run := &Run{
		ID:         uuid.NewString(),
		Suite:      suite,
		StartTime:  start,
		EndTime:    end,
		Duration:   end.Sub(start),
		Summary:    Summarize(results),
		Assertions: make([]AssertionReport, len(results)),
	}
	for i, r := range results {
		run.Assertions[i] = AssertionReport{
			Matcher:  r.Matcher,
			Target:   r.Target,
			Negated:  r.Negated,
			Passed:   r.Passed,
			Expected: expected(r.Expected),
			Actual:   format.Value(r.Actual, false),
			Message:  r.Message,
			Duration: r.Duration,
		}
	}
	return run
}

// Passed reports whether every assertion of the run passed.
func (r *Run) Passed() bool {
	return r.Summary.Failed == 0
}

// Status is "passed" or "failed".
func (r *Run) Status() string {
	if r.Passed() {
		return "passed"
	}
	return "failed"
}

// expected renders a comparison argument; definitions without one
// render as empty.
func expected(v any) string {
	if v == nil {
		return ""
	}
	return format.Value(v, true)
}
