// Package assertion evaluates declarative expectations. A Definition
// names a registered matcher, the target value it applies to and its
// comparison arguments; the engine runs it through an expectation
// with a recording backend and reports a Result instead of raising.
package assertion

import (
	"strings"
	"time"

	"digital.vasic.expect/pkg/format"
)

// Definition describes a single expectation to evaluate against
// a named value.
type Definition struct {
	// Matcher is the registered matcher name (e.g., "toEqual",
	// "toContain", "toBeCloseTo").
	Matcher string `json:"matcher" yaml:"matcher"`

	// Target is the name of the value to check.
	Target string `json:"target" yaml:"target"`

	// Value is the comparison argument for single-argument
	// matchers.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`

	// Values holds the positional arguments of multi-argument
	// matchers. It takes precedence over Value.
	Values []any `json:"values,omitempty" yaml:"values,omitempty"`

	// Not evaluates the negated matcher.
	Not bool `json:"not,omitempty" yaml:"not,omitempty"`

	// Precision overrides the engine precision for toBeCloseTo.
	Precision *int `json:"precision,omitempty" yaml:"precision,omitempty"`

	// Message is prefixed to the diagnostic.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Args returns the positional matcher arguments. toBeCloseTo gets
// the definition's precision, or defaultPrecision, as its second
// argument.
func (d Definition) Args(defaultPrecision int) []any {
	args := d.arguments()
	if d.Matcher == "toBeCloseTo" && len(args) < 2 {
		p := defaultPrecision
		if d.Precision != nil {
			p = *d.Precision
		}
		if len(args) == 0 {
			args = append(args, nil)
		}
		args = append(args, p)
	}
	return args
}

func (d Definition) arguments() []any {
	switch {
	case len(d.Values) > 0:
		return append([]any(nil), d.Values...)
	case d.Value != nil:
		return []any{d.Value}
	}
	return nil
}

// String renders the definition compactly, e.g.
// "status not toEqual 200".
func (d Definition) String() string {
	var b strings.Builder
	if d.Target != "" {
		b.WriteString(d.Target)
		b.WriteByte(' ')
	}
	if d.Not {
		b.WriteString("not ")
	}
	b.WriteString(d.Matcher)
	for _, a := range d.arguments() {
		b.WriteByte(' ')
		b.WriteString(format.Value(a, false))
	}
	return b.String()
}

// Result captures the outcome of evaluating a single definition.
type Result struct {
	// Matcher is the matcher that was evaluated.
	Matcher string `json:"matcher" yaml:"matcher"`

	// Target is the name of the value checked.
	Target string `json:"target" yaml:"target"`

	// Expected is the comparison argument.
	Expected any `json:"expected,omitempty" yaml:"expected,omitempty"`

	// Actual is the value that was observed.
	Actual any `json:"actual,omitempty" yaml:"actual,omitempty"`

	// Negated is set for "not" definitions.
	Negated bool `json:"negated,omitempty" yaml:"negated,omitempty"`

	// Passed indicates whether the expectation held.
	Passed bool `json:"passed" yaml:"passed"`

	// Message is the matcher diagnostic, or the reason the
	// definition could not be evaluated.
	Message string `json:"message" yaml:"message"`

	// Duration is how long the evaluation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}
