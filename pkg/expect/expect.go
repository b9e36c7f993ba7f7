// Package expect provides fluent expectations over arbitrary values.
//
//	expect.Expect(got).ToEqual(want)
//	expect.Expect(err).Not().ToBeNull()
//	expect.Expect(func() { parse("") }).ToThrow("empty input")
//
// Every matcher computes an outcome, renders an "expected X to Y Z"
// diagnostic and reports it to the expectation's Backend exactly once.
// Negation is a second Expectation over the same subject whose backend
// has Pass and Fail swapped, so x.Not().Not() == x.
package expect

import (
	"digital.vasic.expect/pkg/backend"
	"digital.vasic.expect/pkg/message"
	"digital.vasic.expect/pkg/value"
)

// NegatedLabel is the label of a negated expectation.
const NegatedLabel = "not "

// Expectation binds one subject to one backend. It is immutable
// after construction.
type Expectation struct {
	subject  any
	backend  backend.Backend
	label    string
	registry *Registry
	not      *Expectation
}

// Option configures an Expectation.
type Option func(*options)

type options struct {
	backend  backend.Backend
	registry *Registry
}

// WithBackend reports outcomes to b instead of the default backend.
func WithBackend(b backend.Backend) Option {
	return func(o *options) {
		if b != nil {
			o.backend = b
		}
	}
}

// WithRegistry resolves named matchers in r instead of the
// process-wide registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) {
		if r != nil {
			o.registry = r
		}
	}
}

// Expect wraps subject using the default backend and registry.
func Expect(subject any) *Expectation {
	return New(subject)
}

// New wraps subject with the given options.
func New(subject any, opts ...Option) *Expectation {
	o := options{backend: backend.Default(), registry: DefaultRegistry()}
	for _, opt := range opts {
		opt(&o)
	}
	return build(subject, o.backend, "", nil, o.registry)
}

func build(subject any, b backend.Backend, label string, parent *Expectation, reg *Registry) *Expectation {
	x := &Expectation{
		subject:  subject,
		backend:  b,
		label:    label,
		registry: reg,
	}
	if parent != nil {
		x.not = parent
	} else {
		x.not = build(subject, backend.Negate(b), NegatedLabel, x, reg)
	}
	return x
}

// Not returns the negated view of this expectation.
func (x *Expectation) Not() *Expectation { return x.not }

// Subject returns the value under test.
func (x *Expectation) Subject() any { return x.subject }

// Label returns "" or NegatedLabel.
func (x *Expectation) Label() string { return x.label }

// Negated reports whether this is the negated view.
func (x *Expectation) Negated() bool { return x.label == NegatedLabel }

// Backend returns the backend outcomes are reported to.
func (x *Expectation) Backend() backend.Backend { return x.backend }

// Registry returns the registry named matchers resolve in.
func (x *Expectation) Registry() *Registry { return x.registry }

// Message renders the diagnostic for action against comparison.
// Pass value.Undefined when the matcher takes no argument.
func (x *Expectation) Message(action string, comparison any, customMsg ...string) string {
	return message.Generate(x.subject, x.label, action, comparison, first(customMsg))
}

// Assert reports ok to the backend with the diagnostic for action
// against comparison. It is the building block for custom matchers.
func (x *Expectation) Assert(ok bool, action string, comparison any, customMsg ...string) {
	msg := x.Message(action, comparison, customMsg...)
	if ok {
		x.backend.Pass(msg)
		return
	}
	x.backend.Fail(msg)
}

// Pass reports an unconditional pass.
func (x *Expectation) Pass() {
	x.backend.Pass("")
}

// Fail reports an unconditional failure described by why and what.
func (x *Expectation) Fail(why string, what any, customMsg ...string) {
	x.backend.Fail(x.Message(why, what, customMsg...))
}

// Expecter creates expectations sharing one backend and registry,
// typically one per test suite.
type Expecter struct {
	opts []Option
}

// NewExpecter creates an Expecter with the given options.
func NewExpecter(opts ...Option) *Expecter {
	return &Expecter{opts: opts}
}

// Expect wraps subject with the Expecter's options.
func (e *Expecter) Expect(subject any) *Expectation {
	return New(subject, e.opts...)
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func argAt(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return value.Undefined
}
