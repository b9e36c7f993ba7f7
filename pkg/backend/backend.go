// Package backend defines what happens once a matcher knows its
// outcome. A Backend receives exactly one Pass or Fail per matcher
// invocation; the default one ignores passes and panics with an
// *AssertionError on failure.
package backend

import "sync"

// Backend is the pass/fail pair an expectation reports to.
type Backend interface {
	// Pass is called with the diagnostic of a satisfied matcher.
	Pass(message string)

	// Fail is called with the diagnostic of an unsatisfied
	// matcher. Implementations may panic.
	Fail(message string)
}

// AssertionError is the single failure kind raised by Default.
type AssertionError struct {
	Message string `json:"message"`
}

// Error returns the diagnostic message.
func (e *AssertionError) Error() string {
	return e.Message
}

// Funcs adapts a pair of functions to a Backend. A nil function
// is a no-op.
type Funcs struct {
	PassFunc func(message string)
	FailFunc func(message string)
}

// Pass calls PassFunc.
func (f Funcs) Pass(message string) {
	if f.PassFunc != nil {
		f.PassFunc(message)
	}
}

// Fail calls FailFunc.
func (f Funcs) Fail(message string) {
	if f.FailFunc != nil {
		f.FailFunc(message)
	}
}

type defaultBackend struct{}

func (defaultBackend) Pass(string) {}

func (defaultBackend) Fail(message string) {
	panic(&AssertionError{Message: message})
}

var std Backend = defaultBackend{}

// Default returns the process-wide default backend: silent on pass,
// panicking with *AssertionError on failure. It is stateless.
func Default() Backend {
	return std
}

type negated struct {
	inner Backend
}

func (n negated) Pass(message string) { n.inner.Fail(message) }
func (n negated) Fail(message string) { n.inner.Pass(message) }

// Negate returns b with Pass and Fail swapped. Negating a negated
// backend returns the original.
func Negate(b Backend) Backend {
	if n, ok := b.(negated); ok {
		return n.inner
	}
	return negated{inner: b}
}

// Counter counts outcomes and keeps their messages. It never
// panics and is safe for concurrent use.
type Counter struct {
	mu       sync.Mutex
	passed   int
	failed   int
	failures []string
	last     *Outcome
}

// Outcome is one recorded matcher result.
type Outcome struct {
	Passed  bool
	Message string
}

// NewCounter creates an empty Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// Pass records a satisfied matcher.
func (c *Counter) Pass(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passed++
	c.last = &Outcome{Passed: true, Message: message}
}

// Fail records an unsatisfied matcher.
func (c *Counter) Fail(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failed++
	c.failures = append(c.failures, message)
	c.last = &Outcome{Passed: false, Message: message}
}

// Passed returns the number of recorded passes.
func (c *Counter) Passed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passed
}

// Failed returns the number of recorded failures.
func (c *Counter) Failed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failed
}

// Total returns the number of recorded outcomes.
func (c *Counter) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passed + c.failed
}

// Failures returns a copy of the failure messages in order.
func (c *Counter) Failures() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.failures))
	copy(out, c.failures)
	return out
}

// Last returns the most recent outcome, if any.
func (c *Counter) Last() (Outcome, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Outcome{}, false
	}
	return *c.last, true
}

// Reset clears all recorded outcomes.
func (c *Counter) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passed, c.failed = 0, 0
	c.failures = nil
	c.last = nil
}
