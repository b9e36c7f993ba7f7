package assertion

import (
	"errors"
	"fmt"
	"time"

	"digital.vasic.expect/pkg/backend"
	"digital.vasic.expect/pkg/expect"
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/metrics"
	"digital.vasic.expect/pkg/monitor"
)

// Engine defines the interface for declarative assertion engines.
type Engine interface {
	// Evaluate checks a single definition against the given
	// value.
	Evaluate(def Definition, value any) Result

	// EvaluateAll checks multiple definitions against a map of
	// named values. Each definition's Target field is used as
	// the key into the values map.
	EvaluateAll(defs []Definition, values map[string]any) []Result

	// Register adds a matcher under name, replacing any matcher
	// already registered under it.
	Register(name string, m expect.Matcher) error
}

// DefaultEngine is the standard Engine implementation. It is
// safe for concurrent use.
type DefaultEngine struct {
	registry  *expect.Registry
	logger    logging.Logger
	metrics   metrics.AssertionMetrics
	collector *monitor.EventCollector
	precision int
	failFast  bool
}

// Option configures a DefaultEngine.
type Option func(*DefaultEngine)

// WithRegistry evaluates matchers from r instead of a private copy
// of the default registry.
func WithRegistry(r *expect.Registry) Option {
	return func(e *DefaultEngine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithLogger logs every outcome.
func WithLogger(l logging.Logger) Option {
	return func(e *DefaultEngine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics records every outcome and run.
func WithMetrics(m metrics.AssertionMetrics) Option {
	return func(e *DefaultEngine) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithCollector publishes every outcome and run as events.
func WithCollector(c *monitor.EventCollector) Option {
	return func(e *DefaultEngine) {
		e.collector = c
	}
}

// WithPrecision sets the default toBeCloseTo precision.
func WithPrecision(p int) Option {
	return func(e *DefaultEngine) {
		if p >= 0 {
			e.precision = p
		}
	}
}

// WithFailFast stops EvaluateAll at the first failed result.
func WithFailFast(on bool) Option {
	return func(e *DefaultEngine) {
		e.failFast = on
	}
}

// NewEngine creates a DefaultEngine. Unless WithRegistry is given it
// evaluates a private copy of the default registry extended with
// the engine matchers, so registrations stay local to the engine.
func NewEngine(opts ...Option) *DefaultEngine {
	e := &DefaultEngine{
		logger:    logging.NullLogger{},
		metrics:   metrics.NoopMetrics{},
		precision: expect.DefaultPrecision,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = expect.DefaultRegistry().Clone()
		RegisterBuiltins(e.registry)
	}
	return e
}

// Registry returns the registry matchers are resolved in.
func (e *DefaultEngine) Registry() *expect.Registry {
	return e.registry
}

// Register adds a matcher under name, replacing any matcher
// already registered under it.
func (e *DefaultEngine) Register(name string, m expect.Matcher) error {
	if name == "" {
		return errors.New("matcher name is empty")
	}
	if m == nil {
		return fmt.Errorf("matcher %s is nil", name)
	}
	e.registry.Register(name, m)
	return nil
}

// HasMatcher returns true if name is registered.
func (e *DefaultEngine) HasMatcher(name string) bool {
	return e.registry.Has(name)
}

// Evaluate runs a single definition against the provided value.
// Unknown matchers, matchers that report nothing and matchers that
// panic produce failed results.
func (e *DefaultEngine) Evaluate(def Definition, value any) Result {
	start := time.Now()
	res := Result{
		Matcher:  def.Matcher,
		Target:   def.Target,
		Expected: def.Value,
		Actual:   value,
		Negated:  def.Not,
	}
	if len(def.Values) > 0 {
		res.Expected = def.Values
	}

	if !e.registry.Has(def.Matcher) {
		res.Message = fmt.Sprintf("unknown matcher: %s", def.Matcher)
		res.Duration = time.Since(start)
		e.logger.Warn(res.Message, logging.TargetField(def.Target))
		return res
	}

	counter := backend.NewCounter()
	var b backend.Backend = counter
	b = backend.Logging(b, e.logger, logging.AssertionLog{
		Matcher: def.Matcher,
		Target:  def.Target,
		Negated: def.Not,
	})
	b = backend.Metrics(b, e.metrics, def.Matcher)
	if e.collector != nil {
		b = backend.Events(b, e.collector, def.Matcher, def.Target)
	}

	x := expect.New(value, expect.WithBackend(b), expect.WithRegistry(e.registry))
	if def.Not {
		x = x.Not()
	}

	if err := e.run(x, def); err != nil {
		res.Message = err.Error()
		res.Duration = time.Since(start)
		e.logger.Error("matcher failed",
			logging.MatcherField(def.Matcher),
			logging.ErrorField(err),
		)
		return res
	}

	out, ok := counter.Last()
	res.Duration = time.Since(start)
	if !ok {
		res.Message = fmt.Sprintf("matcher %s reported no outcome", def.Matcher)
		return res
	}
	res.Passed = out.Passed
	res.Message = out.Message
	return res
}

func (e *DefaultEngine) run(x *expect.Expectation, def Definition) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("matcher %s panicked: %v", def.Matcher, r)
		}
	}()
	return x.MatchMessage(def.Matcher, def.Message, def.Args(e.precision)...)
}

// EvaluateAll runs multiple definitions against a map of named
// values. Each definition's Target field is used as the key into
// the values map. If a target is missing, the definition fails.
func (e *DefaultEngine) EvaluateAll(defs []Definition, values map[string]any) []Result {
	start := time.Now()
	results := make([]Result, 0, len(defs))

	for _, d := range defs {
		v, exists := values[d.Target]
		var r Result
		if exists {
			r = e.Evaluate(d, v)
		} else {
			r = Result{
				Matcher: d.Matcher,
				Target:  d.Target,
				Negated: d.Not,
				Message: fmt.Sprintf("target not found: %s", d.Target),
			}
			e.logger.Warn(r.Message)
		}
		results = append(results, r)

		if e.failFast && !r.Passed {
			break
		}
	}

	elapsed := time.Since(start)
	e.metrics.RecordRun(len(results), elapsed)
	if e.collector != nil {
		e.collector.EmitRun(fmt.Sprintf("%d assertions", len(results)), elapsed)
	}
	e.logger.Info("evaluated assertions",
		logging.IntField("total", len(results)),
		logging.IntField("failed", countFailed(results)),
		logging.DurationField("duration", elapsed),
	)
	return results
}

func countFailed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}
