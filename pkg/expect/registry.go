package expect

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"digital.vasic.expect/pkg/value"
)

// ErrUnknownMatcher is returned by Match for a name that is not
// registered.
var ErrUnknownMatcher = errors.New("unknown matcher")

// Args are the arguments a named matcher is invoked with.
type Args struct {
	// Values are the positional comparison arguments.
	Values []any

	// Message is the optional custom message prefix.
	Message string
}

// At returns the i-th value, or value.Undefined when absent.
func (a Args) At(i int) any {
	return argAt(a.Values, i)
}

// Len returns the number of positional values.
func (a Args) Len() int {
	return len(a.Values)
}

// Messages returns Message as a variadic custom message argument.
func (a Args) Messages() []string {
	if a.Message == "" {
		return nil
	}
	return []string{a.Message}
}

// Matcher is a named check. It must report exactly one outcome to
// x's backend, usually through x.Assert.
type Matcher func(x *Expectation, args Args)

// Registry maps matcher names to matchers. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	matchers map[string]Matcher
}

// NewRegistry creates a registry seeded with the built-in matchers.
func NewRegistry() *Registry {
	r := &Registry{matchers: make(map[string]Matcher)}
	registerDefaults(r)
	return r
}

// NewEmptyRegistry creates a registry with no matchers.
func NewEmptyRegistry() *Registry {
	return &Registry{matchers: make(map[string]Matcher)}
}

// Register adds a matcher under name. Registering an existing name
// replaces the previous matcher.
func (r *Registry) Register(name string, m Matcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchers[name] = m
}

// Unregister removes the matcher registered under name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matchers, name)
}

// Lookup returns the matcher registered under name.
func (r *Registry) Lookup(name string) (Matcher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matchers[name]
	return m, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.matchers))
	for name := range r.matchers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy, so a suite can extend the
// vocabulary without affecting other suites.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := &Registry{matchers: make(map[string]Matcher, len(r.matchers))}
	for name, m := range r.matchers {
		c.matchers[name] = m
	}
	return c
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry used by Expect.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// RegisterMatcher registers m under name in the process-wide
// registry. It becomes available to every expectation created
// afterwards through Match.
func RegisterMatcher(name string, m Matcher) {
	defaultRegistry.Register(name, m)
}

// Match runs the matcher registered under name against x.
func (x *Expectation) Match(name string, values ...any) error {
	return x.MatchMessage(name, "", values...)
}

// MatchMessage is Match with a custom message prefix.
func (x *Expectation) MatchMessage(name, customMsg string, values ...any) error {
	m, ok := x.registry.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMatcher, name)
	}
	m(x, Args{Values: values, Message: customMsg})
	return nil
}

func registerDefaults(r *Registry) {
	r.Register("toEqual", func(x *Expectation, a Args) {
		x.ToEqual(a.At(0), a.Messages()...)
	})
	r.Register("toNotEqual", func(x *Expectation, a Args) {
		x.ToNotEqual(a.At(0), a.Messages()...)
	})
	r.Register("toBe", func(x *Expectation, a Args) {
		x.ToBe(a.At(0), a.Messages()...)
	})
	r.Register("toBeTruthy", func(x *Expectation, a Args) {
		x.ToBeTruthy(a.Messages()...)
	})
	falsy := func(x *Expectation, a Args) {
		x.ToBeFalsy(a.Messages()...)
	}
	r.Register("toBeFalsy", falsy)
	r.Register("toBeFalsey", falsy)
	r.Register("toBeGreaterThan", func(x *Expectation, a Args) {
		x.ToBeGreaterThan(a.At(0), a.Messages()...)
	})
	r.Register("toBeLessThan", func(x *Expectation, a Args) {
		x.ToBeLessThan(a.At(0), a.Messages()...)
	})
	r.Register("toContain", func(x *Expectation, a Args) {
		x.ToContain(a.At(0), a.Messages()...)
	})
	r.Register("toMatch", func(x *Expectation, a Args) {
		x.ToMatch(a.At(0), a.Messages()...)
	})
	r.Register("toBeDefined", func(x *Expectation, a Args) {
		x.ToBeDefined(a.Messages()...)
	})
	r.Register("toBeUndefined", func(x *Expectation, a Args) {
		x.ToBeUndefined(a.Messages()...)
	})
	r.Register("toBeNull", func(x *Expectation, a Args) {
		x.ToBeNull(a.Messages()...)
	})
	r.Register("toThrow", func(x *Expectation, a Args) {
		x.ToThrow(a.At(0), a.Messages()...)
	})
	r.Register("toBeCloseTo", func(x *Expectation, a Args) {
		x.ToBeCloseTo(a.At(0), precisionArg(a.At(1)), a.Messages()...)
	})
	r.Register("pass", func(x *Expectation, _ Args) {
		x.Pass()
	})
	r.Register("fail", func(x *Expectation, a Args) {
		why, _ := a.At(0).(string)
		x.Fail(why, a.At(1), a.Messages()...)
	})
}

// precisionArg converts an optional numeric argument to a precision,
// falling back to DefaultPrecision.
func precisionArg(v any) int {
	if value.KindOf(v) != value.KindNumeric {
		return DefaultPrecision
	}
	f, _ := value.ToFloat(v)
	return int(f)
}
