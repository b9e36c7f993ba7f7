package expect

import (
	"errors"
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.expect/pkg/backend"
	"digital.vasic.expect/pkg/value"
)

type item struct {
	X int
}

type selfRef struct {
	Self *selfRef
}

func counted(subject any) (*Expectation, *backend.Counter) {
	c := backend.NewCounter()
	return New(subject, WithBackend(c)), c
}

func lastOutcome(t *testing.T, c *backend.Counter) backend.Outcome {
	t.Helper()
	require.Equal(t, 1, c.Total(), "matcher must report exactly once")
	out, ok := c.Last()
	require.True(t, ok)
	return out
}

func TestExpect_DefaultBackendPanicsOnFailure(t *testing.T) {
	assert.NotPanics(t, func() { Expect(1).ToEqual(1) })

	defer func() {
		r := recover()
		err, ok := r.(*backend.AssertionError)
		require.True(t, ok, "panic value %T", r)
		assert.Equal(t, "expected 1 to equal 2", err.Message)
	}()
	Expect(1).ToEqual(2)
}

func TestExpectation_NotNot(t *testing.T) {
	x := Expect("v")
	assert.Same(t, x, x.Not().Not())
	assert.NotSame(t, x, x.Not())
	assert.Equal(t, NegatedLabel, x.Not().Label())
	assert.Equal(t, "", x.Label())
	assert.True(t, x.Not().Negated())
	assert.Equal(t, "v", x.Not().Subject())
	assert.Same(t, x.Registry(), x.Not().Registry())
}

func TestExpectation_NotIsStable(t *testing.T) {
	x := Expect(1)
	n := x.Not()
	assert.Same(t, n, x.Not())
	assert.NotPanics(t, func() { x.ToNotEqual(2) })
	assert.Same(t, n, x.Not())
}

func TestMatchers(t *testing.T) {
	negZero := math.Copysign(0, -1)
	boxedFalse := false

	tests := []struct {
		name    string
		subject any
		run     func(x *Expectation)
		passed  bool
		message string
	}{
		{"toEqual pass", []int{1, 2}, func(x *Expectation) { x.ToEqual([]int{1, 2}) }, true, "expected [1, 2] to equal [1, 2]"},
		{"toEqual fail", map[string]int{"a": 1}, func(x *Expectation) { x.ToEqual(map[string]int{"a": 2}) }, false, `expected {"a": 1} to equal {"a": 2}`},
		{"toEqual signed zero", 0.0, func(x *Expectation) { x.ToEqual(negZero) }, false, "expected 0 to equal -0"},
		{"toEqual NaN", math.NaN(), func(x *Expectation) { x.ToEqual(math.NaN()) }, true, "expected NaN to equal NaN"},
		{"toNotEqual", 1, func(x *Expectation) { x.ToNotEqual(2) }, true, "expected 1 not to equal 2"},
		{"toBe signed zero", 0.0, func(x *Expectation) { x.ToBe(negZero) }, true, "expected 0 to equal -0"},
		{"toBe NaN", math.NaN(), func(x *Expectation) { x.ToBe(math.NaN()) }, false, "expected NaN to equal NaN"},
		{"toBe copies", []int{1}, func(x *Expectation) { x.ToBe([]int{1}) }, false, "expected [1] to equal [1]"},
		{"toBeTruthy", "x", func(x *Expectation) { x.ToBeTruthy() }, true, `expected "x" to be truthy`},
		{"toBeTruthy zero", 0, func(x *Expectation) { x.ToBeTruthy() }, false, "expected 0 to be truthy"},
		{"toBeFalsy", "", func(x *Expectation) { x.ToBeFalsy() }, true, `expected "" to be falsey`},
		{"toBeFalsey boxed", &boxedFalse, func(x *Expectation) { x.ToBeFalsey() }, false, "expected [false] to be falsey"},
		{"toBeGreaterThan", 3, func(x *Expectation) { x.ToBeGreaterThan(2) }, true, "expected 3 to be greater than 2"},
		{"toBeGreaterThan equal", 2, func(x *Expectation) { x.ToBeGreaterThan(2) }, false, "expected 2 to be greater than 2"},
		{"toBeLessThan", "a", func(x *Expectation) { x.ToBeLessThan("b") }, true, `expected "a" to be less than "b"`},
		{"toContain element", []int{1, 2, 3}, func(x *Expectation) { x.ToContain(2) }, true, "expected [1, 2, 3] to contain 2"},
		{"toContain structural", []item{{1}}, func(x *Expectation) { x.ToContain(item{1}) }, true, `expected [{"X": 1}] to contain {"X": 1}`},
		{"toContain missing", []int{1}, func(x *Expectation) { x.ToContain(5) }, false, "expected [1] to contain 5"},
		{"toContain substring", "hello world", func(x *Expectation) { x.ToContain("lo w") }, true, `expected "hello world" to contain "lo w"`},
		{"toContain non-container", 42, func(x *Expectation) { x.ToContain(4) }, false, "expected 42 to contain 4"},
		{"toMatch", "abc123", func(x *Expectation) { x.ToMatch(regexp.MustCompile(`\d+$`)) }, true, `expected "abc123" to match /\d+$/`},
		{"toMatch string pattern", "abc", func(x *Expectation) { x.ToMatch("^b") }, false, `expected "abc" to match "^b"`},
		{"toMatch invalid pattern", "abc", func(x *Expectation) { x.ToMatch("(") }, false, `expected "abc" to match "("`},
		{"toBeDefined", 0, func(x *Expectation) { x.ToBeDefined() }, true, "expected 0 to be defined"},
		{"toBeDefined undefined", value.Undefined, func(x *Expectation) { x.ToBeDefined() }, false, "expected undefined to be defined"},
		{"toBeUndefined", value.Undefined, func(x *Expectation) { x.ToBeUndefined() }, true, "expected undefined to be undefined"},
		{"toBeNull nil", nil, func(x *Expectation) { x.ToBeNull() }, true, "expected null to be null"},
		{"toBeNull nil pointer", (*item)(nil), func(x *Expectation) { x.ToBeNull() }, true, "expected null to be null"},
		{"toBeNull undefined", value.Undefined, func(x *Expectation) { x.ToBeNull() }, false, "expected undefined to be null"},
		{"toBeCloseTo", 3.14159, func(x *Expectation) { x.ToBeCloseTo(3.14, 2) }, true, "expected 3.14159 to be close to 3.14"},
		{"toBeCloseTo far", 3.1, func(x *Expectation) { x.ToBeCloseTo(3.14, 2) }, false, "expected 3.1 to be close to 3.14"},
		{"toBeCloseTo default precision", 1.004, func(x *Expectation) { x.ToBeCloseTo(1, -1) }, true, "expected 1.004 to be close to 1"},
		{"toBeCloseTo zero precision", 1.4, func(x *Expectation) { x.ToBeCloseTo(1, 0) }, true, "expected 1.4 to be close to 1"},
		{"toBeCloseTo non-numeric", "1", func(x *Expectation) { x.ToBeCloseTo(1, 2) }, false, `expected "1" to be close to 1`},
		{"custom message", 1, func(x *Expectation) { x.ToEqual(2, "totals") }, false, "totals: expected 1 to equal 2"},
		{"pass", 1, func(x *Expectation) { x.Pass() }, true, ""},
		{"fail", 1, func(x *Expectation) { x.Fail("to be odd", value.Undefined, "why") }, false, "why: expected 1 to be odd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, c := counted(tt.subject)
			tt.run(x)
			out := lastOutcome(t, c)
			assert.Equal(t, tt.passed, out.Passed)
			assert.Equal(t, tt.message, out.Message)
		})
	}
}

func TestMatchers_NegationLaw(t *testing.T) {
	matchers := []struct {
		name    string
		subject any
		run     func(x *Expectation)
	}{
		{"toEqual", []int{1}, func(x *Expectation) { x.ToEqual([]int{1}) }},
		{"toBe", 1, func(x *Expectation) { x.ToBe(2) }},
		{"toBeTruthy", 0, func(x *Expectation) { x.ToBeTruthy() }},
		{"toBeFalsy", 0, func(x *Expectation) { x.ToBeFalsy() }},
		{"toBeGreaterThan", 1, func(x *Expectation) { x.ToBeGreaterThan(0) }},
		{"toBeLessThan", 1, func(x *Expectation) { x.ToBeLessThan(0) }},
		{"toContain", "abc", func(x *Expectation) { x.ToContain("b") }},
		{"toMatch", "abc", func(x *Expectation) { x.ToMatch("z") }},
		{"toBeDefined", 1, func(x *Expectation) { x.ToBeDefined() }},
		{"toBeUndefined", 1, func(x *Expectation) { x.ToBeUndefined() }},
		{"toBeNull", nil, func(x *Expectation) { x.ToBeNull() }},
		{"toBeCloseTo", 1.0, func(x *Expectation) { x.ToBeCloseTo(1.001, 2) }},
		{"toThrow", func() { panic("x") }, func(x *Expectation) { x.ToThrow(nil) }},
	}

	for _, m := range matchers {
		t.Run(m.name, func(t *testing.T) {
			x, plain := counted(m.subject)
			m.run(x)

			n, negated := counted(m.subject)
			m.run(n.Not())

			nn, doubled := counted(m.subject)
			m.run(nn.Not().Not())

			p := lastOutcome(t, plain)
			q := lastOutcome(t, negated)
			r := lastOutcome(t, doubled)
			assert.Equal(t, !p.Passed, q.Passed)
			assert.Equal(t, p, r)
		})
	}
}

func TestMatchers_NegatedMessage(t *testing.T) {
	x, c := counted([]int{1, 2})
	x.Not().ToContain(2)

	out := lastOutcome(t, c)
	assert.False(t, out.Passed)
	assert.Equal(t, "expected [1, 2] not to contain 2", out.Message)
}

func TestToThrow(t *testing.T) {
	tests := []struct {
		name     string
		subject  any
		expected any
		custom   []string
		passed   bool
		message  string
	}{
		{
			name:     "panic with matching error",
			subject:  func() { panic(errors.New("bad")) },
			expected: "bad",
			passed:   true,
			message:  `expected function (){} to throw "bad"`,
		},
		{
			name:     "panic with other message",
			subject:  func() { panic(errors.New("bad")) },
			expected: "other",
			passed:   false,
			message:  `expected function (){} to throw "other"`,
		},
		{
			name:     "expected error value",
			subject:  func() { panic("bad") },
			expected: errors.New("bad"),
			passed:   true,
			message:  `expected function (){} to throw "bad"`,
		},
		{
			name:     "any exception",
			subject:  func() { panic(42) },
			expected: nil,
			passed:   true,
			message:  "expected function (){} to throw",
		},
		{
			name:     "returned error counts as thrown",
			subject:  func() (int, error) { return 0, errors.New("eof") },
			expected: "eof",
			passed:   true,
			message:  `expected function (){} to throw "eof"`,
		},
		{
			name:     "nil error is not thrown",
			subject:  func() error { return nil },
			expected: value.Undefined,
			passed:   false,
			message:  "expected function (){} to throw an exception",
		},
		{
			name:     "no exception",
			subject:  func() {},
			expected: nil,
			custom:   []string{"setup"},
			passed:   false,
			message:  "setup: expected function (){} to throw an exception",
		},
		{
			name:     "variadic func",
			subject:  func(...int) { panic("v") },
			expected: "v",
			passed:   true,
			message:  `expected function (){} to throw "v"`,
		},
		{
			name:     "not a function",
			subject:  5,
			expected: nil,
			custom:   []string{"ignored"},
			passed:   false,
			message:  "expected 5 to be a function",
		},
		{
			name:     "func with parameters",
			subject:  func(int) {},
			expected: nil,
			passed:   false,
			message:  "expected function (){} to be a function",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, c := counted(tt.subject)
			x.ToThrow(tt.expected, tt.custom...)
			out := lastOutcome(t, c)
			assert.Equal(t, tt.passed, out.Passed)
			assert.Equal(t, tt.message, out.Message)
		})
	}
}

func TestToThrow_AssertionErrorFromNestedExpect(t *testing.T) {
	x, c := counted(func() { Expect(1).ToEqual(2) })
	x.ToThrow("expected 1 to equal 2")
	assert.True(t, lastOutcome(t, c).Passed)
}

func TestToEqual_CyclicSubject(t *testing.T) {
	a := &selfRef{}
	a.Self = a

	x, c := counted(a)
	assert.NotPanics(t, func() { x.ToEqual(a) })

	out := lastOutcome(t, c)
	assert.True(t, out.Passed)
	assert.Equal(t, `expected {"Self": [Circular]} to equal {"Self": [Circular]}`, out.Message)
}

func TestAssert_CustomMatcherBuildingBlock(t *testing.T) {
	x, c := counted(4)
	x.Assert(x.Subject().(int)%2 == 0, "to be even", value.Undefined)
	out := lastOutcome(t, c)
	assert.True(t, out.Passed)
	assert.Equal(t, "expected 4 to be even", out.Message)
}

func TestExpecter(t *testing.T) {
	c := backend.NewCounter()
	reg := NewRegistry()
	e := NewExpecter(WithBackend(c), WithRegistry(reg))

	e.Expect(1).ToEqual(1)
	e.Expect(1).ToEqual(2)
	e.Expect("a").Not().ToBeNull()

	assert.Equal(t, 2, c.Passed())
	assert.Equal(t, []string{"expected 1 to equal 2"}, c.Failures())
	assert.Same(t, reg, e.Expect(nil).Registry())
}

func TestOptions_NilIgnored(t *testing.T) {
	x := New(1, WithBackend(nil), WithRegistry(nil))
	assert.Equal(t, backend.Default(), x.Backend())
	assert.Same(t, DefaultRegistry(), x.Registry())
}
