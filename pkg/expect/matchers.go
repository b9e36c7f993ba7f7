package expect

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"

	"digital.vasic.expect/pkg/equality"
	"digital.vasic.expect/pkg/format"
	"digital.vasic.expect/pkg/value"
)

// DefaultPrecision is the number of decimal places ToBeCloseTo
// checks when the caller passes a negative precision.
const DefaultPrecision = 2

// ToEqual asserts that the subject is structurally equal to v.
func (x *Expectation) ToEqual(v any, customMsg ...string) {
	x.Assert(equality.Equal(x.subject, v), "to equal", v, customMsg...)
}

// ToNotEqual is Not.ToEqual.
func (x *Expectation) ToNotEqual(v any, customMsg ...string) {
	x.Not().ToEqual(v, customMsg...)
}

// ToBe asserts strict identity. Unlike ToEqual, 0 and -0 are the
// same and NaN is not NaN.
func (x *Expectation) ToBe(v any, customMsg ...string) {
	x.Assert(value.Identical(x.subject, v), "to equal", v, customMsg...)
}

// ToBeTruthy asserts that the subject coerces to true.
func (x *Expectation) ToBeTruthy(customMsg ...string) {
	x.Assert(value.Truthy(x.subject), "to be truthy", value.Undefined, customMsg...)
}

// ToBeFalsy asserts that the subject coerces to false.
func (x *Expectation) ToBeFalsy(customMsg ...string) {
	x.Assert(!value.Truthy(x.subject), "to be falsey", value.Undefined, customMsg...)
}

// ToBeFalsey is ToBeFalsy.
func (x *Expectation) ToBeFalsey(customMsg ...string) {
	x.ToBeFalsy(customMsg...)
}

// ToBeGreaterThan asserts subject > v.
func (x *Expectation) ToBeGreaterThan(v any, customMsg ...string) {
	x.Assert(value.Less(v, x.subject), "to be greater than", v, customMsg...)
}

// ToBeLessThan asserts subject < v.
func (x *Expectation) ToBeLessThan(v any, customMsg ...string) {
	x.Assert(value.Less(x.subject, v), "to be less than", v, customMsg...)
}

// ToContain asserts that a text subject contains v as a substring, or
// that a sequence subject holds an element identical or structurally
// equal to v.
func (x *Expectation) ToContain(v any, customMsg ...string) {
	x.Assert(contains(x.subject, v), "to contain", v, customMsg...)
}

func contains(subject, v any) bool {
	switch value.KindOf(subject) {
	case value.KindText:
		return strings.Contains(format.String(subject), format.String(v))
	case value.KindSequence:
		items := value.Elements(subject)
		for _, item := range items {
			if item != value.Hole && value.Identical(item, v) {
				return true
			}
		}
		for _, item := range items {
			if equality.Equal(item, v) {
				return true
			}
		}
	}
	return false
}

// ToMatch asserts that the subject's string form matches re, which
// is a *regexp.Regexp or a pattern string.
func (x *Expectation) ToMatch(re any, customMsg ...string) {
	ok := false
	if p, err := pattern(re); err == nil {
		ok = p.MatchString(format.String(x.subject))
	}
	x.Assert(ok, "to match", re, customMsg...)
}

func pattern(re any) (*regexp.Regexp, error) {
	if p, ok := value.ToPattern(re); ok {
		return p, nil
	}
	if value.KindOf(re) == value.KindText {
		return regexp.Compile(format.String(re))
	}
	return nil, fmt.Errorf("not a pattern: %s", format.Value(re, false))
}

// ToBeDefined asserts that the subject is not value.Undefined.
func (x *Expectation) ToBeDefined(customMsg ...string) {
	x.Assert(!value.IsUndefined(x.subject), "to be defined", value.Undefined, customMsg...)
}

// ToBeUndefined asserts that the subject is value.Undefined.
func (x *Expectation) ToBeUndefined(customMsg ...string) {
	x.Assert(value.IsUndefined(x.subject), "to be undefined", value.Undefined, customMsg...)
}

// ToBeNull asserts that the subject is nil, a nil pointer, map,
// slice, func or channel, or value.Null.
func (x *Expectation) ToBeNull(customMsg ...string) {
	x.Assert(value.KindOf(x.subject) == value.KindNull, "to be null", value.Undefined, customMsg...)
}

// ToThrow invokes the subject, which must be a func taking no
// arguments, and asserts that it raises. A panic, or a non-nil error
// as the last result, counts as raising. When expected is a string or
// an error, the raised message must equal it.
func (x *Expectation) ToThrow(expected any, customMsg ...string) {
	fn := reflect.ValueOf(x.subject)
	if value.KindOf(x.subject) != value.KindCallable || !niladic(fn.Type()) {
		x.Fail("to be a function", value.Undefined)
		return
	}

	want := expectedMessage(expected)
	got, thrown := invoke(fn)
	switch {
	case !thrown:
		x.Fail("to throw an exception", value.Undefined, customMsg...)
	case want != "" && got != want:
		x.Fail("to throw", want, customMsg...)
	default:
		x.backend.Pass(x.Message("to throw", optional(want), customMsg...))
	}
}

func niladic(t reflect.Type) bool {
	return t.NumIn() == 0 || (t.NumIn() == 1 && t.IsVariadic())
}

func expectedMessage(expected any) string {
	switch e := expected.(type) {
	case string:
		return e
	case error:
		return e.Error()
	}
	return ""
}

func optional(s string) any {
	if s == "" {
		return value.Undefined
	}
	return s
}

// invoke calls fn and returns the message of what it raised.
func invoke(fn reflect.Value) (msg string, thrown bool) {
	defer func() {
		if r := recover(); r != nil {
			msg, thrown = raisedMessage(r), true
		}
	}()

	var out []reflect.Value
	if fn.Type().IsVariadic() {
		out = fn.CallSlice([]reflect.Value{reflect.MakeSlice(fn.Type().In(0), 0, 0)})
	} else {
		out = fn.Call(nil)
	}

	if n := len(out); n > 0 {
		last := out[n-1]
		if last.Type() == errorType && !last.IsNil() {
			return last.Interface().(error).Error(), true
		}
	}
	return "", false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func raisedMessage(r any) string {
	switch e := r.(type) {
	case error:
		return e.Error()
	case string:
		return e
	case fmt.Stringer:
		return e.String()
	}
	return fmt.Sprint(r)
}

// ToBeCloseTo asserts |v - subject| < 10^-precision / 2. A negative
// precision means DefaultPrecision.
func (x *Expectation) ToBeCloseTo(v any, precision int, customMsg ...string) {
	if precision < 0 {
		precision = DefaultPrecision
	}
	x.Assert(closeTo(x.subject, v, precision), "to be close to", v, customMsg...)
}

func closeTo(subject, v any, precision int) bool {
	a, okA := value.ToFloat(subject)
	b, okB := value.ToFloat(v)
	if !okA || !okB {
		return false
	}
	return math.Abs(b-a) < math.Pow(10, -float64(precision))/2
}
