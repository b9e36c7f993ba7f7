// Package equality decides structural equality between arbitrary
// values. It distinguishes 0 from -0, equates NaN with itself,
// compares boxed primitives with their pointees, compares sparse
// sequences commutatively, ignores mapping key order and terminates
// on cyclic inputs.
//
// Cycle handling is optimistic: a value already being compared
// further up the stack is assumed equal to its counterpart. Two
// different cyclic structures with the same repeating shape above
// the point of difference therefore compare equal.
package equality

import (
	"math"
	"reflect"

	"digital.vasic.expect/pkg/value"
)

// Equaler lets a type take over its own comparison. The hook of the
// left operand is consulted first, then that of the right.
//
// Without a hook only exported struct fields take part in the
// comparison, so two values whose state is entirely unexported
// compare equal. Errors are the exception: two errors of the same
// dynamic type are equal when their Error strings match.
type Equaler interface {
	IsEqual(other any) bool
}

// Equal reports whether a and b are deeply equal.
func Equal(a, b any) bool {
	return Compare(a, b, nil)
}

// Compare reports whether a and b are deeply equal given the left
// operands already being compared above this call.
func Compare(a, b any, stack []any) bool {
	if !byValue(a) && value.Identical(a, b) {
		return !isZero(a) || value.IsNegativeZero(a) == value.IsNegativeZero(b)
	}

	if value.IsNullish(a) || value.IsNullish(b) {
		return value.IsNullish(a) && value.IsNullish(b)
	}

	if e, ok := a.(Equaler); ok {
		return e.IsEqual(b)
	}
	if e, ok := b.(Equaler); ok {
		return e.IsEqual(a)
	}
	if ea, ok := a.(error); ok {
		if eb, ok := b.(error); ok {
			return reflect.TypeOf(a) == reflect.TypeOf(b) && ea.Error() == eb.Error()
		}
	}

	kind := value.KindOf(a)
	if kind != value.KindOf(b) {
		return false
	}

	switch kind {
	case value.KindText:
		return reflect.ValueOf(value.Unbox(a)).String() ==
			reflect.ValueOf(value.Unbox(b)).String()
	case value.KindNumeric:
		return numbersEgal(a, b)
	case value.KindTemporal:
		ta, _ := value.ToTime(a)
		tb, _ := value.ToTime(b)
		return ta.Equal(tb)
	case value.KindBoolean:
		return reflect.ValueOf(value.Unbox(a)).Bool() ==
			reflect.ValueOf(value.Unbox(b)).Bool()
	case value.KindPattern:
		ra, _ := value.ToPattern(a)
		rb, _ := value.ToPattern(b)
		return ra.String() == rb.String()
	}

	if !value.IsComposite(a) || !value.IsComposite(b) {
		return false
	}

	for i := len(stack) - 1; i >= 0; i-- {
		if value.Identical(stack[i], a) {
			return true
		}
	}
	next := make([]any, len(stack), len(stack)+1)
	copy(next, stack)
	next = append(next, a)

	if kind == value.KindSequence {
		return sequencesEqual(a, b, next)
	}
	return mappingsEqual(a, b, next)
}

func sequencesEqual(a, b any, stack []any) bool {
	ea, eb := value.Elements(a), value.Elements(b)
	if len(ea) != len(eb) {
		return false
	}
	for i := len(ea) - 1; i >= 0; i-- {
		if present(ea[i]) != present(eb[i]) {
			return false
		}
		if !Compare(ea[i], eb[i], stack) {
			return false
		}
	}
	return true
}

func mappingsEqual(a, b any, stack []any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	other := make(map[string]any)
	for _, e := range value.Entries(b) {
		if !value.IsUndefined(e.Value) {
			other[e.Key] = e.Value
		}
	}

	size := 0
	for _, e := range value.Entries(a) {
		if value.IsUndefined(e.Value) {
			continue
		}
		size++
		bv, ok := other[e.Key]
		if !ok || !Compare(e.Value, bv, stack) {
			return false
		}
	}
	return size == len(other)
}

func present(v any) bool {
	return v != value.Hole
}

func isZero(v any) bool {
	if value.KindOf(v) != value.KindNumeric || value.IsBoxed(v) {
		return false
	}
	f, _ := value.ToFloat(v)
	return f == 0
}

// numbersEgal treats NaN as equal to itself and -0 as distinct
// from 0; other values compare numerically.
func numbersEgal(a, b any) bool {
	fa, _ := value.ToFloat(a)
	fb, _ := value.ToFloat(b)
	if math.IsNaN(fa) {
		return math.IsNaN(fb)
	}
	if fa != 0 {
		return value.NumbersEqual(a, b)
	}
	return fb == 0 && math.Signbit(fa) == math.Signbit(fb)
}

// byValue reports whether v is a struct or array held by value. Go's
// == on those treats 0 and -0 alike, so they are never taken as
// identical and are compared field by field instead.
func byValue(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Struct, reflect.Array:
		return true
	}
	return false
}
