// Package value classifies arbitrary Go values into the closed set of
// kinds the formatter and the deep comparator dispatch on, and provides
// the sentinels Go lacks natively (undefined, null, array holes).
package value

import (
	"reflect"
	"regexp"
	"time"
)

// Kind is the closed classification of a runtime value.
type Kind int

const (
	// KindUndefined is the undefined-state (Undefined or Hole).
	KindUndefined Kind = iota
	// KindNull covers nil, Null and nil pointers, maps, slices,
	// funcs, chans and interfaces.
	KindNull
	// KindCallable is any non-nil func value.
	KindCallable
	// KindText is any string kind, or a pointer to one.
	KindText
	// KindNumeric is any integer or float kind, or a pointer to one.
	KindNumeric
	// KindBoolean is any bool kind, or a pointer to one.
	KindBoolean
	// KindTemporal is time.Time or *time.Time.
	KindTemporal
	// KindPattern is a compiled regular expression.
	KindPattern
	// KindSequence is a slice or array.
	KindSequence
	// KindElement is a value implementing Element.
	KindElement
	// KindMapping is a map, struct or pointer to struct.
	KindMapping
	// KindOther is everything else (chans, unsafe pointers, ...).
	KindOther
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindCallable:
		return "callable"
	case KindText:
		return "text"
	case KindNumeric:
		return "numeric"
	case KindBoolean:
		return "boolean"
	case KindTemporal:
		return "temporal"
	case KindPattern:
		return "pattern"
	case KindSequence:
		return "sequence"
	case KindElement:
		return "element"
	case KindMapping:
		return "mapping"
	default:
		return "other"
	}
}

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

type nullValue struct{}

func (nullValue) String() string { return "null" }

type holeValue struct{}

func (holeValue) String() string { return "undefined" }

var (
	// Undefined is the absent value. Matchers that take no
	// comparison argument describe themselves against Undefined.
	Undefined any = undefinedValue{}

	// Null is an explicit null, equivalent to an untyped nil.
	Null any = nullValue{}

	// Hole marks a missing index in a sparse sequence. It reads
	// as Undefined but does not count as a present index.
	Hole any = holeValue{}
)

// Element is implemented by DOM-like nodes. A node type of 1
// denotes an element and renders as a self-closing tag.
type Element interface {
	NodeType() int
	NodeName() string
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	patternType = reflect.TypeOf(regexp.Regexp{})
	elementType = reflect.TypeOf((*Element)(nil)).Elem()
)

// KindOf classifies v. Checks run in a fixed priority order:
// undefined, callable, text, null, temporal, pattern, sequence,
// element, mapping, numeric, boolean, other.
func KindOf(v any) Kind {
	switch v.(type) {
	case undefinedValue, holeValue:
		return KindUndefined
	case nullValue, nil:
		return KindNull
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		if rv.IsNil() {
			return KindNull
		}
		return KindCallable
	case reflect.String:
		return KindText
	case reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		if rv.IsNil() {
			return KindNull
		}
	case reflect.Pointer:
		if rv.IsNil() {
			return KindNull
		}
	}

	t := rv.Type()
	switch {
	case t == timeType || (t.Kind() == reflect.Pointer && t.Elem() == timeType):
		return KindTemporal
	case t == patternType || (t.Kind() == reflect.Pointer && t.Elem() == patternType):
		return KindPattern
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		return KindSequence
	case t.Implements(elementType):
		return KindElement
	}

	switch t.Kind() {
	case reflect.Map, reflect.Struct:
		return KindMapping
	case reflect.Pointer:
		return pointeeKind(t.Elem())
	}
	return primitiveKind(t.Kind())
}

func pointeeKind(t reflect.Type) Kind {
	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		return KindMapping
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.String:
		return KindText
	}
	return primitiveKind(t.Kind())
}

func primitiveKind(k reflect.Kind) Kind {
	switch k {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumeric
	}
	return KindOther
}

// IsNullish reports whether v is undefined or null.
func IsNullish(v any) bool {
	k := KindOf(v)
	return k == KindUndefined || k == KindNull
}

// IsUndefined reports whether v is the undefined-state.
func IsUndefined(v any) bool {
	return KindOf(v) == KindUndefined
}

// IsBoxed reports whether v is a non-nil pointer to a primitive
// (text, numeric, boolean), the Go analogue of a wrapped primitive.
func IsBoxed(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	switch KindOf(v) {
	case KindText, KindNumeric, KindBoolean:
		return true
	}
	return false
}

// Unbox returns the pointee of a boxed primitive, or v itself.
func Unbox(v any) any {
	if !IsBoxed(v) {
		return v
	}
	return reflect.ValueOf(v).Elem().Interface()
}

// IsComposite reports whether v is descended into structurally by
// the comparator: sequences, mappings and elements backed by one.
func IsComposite(v any) bool {
	switch KindOf(v) {
	case KindSequence, KindMapping:
		return true
	case KindElement:
		return mappingType(reflect.TypeOf(v))
	}
	return false
}

func mappingType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	case reflect.Pointer:
		k := t.Elem().Kind()
		return k == reflect.Struct || k == reflect.Map
	}
	return false
}
