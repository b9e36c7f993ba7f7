// Package format renders arbitrary values to the short diagnostic
// strings used in assertion messages. Rendering never fails and is
// cycle safe: composites already being rendered, or nested deeper
// than MaxDepth, collapse to a placeholder.
package format

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"digital.vasic.expect/pkg/value"
)

// MaxDepth bounds structural descent in Format.
const MaxDepth = 10

// DateLayout is the UTC rendering used for temporal values.
const DateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

const (
	genericObject = "[object Object]"
	circular      = "[Circular]"
)

// Value renders v. When ignoreUndefined is set an undefined value
// renders as the empty string instead of "undefined".
func Value(v any, ignoreUndefined bool) string {
	return Format(v, ignoreUndefined, nil)
}

// Format renders v given the composites currently being rendered
// above it. The stack is only ever grown by copy, so sibling
// branches never observe each other's ancestors.
func Format(v any, ignoreUndefined bool, stack []any) string {
	kind := value.KindOf(v)

	switch kind {
	case value.KindUndefined:
		if ignoreUndefined {
			return ""
		}
		return "undefined"
	case value.KindCallable:
		return "function " + value.FuncName(v) + "(){}"
	case value.KindText:
		if !value.IsBoxed(v) {
			return `"` + reflect.ValueOf(v).String() + `"`
		}
	case value.KindNull:
		return "null"
	case value.KindTemporal:
		t, _ := value.ToTime(v)
		return "[Date " + t.UTC().Format(DateLayout) + "]"
	case value.KindPattern:
		re, _ := value.ToPattern(v)
		return "/" + re.String() + "/"
	case value.KindSequence:
		return formatSequence(v, stack)
	case value.KindElement:
		if el := v.(value.Element); el.NodeType() == 1 {
			return "<" + strings.ToLower(el.NodeName()) + " />"
		}
	}

	if isObject(v, kind) && len(stack) < MaxDepth {
		return formatObject(v, kind, stack)
	}
	return String(v)
}

func formatSequence(v any, stack []any) string {
	if onStack(v, stack) || len(stack) >= MaxDepth {
		return "[" + String(v) + "]"
	}

	next := push(stack, v)
	items := value.Elements(v)
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Format(item, false, next)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatObject(v any, kind value.Kind, stack []any) string {
	if custom, ok := customString(v); ok {
		return "[" + custom + "]"
	}
	if kind != value.KindMapping && !value.IsComposite(v) {
		return genericObject
	}
	if onStack(v, stack) {
		return circular
	}

	next := push(stack, v)
	entries := value.Entries(v)
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = `"` + e.Key + `": ` + Format(e.Value, false, next)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// isObject reports whether v renders through the generic object
// rule: mappings, boxed primitives and non-element-typed nodes.
func isObject(v any, kind value.Kind) bool {
	switch kind {
	case value.KindMapping, value.KindElement:
		return true
	}
	return value.IsBoxed(v)
}

// customString returns the value's own string form when it has one
// that differs from the generic object rendering: errors render their
// message, Stringers their String, boxed primitives their pointee.
func customString(v any) (string, bool) {
	if value.IsBoxed(v) {
		return String(value.Unbox(v)), true
	}
	switch s := v.(type) {
	case error:
		return s.Error(), true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

func onStack(v any, stack []any) bool {
	for _, s := range stack {
		if value.Identical(s, v) {
			return true
		}
	}
	return false
}

func push(stack []any, v any) []any {
	next := make([]any, len(stack), len(stack)+1)
	copy(next, stack)
	return append(next, v)
}

// String is the value's own default string conversion. Sequences
// join their items with "," (nullish items and revisited sequences
// render empty), mappings without a custom form render as
// "[object Object]".
func String(v any) string {
	return defaultString(v, nil)
}

func defaultString(v any, seen []any) string {
	switch value.KindOf(v) {
	case value.KindUndefined:
		return "undefined"
	case value.KindNull:
		return "null"
	case value.KindCallable:
		return "function " + value.FuncName(v) + "(){}"
	case value.KindText:
		return reflect.ValueOf(value.Unbox(v)).String()
	case value.KindNumeric:
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return Number(v)
	case value.KindBoolean:
		if s, ok := v.(fmt.Stringer); ok {
			return s.String()
		}
		return strconv.FormatBool(reflect.ValueOf(value.Unbox(v)).Bool())
	case value.KindTemporal:
		t, _ := value.ToTime(v)
		return t.UTC().Format(DateLayout)
	case value.KindPattern:
		re, _ := value.ToPattern(v)
		return "/" + re.String() + "/"
	case value.KindSequence:
		if onStack(v, seen) {
			return ""
		}
		next := push(seen, v)
		items := value.Elements(v)
		parts := make([]string, len(items))
		for i, item := range items {
			if value.IsNullish(item) {
				continue
			}
			parts[i] = defaultString(item, next)
		}
		return strings.Join(parts, ",")
	case value.KindMapping, value.KindElement:
		if custom, ok := customString(v); ok {
			return custom
		}
		return genericObject
	}
	return fmt.Sprint(v)
}

// Number renders a numeric value: integers exactly, floats in the
// shortest plain decimal form, switching to exponent notation only
// for very large or very small magnitudes.
func Number(v any) string {
	rv := reflect.ValueOf(value.Unbox(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	}

	f, ok := value.ToFloat(v)
	switch {
	case !ok:
		return fmt.Sprint(v)
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	}

	bits := 64
	if rv.Kind() == reflect.Float32 {
		bits = 32
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
