package value

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// Entry is one own enumerable key of a mapping.
type Entry struct {
	Key   string
	Value any
}

// Identical reports host strict identity between a and b. Numbers
// compare numerically regardless of their Go type, so 0 and -0 are
// identical and NaN is not identical to itself. Strings and bools
// compare by value. Everything else compares by reference: same
// dynamic type and same underlying pointer, or == for comparable
// value types.
func Identical(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka == KindUndefined || kb == KindUndefined {
		return ka == kb
	}
	if ka == KindNull || kb == KindNull {
		return ka == kb
	}

	if !IsBoxed(a) && !IsBoxed(b) {
		switch {
		case ka == KindNumeric && kb == KindNumeric:
			return NumbersEqual(a, b)
		case ka == KindText && kb == KindText:
			return reflect.ValueOf(a).String() == reflect.ValueOf(b).String()
		case ka == KindBoolean && kb == KindBoolean:
			return reflect.ValueOf(a).Bool() == reflect.ValueOf(b).Bool()
		}
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}

	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		// Zero-capacity slices share the runtime's zerobase pointer.
		if ra.Cap() == 0 || rb.Cap() == 0 {
			return false
		}
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	}

	if !ra.Type().Comparable() {
		return false
	}
	return safeEqual(a, b)
}

// safeEqual compares two interfaces with ==, treating the runtime
// panic raised by uncomparable dynamic contents as inequality.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// ToFloat converts a numeric (or boxed numeric) value to float64.
func ToFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(Unbox(v))
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return math.NaN(), false
}

// NumbersEqual compares two numeric values numerically. Integers
// compare exactly; anything involving a float compares as float64.
func NumbersEqual(a, b any) bool {
	ra, rb := reflect.ValueOf(Unbox(a)), reflect.ValueOf(Unbox(b))
	switch {
	case isSigned(ra) && isSigned(rb):
		return ra.Int() == rb.Int()
	case isUnsigned(ra) && isUnsigned(rb):
		return ra.Uint() == rb.Uint()
	case isSigned(ra) && isUnsigned(rb):
		return ra.Int() >= 0 && uint64(ra.Int()) == rb.Uint()
	case isUnsigned(ra) && isSigned(rb):
		return rb.Int() >= 0 && uint64(rb.Int()) == ra.Uint()
	}
	fa, okA := ToFloat(a)
	fb, okB := ToFloat(b)
	return okA && okB && fa == fb
}

// IsNegativeZero reports whether v is a float -0.
func IsNegativeZero(v any) bool {
	f, ok := ToFloat(v)
	return ok && f == 0 && math.Signbit(f)
}

func isSigned(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// Truthy reports whether v coerces to true: everything except
// undefined, null, false, 0, -0, NaN and the empty string. Boxed
// primitives are objects and therefore always truthy.
func Truthy(v any) bool {
	switch KindOf(v) {
	case KindUndefined, KindNull:
		return false
	case KindBoolean:
		if IsBoxed(v) {
			return true
		}
		return reflect.ValueOf(v).Bool()
	case KindNumeric:
		if IsBoxed(v) {
			return true
		}
		f, _ := ToFloat(v)
		return f != 0 && !math.IsNaN(f)
	case KindText:
		if IsBoxed(v) {
			return true
		}
		return reflect.ValueOf(v).Len() > 0
	}
	return true
}

// Less reports whether a < b under relational coercion: numbers
// numerically, strings lexically, times chronologically, booleans as
// 0/1, and a string against a number by parsing the string. Any other
// pairing, or a NaN operand, is false.
func Less(a, b any) bool {
	a, b = Unbox(a), Unbox(b)
	ka, kb := KindOf(a), KindOf(b)

	if ka == KindText && kb == KindText {
		return reflect.ValueOf(a).String() < reflect.ValueOf(b).String()
	}
	if ka == KindTemporal && kb == KindTemporal {
		ta, _ := ToTime(a)
		tb, _ := ToTime(b)
		return ta.Before(tb)
	}

	fa, okA := relationalNumber(a)
	fb, okB := relationalNumber(b)
	if !okA || !okB {
		return false
	}
	return fa < fb
}

func relationalNumber(v any) (float64, bool) {
	switch KindOf(v) {
	case KindNumeric:
		return ToFloat(v)
	case KindBoolean:
		if reflect.ValueOf(v).Bool() {
			return 1, true
		}
		return 0, true
	case KindText:
		s := strings.TrimSpace(reflect.ValueOf(v).String())
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// ToTime extracts the instant from a temporal value.
func ToTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

// ToPattern extracts the compiled expression from a pattern value.
func ToPattern(v any) (*regexp.Regexp, bool) {
	switch re := v.(type) {
	case *regexp.Regexp:
		return re, re != nil
	case regexp.Regexp:
		return &re, true
	}
	return nil, false
}

// Elements returns the items of a sequence. Holes are returned as
// Hole so callers can tell a missing index from an undefined one.
func Elements(v any) []any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = interfaceOf(rv.Index(i))
	}
	return items
}

// Entries returns the own enumerable keys of a mapping: exported
// struct fields in declaration order, or map entries sorted by key.
func Entries(v any) []Entry {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		t := rv.Type()
		entries := make([]Entry, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			entries = append(entries, Entry{Key: f.Name, Value: interfaceOf(rv.Field(i))})
		}
		return entries
	case reflect.Map:
		entries := make([]Entry, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, Entry{
				Key:   mapKey(iter.Key()),
				Value: interfaceOf(iter.Value()),
			})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Key < entries[j].Key
		})
		return entries
	}
	return nil
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return k.String()
}

// interfaceOf unwraps interface-typed slots so that a nil interface
// element reads as nil rather than as a typed reflect.Value.
func interfaceOf(rv reflect.Value) any {
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.CanInterface() {
		return Undefined
	}
	return rv.Interface()
}

var anonymousFunc = regexp.MustCompile(`^(func)?\d+$`)

// FuncName returns the short name of a callable. Closures report
// the empty name.
func FuncName(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return ""
	}
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return ""
	}
	name := strings.TrimSuffix(fn.Name(), "-fm")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	if anonymousFunc.MatchString(name) {
		return ""
	}
	return name
}

// TypeName returns the dynamic type of v for diagnostics.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}

// Length returns the number of characters of a text value, items of
// a sequence or keys of a mapping.
func Length(v any) (int, bool) {
	switch KindOf(v) {
	case KindText:
		return utf8.RuneCountInString(reflect.ValueOf(Unbox(v)).String()), true
	case KindSequence:
		return len(Elements(v)), true
	case KindMapping:
		return len(Entries(v)), true
	}
	return 0, false
}
