package assertion

import (
	"strings"

	"digital.vasic.expect/pkg/backend"
	"digital.vasic.expect/pkg/equality"
	"digital.vasic.expect/pkg/expect"
	"digital.vasic.expect/pkg/format"
	"digital.vasic.expect/pkg/value"
)

// RegisterBuiltins adds the engine matchers to r on top of the core
// expectation vocabulary:
//
//	toBeEmpty           text, sequence or mapping of length 0
//	toHaveLength n      length exactly n
//	toHaveMinLength n   length at least n
//	toContainText s     case-insensitive substring
//	toContainAny a b .. contains at least one of the arguments
//	toHaveNoDuplicates  no two sequence elements are equal
//	toBeAtLeast n       subject >= n
//	toBeAtMost n        subject <= n
func RegisterBuiltins(r *expect.Registry) {
	r.Register("toBeEmpty", matchEmpty)
	r.Register("toHaveLength", matchLength)
	r.Register("toHaveMinLength", matchMinLength)
	r.Register("toContainText", matchContainText)
	r.Register("toContainAny", matchContainAny)
	r.Register("toHaveNoDuplicates", matchNoDuplicates)
	r.Register("toBeAtLeast", matchAtLeast)
	r.Register("toBeAtMost", matchAtMost)
}

func matchEmpty(x *expect.Expectation, a expect.Args) {
	n, ok := value.Length(x.Subject())
	x.Assert(ok && n == 0, "to be empty", value.Undefined, a.Messages()...)
}

func matchLength(x *expect.Expectation, a expect.Args) {
	n, ok := value.Length(x.Subject())
	want, isNum := toInt(a.At(0))
	x.Assert(ok && isNum && n == want, "to have length", a.At(0), a.Messages()...)
}

func matchMinLength(x *expect.Expectation, a expect.Args) {
	n, ok := value.Length(x.Subject())
	want, isNum := toInt(a.At(0))
	x.Assert(ok && isNum && n >= want, "to have length at least", a.At(0), a.Messages()...)
}

func matchContainText(x *expect.Expectation, a expect.Args) {
	ok := value.KindOf(x.Subject()) == value.KindText &&
		strings.Contains(
			strings.ToLower(format.String(x.Subject())),
			strings.ToLower(format.String(a.At(0))),
		)
	x.Assert(ok, "to contain text", a.At(0), a.Messages()...)
}

// matchContainAny accepts the candidates as positional arguments or
// as a single sequence argument.
func matchContainAny(x *expect.Expectation, a expect.Args) {
	candidates := a.Values
	if len(candidates) == 1 && value.KindOf(candidates[0]) == value.KindSequence {
		candidates = value.Elements(candidates[0])
	}

	found := false
	for _, c := range candidates {
		probe := expect.New(x.Subject(), expect.WithBackend(probeBackend(&found)))
		probe.ToContain(c)
		if found {
			break
		}
	}
	x.Assert(found, "to contain any of", candidates, a.Messages()...)
}

func probeBackend(found *bool) backend.Backend {
	return backend.Funcs{PassFunc: func(string) { *found = true }}
}

func matchNoDuplicates(x *expect.Expectation, a expect.Args) {
	ok := value.KindOf(x.Subject()) == value.KindSequence
	if ok {
		items := value.Elements(x.Subject())
	outer:
		for i := range items {
			for j := i + 1; j < len(items); j++ {
				if equality.Equal(items[i], items[j]) {
					ok = false
					break outer
				}
			}
		}
	}
	x.Assert(ok, "to have no duplicates", value.Undefined, a.Messages()...)
}

func matchAtLeast(x *expect.Expectation, a expect.Args) {
	ok := ordered(x.Subject(), a.At(0)) && !value.Less(x.Subject(), a.At(0))
	x.Assert(ok, "to be at least", a.At(0), a.Messages()...)
}

func matchAtMost(x *expect.Expectation, a expect.Args) {
	ok := ordered(x.Subject(), a.At(0)) && !value.Less(a.At(0), x.Subject())
	x.Assert(ok, "to be at most", a.At(0), a.Messages()...)
}

// ordered reports whether a and b are ordered at all, so that
// "not less" can stand for "greater or equal".
func ordered(a, b any) bool {
	return value.Less(a, b) || value.Less(b, a) || equality.Equal(a, b) || value.Identical(a, b)
}

func toInt(v any) (int, bool) {
	if value.KindOf(v) != value.KindNumeric {
		return 0, false
	}
	f, _ := value.ToFloat(v)
	return int(f), true
}
