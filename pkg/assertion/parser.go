package assertion

import (
	"strconv"
	"strings"
)

// ParseAssertionString parses a compact assertion string of the
// form "[not ]matcher[:value]" into a Definition for target. The
// value is decoded as a number or boolean when it parses as one and
// kept as text otherwise; toMatch and toContainText always keep
// text. toBeCloseTo takes an optional ":precision" suffix and
// toContainAny a comma separated list.
//
// Examples:
//
//	"toEqual:200"        -> toEqual 200
//	"not toBeNull"       -> not toBeNull
//	"toMatch:^a:b$"      -> toMatch "^a:b$"
//	"toBeCloseTo:3.14:3" -> toBeCloseTo 3.14 with precision 3
//	"toContainAny:a,b"   -> toContainAny "a" "b"
func ParseAssertionString(target, s string) Definition {
	def := Definition{Target: target}

	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "not "); ok {
		def.Not = true
		s = strings.TrimSpace(rest)
	}

	matcher, raw, hasValue := strings.Cut(s, ":")
	def.Matcher = matcher
	if !hasValue {
		return def
	}

	switch matcher {
	case "toMatch", "toContainText":
		def.Value = raw
	case "toBeCloseTo":
		def.Value = parseScalar(raw)
		if v, p, ok := strings.Cut(raw, ":"); ok {
			if n, err := strconv.Atoi(p); err == nil {
				def.Value = parseScalar(v)
				def.Precision = &n
			}
		}
	case "toContainAny":
		for _, v := range strings.Split(raw, ",") {
			def.Values = append(def.Values, parseScalar(strings.TrimSpace(v)))
		}
	default:
		def.Value = parseScalar(raw)
	}
	return def
}

func parseScalar(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	return s
}
