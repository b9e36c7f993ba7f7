// Package message composes the "expected X to Y Z" diagnostics
// reported by every matcher.
package message

import (
	"regexp"

	"digital.vasic.expect/pkg/format"
	"digital.vasic.expect/pkg/value"
)

var (
	doubleSpace = regexp.MustCompile(`\s\s`)
	edgeSpace   = regexp.MustCompile(`(^\s|\s$)`)
)

// Generate builds the diagnostic for a matcher outcome. label is ""
// or "not ", action the fixed matcher phrase ("to equal"). Pass
// value.Undefined as comparison for matchers without an argument so
// the trailing segment renders empty. A non-empty customMsg is
// prepended as "<customMsg>: <message>".
func Generate(subject any, label, action string, comparison any, customMsg string) string {
	msg := "expected " + format.Value(subject, false) + " " + label + action +
		" " + format.Value(comparison, true)
	msg = doubleSpace.ReplaceAllString(msg, " ")
	msg = edgeSpace.ReplaceAllString(msg, "")

	if customMsg != "" {
		return customMsg + ": " + msg
	}
	return msg
}

// Describe is Generate for matchers without a comparison argument.
func Describe(subject any, label, action, customMsg string) string {
	return Generate(subject, label, action, value.Undefined, customMsg)
}
