package report

import (
	"testing"
	"time"

	"digital.vasic.expect/pkg/assertion"
)

func sampleRun(t *testing.T, suite string, passing bool) *Run {
	t.Helper()
	status := 200
	if !passing {
		status = 500
	}
	results := assertion.NewEngine().EvaluateAll(
		[]assertion.Definition{
			{Matcher: "toEqual", Target: "status", Value: 200},
			{Matcher: "toContain", Target: "body", Value: "<ok>"},
			{Matcher: "toThrow", Target: "call"},
		},
		map[string]any{
			"status": status,
			"body":   "<ok>",
			"call":   func() { panic("x") },
		},
	)
	return NewRun(suite, results, time.Now().Add(-time.Second))
}
