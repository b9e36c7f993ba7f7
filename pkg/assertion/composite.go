package assertion

import (
	"fmt"
	"strings"
)

// AllPass evaluates defs and passes when every result passes. On
// failure the message lists each failed definition. Actual holds
// the individual results.
func AllPass(engine Engine, defs []Definition, values map[string]any) Result {
	results := engine.EvaluateAll(defs, values)
	r := combine("allPass", results)

	failed := filterResults(results, false)
	if len(failed) == 0 {
		r.Passed = true
		r.Message = fmt.Sprintf("all %d assertions passed", len(results))
		return r
	}

	reasons := make([]string, len(failed))
	for i, f := range failed {
		reasons[i] = describe(f) + ": " + f.Message
	}
	r.Message = fmt.Sprintf("%d of %d assertions failed: %s",
		len(failed), len(results), strings.Join(reasons, "; "))
	return r
}

// AnyPass evaluates defs and passes when at least one result
// passes. The message names the first passing definition.
func AnyPass(engine Engine, defs []Definition, values map[string]any) Result {
	results := engine.EvaluateAll(defs, values)
	r := combine("anyPass", results)

	if passed := filterResults(results, true); len(passed) > 0 {
		r.Passed = true
		r.Message = describe(passed[0]) + " passed"
		return r
	}
	r.Message = fmt.Sprintf("none of %d assertions passed", len(results))
	return r
}

func combine(matcher string, results []Result) Result {
	r := Result{Matcher: matcher, Actual: results}
	for _, res := range results {
		r.Duration += res.Duration
	}
	return r
}

func filterResults(results []Result, passed bool) []Result {
	var out []Result
	for _, r := range results {
		if r.Passed == passed {
			out = append(out, r)
		}
	}
	return out
}

// describe renders "matcher(target)", or the bare matcher name.
func describe(r Result) string {
	if r.Target == "" {
		return r.Matcher
	}
	return r.Matcher + "(" + r.Target + ")"
}
