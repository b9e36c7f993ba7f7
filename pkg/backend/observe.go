package backend

import (
	"digital.vasic.expect/pkg/logging"
	"digital.vasic.expect/pkg/metrics"
	"digital.vasic.expect/pkg/monitor"
)

type observed struct {
	inner   Backend
	observe func(passed bool, message string)
}

func (o observed) Pass(message string) {
	o.observe(true, message)
	o.inner.Pass(message)
}

func (o observed) Fail(message string) {
	o.observe(false, message)
	o.inner.Fail(message)
}

// Observe returns a Backend that reports every outcome to fn before
// forwarding it to inner. fn runs first because inner may panic.
func Observe(inner Backend, fn func(passed bool, message string)) Backend {
	return observed{inner: inner, observe: fn}
}

// Logging records every outcome on logger before forwarding it.
// entry describes the matcher; Passed and Message are filled in per
// outcome.
func Logging(inner Backend, logger logging.Logger, entry logging.AssertionLog) Backend {
	return Observe(inner, func(passed bool, message string) {
		e := entry
		e.Passed = passed
		e.Message = message
		logger.LogAssertion(e)
	})
}

// Metrics counts every outcome per matcher before forwarding it.
func Metrics(inner Backend, m metrics.AssertionMetrics, matcher string) Backend {
	return Observe(inner, func(passed bool, _ string) {
		m.RecordAssertion(matcher, passed)
	})
}

// Events publishes every outcome to the collector before
// forwarding it.
func Events(inner Backend, c *monitor.EventCollector, matcher, target string) Backend {
	return Observe(inner, func(passed bool, message string) {
		c.EmitOutcome(matcher, target, passed, message)
	})
}
