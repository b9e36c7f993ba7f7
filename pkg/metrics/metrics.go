// Package metrics records assertion statistics. Exporting them to
// a metrics backend is left to the host application.
package metrics

import "time"

// AssertionMetrics defines the interface for recording assertion
// statistics.
type AssertionMetrics interface {
	// RecordAssertion records one matcher outcome.
	RecordAssertion(matcher string, passed bool)
	// RecordRun records a completed batch of assertions.
	RecordRun(total int, duration time.Duration)
}

// NoopMetrics is a no-op implementation of AssertionMetrics
// useful for testing or when metrics collection is disabled.
type NoopMetrics struct{}

func (NoopMetrics) RecordAssertion(_ string, _ bool) {}
func (NoopMetrics) RecordRun(_ int, _ time.Duration) {}
