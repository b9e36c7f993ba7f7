package metrics

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// maxRunMicros bounds the run duration histogram at one hour.
const maxRunMicros = int64(time.Hour / time.Microsecond)

// InMemoryMetrics implements AssertionMetrics with counters kept in
// memory. It is safe for concurrent use.
type InMemoryMetrics struct {
	mu        sync.RWMutex
	outcomes  map[string]int
	runs      int
	runTotals int
	totalTime time.Duration
	latency   *hdrhistogram.Histogram
}

// NewInMemoryMetrics creates an empty InMemoryMetrics.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		outcomes: make(map[string]int),
		latency:  hdrhistogram.New(1, maxRunMicros, 3),
	}
}

func outcomeKey(matcher string, passed bool) string {
	if passed {
		return matcher + ":passed"
	}
	return matcher + ":failed"
}

func (m *InMemoryMetrics) RecordAssertion(matcher string, passed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcomeKey(matcher, passed)]++
}

func (m *InMemoryMetrics) RecordRun(total int, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.runTotals += total
	m.totalTime += duration

	us := duration.Microseconds()
	us = max(1, min(us, maxRunMicros))
	_ = m.latency.RecordValue(us)
}

// Count returns the number of outcomes recorded for a matcher.
func (m *InMemoryMetrics) Count(matcher string, passed bool) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.outcomes[outcomeKey(matcher, passed)]
}

// Totals returns the passed and failed counts across all matchers.
func (m *InMemoryMetrics) Totals() (passed, failed int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for key, n := range m.outcomes {
		if strings.HasSuffix(key, ":passed") {
			passed += n
		} else {
			failed += n
		}
	}
	return passed, failed
}

// Matchers returns the sorted names of all matchers seen.
func (m *InMemoryMetrics) Matchers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]struct{})
	for key := range m.outcomes {
		name := strings.TrimSuffix(strings.TrimSuffix(key, ":passed"), ":failed")
		seen[name] = struct{}{}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Runs returns the number of recorded runs and the assertions
// they evaluated in total.
func (m *InMemoryMetrics) Runs() (runs, assertions int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs, m.runTotals
}

// AverageRunDuration returns the mean recorded run duration.
func (m *InMemoryMetrics) AverageRunDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.runs == 0 {
		return 0
	}
	return m.totalTime / time.Duration(m.runs)
}

// RunDurationPercentile returns the run duration at percentile q
// (0-100), at microsecond resolution and three significant digits.
func (m *InMemoryMetrics) RunDurationPercentile(q float64) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.runs == 0 {
		return 0
	}
	return time.Duration(m.latency.ValueAtQuantile(q)) * time.Microsecond
}
