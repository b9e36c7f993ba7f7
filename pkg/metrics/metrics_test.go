package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryMetrics_RecordAssertion(t *testing.T) {
	m := NewInMemoryMetrics()
	m.RecordAssertion("toEqual", true)
	m.RecordAssertion("toEqual", true)
	m.RecordAssertion("toEqual", false)
	m.RecordAssertion("toBeNull", false)

	assert.Equal(t, 2, m.Count("toEqual", true))
	assert.Equal(t, 1, m.Count("toEqual", false))
	assert.Equal(t, 0, m.Count("toMatch", true))

	passed, failed := m.Totals()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 2, failed)
	assert.Equal(t, []string{"toBeNull", "toEqual"}, m.Matchers())
}

func TestInMemoryMetrics_RecordRun(t *testing.T) {
	m := NewInMemoryMetrics()
	assert.Equal(t, time.Duration(0), m.AverageRunDuration())

	m.RecordRun(3, 2*time.Second)
	m.RecordRun(5, 4*time.Second)

	runs, total := m.Runs()
	assert.Equal(t, 2, runs)
	assert.Equal(t, 8, total)
	assert.Equal(t, 3*time.Second, m.AverageRunDuration())
}

func TestInMemoryMetrics_RunDurationPercentile(t *testing.T) {
	m := NewInMemoryMetrics()
	assert.Equal(t, time.Duration(0), m.RunDurationPercentile(50))

	for i := 1; i <= 100; i++ {
		m.RecordRun(1, time.Duration(i)*time.Millisecond)
	}
	m.RecordRun(1, 0)
	m.RecordRun(1, 2*time.Hour)

	tests := []struct {
		q    float64
		want time.Duration
	}{
		{50, 50 * time.Millisecond},
		{90, 90 * time.Millisecond},
	}
	for _, tt := range tests {
		got := m.RunDurationPercentile(tt.q)
		assert.InDelta(t, float64(tt.want), float64(got), float64(2*time.Millisecond), "p%v", tt.q)
	}
	assert.InDelta(t, float64(time.Hour), float64(m.RunDurationPercentile(100)), float64(time.Minute))
}

func TestInMemoryMetrics_Concurrent(t *testing.T) {
	m := NewInMemoryMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordAssertion("toBe", true)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, m.Count("toBe", true))
}

func TestNoopMetrics(t *testing.T) {
	var m AssertionMetrics = NoopMetrics{}
	// Should not panic
	m.RecordAssertion("toEqual", true)
	m.RecordRun(1, time.Second)
}
