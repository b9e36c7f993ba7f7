package monitor

import (
	"sync"
	"time"
)

// EventCollector captures assertion events and aggregate counts.
type EventCollector struct {
	mu       sync.RWMutex
	events   []AssertionEvent
	handlers []func(AssertionEvent)
	stats    CollectorStats
	limit    int
}

// CollectorStats holds aggregate statistics.
type CollectorStats struct {
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Runs      int           `json:"runs"`
	StartTime time.Time     `json:"start_time"`
	Duration  time.Duration `json:"duration"`
}

// PassRate returns the fraction of passed assertions, or 0 when
// nothing was recorded.
func (s CollectorStats) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total)
}

// DefaultEventLimit bounds the events kept in memory.
const DefaultEventLimit = 10000

// NewEventCollector creates a new event collector.
func NewEventCollector() *EventCollector {
	return &EventCollector{
		events: make([]AssertionEvent, 0, 64),
		stats:  CollectorStats{StartTime: time.Now()},
		limit:  DefaultEventLimit,
	}
}

// OnEvent registers a handler to be called for each event.
func (c *EventCollector) OnEvent(handler func(AssertionEvent)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

// Emit records an event and notifies all handlers. Once the
// limit is reached the oldest events are dropped; counts keep
// accumulating.
func (c *EventCollector) Emit(event AssertionEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	if len(c.events) > c.limit {
		c.events = c.events[len(c.events)-c.limit:]
	}
	switch event.Type {
	case EventPassed:
		c.stats.Total++
		c.stats.Passed++
	case EventFailed:
		c.stats.Total++
		c.stats.Failed++
	case EventRun:
		c.stats.Runs++
	}
	c.stats.Duration = time.Since(c.stats.StartTime)
	handlers := make([]func(AssertionEvent), len(c.handlers))
	copy(handlers, c.handlers)
	c.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

// EmitOutcome emits a passed or failed event for a matcher.
func (c *EventCollector) EmitOutcome(matcher, target string, passed bool, msg string) {
	eventType := EventFailed
	if passed {
		eventType = EventPassed
	}
	c.Emit(AssertionEvent{
		Type:    eventType,
		Matcher: matcher,
		Target:  target,
		Message: msg,
	})
}

// EmitRun emits a batch completion event.
func (c *EventCollector) EmitRun(name string, duration time.Duration) {
	c.Emit(AssertionEvent{
		Type:     EventRun,
		Target:   name,
		Duration: duration,
	})
}

// Events returns a copy of all collected events.
func (c *EventCollector) Events() []AssertionEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]AssertionEvent, len(c.events))
	copy(result, c.events)
	return result
}

// Failures returns the collected failed events.
func (c *EventCollector) Failures() []AssertionEvent {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []AssertionEvent
	for _, e := range c.events {
		if e.Type == EventFailed {
			result = append(result, e)
		}
	}
	return result
}

// Stats returns the current aggregate statistics.
func (c *EventCollector) Stats() CollectorStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s := c.stats
	s.Duration = time.Since(s.StartTime)
	return s
}

// Reset clears all collected events and statistics.
func (c *EventCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
	c.stats = CollectorStats{StartTime: time.Now()}
}
