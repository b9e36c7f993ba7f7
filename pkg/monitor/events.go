// Package monitor collects assertion events as they happen and
// streams them to live clients over WebSocket.
package monitor

import "time"

// EventType represents the type of assertion event.
type EventType string

const (
	EventPassed EventType = "passed"
	EventFailed EventType = "failed"
	EventRun    EventType = "run"
)

// AssertionEvent is one matcher outcome, or the completion of a
// batch when Type is EventRun.
type AssertionEvent struct {
	Type      EventType     `json:"type"`
	Matcher   string        `json:"matcher,omitempty"`
	Target    string        `json:"target,omitempty"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}
