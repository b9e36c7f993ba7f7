// Package logging provides structured logging for expectation runs
// with JSON, console, and multi-destination output.
package logging

import "strings"

// Logger defines the interface for structured assertion logging.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, fields ...Field)

	// Warn logs a warning message.
	Warn(msg string, fields ...Field)

	// Error logs an error message.
	Error(msg string, fields ...Field)

	// Debug logs a debug-level message.
	Debug(msg string, fields ...Field)

	// WithFields returns a Logger with additional default
	// fields attached to every subsequent log entry.
	WithFields(fields ...Field) Logger

	// LogAssertion records the outcome of a single matcher.
	LogAssertion(entry AssertionLog)

	// Close flushes any buffers and releases resources.
	Close() error
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value any
}

// AssertionLog captures one matcher outcome.
type AssertionLog struct {
	Timestamp string `json:"timestamp"`
	Matcher   string `json:"matcher,omitempty"`
	Target    string `json:"target,omitempty"`
	Negated   bool   `json:"negated,omitempty"`
	Passed    bool   `json:"passed"`
	Message   string `json:"message"`
}

// LogLevel represents logging severity levels.
type LogLevel int

const (
	// LevelDebug is the most verbose level.
	LevelDebug LogLevel = iota
	// LevelInfo is the default level.
	LevelInfo
	// LevelWarn indicates potential issues.
	LevelWarn
	// LevelError indicates failures.
	LevelError
)

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name (case-insensitive) to a LogLevel.
// Unknown names yield LevelInfo and false.
func ParseLevel(name string) (LogLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, true
	case "info", "":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	}
	return LevelInfo, false
}

// NullLogger drops everything. Engines and runners default to it.
type NullLogger struct{}

func (NullLogger) Info(string, ...Field)      {}
func (NullLogger) Warn(string, ...Field)      {}
func (NullLogger) Error(string, ...Field)     {}
func (NullLogger) Debug(string, ...Field)     {}
func (NullLogger) LogAssertion(AssertionLog)  {}
func (NullLogger) WithFields(...Field) Logger { return NullLogger{} }
func (NullLogger) Close() error               { return nil }
