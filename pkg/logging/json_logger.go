package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// marshal is swapped in tests to exercise encoding failures.
var marshal = json.Marshal

// LogEntry is one line of the run log.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// LoggerConfig configures a JSONLogger.
type LoggerConfig struct {
	// OutputPath is the run log. Empty writes to stdout.
	OutputPath string
	// AssertionLog receives one line per matcher outcome. Empty
	// logs outcomes as run log entries instead.
	AssertionLog string
	Level        LogLevel
	// Verbose enables Debug regardless of Level.
	Verbose bool
	Fields  map[string]any
}

// sinks are the writers shared by a logger and its children.
type sinks struct {
	mu         sync.Mutex
	run        io.Writer
	assertions io.Writer
	closed     bool
}

func (s *sinks) write(w io.Writer, v any) {
	data, err := marshal(v)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		fmt.Fprintln(w, string(data))
	}
}

func (s *sinks) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for _, w := range []io.Writer{s.run, s.assertions} {
		if f, ok := w.(*os.File); ok && f != os.Stdout && f != os.Stderr {
			errs = append(errs, f.Close())
		}
	}
	return errors.Join(errs...)
}

// JSONLogger writes JSON Lines. Children made by WithFields share
// the parent's writers; closing any of them closes all.
type JSONLogger struct {
	out     *sinks
	level   LogLevel
	verbose bool
	fields  map[string]any
}

// NewJSONLogger opens the files named by config, creating parent
// directories as needed.
func NewJSONLogger(config LoggerConfig) (*JSONLogger, error) {
	out := &sinks{run: os.Stdout}
	if config.OutputPath != "" {
		f, err := openAppend(config.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out.run = f
	}
	if config.AssertionLog != "" {
		f, err := openAppend(config.AssertionLog)
		if err != nil {
			_ = out.close()
			return nil, fmt.Errorf("open assertion log: %w", err)
		}
		out.assertions = f
	}

	fields := make(map[string]any, len(config.Fields))
	for k, v := range config.Fields {
		fields[k] = v
	}
	return &JSONLogger{out: out, level: config.Level, verbose: config.Verbose, fields: fields}, nil
}

// NewJSONLoggerTo creates a JSON logger writing to w.
func NewJSONLoggerTo(w io.Writer, level LogLevel) *JSONLogger {
	return &JSONLogger{out: &sinks{run: w}, level: level, fields: map[string]any{}}
}

// OpenDir creates a JSON logger writing run.log and assertions.log
// into dir. Verbose lowers the level to debug.
func OpenDir(dir string, level LogLevel, verbose bool) (*JSONLogger, error) {
	if verbose {
		level = LevelDebug
	}
	return NewJSONLogger(LoggerConfig{
		OutputPath:   filepath.Join(dir, "run.log"),
		AssertionLog: filepath.Join(dir, "assertions.log"),
		Level:        level,
		Verbose:      verbose,
	})
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func (l *JSONLogger) enabled(level LogLevel) bool {
	if level == LevelDebug {
		return l.verbose && l.level <= LevelDebug
	}
	return level >= l.level
}

func (l *JSONLogger) log(level LogLevel, msg string, fields ...Field) {
	if !l.enabled(level) {
		return
	}
	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Level:     level.String(),
		Message:   msg,
		Fields:    l.merge(fields),
	}
	l.out.write(l.out.run, entry)
}

func (l *JSONLogger) merge(fields []Field) map[string]any {
	m := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		m[k] = v
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields...) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields...) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields...) }

// Debug logs only when the logger is verbose and its level allows
// debug entries.
func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields...) }

func (l *JSONLogger) WithFields(fields ...Field) Logger {
	child := *l
	child.fields = l.merge(fields)
	return &child
}

// LogAssertion writes entry to the assertion log. Without one,
// failures become warn entries and passes debug entries of the
// run log.
func (l *JSONLogger) LogAssertion(entry AssertionLog) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339Nano)
	}
	if l.out.assertions != nil {
		l.out.write(l.out.assertions, entry)
		return
	}

	fields := []Field{MatcherField(entry.Matcher), BoolField("passed", entry.Passed)}
	if entry.Target != "" {
		fields = append(fields, TargetField(entry.Target))
	}
	if entry.Passed {
		l.Debug(entry.Message, fields...)
		return
	}
	l.Warn(entry.Message, fields...)
}

// Close closes the files opened by NewJSONLogger. It is safe to
// call more than once.
func (l *JSONLogger) Close() error {
	return l.out.close()
}
