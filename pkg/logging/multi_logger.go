package logging

import "errors"

// MultiLogger fans every call out to a fixed set of loggers, for
// example the console and the JSON run log.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger combines loggers. Nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	m := &MultiLogger{loggers: make([]Logger, 0, len(loggers))}
	for _, l := range loggers {
		if l != nil {
			m.loggers = append(m.loggers, l)
		}
	}
	return m
}

func (m *MultiLogger) each(fn func(Logger)) {
	for _, l := range m.loggers {
		fn(l)
	}
}

func (m *MultiLogger) Info(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Info(msg, fields...) })
}

func (m *MultiLogger) Warn(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Warn(msg, fields...) })
}

func (m *MultiLogger) Error(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Error(msg, fields...) })
}

func (m *MultiLogger) Debug(msg string, fields ...Field) {
	m.each(func(l Logger) { l.Debug(msg, fields...) })
}

func (m *MultiLogger) LogAssertion(entry AssertionLog) {
	m.each(func(l Logger) { l.LogAssertion(entry) })
}

// WithFields derives every inner logger.
func (m *MultiLogger) WithFields(fields ...Field) Logger {
	child := &MultiLogger{loggers: make([]Logger, 0, len(m.loggers))}
	m.each(func(l Logger) { child.loggers = append(child.loggers, l.WithFields(fields...)) })
	return child
}

// Close closes every logger and joins their errors.
func (m *MultiLogger) Close() error {
	var errs []error
	m.each(func(l Logger) {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
