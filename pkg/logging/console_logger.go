package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette holds the colors of one console logger. Colors follow
// color.NoColor unless disabled explicitly.
type palette struct {
	info, warn, fail, pass, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		info: color.New(color.FgBlue),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
		pass: color.New(color.FgGreen),
		dim:  color.New(color.Faint),
	}
	if !enabled {
		for _, c := range []*color.Color{p.info, p.warn, p.fail, p.pass, p.dim} {
			c.DisableColor()
		}
	}
	return p
}

// ConsoleLogger provides colored console output.
type ConsoleLogger struct {
	mu      *sync.Mutex
	output  io.Writer
	verbose bool
	colors  palette
	fields  map[string]any
}

// NewConsoleLogger creates a console logger writing to stdout.
// When verbose is true, debug messages and passing assertions
// are emitted.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stdout, verbose)
}

// NewConsoleLoggerTo creates a console logger writing to w.
func NewConsoleLoggerTo(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		mu:      &sync.Mutex{},
		output:  w,
		verbose: verbose,
		colors:  newPalette(true),
		fields:  make(map[string]any),
	}
}

// WithoutColor returns a copy of c that writes plain text.
func (c *ConsoleLogger) WithoutColor() *ConsoleLogger {
	plain := *c
	plain.colors = newPalette(false)
	return &plain
}

func (c *ConsoleLogger) log(level LogLevel, tint *color.Color, msg string, fields ...Field) {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make(map[string]any, len(c.fields)+len(fields))
	for k, v := range c.fields {
		merged[k] = v
	}
	for _, f := range fields {
		merged[f.Key] = f.Value
	}

	var fieldStr string
	if len(merged) > 0 {
		keys := make([]string, 0, len(merged))
		for k := range merged {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, merged[k]))
		}
		fieldStr = " " + c.colors.dim.Sprintf("{%s}", strings.Join(parts, ", "))
	}

	fmt.Fprintf(c.output, "%s [%s] %s%s\n",
		c.colors.dim.Sprint(time.Now().Format("15:04:05")),
		tint.Sprintf("%-5s", level.String()),
		msg, fieldStr,
	)
}

// Info logs an informational message.
func (c *ConsoleLogger) Info(msg string, fields ...Field) {
	c.log(LevelInfo, c.colors.info, msg, fields...)
}

// Warn logs a warning message.
func (c *ConsoleLogger) Warn(msg string, fields ...Field) {
	c.log(LevelWarn, c.colors.warn, msg, fields...)
}

// Error logs an error message.
func (c *ConsoleLogger) Error(msg string, fields ...Field) {
	c.log(LevelError, c.colors.fail, msg, fields...)
}

// Debug logs a debug message only if verbose is enabled.
func (c *ConsoleLogger) Debug(msg string, fields ...Field) {
	if c.verbose {
		c.log(LevelDebug, c.colors.dim, msg, fields...)
	}
}

// WithFields returns a new Logger with additional default
// fields. The returned logger shares the output lock.
func (c *ConsoleLogger) WithFields(fields ...Field) Logger {
	child := *c
	child.fields = make(map[string]any, len(c.fields)+len(fields))
	for k, v := range c.fields {
		child.fields[k] = v
	}
	for _, f := range fields {
		child.fields[f.Key] = f.Value
	}
	return &child
}

// LogAssertion prints a PASS/FAIL line. Passes are only shown
// in verbose mode.
func (c *ConsoleLogger) LogAssertion(entry AssertionLog) {
	if entry.Passed {
		if c.verbose {
			c.log(LevelInfo, c.colors.pass, c.colors.pass.Sprint("PASS ")+entry.Message)
		}
		return
	}
	c.log(LevelWarn, c.colors.fail, c.colors.fail.Sprint("FAIL ")+entry.Message)
}

// Close is a no-op for ConsoleLogger.
func (c *ConsoleLogger) Close() error {
	return nil
}
