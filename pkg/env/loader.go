// Package env resolves the engine configuration from the process
// environment and optional .env files.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Loader resolves variables. Process environment values win over
// values read from files.
type Loader interface {
	// Load merges the variables of a .env file. Later files win.
	Load(path string) error
	// Lookup reports the value of key and whether it is set.
	Lookup(key string) (string, bool)
	// Get returns the value of key, or "" when unset.
	Get(key string) string
	// Set stores key in the loader and the process environment.
	Set(key, value string) error
	// Environ returns every visible variable.
	Environ() map[string]string
}

// DefaultLoader is a Loader over .env files. A prefixed loader
// reads key as prefix+key and reports unprefixed names from
// Environ.
type DefaultLoader struct {
	mu      sync.RWMutex
	prefix  string
	file    map[string]string
	sources []string
}

// NewLoader creates a loader reading unprefixed keys.
func NewLoader() *DefaultLoader {
	return NewPrefixedLoader("")
}

// NewPrefixedLoader creates a loader that looks every key up as
// prefix+key, so Get("LOG_LEVEL") reads EXPECT_LOG_LEVEL.
func NewPrefixedLoader(prefix string) *DefaultLoader {
	return &DefaultLoader{prefix: prefix, file: make(map[string]string)}
}

// Load reads path. Blank lines, comments and lines without "="
// are skipped; an "export " prefix and surrounding quotes are
// dropped.
func (l *DefaultLoader) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer f.Close()

	vars := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if key, val, ok := parseLine(scanner.Text()); ok {
			vars[key] = val
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read env file %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for k, v := range vars {
		l.file[k] = v
	}
	l.sources = append(l.sources, path)
	return nil
}

func parseLine(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return "", "", false
	}
	key, val, ok = strings.Cut(strings.TrimPrefix(line, "export "), "=")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.Trim(strings.TrimSpace(val), `"'`), true
}

// Sources lists the files loaded so far.
func (l *DefaultLoader) Sources() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.sources...)
}

func (l *DefaultLoader) Lookup(key string) (string, bool) {
	key = l.prefix + key
	if v := os.Getenv(key); v != "" {
		return v, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.file[key]
	return v, ok
}

func (l *DefaultLoader) Get(key string) string {
	v, _ := l.Lookup(key)
	return v
}

// Require returns the value of key or an error naming the full
// variable when it is unset or empty.
func (l *DefaultLoader) Require(key string) (string, error) {
	if v := l.Get(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("required environment variable %s%s is not set", l.prefix, key)
}

func (l *DefaultLoader) Set(key, value string) error {
	key = l.prefix + key
	l.mu.Lock()
	l.file[key] = value
	l.mu.Unlock()
	return os.Setenv(key, value)
}

func (l *DefaultLoader) Environ() map[string]string {
	out := make(map[string]string)

	l.mu.RLock()
	for k, v := range l.file {
		if name, ok := strings.CutPrefix(k, l.prefix); ok {
			out[name] = v
		}
	}
	l.mu.RUnlock()

	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if name, ok := strings.CutPrefix(k, l.prefix); ok && v != "" {
			out[name] = v
		}
	}
	return out
}
