// Package bank loads suites of declarative assertions from JSON and
// YAML files.
package bank

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Bank manages suites loaded from files. It is safe for
// concurrent use.
type Bank struct {
	mu      sync.RWMutex
	suites  map[string]*Suite
	sources []string
}

// New creates a new empty Bank.
func New() *Bank {
	return &Bank{
		suites: make(map[string]*Suite),
	}
}

// Decode parses a bank file. ext selects the format: ".yaml" and
// ".yml" are YAML, anything else is JSON.
func Decode(data []byte, ext string) (BankFile, error) {
	var file BankFile
	var err error
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		err = json.Unmarshal(data, &file)
	}
	return file, err
}

// LoadFile loads the suites of a JSON or YAML bank file. A suite
// with the name of an already loaded suite replaces it. Reloading a
// file does not list it twice in Sources.
func (b *Bank) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bank file %s: %w", path, err)
	}

	file, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("parse bank file %s: %w", path, err)
	}

	for i, s := range file.Suites {
		if s.Name == "" {
			return fmt.Errorf("suite at index %d in %s has no name", i, path)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range file.Suites {
		s := &file.Suites[i]
		b.suites[s.Name] = s
	}
	if !slices.Contains(b.sources, path) {
		b.sources = append(b.sources, path)
	}
	return nil
}

// LoadDir loads all .json, .yaml and .yml files from a directory.
// It does not recurse into subdirectories.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read bank directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isBankFile(entry.Name()) {
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func isBankFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// Get retrieves a suite by name.
func (b *Bank) Get(name string) (*Suite, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.suites[name]
	return s, ok
}

// All returns all loaded suites sorted by name.
func (b *Bank) All() []*Suite {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]*Suite, 0, len(b.suites))
	for _, s := range b.suites {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Count returns the number of loaded suites.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.suites)
}

// Sources returns the list of loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}
