// Package plugin installs named sets of custom matchers into an
// expectation registry.
package plugin

import (
	"fmt"
	"sort"
	"sync"

	"digital.vasic.expect/pkg/expect"
	"digital.vasic.expect/pkg/logging"
)

// Plugin extends a matcher registry.
type Plugin interface {
	// Name returns the plugin's unique name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
	// Init installs the plugin into ctx.Registry.
	Init(ctx *PluginContext) error
}

// PluginContext provides the components a plugin installs into.
type PluginContext struct {
	Registry *expect.Registry
	Logger   logging.Logger
	Config   map[string]any
}

// MatcherSet is a Plugin that registers a fixed set of matchers.
// Matchers already registered under the same name are replaced.
type MatcherSet struct {
	SetName    string
	SetVersion string
	Matchers   map[string]expect.Matcher
}

// Name returns the set's name.
func (m MatcherSet) Name() string { return m.SetName }

// Version returns the set's version.
func (m MatcherSet) Version() string { return m.SetVersion }

// Init registers every matcher of the set.
func (m MatcherSet) Init(ctx *PluginContext) error {
	if ctx == nil || ctx.Registry == nil {
		return fmt.Errorf("matcher set %q: no registry", m.SetName)
	}
	names := make([]string, 0, len(m.Matchers))
	for name, fn := range m.Matchers {
		if fn == nil {
			return fmt.Errorf("matcher set %q: matcher %s is nil", m.SetName, name)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ctx.Registry.Register(name, m.Matchers[name])
	}
	if ctx.Logger != nil {
		ctx.Logger.Debug("matchers installed",
			logging.StringField("plugin", m.SetName),
			logging.IntField("count", len(names)),
		)
	}
	return nil
}

// Registry manages plugin registration and initialization.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	loaded  map[string]bool
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		loaded:  make(map[string]bool),
	}
}

// Register adds a plugin to the registry. Plugin names are unique.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	return nil
}

// Get retrieves a registered plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// InitAll initializes, in name order, every registered plugin that
// hasn't been initialized yet.
func (r *Registry) InitAll(ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.sortedNames() {
		if err := r.initLocked(name, ctx); err != nil {
			return err
		}
	}
	return nil
}

// Init initializes a specific plugin by name.
func (r *Registry) Init(name string, ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; !ok {
		return fmt.Errorf("plugin %q not found", name)
	}
	return r.initLocked(name, ctx)
}

func (r *Registry) initLocked(name string, ctx *PluginContext) error {
	if r.loaded[name] {
		return nil
	}
	if err := r.plugins[name].Init(ctx); err != nil {
		return fmt.Errorf("init plugin %q: %w", name, err)
	}
	r.loaded[name] = true
	return nil
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns all registered plugin names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// IsLoaded checks if a plugin has been initialized.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// Install registers plugins and initializes everything not yet
// initialized. Registration stops at the first duplicate name.
func (r *Registry) Install(ctx *PluginContext, plugins ...Plugin) error {
	for _, p := range plugins {
		if err := r.Register(p); err != nil {
			return fmt.Errorf("install plugin: %w", err)
		}
	}
	return r.InitAll(ctx)
}
