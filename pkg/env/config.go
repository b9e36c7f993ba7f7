package env

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
)

// Prefix namespaces every variable read by LoadConfigFile.
const Prefix = "EXPECT_"

// Config holds the run settings of the declarative assertion engine.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`

	// LogPath is the directory run and assertion logs are written
	// to. Empty logs to the console only.
	LogPath string `json:"log_path" yaml:"log_path" env:"LOG_PATH"`

	// Verbose also prints passing assertions to the console.
	Verbose bool `json:"verbose" yaml:"verbose" env:"VERBOSE"`

	// MonitorAddr is the listen address of the event stream server.
	// Empty disables streaming.
	MonitorAddr string `json:"monitor_addr" yaml:"monitor_addr" env:"MONITOR_ADDR"`

	// FailFast stops a run at the first failed assertion.
	FailFast bool `json:"fail_fast" yaml:"fail_fast" env:"FAIL_FAST"`

	// Precision is the default decimal precision of toBeCloseTo.
	Precision int `json:"precision" yaml:"precision" env:"PRECISION"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:  "info",
		Precision: 2,
	}
}

// LoadConfig parses the variables visible through l on top of
// DefaultConfig. Unset variables keep their defaults; malformed
// ones are an error.
func LoadConfig(l Loader) (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: l.Environ()}); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile loads the optional .env file at path and resolves
// the EXPECT_* configuration. A missing file is not an error.
func LoadConfigFile(path string) (Config, error) {
	l := NewPrefixedLoader(Prefix)
	if path != "" {
		if err := l.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}
	return LoadConfig(l)
}
