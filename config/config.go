// Package config loads evaluator settings from YAML or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"echo/db"
	"echo/types"
)

// Config holds evaluator settings
type Config struct {
	// MaxDepth bounds nested verb, lambda and handler calls
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`
	// TickLimit bounds statements per evaluation; 0 means unlimited
	TickLimit int64 `yaml:"tick_limit" toml:"tick_limit"`
	// InheritedLookup makes verb and property lookup walk the parent chain
	InheritedLookup bool `yaml:"inherited_lookup" toml:"inherited_lookup"`

	Trace TraceConfig `yaml:"trace" toml:"trace"`
	Store StoreConfig `yaml:"store" toml:"store"`
}

// TraceConfig controls the execution tracer
type TraceConfig struct {
	Enabled bool     `yaml:"enabled" toml:"enabled"`
	Filters []string `yaml:"filters" toml:"filters"`
}

// StoreConfig selects the object store. An empty driver means in-memory.
type StoreConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		MaxDepth: types.DefaultMaxDepth,
	}
}

// Load reads a config file, choosing the format by extension (.toml, or
// .yaml/.yml). Unset fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that settings are usable
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.TickLimit < 0 {
		return fmt.Errorf("tick_limit must not be negative, got %d", c.TickLimit)
	}
	switch c.Store.Driver {
	case "", "memory":
	case db.DriverSQLite, db.DriverMySQL, db.DriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store driver %s needs a dsn", c.Store.Driver)
		}
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	return nil
}

// OpenStore opens the configured object store and makes sure the system
// and root objects exist. The returned close function releases it.
func (c Config) OpenStore() (db.Store, func() error, error) {
	var (
		store   db.Store
		closeFn = func() error { return nil }
	)
	switch c.Store.Driver {
	case "", "memory":
		store = db.NewMemoryStore()
	default:
		s, err := db.OpenSQLStore(c.Store.Driver, c.Store.DSN)
		if err != nil {
			return nil, nil, err
		}
		store, closeFn = s, s.Close
	}
	if err := db.Bootstrap(store); err != nil {
		closeFn()
		return nil, nil, err
	}
	return store, closeFn, nil
}
