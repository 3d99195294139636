// Package config provides YAML store definitions for statekit.
//
// This package enables running statekit's demo binary with declarative
// store definitions, as an alternative to the programmatic SDK approach.
// Each definition names a store and supplies its initial state as an
// arbitrary YAML document, which becomes a dynamic (map[string]any) store.
//
// Example configuration:
//
//	port: 8080
//
//	stores:
//	  - name: counter
//	    initial:
//	      count: 0
//	      is_updating: false
//	  - name: session
//	    initial:
//	      user: ""
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultPort is used when the configuration does not set one.
const defaultPort = 8080

// Config is the root configuration structure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Port is the HTTP port for the demo server. Defaults to 8080.
	Port int `yaml:"port"`

	// Stores defines the stores to create.
	Stores []StoreConfig `yaml:"stores"`
}

// StoreConfig defines a single store.
type StoreConfig struct {
	// Name is the store's name, fixed for its lifetime.
	// Names must be unique within one configuration.
	Name string `yaml:"name"`

	// Initial is the store's initial state as an arbitrary YAML mapping.
	// An absent mapping yields an empty state.
	Initial map[string]any `yaml:"initial"`
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read or parsed, or if the
// configuration is invalid.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Defaults are applied for Port (8080), and the result is validated:
// at least one store, non-empty unique names, port within range.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks the configuration for structural errors.
func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if len(c.Stores) == 0 {
		return fmt.Errorf("at least one store is required")
	}

	seen := make(map[string]bool, len(c.Stores))
	for i, sc := range c.Stores {
		if sc.Name == "" {
			return fmt.Errorf("stores[%d]: name is required", i)
		}
		if seen[sc.Name] {
			return fmt.Errorf("stores[%d]: duplicate store name %q", i, sc.Name)
		}
		seen[sc.Name] = true
	}

	return nil
}
