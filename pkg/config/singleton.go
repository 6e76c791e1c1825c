package config

import (
	"fmt"
	"sync/atomic"
)

// current is the process-wide configuration. The exporter's pipeline is
// built from an explicit *Config; the global copy only serves the reload
// path and diagnostics.
var current atomic.Pointer[Config]

// Initialize loads path with environment overrides and installs the result
// as the global configuration. Once a configuration is installed, later
// calls leave it untouched and return nil.
func Initialize(path string, optional bool) error {
	if current.Load() != nil {
		return nil
	}
	cfg, err := LoadConfigWithEnvOverrides(path, optional)
	if err != nil {
		return err
	}
	current.CompareAndSwap(nil, cfg)
	return nil
}

// GetConfig returns the global configuration, or nil before one is
// installed.
func GetConfig() *Config {
	return current.Load()
}

// SetConfig replaces the global configuration. A nil cfg clears it.
func SetConfig(cfg *Config) {
	current.Store(cfg)
}

// ReloadConfig re-reads path and installs the result. On error the
// previous configuration stays in place.
func ReloadConfig(path string) (*Config, error) {
	cfg, err := LoadConfigWithEnvOverrides(path, false)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", path, err)
	}
	current.Store(cfg)
	return cfg, nil
}
