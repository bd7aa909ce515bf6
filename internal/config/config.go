// Package config stores persistent settings shared by ote and ote-viewer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config stores persistent application settings
type Config struct {
	Theme        string  `yaml:"theme"`         // "light" or "dark"
	RotationStep float64 `yaml:"rotation_step"` // degrees per RotL/RotR press
	LibraryPath  string  `yaml:"library_path"`  // SQLite scheme library
	Export       Export  `yaml:"export"`
}

// Export holds PNG export defaults
type Export struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Dir returns the platform config directory: %APPDATA%\OpenTraceElectron on
// Windows, ~/.config/opentraceelectron elsewhere
func Dir() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "OpenTraceElectron"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "opentraceelectron"), nil
}

// DefaultPath returns the path of config.yaml inside Dir
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the settings used when no file exists. The library lives
// next to the config file when the directory is known.
func Default() *Config {
	lib := "library.db"
	if dir, err := Dir(); err == nil {
		lib = filepath.Join(dir, "library.db")
	}
	return &Config{
		Theme:        "light",
		RotationStep: 90,
		LibraryPath:  lib,
		Export:       Export{Width: 800, Height: 600},
	}
}

// Load reads the config at path. A missing file yields Default; fields left
// out of the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the tools cannot use
func (c *Config) Validate() error {
	switch c.Theme {
	case "light", "dark":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	if c.RotationStep <= 0 || c.RotationStep > 360 {
		return fmt.Errorf("rotation_step %v out of range (0, 360]", c.RotationStep)
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 {
		return fmt.Errorf("export size %dx%d must be positive", c.Export.Width, c.Export.Height)
	}
	return nil
}

// Save writes cfg to path, creating the directory if needed
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
