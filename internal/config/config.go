// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for Overseer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Riteg/Overseer/internal/console"
	"github.com/Riteg/Overseer/internal/logging"
)

// =============================================================================
// CONFIG TYPES
// =============================================================================

// Config is the root Overseer configuration.
type Config struct {
	// Log configures the bounded log store.
	Log LogConfig `toml:"log"`

	// Console configures the command session.
	Console ConsoleConfig `toml:"console"`

	// UI configures the terminal front end.
	UI UIConfig `toml:"ui"`
}

// LogConfig configures the log store and default display filter.
type LogConfig struct {
	// Capacity is the ring size. Values below the store's enforced floor
	// are clamped up by the store itself.
	Capacity int `toml:"capacity"`

	// DefaultLevel is the initial display threshold (trace..error).
	DefaultLevel string `toml:"default_level"`

	// Channels lists the initially visible channels; empty means all.
	Channels []string `toml:"channels"`
}

// ConsoleConfig configures the console session.
type ConsoleConfig struct {
	// HistoryLimit bounds the submitted-line history.
	HistoryLimit int `toml:"history_limit"`

	// SuggestMax is the maximum suggestion rows the popup shows at once.
	SuggestMax int `toml:"suggest_max"`
}

// UIConfig configures the terminal front end.
type UIConfig struct {
	// Theme selects "dark", "light" or "auto".
	Theme string `toml:"theme"`

	// Compact drops per-entry metadata from the log view.
	Compact bool `toml:"compact"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Capacity:     logging.DefaultCapacity,
			DefaultLevel: "trace",
		},
		Console: ConsoleConfig{
			HistoryLimit: console.DefaultHistoryLimit,
			SuggestMax:   8,
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// Normalize clamps out-of-range values onto their defaults. Bad values are
// never an error here; the console has to come up even with a mangled
// config file.
func (c *Config) Normalize() {
	if c.Log.Capacity <= 0 {
		c.Log.Capacity = logging.DefaultCapacity
	}
	if _, err := logging.ParseLevel(c.Log.DefaultLevel); err != nil {
		c.Log.DefaultLevel = "trace"
	}
	if c.Console.HistoryLimit <= 0 {
		c.Console.HistoryLimit = console.DefaultHistoryLimit
	}
	if c.Console.SuggestMax <= 0 {
		c.Console.SuggestMax = 8
	}
	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		c.UI.Theme = "auto"
	}
}

// DisplayLevel resolves the configured default display threshold.
func (c *Config) DisplayLevel() logging.Level {
	level, err := logging.ParseLevel(c.Log.DefaultLevel)
	if err != nil {
		return logging.LevelTrace
	}
	return level
}

// DisplayChannels resolves the configured channel mask. Unknown names are
// skipped; an empty or fully-unknown list means all channels.
func (c *Config) DisplayChannels() logging.Channel {
	mask := logging.ChannelNone
	for _, name := range c.Log.Channels {
		ch, err := logging.ParseChannel(name)
		if err != nil {
			continue
		}
		mask = mask.Union(ch)
	}
	if mask == logging.ChannelNone {
		return logging.ChannelAll
	}
	return mask
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the Overseer config directory (~/.overseer).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".overseer"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir ensures the config directory exists.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, falling back to defaults when it does not
// exist. A file that exists but does not parse is an error.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes the config to the default path, creating the directory if
// needed.
func (c *Config) Save() error {
	if err := EnsureDir(); err != nil {
		return err
	}
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
