// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for Overseer.
//
// Configuration is stored as TOML at ~/.overseer/config.toml. A missing
// file is not an error: Load falls back to defaults, and validation clamps
// out-of-range values instead of failing.
//
// # Key Types
//
//   - Config: Root configuration (log store, console, UI sections)
//   - Watcher: fsnotify-based live reload of the config file
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	store := logging.NewStore(cfg.Log.Capacity)
package config
