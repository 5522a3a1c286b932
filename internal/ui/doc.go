// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea overlay for the Overseer console.
//
// The overlay is one rendering host for the core: it snapshots the log
// store on change notifications, feeds decoded key events to the console
// session, and draws the session's suggestion and history state. Nothing
// in the core depends on this package.
//
// # Layout
//
//   - Header with store occupancy
//   - Scrolling log view (filtered by the shared display filter)
//   - Last command result line
//   - Command input with suggestion popup
//   - Status bar with key hints
package ui
