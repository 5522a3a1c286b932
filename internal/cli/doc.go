// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-terminal REPL front end for Overseer.
//
// The REPL is the no-frills alternative to the Bubble Tea overlay: a
// liner-backed prompt with in-memory history and tab completion over the
// command registry. Each line is parsed, dispatched, and its result
// printed. History is deliberately not persisted across runs.
package cli
