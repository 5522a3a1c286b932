// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console provides the Overseer console session: the coordinating
// layer between raw input editing and the command system.
//
// A Session holds the current input line, submitted-line history, and the
// live suggestion state, and orchestrates parse -> dispatch on submit. It
// is rendering-agnostic: a front end feeds it text changes and key events
// it decodes itself, and renders whatever state the session exposes.
//
// Sessions are confined to one goroutine. The log store and command
// registry carry their own locking; the session does not.
//
// # Key Behaviors
//
//   - Suggestions are re-derived from the live registry on every text change
//   - Up/Down move the highlighted suggestion while the popup is open,
//     and navigate history once it closes
//   - Accepting a suggestion replaces only the first token of the input
//   - Submit with a highlighted suggestion accepts it first; a second
//     submit dispatches (two-step confirm)
package console
