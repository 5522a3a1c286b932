// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command system for Overseer.
//
// This package turns a raw input line into a structured invocation,
// resolves it against a registry of named handlers, and executes the
// handler without blocking the caller.
//
// # Key Types
//
//   - Invocation: Parsed command line (name, positional args, --key=value options)
//   - Handler: One command's behavior (name, help, execute)
//   - Registry: Case-insensitive name -> handler map with dispatch
//   - Discovery: External source of handlers for bulk registration
//
// # Built-in Commands
//
//   - help: List commands or show one command's help
//   - clear: Empty the log store
//   - echo: Return the positional arguments
//   - log: Inject a log entry
//   - channels: List log channels
//   - loglevel: Show or set the display level threshold
//
// # Usage
//
// Parse and dispatch a line:
//
//	inv := commands.Parse(input)
//	out, err := registry.Dispatch(ctx, inv)
//
// Or without blocking the caller:
//
//	results := registry.DispatchAsync(ctx, inv)
//	res := <-results
package commands
