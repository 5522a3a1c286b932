// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-process log store for Overseer.
//
// The store is a fixed-capacity FIFO ring of log entries, safe for many
// concurrent writers and readers. Entries are tagged with a severity level
// and a channel bitset so front ends can filter by subsystem.
//
// # Key Types
//
//   - Entry: One immutable log event
//   - Store: Thread-safe bounded ring with change notification
//   - Level: Ordered severity (Trace < Debug < Info < Warning < Error)
//   - Channel: Combinable subsystem category bitset
//   - Filter: Shared level/channel display filter
//   - Logger: Convenience front for building entries
//
// # Usage
//
// Record and read back entries:
//
//	store := logging.NewStore(2000)
//	store.Add(logging.NewEntry(logging.LevelInfo, logging.ChannelCore, "ready"))
//
//	var buf []logging.Entry
//	store.Snapshot(&buf)
package logging
