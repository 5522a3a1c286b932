// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-process log store for Overseer.
package logging

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// LEVEL
// =============================================================================

// Level is the severity of a log entry. Levels are ordered: a filter set to
// LevelInfo admits Info, Warning and Error.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
)

var levelNames = [...]string{
	LevelTrace:   "trace",
	LevelDebug:   "debug",
	LevelInfo:    "info",
	LevelWarning: "warning",
	LevelError:   "error",
}

// String returns the lowercase level name.
func (l Level) String() string {
	if l < LevelTrace || l > LevelError {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel resolves a level from its name, case-insensitively.
// "warn" is accepted as a shorthand for "warning".
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	}
	return LevelTrace, fmt.Errorf("unknown log level %q", name)
}

// =============================================================================
// ENTRY
// =============================================================================

// Entry is one log event. Entries are immutable by convention: they are
// copied into and out of the store by value, and no component holds a
// reference into the ring.
type Entry struct {
	// Time is the moment of logging, in UTC.
	Time time.Time

	// Level is the severity.
	Level Level

	// Channel tags the originating subsystem(s).
	Channel Channel

	// Message is the log text.
	Message string

	// StackTrace is an optional captured stack (error-level entries).
	StackTrace string

	// ThreadName labels the producing goroutine.
	ThreadName string

	// ContextName is an optional logical source (e.g. an object or scene).
	ContextName string
}

// NewEntry builds an entry stamped with the current UTC time and the
// calling goroutine's label.
func NewEntry(level Level, channel Channel, message string) Entry {
	return Entry{
		Time:       time.Now().UTC(),
		Level:      level,
		Channel:    channel,
		Message:    message,
		ThreadName: goroutineLabel(),
	}
}
