// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-process log store for Overseer.
package logging

import (
	"bytes"
	"fmt"
	"runtime"
	"runtime/debug"
)

// =============================================================================
// LOGGER FRONT
// =============================================================================

// Logger is a convenience front over a Store for one subsystem: it stamps
// entries with a fixed channel and context name so call sites stay short.
// Loggers are cheap values; create one per subsystem.
type Logger struct {
	store   *Store
	channel Channel
	context string
}

// NewLogger creates a logger writing to store under the given channel.
// contextName is optional and may be empty.
func NewLogger(store *Store, channel Channel, contextName string) *Logger {
	return &Logger{store: store, channel: channel, context: contextName}
}

// Tracef records a trace-level entry.
func (l *Logger) Tracef(format string, args ...any) {
	l.log(LevelTrace, format, args...)
}

// Debugf records a debug-level entry.
func (l *Logger) Debugf(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Infof records an info-level entry.
func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warningf records a warning-level entry.
func (l *Logger) Warningf(format string, args ...any) {
	l.log(LevelWarning, format, args...)
}

// Errorf records an error-level entry with a captured stack trace.
func (l *Logger) Errorf(format string, args ...any) {
	e := NewEntry(LevelError, l.channel, fmt.Sprintf(format, args...))
	e.ContextName = l.context
	e.StackTrace = string(debug.Stack())
	_ = l.store.Add(e)
}

func (l *Logger) log(level Level, format string, args ...any) {
	e := NewEntry(level, l.channel, fmt.Sprintf(format, args...))
	e.ContextName = l.context
	_ = l.store.Add(e)
}

// =============================================================================
// GOROUTINE LABEL
// =============================================================================

// goroutineLabel derives a stable label for the calling goroutine from the
// runtime stack header ("goroutine 12 [running]:"). Go has no thread names;
// this is the closest honest equivalent for the ThreadName field.
func goroutineLabel() string {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	// Header shape: "goroutine N [state]:\n..."
	fields := bytes.Fields(buf)
	if len(fields) >= 2 && string(fields[0]) == "goroutine" {
		return "goroutine-" + string(fields[1])
	}
	return "goroutine-?"
}
