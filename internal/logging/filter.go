// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-process log store for Overseer.
package logging

import "sync"

// =============================================================================
// DISPLAY FILTER
// =============================================================================

// Filter is a shared level/channel admission test used by front ends to
// decide which entries to display. It is mutated by console commands and
// read by the rendering layer, so access is synchronized.
type Filter struct {
	mu       sync.Mutex
	minLevel Level
	channels Channel
}

// NewFilter creates a filter admitting every entry at or above minLevel
// whose channel intersects channels.
func NewFilter(minLevel Level, channels Channel) *Filter {
	return &Filter{minLevel: minLevel, channels: channels}
}

// Allow reports whether the entry passes the filter.
func (f *Filter) Allow(e Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return e.Level >= f.minLevel && e.Channel.Intersect(f.channels) != ChannelNone
}

// MinLevel returns the current level threshold.
func (f *Filter) MinLevel() Level {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.minLevel
}

// SetMinLevel replaces the level threshold.
func (f *Filter) SetMinLevel(l Level) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minLevel = l
}

// Channels returns the current channel mask.
func (f *Filter) Channels() Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.channels
}

// SetChannels replaces the channel mask.
func (f *Filter) SetChannels(c Channel) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = c
}

// Toggle flips one channel in the mask and returns the new mask.
func (f *Filter) Toggle(c Channel) Channel {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.channels.Has(c) {
		f.channels = f.channels.Without(c)
	} else {
		f.channels = f.channels.Union(c)
	}
	return f.channels
}
