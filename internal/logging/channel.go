// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-process log store for Overseer.
package logging

import (
	"fmt"
	"strings"
)

// =============================================================================
// CHANNEL BITSET
// =============================================================================

// Channel is a combinable category bitset identifying the subsystem(s) an
// entry originates from. Channels combine with Union and are tested with
// Has; ChannelAll matches every category.
type Channel uint32

const (
	ChannelCore Channel = 1 << iota
	ChannelRender
	ChannelAudio
	ChannelInput
	ChannelNet
	ChannelScript
	ChannelUI
	ChannelGameplay

	channelLimit
)

const (
	// ChannelNone matches nothing.
	ChannelNone Channel = 0

	// ChannelAll is the sentinel matching every category.
	ChannelAll Channel = channelLimit - 1
)

var channelNames = map[Channel]string{
	ChannelCore:     "core",
	ChannelRender:   "render",
	ChannelAudio:    "audio",
	ChannelInput:    "input",
	ChannelNet:      "net",
	ChannelScript:   "script",
	ChannelUI:       "ui",
	ChannelGameplay: "gameplay",
}

// ChannelNames returns the names of all single channels, in bit order.
func ChannelNames() []string {
	names := make([]string, 0, len(channelNames))
	for c := ChannelCore; c < channelLimit; c <<= 1 {
		names = append(names, channelNames[c])
	}
	return names
}

// ParseChannel resolves a channel from its name, case-insensitively.
// "all" yields ChannelAll.
func ParseChannel(name string) (Channel, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "all" {
		return ChannelAll, nil
	}
	for c, cn := range channelNames {
		if cn == n {
			return c, nil
		}
	}
	return ChannelNone, fmt.Errorf("unknown log channel %q", name)
}

// Has reports whether every bit of other is set in c.
func (c Channel) Has(other Channel) bool {
	return c&other == other && other != ChannelNone
}

// Union returns the combination of c and other.
func (c Channel) Union(other Channel) Channel {
	return c | other
}

// Intersect returns the categories present in both c and other.
func (c Channel) Intersect(other Channel) Channel {
	return c & other
}

// Without returns c with the categories of other removed.
func (c Channel) Without(other Channel) Channel {
	return c &^ other
}

// Complement returns every category not in c.
func (c Channel) Complement() Channel {
	return ChannelAll &^ c
}

// String renders the channel as "all", "none", a single name, or a
// "+"-joined combination.
func (c Channel) String() string {
	switch c {
	case ChannelNone:
		return "none"
	case ChannelAll:
		return "all"
	}
	var parts []string
	for bit := ChannelCore; bit < channelLimit; bit <<= 1 {
		if c&bit != 0 {
			parts = append(parts, channelNames[bit])
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("channel(%#x)", uint32(c))
	}
	return strings.Join(parts, "+")
}
