// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-process log store for Overseer.
package logging

import "testing"

// =============================================================================
// CHANNEL BITSET TESTS
// =============================================================================

func TestChannelOps(t *testing.T) {
	combo := ChannelCore.Union(ChannelNet)

	if !combo.Has(ChannelCore) || !combo.Has(ChannelNet) {
		t.Error("union should contain both channels")
	}
	if combo.Has(ChannelAudio) {
		t.Error("union should not contain an unrelated channel")
	}
	if combo.Intersect(ChannelAudio) != ChannelNone {
		t.Error("intersect with disjoint channel should be none")
	}
	if combo.Without(ChannelNet) != ChannelCore {
		t.Error("without should remove exactly the given channel")
	}
	if ChannelAll.Complement() != ChannelNone {
		t.Error("complement of all should be none")
	}
	if ChannelNone.Complement() != ChannelAll {
		t.Error("complement of none should be all")
	}
}

func TestChannelAllMatchesEverything(t *testing.T) {
	for bit := ChannelCore; bit < channelLimit; bit <<= 1 {
		if !ChannelAll.Has(bit) {
			t.Errorf("ChannelAll should contain %v", bit)
		}
	}
}

func TestChannelString(t *testing.T) {
	tests := []struct {
		channel Channel
		want    string
	}{
		{ChannelNone, "none"},
		{ChannelAll, "all"},
		{ChannelCore, "core"},
		{ChannelRender, "render"},
		{ChannelCore.Union(ChannelUI), "core+ui"},
	}

	for _, tc := range tests {
		if got := tc.channel.String(); got != tc.want {
			t.Errorf("Channel(%#x).String() = %q, want %q", uint32(tc.channel), got, tc.want)
		}
	}
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		name    string
		want    Channel
		wantErr bool
	}{
		{"core", ChannelCore, false},
		{"CORE", ChannelCore, false},
		{" net ", ChannelNet, false},
		{"all", ChannelAll, false},
		{"bogus", ChannelNone, true},
		{"", ChannelNone, true},
	}

	for _, tc := range tests {
		got, err := ParseChannel(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseChannel(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseChannel(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// =============================================================================
// LEVEL TESTS
// =============================================================================

func TestLevelOrdering(t *testing.T) {
	if !(LevelTrace < LevelDebug && LevelDebug < LevelInfo &&
		LevelInfo < LevelWarning && LevelWarning < LevelError) {
		t.Error("levels must be strictly ordered trace < debug < info < warning < error")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"Info", LevelInfo, false},
		{"WARNING", LevelWarning, false},
		{"warn", LevelWarning, false},
		{"error", LevelError, false},
		{"fatal", LevelTrace, true},
	}

	for _, tc := range tests {
		got, err := ParseLevel(tc.name)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tc.name, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// =============================================================================
// FILTER TESTS
// =============================================================================

func TestFilterAllow(t *testing.T) {
	f := NewFilter(LevelInfo, ChannelCore.Union(ChannelNet))

	tests := []struct {
		level   Level
		channel Channel
		want    bool
	}{
		{LevelInfo, ChannelCore, true},
		{LevelError, ChannelNet, true},
		{LevelDebug, ChannelCore, false},  // below threshold
		{LevelError, ChannelAudio, false}, // channel masked out
	}

	for _, tc := range tests {
		e := NewEntry(tc.level, tc.channel, "x")
		if got := f.Allow(e); got != tc.want {
			t.Errorf("Allow(level=%v channel=%v) = %v, want %v", tc.level, tc.channel, got, tc.want)
		}
	}
}

func TestFilterToggle(t *testing.T) {
	f := NewFilter(LevelTrace, ChannelCore)

	got := f.Toggle(ChannelNet)
	if !got.Has(ChannelCore) || !got.Has(ChannelNet) {
		t.Errorf("Toggle on = %v, want core+net", got)
	}

	got = f.Toggle(ChannelNet)
	if got != ChannelCore {
		t.Errorf("Toggle off = %v, want core", got)
	}
}
