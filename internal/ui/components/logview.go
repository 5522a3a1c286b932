// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Overseer TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Riteg/Overseer/internal/logging"
	"github.com/Riteg/Overseer/internal/ui/styles"
)

// =============================================================================
// LOG VIEW COMPONENT
// =============================================================================

// LogView renders a window over a snapshot of log entries, filtered by the
// shared display filter. It owns its snapshot buffer so refreshes do not
// allocate per frame.
type LogView struct {
	store  *logging.Store
	filter *logging.Filter
	theme  *styles.Theme

	width   int
	height  int
	compact bool

	// scroll is the number of lines scrolled up from the tail; 0 follows
	// new entries.
	scroll int

	buf     []logging.Entry
	visible []logging.Entry
}

// NewLogView creates a log view over store, filtered by filter.
func NewLogView(store *logging.Store, filter *logging.Filter, theme *styles.Theme) *LogView {
	return &LogView{
		store:  store,
		filter: filter,
		theme:  theme,
		width:  80,
		height: 20,
	}
}

// SetSize sets the render area.
func (v *LogView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SetCompact toggles the single-line entry format.
func (v *LogView) SetCompact(compact bool) {
	v.compact = compact
}

// Refresh re-snapshots the store and re-applies the filter. Call after an
// added/cleared notification or a filter change.
func (v *LogView) Refresh() {
	v.store.Snapshot(&v.buf)

	v.visible = v.visible[:0]
	for _, e := range v.buf {
		if v.filter.Allow(e) {
			v.visible = append(v.visible, e)
		}
	}

	if max := v.maxScroll(); v.scroll > max {
		v.scroll = max
	}
}

// ScrollUp moves the window one line toward older entries.
func (v *LogView) ScrollUp() {
	if v.scroll < v.maxScroll() {
		v.scroll++
	}
}

// ScrollDown moves the window one line toward the live tail.
func (v *LogView) ScrollDown() {
	if v.scroll > 0 {
		v.scroll--
	}
}

// ScrollToTail snaps back to following new entries.
func (v *LogView) ScrollToTail() {
	v.scroll = 0
}

// Following reports whether the view is pinned to the live tail.
func (v *LogView) Following() bool {
	return v.scroll == 0
}

func (v *LogView) maxScroll() int {
	m := len(v.visible) - v.height
	if m < 0 {
		return 0
	}
	return m
}

// View renders the visible window.
func (v *LogView) View() string {
	if len(v.visible) == 0 {
		return v.theme.LogTrace.Render("(no log entries)")
	}

	end := len(v.visible) - v.scroll
	start := end - v.height
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, end-start)
	for _, e := range v.visible[start:end] {
		lines = append(lines, v.renderEntry(e))
	}
	return strings.Join(lines, "\n")
}

func (v *LogView) renderEntry(e logging.Entry) string {
	level := v.theme.LevelStyle(e.Level).Render(fmt.Sprintf("%-7s", e.Level))

	var line string
	if v.compact {
		line = fmt.Sprintf("%s %s", level, e.Message)
	} else {
		ts := v.theme.LogTime.Render(e.Time.Format("15:04:05.000"))
		ch := v.theme.LogChannel.Render(fmt.Sprintf("[%s]", e.Channel))
		line = fmt.Sprintf("%s %s %s %s", ts, level, ch, e.Message)
		if e.ContextName != "" {
			line += " " + v.theme.LogContext.Render("("+e.ContextName+")")
		}
	}

	return truncateLine(line, v.width)
}

// truncateLine trims a rendered line to the given display width, using
// go-runewidth so wide characters count correctly.
func truncateLine(line string, width int) string {
	if width <= 0 || runewidth.StringWidth(stripANSI(line)) <= width {
		return line
	}
	// Truncation on a styled line is approximate: trim the raw string and
	// accept that trailing escape state is reset by lipgloss per render.
	return runewidth.Truncate(line, width, "…")
}

// stripANSI removes escape sequences for width measurement.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
