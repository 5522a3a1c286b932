// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console provides the Overseer console session.
package console

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/Riteg/Overseer/internal/commands"
)

// DefaultHistoryLimit bounds the submitted-line history when no limit is
// configured.
const DefaultHistoryLimit = 100

// =============================================================================
// SESSION
// =============================================================================

// Session is the per-console coordination state: one line of input, the
// submitted-line history, and the current suggestion popup. All methods
// must be called from the same goroutine.
type Session struct {
	id       string
	registry *commands.Registry

	// Input line.
	input         string
	lastProcessed string // input text the current suggestions were derived from

	// Suggestion popup.
	open        bool
	suggestions []string
	selected    int

	// History. histIdx == len(history) means the live (unsubmitted) line;
	// livePending preserves it while browsing older lines.
	history      []string
	historyLimit int
	histIdx      int
	livePending  string

	lastActivity time.Time
}

// NewSession creates a session over the given registry. historyLimit <= 0
// selects DefaultHistoryLimit.
func NewSession(registry *commands.Registry, historyLimit int) *Session {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Session{
		id:           uuid.NewString(),
		registry:     registry,
		selected:     -1,
		historyLimit: historyLimit,
		lastActivity: time.Now(),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// LastActivity returns the time of the last input change or submit.
func (s *Session) LastActivity() time.Time {
	return s.lastActivity
}

// =============================================================================
// INPUT
// =============================================================================

// Input returns the current input line.
func (s *Session) Input() string {
	return s.input
}

// SetInput replaces the input line. A text change re-derives suggestions
// from the live registry and resets history browsing to the live line.
func (s *Session) SetInput(text string) {
	if text == s.input && text == s.lastProcessed {
		return
	}
	s.input = text
	s.lastActivity = time.Now()

	// Editing exits history browsing.
	s.histIdx = len(s.history)
	s.livePending = text

	s.refreshSuggestions()
}

// refreshSuggestions re-derives the candidate list for the first token.
// Called only when the text differs from the last-processed text, so an
// accepted suggestion does not immediately re-open its own popup.
func (s *Session) refreshSuggestions() {
	if s.input == s.lastProcessed {
		return
	}
	s.lastProcessed = s.input

	partial := firstToken(s.input)
	candidates := s.registry.Suggest(partial)

	if len(candidates) == 0 {
		s.closeSuggestions()
		return
	}

	// Reset the selection whenever the candidate set changes. The popup
	// opens with nothing highlighted; Up/Down highlight a candidate, so a
	// plain submit still dispatches the typed line immediately.
	if !equalStrings(candidates, s.suggestions) {
		s.selected = -1
	}
	s.suggestions = candidates
	s.open = true
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// SuggestionsOpen reports whether the suggestion popup is showing.
func (s *Session) SuggestionsOpen() bool {
	return s.open
}

// Suggestions returns the current candidate list.
func (s *Session) Suggestions() []string {
	return s.suggestions
}

// SelectedIndex returns the highlighted candidate index, or -1.
func (s *Session) SelectedIndex() int {
	if !s.open {
		return -1
	}
	return s.selected
}

// SelectedSuggestion returns the highlighted candidate, if any.
func (s *Session) SelectedSuggestion() (string, bool) {
	if !s.open || s.selected < 0 || s.selected >= len(s.suggestions) {
		return "", false
	}
	return s.suggestions[s.selected], true
}

// AcceptSuggestion replaces the first token of the input with the
// highlighted candidate, preserving everything after the first whitespace
// run verbatim, and closes the popup.
func (s *Session) AcceptSuggestion() {
	name, ok := s.SelectedSuggestion()
	if !ok {
		return
	}

	rest := s.input[len(firstToken(s.input)):]
	s.input = name + rest
	s.lastProcessed = s.input
	s.livePending = s.input
	s.closeSuggestions()
}

// CloseSuggestions dismisses the popup without changing the input.
func (s *Session) CloseSuggestions() {
	s.closeSuggestions()
}

func (s *Session) closeSuggestions() {
	s.open = false
	s.suggestions = nil
	s.selected = -1
}

// =============================================================================
// NAVIGATION
// =============================================================================

// MoveUp moves the suggestion highlight up while the popup is open, and
// otherwise steps back through history. Moving past either end is a no-op.
func (s *Session) MoveUp() {
	if s.open {
		if s.selected <= 0 {
			s.selected = 0
		} else {
			s.selected--
		}
		return
	}
	if s.histIdx == 0 || len(s.history) == 0 {
		return
	}
	if s.histIdx == len(s.history) {
		s.livePending = s.input
	}
	s.histIdx--
	s.setInputFromHistory()
}

// MoveDown moves the suggestion highlight down while the popup is open,
// and otherwise steps forward through history toward the live line.
func (s *Session) MoveDown() {
	if s.open {
		if s.selected < len(s.suggestions)-1 {
			s.selected++
		}
		return
	}
	if s.histIdx >= len(s.history) {
		return
	}
	s.histIdx++
	s.setInputFromHistory()
}

// setInputFromHistory replaces the input with the browsed line without
// re-deriving suggestions: history recall is not editing.
func (s *Session) setInputFromHistory() {
	if s.histIdx == len(s.history) {
		s.input = s.livePending
	} else {
		s.input = s.history[s.histIdx]
	}
	s.lastProcessed = s.input
}

// History returns the submitted lines, oldest first.
func (s *Session) History() []string {
	return s.history
}

// =============================================================================
// SUBMIT
// =============================================================================

// Submit processes the current line.
//
// With a suggestion highlighted, the first submit accepts it and returns
// (nil, false); a second submit dispatches. With no highlight, the line is
// parsed and dispatched asynchronously, appended to history, and the input
// cleared; the returned channel delivers the single Result. A blank line
// is a no-op.
func (s *Session) Submit(ctx context.Context) (<-chan commands.Result, bool) {
	if _, ok := s.SelectedSuggestion(); ok {
		s.AcceptSuggestion()
		return nil, false
	}

	line := s.input
	if strings.TrimSpace(line) == "" {
		return nil, false
	}

	s.pushHistory(line)
	s.input = ""
	s.lastProcessed = ""
	s.livePending = ""
	s.histIdx = len(s.history)
	s.closeSuggestions()
	s.lastActivity = time.Now()

	return s.registry.DispatchAsync(ctx, commands.Parse(line)), true
}

func (s *Session) pushHistory(line string) {
	s.history = append(s.history, line)
	if len(s.history) > s.historyLimit {
		s.history = s.history[len(s.history)-s.historyLimit:]
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// firstToken returns the input up to (not including) the first whitespace.
func firstToken(input string) string {
	end := strings.IndexFunc(input, unicode.IsSpace)
	if end == -1 {
		return input
	}
	return input[:end]
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
