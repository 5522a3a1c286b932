// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console provides the Overseer console session.
package console

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/Riteg/Overseer/internal/commands"
)

func testRegistry(names ...string) *commands.Registry {
	reg := commands.NewRegistry()
	for _, name := range names {
		name := name
		reg.Register(&commands.FuncHandler{
			CmdName: name,
			CmdHelp: name + " - test command",
			Fn: func(_ context.Context, _ *commands.Invocation) (string, error) {
				return "ran " + name, nil
			},
		})
	}
	return reg
}

func awaitResult(t *testing.T, ch <-chan commands.Result) commands.Result {
	t.Helper()
	select {
	case res := <-ch:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch result never arrived")
		return commands.Result{}
	}
}

// =============================================================================
// SUGGESTION STATE TESTS
// =============================================================================

func TestTypingOpensSuggestions(t *testing.T) {
	s := NewSession(testRegistry("clear", "echo", "help"), 0)

	s.SetInput("cl")
	if !s.SuggestionsOpen() {
		t.Fatal("popup should open for a matching prefix")
	}
	if got := s.Suggestions(); !reflect.DeepEqual(got, []string{"clear"}) {
		t.Errorf("Suggestions() = %v, want [clear]", got)
	}
	if s.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d, want -1 (nothing highlighted yet)", s.SelectedIndex())
	}
}

func TestNoSuggestionsForEmptyOrUnmatchedInput(t *testing.T) {
	s := NewSession(testRegistry("clear", "echo"), 0)

	s.SetInput("zz")
	if s.SuggestionsOpen() {
		t.Error("popup should stay closed with no matching names")
	}

	s.SetInput("")
	if s.SuggestionsOpen() {
		t.Error("popup should stay closed for empty input")
	}
}

func TestSuggestionsTrackRegistryLive(t *testing.T) {
	reg := testRegistry("clear")
	s := NewSession(reg, 0)

	s.SetInput("cl")
	if len(s.Suggestions()) != 1 {
		t.Fatalf("Suggestions() = %v, want one candidate", s.Suggestions())
	}

	// A registry mutation is picked up on the next keystroke, never served
	// from a stale cache.
	reg.Register(&commands.FuncHandler{
		CmdName: "clone",
		CmdHelp: "clone - test command",
		Fn: func(_ context.Context, _ *commands.Invocation) (string, error) {
			return "", nil
		},
	})
	s.SetInput("clo")
	if got := s.Suggestions(); !reflect.DeepEqual(got, []string{"clone"}) {
		t.Errorf("Suggestions() = %v, want [clone]", got)
	}
}

func TestSelectionMovesAndClamps(t *testing.T) {
	s := NewSession(testRegistry("stack", "start", "stat"), 0)

	s.SetInput("sta")
	if len(s.Suggestions()) != 3 {
		t.Fatalf("Suggestions() = %v, want three candidates", s.Suggestions())
	}

	s.MoveDown() // -1 -> 0
	s.MoveDown() // 0 -> 1
	s.MoveDown() // 1 -> 2
	s.MoveDown() // clamp at 2
	if s.SelectedIndex() != 2 {
		t.Errorf("SelectedIndex() = %d, want clamped 2", s.SelectedIndex())
	}

	s.MoveUp()
	s.MoveUp()
	s.MoveUp() // clamp at 0
	if s.SelectedIndex() != 0 {
		t.Errorf("SelectedIndex() = %d, want clamped 0", s.SelectedIndex())
	}
}

func TestSelectionResetsWhenCandidatesChange(t *testing.T) {
	s := NewSession(testRegistry("stack", "start", "stat"), 0)

	s.SetInput("sta")
	s.MoveDown()
	s.MoveDown()
	if s.SelectedIndex() != 1 {
		t.Fatalf("SelectedIndex() = %d, want 1", s.SelectedIndex())
	}

	s.SetInput("stac")
	if s.SelectedIndex() != -1 {
		t.Errorf("SelectedIndex() = %d after candidate change, want reset -1", s.SelectedIndex())
	}
}

func TestAcceptReplacesOnlyFirstToken(t *testing.T) {
	s := NewSession(testRegistry("clear", "echo", "help"), 0)

	s.SetInput("cl --x=1")
	s.MoveDown()
	s.AcceptSuggestion()

	if got := s.Input(); got != "clear --x=1" {
		t.Errorf("Input() after accept = %q, want %q", got, "clear --x=1")
	}
	if s.SuggestionsOpen() {
		t.Error("popup should close after accept")
	}
}

func TestEscapeClosesPopup(t *testing.T) {
	s := NewSession(testRegistry("clear"), 0)

	s.SetInput("cl")
	s.CloseSuggestions()
	if s.SuggestionsOpen() {
		t.Error("popup should close on escape")
	}
	if s.Input() != "cl" {
		t.Errorf("Input() = %q, escape must not change the text", s.Input())
	}
}

// =============================================================================
// SUBMIT TESTS
// =============================================================================

func TestSubmitDispatchesWithoutHighlight(t *testing.T) {
	s := NewSession(testRegistry("echo"), 0)

	s.SetInput("echo hi")
	ch, dispatched := s.Submit(context.Background())
	if !dispatched {
		t.Fatal("submit with no highlighted suggestion should dispatch immediately")
	}

	res := awaitResult(t, ch)
	if res.Err != nil {
		t.Fatalf("dispatch error: %v", res.Err)
	}
	if res.Output != "ran echo" {
		t.Errorf("result = %q, want %q", res.Output, "ran echo")
	}

	if s.Input() != "" {
		t.Errorf("Input() = %q after submit, want cleared", s.Input())
	}
	if got := s.History(); !reflect.DeepEqual(got, []string{"echo hi"}) {
		t.Errorf("History() = %v, want the submitted line", got)
	}
}

func TestSubmitWithHighlightIsTwoStep(t *testing.T) {
	s := NewSession(testRegistry("clear", "echo"), 0)

	s.SetInput("cl")
	s.MoveDown()

	// First submit accepts the suggestion, nothing is dispatched.
	ch, dispatched := s.Submit(context.Background())
	if dispatched || ch != nil {
		t.Fatal("first submit should only accept the suggestion")
	}
	if s.Input() != "clear" {
		t.Fatalf("Input() = %q after first submit, want %q", s.Input(), "clear")
	}

	// Second submit dispatches.
	ch, dispatched = s.Submit(context.Background())
	if !dispatched {
		t.Fatal("second submit should dispatch")
	}
	res := awaitResult(t, ch)
	if res.Output != "ran clear" {
		t.Errorf("result = %q, want %q", res.Output, "ran clear")
	}
}

func TestSubmitBlankLineIsNoop(t *testing.T) {
	s := NewSession(testRegistry("echo"), 0)

	s.SetInput("   ")
	_, dispatched := s.Submit(context.Background())
	if dispatched {
		t.Error("blank line should not dispatch")
	}
	if len(s.History()) != 0 {
		t.Errorf("History() = %v, want empty", s.History())
	}
}

func TestSubmitUnknownCommandYieldsMessage(t *testing.T) {
	s := NewSession(testRegistry("help"), 0)

	s.SetInput("zzz")
	ch, dispatched := s.Submit(context.Background())
	if !dispatched {
		t.Fatal("unknown command still dispatches")
	}
	res := awaitResult(t, ch)
	if res.Err != nil {
		t.Fatalf("unknown command must not be an error, got %v", res.Err)
	}
	if res.Output == "" {
		t.Error("unknown command should produce a user-facing message")
	}
}

// =============================================================================
// HISTORY TESTS
// =============================================================================

func TestHistoryNavigation(t *testing.T) {
	s := NewSession(testRegistry("echo"), 0)

	for _, line := range []string{"echo one", "echo two", "echo three"} {
		s.SetInput(line)
		s.CloseSuggestions()
		if _, ok := s.Submit(context.Background()); !ok {
			t.Fatalf("submit of %q failed", line)
		}
	}

	s.MoveUp()
	if s.Input() != "echo three" {
		t.Errorf("Input() = %q, want most recent line", s.Input())
	}
	s.MoveUp()
	s.MoveUp()
	if s.Input() != "echo one" {
		t.Errorf("Input() = %q, want oldest line", s.Input())
	}

	// Below index 0 is a no-op.
	s.MoveUp()
	if s.Input() != "echo one" {
		t.Errorf("Input() = %q, moving past the oldest line must be a no-op", s.Input())
	}

	s.MoveDown()
	if s.Input() != "echo two" {
		t.Errorf("Input() = %q, want %q", s.Input(), "echo two")
	}
}

func TestHistoryRestoresLiveLine(t *testing.T) {
	s := NewSession(testRegistry("echo"), 0)

	s.SetInput("echo saved")
	s.CloseSuggestions()
	s.Submit(context.Background())

	s.SetInput("draft in progress")
	s.CloseSuggestions()

	s.MoveUp()
	if s.Input() != "echo saved" {
		t.Fatalf("Input() = %q, want recalled line", s.Input())
	}
	s.MoveDown()
	if s.Input() != "draft in progress" {
		t.Errorf("Input() = %q, want the live draft restored", s.Input())
	}

	// Above the live line is a no-op.
	s.MoveDown()
	if s.Input() != "draft in progress" {
		t.Errorf("Input() = %q, moving past the live line must be a no-op", s.Input())
	}
}

func TestHistoryDisabledWhileSuggestionsOpen(t *testing.T) {
	s := NewSession(testRegistry("echo"), 0)

	s.SetInput("echo old")
	s.CloseSuggestions()
	s.Submit(context.Background())

	s.SetInput("ec")
	if !s.SuggestionsOpen() {
		t.Fatal("popup should be open")
	}

	// Up moves the highlight, not the history.
	s.MoveUp()
	if s.Input() != "ec" {
		t.Errorf("Input() = %q, up must not recall history while popup is open", s.Input())
	}
	if s.SelectedIndex() != 0 {
		t.Errorf("SelectedIndex() = %d, want highlight moved to 0", s.SelectedIndex())
	}

	// Once closed, history navigation works again.
	s.CloseSuggestions()
	s.MoveUp()
	if s.Input() != "echo old" {
		t.Errorf("Input() = %q, want history recall after popup closes", s.Input())
	}
}

func TestHistoryBounded(t *testing.T) {
	s := NewSession(testRegistry("echo"), 3)

	for i := 0; i < 5; i++ {
		s.SetInput(fmt.Sprintf("echo %d", i))
		s.CloseSuggestions()
		s.Submit(context.Background())
	}

	want := []string{"echo 2", "echo 3", "echo 4"}
	if got := s.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("History() = %v, want bounded %v", got, want)
	}
}
