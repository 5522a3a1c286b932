// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command system for Overseer.
package commands

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

func staticHandler(name string) Handler {
	return &FuncHandler{
		CmdName: name,
		CmdHelp: name + " - test command",
		Fn: func(_ context.Context, _ *Invocation) (string, error) {
			return "ran " + name, nil
		},
	}
}

// =============================================================================
// REGISTRATION TESTS
// =============================================================================

func TestRegisterCaseInsensitiveLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(staticHandler("Echo"))

	for _, name := range []string{"echo", "ECHO", "Echo"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("Get(%q) failed, want case-insensitive hit", name)
		}
	}
}

func TestRegisterOverwritesSilently(t *testing.T) {
	r := NewRegistry()
	r.Register(staticHandler("dup"))
	r.Register(&FuncHandler{
		CmdName: "DUP",
		CmdHelp: "dup - replacement",
		Fn: func(_ context.Context, _ *Invocation) (string, error) {
			return "replacement", nil
		},
	})

	out, err := r.Dispatch(context.Background(), Parse("dup"))
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if out != "replacement" {
		t.Errorf("Dispatch = %q, want the later registration to win", out)
	}
	if n := len(r.Names()); n != 1 {
		t.Errorf("Names() has %d entries, want 1", n)
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "Mid"} {
		r.Register(staticHandler(name))
	}

	want := []string{"alpha", "mid", "zeta"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestRegisterAll(t *testing.T) {
	r := NewRegistry()
	r.RegisterAll(HandlerList{staticHandler("a"), staticHandler("b")})

	if n := len(r.Names()); n != 2 {
		t.Errorf("Names() has %d entries, want 2", n)
	}

	// Empty and nil sources are tolerated.
	r.RegisterAll(HandlerList{})
	r.RegisterAll(nil)
	if n := len(r.Names()); n != 2 {
		t.Errorf("Names() has %d entries after empty discovery, want 2", n)
	}
}

// =============================================================================
// DISPATCH TESTS
// =============================================================================

func TestDispatchUnknownCommand(t *testing.T) {
	r := NewRegistry()
	r.Register(staticHandler("help"))

	out, err := r.Dispatch(context.Background(), Parse("zzz"))
	if err != nil {
		t.Fatalf("unknown command should not be an error, got %v", err)
	}
	if !strings.Contains(out, "zzz") || !strings.Contains(out, "help") {
		t.Errorf("unknown-command message %q should name the command and point at help", out)
	}
}

func TestDispatchEmptyNameIsUnknown(t *testing.T) {
	r := NewRegistry()

	out, err := r.Dispatch(context.Background(), Parse(""))
	if err != nil {
		t.Fatalf("Dispatch error: %v", err)
	}
	if !strings.Contains(out, "unknown command") {
		t.Errorf("empty name should resolve as unknown, got %q", out)
	}
}

func TestDispatchHandlerErrorSurfaces(t *testing.T) {
	sentinel := errors.New("handler blew up")
	r := NewRegistry()
	r.Register(&FuncHandler{
		CmdName: "boom",
		CmdHelp: "boom - always fails",
		Fn: func(_ context.Context, _ *Invocation) (string, error) {
			return "", sentinel
		},
	})

	_, err := r.Dispatch(context.Background(), Parse("boom"))
	if !errors.Is(err, sentinel) {
		t.Errorf("Dispatch error = %v, want the handler's own error", err)
	}
}

func TestDispatchAsyncDoesNotBlockOtherCommands(t *testing.T) {
	release := make(chan struct{})
	r := NewRegistry()
	r.Register(&FuncHandler{
		CmdName: "slow",
		CmdHelp: "slow - blocks until released",
		Fn: func(_ context.Context, _ *Invocation) (string, error) {
			<-release
			return "slow done", nil
		},
	})
	r.Register(staticHandler("fast"))

	slowCh := r.DispatchAsync(context.Background(), Parse("slow"))
	fastCh := r.DispatchAsync(context.Background(), Parse("fast"))

	select {
	case res := <-fastCh:
		if res.Output != "ran fast" {
			t.Errorf("fast result = %q, want %q", res.Output, "ran fast")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("fast command blocked behind slow command")
	}

	close(release)
	res := <-slowCh
	if res.Output != "slow done" {
		t.Errorf("slow result = %q, want %q", res.Output, "slow done")
	}
}

func TestRegistrationRacesWithDispatch(t *testing.T) {
	r := NewRegistry()
	r.Register(staticHandler("base"))

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Register(staticHandler(fmt.Sprintf("cmd%d-%d", i, j)))
			}
		}(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := r.Dispatch(context.Background(), Parse("base")); err != nil {
					t.Errorf("Dispatch error: %v", err)
					return
				}
				r.Names()
			}
		}()
	}
	wg.Wait()
}

// =============================================================================
// SUGGESTION TESTS
// =============================================================================

func TestSuggest(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"clear", "echo", "help"} {
		r.Register(staticHandler(name))
	}

	tests := []struct {
		partial string
		want    []string
	}{
		{"cl", []string{"clear"}},
		{"CL", []string{"clear"}},
		{"e", []string{"echo"}},
		{"", nil},
		{"zzz", nil},
		// A full name is still its own prefix.
		{"help", []string{"help"}},
	}

	for _, tc := range tests {
		got := r.Suggest(tc.partial)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Suggest(%q) = %v, want %v", tc.partial, got, tc.want)
		}
	}
}

func TestSuggestOrderMatchesNames(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"stat", "start", "stack", "other"} {
		r.Register(staticHandler(name))
	}

	want := []string{"stack", "start", "stat"}
	if got := r.Suggest("sta"); !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(sta) = %v, want sorted %v", got, want)
	}
}
