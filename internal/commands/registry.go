// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command system for Overseer.
package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// =============================================================================
// HANDLER CONTRACT
// =============================================================================

// Handler implements one command's behavior. The registry owns handler
// instances for its entire lifetime; they are singletons, not created per
// invocation.
//
// Execute returns the user-facing result text. A handler whose own argument
// parsing fails returns an explanatory result string, not an error; the
// error return is reserved for contract violations the handler cannot
// recover into text.
type Handler interface {
	Name() string
	Help() string
	Execute(ctx context.Context, inv *Invocation) (string, error)
}

// Discovery supplies handlers for bulk registration. How it finds them
// (manual list, generated table) is outside this package.
type Discovery interface {
	Handlers() []Handler
}

// HandlerList is a Discovery over a fixed slice.
type HandlerList []Handler

// Handlers returns the list itself.
func (l HandlerList) Handlers() []Handler {
	return l
}

// =============================================================================
// FUNC HANDLER
// =============================================================================

// FuncHandler adapts a plain function into a Handler.
type FuncHandler struct {
	CmdName string
	CmdHelp string
	Fn      func(ctx context.Context, inv *Invocation) (string, error)
}

// Name returns the command name.
func (h *FuncHandler) Name() string { return h.CmdName }

// Help returns the help text.
func (h *FuncHandler) Help() string { return h.CmdHelp }

// Execute runs the wrapped function.
func (h *FuncHandler) Execute(ctx context.Context, inv *Invocation) (string, error) {
	return h.Fn(ctx, inv)
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps lowercase command names to handlers. Lookup and
// enumeration are case-insensitive on name. Registration normally happens
// once at startup but is safe to race with dispatch.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register stores a handler under its case-insensitive name, silently
// overwriting any previous handler with the same name.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[strings.ToLower(h.Name())] = h
}

// RegisterAll registers every handler a discovery source yields. A source
// yielding zero handlers is fine.
func (r *Registry) RegisterAll(src Discovery) {
	if src == nil {
		return
	}
	for _, h := range src.Handlers() {
		r.Register(h)
	}
}

// Get looks up a handler case-insensitively.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[strings.ToLower(name)]
	return h, ok
}

// Names returns all registered names, lexicographically sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// =============================================================================
// DISPATCH
// =============================================================================

// Result is the outcome of one asynchronous dispatch.
type Result struct {
	Output string
	Err    error
}

// Dispatch resolves the invocation's name and executes its handler.
//
// An unknown name is not an error: it resolves to a deterministic
// user-facing message pointing at the help command. A handler error is
// passed through untouched; the registry never inspects handler failures
// beyond "did it produce a result".
func (r *Registry) Dispatch(ctx context.Context, inv *Invocation) (string, error) {
	h, ok := r.Get(inv.Name)
	if !ok {
		return fmt.Sprintf("unknown command: %q (type \"help\" for a list of commands)", inv.Name), nil
	}
	return h.Execute(ctx, inv)
}

// DispatchAsync executes the invocation's handler on its own goroutine so
// one slow command never blocks dispatch of another. The returned channel
// delivers exactly one Result and is then closed.
func (r *Registry) DispatchAsync(ctx context.Context, inv *Invocation) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		output, err := r.Dispatch(ctx, inv)
		out <- Result{Output: output, Err: err}
	}()
	return out
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

// Suggest returns every registered name whose lowercase form starts with
// the lowercased partial token, in the same sorted order as Names. An
// empty partial yields nothing: completion is name-prefix-only, not fuzzy.
func (r *Registry) Suggest(partial string) []string {
	partial = strings.ToLower(partial)
	if partial == "" {
		return nil
	}

	var matches []string
	for _, name := range r.Names() {
		if strings.HasPrefix(name, partial) {
			matches = append(matches, name)
		}
	}
	return matches
}
