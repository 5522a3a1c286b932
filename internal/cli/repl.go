// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the plain-terminal REPL front end for Overseer.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/Riteg/Overseer/internal/commands"
)

// =============================================================================
// REPL
// =============================================================================

// REPL is the plain-terminal console front end.
type REPL struct {
	registry *commands.Registry
	line     *liner.State
	prompt   string
}

// NewREPL creates a REPL over the given registry. It returns an error
// when stdin is not an interactive terminal.
func NewREPL(registry *commands.Registry) (*REPL, error) {
	if !IsTTY() {
		return nil, errors.New("the overseer REPL requires an interactive terminal")
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(partial string) []string {
		// Complete the command name only; arguments are the handler's
		// business.
		if strings.ContainsAny(partial, " \t") {
			return nil
		}
		return registry.Suggest(partial)
	})

	return &REPL{
		registry: registry,
		line:     line,
		prompt:   "overseer> ",
	}, nil
}

// Close restores the terminal state.
func (r *REPL) Close() error {
	return r.line.Close()
}

// Run reads, dispatches, and prints until EOF, Ctrl-C, or an exit
// command.
func (r *REPL) Run(ctx context.Context) error {
	defer r.Close()

	for {
		input, err := r.line.Prompt(r.prompt)
		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			fmt.Println()
			return nil
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		r.line.AppendHistory(input)

		// exit/quit end the REPL itself; they are not registry commands.
		if trimmed == "exit" || trimmed == "quit" {
			return nil
		}

		res := <-r.registry.DispatchAsync(ctx, commands.Parse(input))
		if res.Err != nil {
			fmt.Printf("command failed: %v\n", res.Err)
			continue
		}
		if res.Output != "" {
			fmt.Println(res.Output)
		}
	}
}
