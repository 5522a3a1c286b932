// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the console command system for Overseer.
package commands

import (
	"strings"
	"unicode"
)

// =============================================================================
// INVOCATION
// =============================================================================

// Invocation is the structured result of parsing one command line. It is
// created fresh per submitted line and owned by the dispatch call.
type Invocation struct {
	// Raw is the original input line.
	Raw string

	// Name is the lowercased first token. Empty for blank input.
	Name string

	// Positional holds the non-option tokens after the name, in order.
	Positional []string

	// Named holds --key=value options. Keys are unique; the last
	// occurrence of a repeated key wins.
	Named map[string]string

	// Caller is opaque, environment-supplied context. May be nil.
	Caller any
}

// Arg returns the i-th positional argument, if present.
func (inv *Invocation) Arg(i int) (string, bool) {
	if i < 0 || i >= len(inv.Positional) {
		return "", false
	}
	return inv.Positional[i], true
}

// Option returns the value of a named option, if present.
func (inv *Invocation) Option(key string) (string, bool) {
	v, ok := inv.Named[key]
	return v, ok
}

// =============================================================================
// PARSER
// =============================================================================

// Parse turns a raw input line into an Invocation. It is a pure function
// with no shared state.
//
// Tokenization: a double quote toggles quote mode and is dropped from the
// output; whitespace outside quotes ends the current token, whitespace
// inside quotes is kept literally. An unterminated quote consumes the rest
// of the line as one token. There is no escape for a literal quote
// character.
//
// The first token becomes the lowercased Name. Each later token of the
// form --key=value (with a non-empty key) becomes a named option;
// everything else is positional.
func Parse(raw string) *Invocation {
	inv := &Invocation{
		Raw:   raw,
		Named: make(map[string]string),
	}

	tokens := splitLine(raw)
	if len(tokens) == 0 {
		return inv
	}

	inv.Name = strings.ToLower(tokens[0])

	for _, tok := range tokens[1:] {
		if key, value, ok := splitOption(tok); ok {
			inv.Named[key] = value
			continue
		}
		inv.Positional = append(inv.Positional, tok)
	}

	return inv
}

// splitLine splits a line into tokens, respecting double quotes.
func splitLine(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	for _, char := range input {
		switch {
		case char == '"':
			// Flip quote mode; the quote itself is dropped.
			inQuotes = !inQuotes

		case unicode.IsSpace(char) && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// splitOption classifies a token as a --key=value named option. The key
// must be non-empty, so the earliest acceptable '=' is at index 3.
func splitOption(tok string) (key, value string, ok bool) {
	if !strings.HasPrefix(tok, "--") {
		return "", "", false
	}
	eq := strings.Index(tok, "=")
	if eq < 3 {
		return "", "", false
	}
	return tok[2:eq], tok[eq+1:], true
}
