// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual UI components for the Overseer TUI.
package components

import (
	"strings"

	"github.com/Riteg/Overseer/internal/ui/styles"
)

// =============================================================================
// SUGGESTION POPUP COMPONENT
// =============================================================================

// SuggestBox renders the command-name suggestion popup. The candidate list
// and highlight live in the console session; this component only draws a
// scrolling window over them.
type SuggestBox struct {
	theme      *styles.Theme
	maxVisible int
}

// NewSuggestBox creates a suggestion popup renderer.
func NewSuggestBox(theme *styles.Theme, maxVisible int) *SuggestBox {
	if maxVisible <= 0 {
		maxVisible = 8
	}
	return &SuggestBox{theme: theme, maxVisible: maxVisible}
}

// View renders the candidates with the given highlight index (-1 for
// none). An empty candidate list renders nothing.
func (s *SuggestBox) View(candidates []string, selected int) string {
	if len(candidates) == 0 {
		return ""
	}

	// Scrolling window centered on the highlight.
	start := 0
	end := len(candidates)
	if len(candidates) > s.maxVisible {
		if selected > 0 {
			start = selected - s.maxVisible/2
		}
		if start < 0 {
			start = 0
		}
		end = start + s.maxVisible
		if end > len(candidates) {
			end = len(candidates)
			start = end - s.maxVisible
		}
	}

	var items []string
	for i := start; i < end; i++ {
		if i == selected {
			items = append(items, s.theme.SuggestActive.Render(" "+candidates[i]+" "))
		} else {
			items = append(items, s.theme.SuggestItem.Render(" "+candidates[i]+" "))
		}
	}

	return s.theme.SuggestBox.Render(strings.Join(items, "\n"))
}
