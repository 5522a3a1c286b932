// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Overseer TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Riteg/Overseer/internal/logging"
)

// Theme holds all the styled components for the console overlay. It
// detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// CHROME
	// ==========================================================================

	Header    lipgloss.Style
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style

	// ==========================================================================
	// LOG VIEW
	// ==========================================================================

	LogTime    lipgloss.Style
	LogChannel lipgloss.Style
	LogContext lipgloss.Style
	LogTrace   lipgloss.Style
	LogDebug   lipgloss.Style
	LogInfo    lipgloss.Style
	LogWarning lipgloss.Style
	LogError   lipgloss.Style

	// ==========================================================================
	// INPUT + SUGGESTIONS
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	SuggestBox     lipgloss.Style
	SuggestItem    lipgloss.Style
	SuggestActive  lipgloss.Style

	// ==========================================================================
	// COMMAND OUTPUT
	// ==========================================================================

	ResultText lipgloss.Style
	ErrorText  lipgloss.Style
}

// NewTheme creates a theme for the requested mode: "dark", "light", or
// "auto" (detect from the terminal background).
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := true
	switch mode {
	case "light":
		isDark = false
	case "dark":
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	dim := lipgloss.Color("240")
	accent := lipgloss.Color("39")
	if !isDark {
		dim = lipgloss.Color("245")
		accent = lipgloss.Color("27")
	}

	t.Header = lipgloss.NewStyle().Bold(true).Foreground(accent)
	t.StatusBar = lipgloss.NewStyle().Foreground(dim)
	t.StatusKey = lipgloss.NewStyle().Foreground(accent)

	t.LogTime = lipgloss.NewStyle().Foreground(dim)
	t.LogChannel = lipgloss.NewStyle().Foreground(lipgloss.Color("66"))
	t.LogContext = lipgloss.NewStyle().Foreground(dim).Italic(true)
	t.LogTrace = lipgloss.NewStyle().Foreground(dim)
	t.LogDebug = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	t.LogInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	t.LogWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	t.LogError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	if !isDark {
		t.LogInfo = lipgloss.NewStyle().Foreground(lipgloss.Color("0"))
	}

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Foreground(accent).Bold(true)

	t.SuggestBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1)
	t.SuggestItem = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	t.SuggestActive = lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(accent).
		Bold(true)

	t.ResultText = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	t.ErrorText = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	return t
}

// LevelStyle returns the style for a log severity.
func (t *Theme) LevelStyle(level logging.Level) lipgloss.Style {
	switch level {
	case logging.LevelTrace:
		return t.LogTrace
	case logging.LevelDebug:
		return t.LogDebug
	case logging.LevelWarning:
		return t.LogWarning
	case logging.LevelError:
		return t.LogError
	default:
		return t.LogInfo
	}
}
