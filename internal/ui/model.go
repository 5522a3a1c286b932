// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the Bubble Tea overlay for the Overseer console.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Riteg/Overseer/internal/commands"
	"github.com/Riteg/Overseer/internal/config"
	"github.com/Riteg/Overseer/internal/console"
	"github.com/Riteg/Overseer/internal/logging"
	"github.com/Riteg/Overseer/internal/ui/components"
	"github.com/Riteg/Overseer/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// storeChangedMsg signals that the log store was added to or cleared.
// Events are coalesced: one message may cover many adds.
type storeChangedMsg struct{}

// resultMsg delivers the outcome of an asynchronously dispatched command.
type resultMsg struct {
	res commands.Result
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the console overlay.
type Model struct {
	theme   *styles.Theme
	store   *logging.Store
	filter  *logging.Filter
	session *console.Session

	input   textinput.Model
	logview *components.LogView
	suggest *components.SuggestBox

	// events carries coalesced store notifications from any producing
	// goroutine into the Bubble Tea update loop.
	events      chan struct{}
	unsubscribe []func()

	width      int
	height     int
	lastOutput string
	lastErr    error
}

// New creates the console overlay model.
func New(cfg *config.Config, store *logging.Store, filter *logging.Filter, session *console.Session) *Model {
	theme := styles.NewTheme(cfg.UI.Theme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a command (help lists them)"
	ti.CharLimit = 1024
	ti.Focus()

	lv := components.NewLogView(store, filter, theme)
	lv.SetCompact(cfg.UI.Compact)
	lv.Refresh()

	m := &Model{
		theme:   theme,
		store:   store,
		filter:  filter,
		session: session,
		input:   ti,
		logview: lv,
		suggest: components.NewSuggestBox(theme, cfg.Console.SuggestMax),
		events:  make(chan struct{}, 1),
		width:   80,
		height:  24,
	}

	// Notifications run on the logging caller's goroutine: hand off
	// without blocking and coalesce bursts into one pending event.
	notify := func() {
		select {
		case m.events <- struct{}{}:
		default:
		}
	}
	m.unsubscribe = append(m.unsubscribe,
		store.OnAdded(func(logging.Entry) { notify() }),
		store.OnCleared(notify),
	)

	return m
}

// Close unsubscribes the model from the log store.
func (m *Model) Close() {
	for _, unsub := range m.unsubscribe {
		unsub()
	}
}

// Init subscribes the update loop to store events and starts the cursor.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.waitForStoreEvent())
}

func (m *Model) waitForStoreEvent() tea.Cmd {
	return func() tea.Msg {
		<-m.events
		return storeChangedMsg{}
	}
}

func awaitResult(ch <-chan commands.Result) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{res: <-ch}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 8
		m.logview.SetSize(msg.Width-2, m.logHeight())
		return m, nil

	case storeChangedMsg:
		m.logview.Refresh()
		return m, m.waitForStoreEvent()

	case resultMsg:
		m.lastOutput = msg.res.Output
		m.lastErr = msg.res.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit

	case "esc":
		if m.session.SuggestionsOpen() {
			m.session.CloseSuggestions()
			return m, nil
		}
		m.Close()
		return m, tea.Quit

	case "up":
		m.session.MoveUp()
		m.syncInput()
		return m, nil

	case "down":
		m.session.MoveDown()
		m.syncInput()
		return m, nil

	case "tab":
		if m.session.SuggestionsOpen() {
			if _, ok := m.session.SelectedSuggestion(); !ok {
				m.session.MoveDown()
			}
			m.session.AcceptSuggestion()
			m.syncInput()
		}
		return m, nil

	case "pgup":
		m.logview.ScrollUp()
		return m, nil

	case "pgdown":
		m.logview.ScrollDown()
		return m, nil

	case "end":
		m.logview.ScrollToTail()
		return m, nil

	case "enter":
		ch, dispatched := m.session.Submit(context.Background())
		m.syncInput()
		if !dispatched {
			return m, nil
		}
		m.lastOutput = ""
		m.lastErr = nil
		return m, awaitResult(ch)
	}

	// Everything else edits the input line.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

// syncInput pushes session-driven text changes (history recall, accepted
// suggestions, submit clearing) back into the text input widget.
func (m *Model) syncInput() {
	if m.input.Value() != m.session.Input() {
		m.input.SetValue(m.session.Input())
		m.input.CursorEnd()
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the overlay.
func (m *Model) View() string {
	var b strings.Builder

	header := m.theme.Header.Render("overseer console") +
		m.theme.StatusBar.Render(fmt.Sprintf("  %d/%d entries", m.store.Len(), m.store.Cap()))
	if !m.logview.Following() {
		header += m.theme.StatusBar.Render("  [scrolled]")
	}
	b.WriteString(header + "\n\n")

	b.WriteString(m.logview.View() + "\n\n")

	if m.lastErr != nil {
		b.WriteString(m.theme.ErrorText.Render("command failed: "+m.lastErr.Error()) + "\n")
	} else if m.lastOutput != "" {
		b.WriteString(m.theme.ResultText.Render(m.lastOutput) + "\n")
	}

	b.WriteString(m.theme.InputContainer.Width(m.width - 2).Render(m.input.View()))

	if m.session.SuggestionsOpen() {
		popup := m.suggest.View(m.session.Suggestions(), m.session.SelectedIndex())
		if popup != "" {
			b.WriteString("\n" + popup)
		}
	}

	b.WriteString("\n" + m.statusBar())
	return b.String()
}

func (m *Model) statusBar() string {
	hints := []string{
		"enter run", "tab complete", "↑/↓ history/suggest",
		"pgup/pgdn scroll", "esc quit",
	}
	styled := make([]string, len(hints))
	for i, h := range hints {
		key, desc, _ := strings.Cut(h, " ")
		styled[i] = m.theme.StatusKey.Render(key) + m.theme.StatusBar.Render(" "+desc)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(styled, m.theme.StatusBar.Render("  ")))
}

// logHeight reserves rows for the chrome around the log view.
func (m *Model) logHeight() int {
	h := m.height - 8
	if h < 3 {
		return 3
	}
	return h
}

// Run starts the overlay and blocks until it exits.
func Run(cfg *config.Config, store *logging.Store, filter *logging.Filter, session *console.Session) error {
	m := New(cfg, store, filter, session)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
