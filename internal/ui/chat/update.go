// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopchat-tui/internal/assistant"
	"github.com/jeranaias/shopchat-tui/internal/model"
	"github.com/jeranaias/shopchat-tui/internal/reconcile"
)

// =============================================================================
// KEY HANDLING
// =============================================================================

// handleKey routes keyboard input. Scroll keys go to the viewport, Enter
// submits, and everything else feeds the input line. Esc deliberately does
// nothing: an in-flight request always runs to its own timeout.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.Clear):
		if m.state.Err != "" {
			m.state.Err = ""
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up),
		key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.PageUp),
		key.Matches(msg, m.keys.PageDown),
		key.Matches(msg, m.keys.Home),
		key.Matches(msg, m.keys.End):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// SUBMIT
// =============================================================================

// handleSubmit runs the optimistic send. Blank input and submits while a
// request is pending are no-ops - the reducer enforces both, and we only
// launch the request when it actually transitioned to pending.
func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.input.Value())

	next := reconcile.Apply(m.state, reconcile.SubmitEvent{Query: query})
	if !next.Pending || m.state.Pending {
		return m, nil
	}
	m.state = next

	m.store.Save(m.state.Transcript)
	m.input.Reset()
	m.refreshViewport()
	m.viewport.GotoBottom()

	// One request per turn, carrying the pre-optimistic history.
	return m, tea.Batch(
		sendChatCmd(m.client, query, m.state.Prior),
		m.spinner.Tick,
	)
}

// =============================================================================
// RESULT SETTLEMENT
// =============================================================================

// handleResult settles the pending turn through the reducer and persists
// the merged transcript.
func (m Model) handleResult(msg ChatResultMsg) (tea.Model, tea.Cmd) {
	var ev reconcile.Event
	if msg.Err != nil {
		ev = reconcile.FailureEvent{Message: assistant.ErrorMessage(msg.Err)}
	} else {
		ev = reconcile.SuccessEvent{
			Response: msg.Response.Response,
			History:  model.Transcript(msg.Response.History),
		}
	}

	m.state = reconcile.Apply(m.state, ev)
	m.store.Save(m.state.Transcript)

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// refreshViewport re-renders the conversation into the viewport.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
}
