// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/shopchat-tui/internal/assistant"
	"github.com/jeranaias/shopchat-tui/internal/model"
)

// spinnerFPS matches the frame cadence of the ASCII spinner.
const spinnerFPS = time.Second / 30

// =============================================================================
// ASYNC COMMANDS
// =============================================================================

// sendChatCmd performs one chat request. The history payload is the
// pre-optimistic transcript captured at submit time, not the one already
// showing the user's new line. The context deadline is the client's
// configured timeout; there is no external cancellation path.
func sendChatCmd(client *assistant.Client, query string, history model.Transcript) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), client.Timeout())
		defer cancel()

		resp, err := client.Chat(ctx, query, history)
		return ChatResultMsg{Response: resp, Err: err}
	}
}

// checkServiceCmd probes the assistant service once at startup.
func checkServiceCmd(client *assistant.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := client.CheckReachable(ctx)
		return ServiceStatusMsg{Reachable: err == nil, Err: err}
	}
}

// =============================================================================
// MARKDOWN RENDERER
// =============================================================================

// newMarkdownRenderer builds the glamour renderer for assistant bubbles.
// Returns nil on failure; callers fall back to plain text.
func newMarkdownRenderer(wrapWidth int) *glamour.TermRenderer {
	if wrapWidth < 20 {
		wrapWidth = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		return nil
	}
	return r
}
