// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/shopchat-tui/internal/assistant"
	"github.com/jeranaias/shopchat-tui/internal/config"
	"github.com/jeranaias/shopchat-tui/internal/history"
	"github.com/jeranaias/shopchat-tui/internal/reconcile"
	"github.com/jeranaias/shopchat-tui/internal/ui/styles"
)

// =============================================================================
// MODEL DEFINITION
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Conversation state. All transitions go through reconcile.Apply.
	state reconcile.State

	// Collaborators.
	client *assistant.Client
	store  *history.Store
	theme  *styles.Theme
	keys   KeyMap

	// Bubbles components.
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Markdown rendering for assistant bubbles. nil when disabled or when
	// the renderer could not be built; rendering falls back to plain text.
	renderer *glamour.TermRenderer
	markdown bool

	// Service probe result, surfaced in the status bar.
	serviceDown bool

	// Layout.
	width  int
	height int
	ready  bool
}

// New creates the chat view. The transcript is restored from the history
// store here, before the first frame, so a relaunched session shows its
// prior conversation immediately.
func New(client *assistant.Client, store *history.Store, cfg *config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about a product..."
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    spinnerFPS,
	}

	m := Model{
		state:    reconcile.NewState(store.Load()),
		client:   client,
		store:    store,
		theme:    styles.NewTheme(),
		keys:     DefaultKeyMap(),
		viewport: vp,
		input:    ti,
		spinner:  sp,
		markdown: cfg.UI.Markdown,
		width:    80,
		height:   24,
	}

	if m.markdown {
		m.renderer = newMarkdownRenderer(m.bubbleWrapWidth())
	}

	m.refreshViewport()
	m.viewport.GotoBottom()
	return m
}

// Init starts the cursor blink and the service reachability probe.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		checkServiceCmd(m.client),
	)
}

// Update dispatches incoming messages to the appropriate handler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.state.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ChatResultMsg:
		return m.handleResult(msg)

	case ServiceStatusMsg:
		m.serviceDown = !msg.Reachable
		return m, nil
	}

	return m, nil
}

// handleResize recalculates the layout and rebuilds the markdown renderer
// for the new wrap width.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	// Header, error banner slot, input, and status bar surround the viewport.
	chromeHeight := 6
	if m.state.Err != "" {
		chromeHeight += 3
	}
	vpHeight := msg.Height - chromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	m.viewport.Width = msg.Width
	m.viewport.Height = vpHeight
	m.input.Width = msg.Width - 6

	if m.markdown {
		m.renderer = newMarkdownRenderer(m.bubbleWrapWidth())
	}

	atBottom := m.viewport.AtBottom()
	m.refreshViewport()
	if atBottom {
		m.viewport.GotoBottom()
	}

	m.ready = true
	return m, nil
}

// State exposes the conversation state for tests and the plain REPL shim.
func (m Model) State() reconcile.State {
	return m.state
}
