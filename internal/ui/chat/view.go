// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/shopchat-tui/internal/model"
	"github.com/jeranaias/shopchat-tui/internal/price"
	"github.com/jeranaias/shopchat-tui/internal/ui/styles"
	"github.com/jeranaias/shopchat-tui/internal/util"
)

// =============================================================================
// TOP-LEVEL VIEW
// =============================================================================

// View renders the full chat screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.state.Err != "" {
		b.WriteString(m.renderErrorBanner())
		b.WriteString("\n")
	}

	b.WriteString(m.renderInput())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return m.theme.App.Render(b.String())
}

// =============================================================================
// HEADER
// =============================================================================

func (m Model) renderHeader() string {
	title := "shopchat"
	// Truncate the unstyled subtitle before styling so narrow terminals
	// drop it ahead of the title and no ANSI sequence is cut mid-escape.
	subtitle := util.TruncateWidth("product search assistant",
		m.contentWidth()-util.DisplayWidth(title)-2)
	line := m.theme.HeaderTitle.Render(title) + "  " +
		m.theme.HeaderSubtitle.Render(subtitle)
	if m.serviceDown {
		line += "  " + styles.RenderWarning("service unreachable")
	}
	return m.theme.Container.Render(line)
}

// =============================================================================
// CONVERSATION
// =============================================================================

// renderMessages renders the whole transcript as role-styled bubbles, plus
// the thinking indicator while a request is in flight.
func (m *Model) renderMessages() string {
	bubbles := model.ParseBubbles(m.state.Transcript)
	if len(bubbles) == 0 && !m.state.Pending {
		return m.renderEmptyState()
	}

	parts := make([]string, 0, len(bubbles)+1)
	for _, bub := range bubbles {
		parts = append(parts, m.renderBubble(bub))
	}

	if m.state.Pending {
		parts = append(parts, m.renderThinking())
	}

	return strings.Join(parts, "\n\n")
}

// renderBubble renders one bubble. Text is price-normalized on every
// render; nothing normalized is ever written back to the transcript.
func (m *Model) renderBubble(bub model.Bubble) string {
	text := price.Normalize(bub.Text)
	wrapWidth := m.bubbleWrapWidth()

	switch bub.Role {
	case model.RoleUser:
		rendered := m.theme.UserBubble.Render(wrapText(text, wrapWidth))
		return m.alignRight(rendered)

	case model.RoleAssistant:
		if text == "" {
			text = "(no response)"
		}
		body := m.renderMarkdown(text, wrapWidth)
		return m.theme.AssistantBubble.Render(body)

	case model.RoleSystem:
		return m.theme.SystemBubble.Render(wrapText(text, wrapWidth))

	default:
		return m.theme.OtherBubble.Render(wrapText(text, wrapWidth))
	}
}

// renderMarkdown renders assistant text through glamour when enabled,
// falling back to plain wrapped text.
func (m *Model) renderMarkdown(text string, wrapWidth int) string {
	if m.renderer == nil {
		return wrapText(text, wrapWidth)
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return wrapText(text, wrapWidth)
	}
	return strings.TrimRight(out, "\n")
}

// alignRight pushes a rendered user bubble toward the right edge.
func (m *Model) alignRight(rendered string) string {
	margin := m.width - lipgloss.Width(rendered) - 2
	if margin < 0 {
		margin = 0
	}
	return lipgloss.NewStyle().MarginLeft(margin).Render(rendered)
}

func (m *Model) renderThinking() string {
	return m.theme.Spinner.Render(m.spinner.View()) + " " +
		m.theme.ThinkingText.Render("Searching the catalog...")
}

func (m *Model) renderEmptyState() string {
	lines := []string{
		m.theme.HeaderTitle.Render("Welcome to shopchat"),
		"",
		m.theme.ThinkingText.Render("Ask about products, prices, or availability."),
		m.theme.ThinkingText.Render(`Try: "wireless headphones under $100"`),
	}
	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

// =============================================================================
// ERROR BANNER
// =============================================================================

func (m Model) renderErrorBanner() string {
	title := m.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " Error")
	msg := m.theme.ErrorMessage.Render(m.state.Err)
	return m.theme.ErrorBox.
		Width(m.contentWidth()).
		Render(title + "  " + msg)
}

// =============================================================================
// INPUT AND STATUS BAR
// =============================================================================

func (m Model) renderInput() string {
	return m.theme.InputContainer.
		Width(m.contentWidth()).
		Render(m.input.View())
}

func (m Model) renderStatusBar() string {
	var parts []string
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		parts = append(parts,
			m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.ShortcutDesc.Render(h.Desc))
	}
	return m.theme.StatusBar.
		Width(m.contentWidth()).
		Render(strings.Join(parts, "  "))
}

// =============================================================================
// LAYOUT HELPERS
// =============================================================================

func (m Model) contentWidth() int {
	w := m.width - 2
	if w < 20 {
		w = 20
	}
	return w
}

// bubbleWrapWidth is the text width inside a bubble, leaving room for
// borders, padding, and the alignment margin.
func (m Model) bubbleWrapWidth() int {
	w := m.width - 12
	if w < 20 {
		w = 20
	}
	return w
}

// wrapText wraps text at display-width boundaries, preferring spaces.
// Widths are terminal columns, so CJK and emoji count double.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return text
	}

	var result strings.Builder
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(wrapLine(line, maxWidth))
	}
	return result.String()
}

func wrapLine(line string, maxWidth int) string {
	if util.DisplayWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	runes := []rune(line)
	for len(runes) > 0 {
		// Scan to the last rune that fits, remembering the last space.
		width := 0
		cut := len(runes)
		lastSpace := -1
		for j, r := range runes {
			width += runewidth.RuneWidth(r)
			if width > maxWidth {
				cut = j
				break
			}
			if r == ' ' {
				lastSpace = j
			}
		}
		if cut == len(runes) {
			result.WriteString(string(runes))
			break
		}
		if lastSpace > 0 {
			cut = lastSpace
		}
		if cut == 0 {
			cut = 1
		}
		result.WriteString(string(runes[:cut]))
		result.WriteString("\n")
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	return result.String()
}
