// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Plain-mode chat loop for shopchat.
//
// Runs when stdout is not a TTY or when --plain is given. Drives the same
// reducer and persistence as the full-screen UI, one synchronous turn at
// a time.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/shopchat-tui/internal/assistant"
	"github.com/jeranaias/shopchat-tui/internal/config"
	"github.com/jeranaias/shopchat-tui/internal/history"
	"github.com/jeranaias/shopchat-tui/internal/model"
	"github.com/jeranaias/shopchat-tui/internal/price"
	"github.com/jeranaias/shopchat-tui/internal/reconcile"
	"github.com/jeranaias/shopchat-tui/internal/ui/styles"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// Session holds the state for one plain-mode chat session.
type Session struct {
	// Conversation state. All transitions go through reconcile.Apply.
	State reconcile.State

	// Collaborators shared with the full-screen UI.
	Store  *history.Store
	Client *assistant.Client
	Config *config.Config

	// Tracking
	StartTime time.Time
	Turns     int

	// Input history handler
	Input *InputReader
}

// NewSession creates a plain-mode session, restoring the transcript from
// the history store.
func NewSession(client *assistant.Client, store *history.Store, cfg *config.Config) *Session {
	return &Session{
		State:     reconcile.NewState(store.Load()),
		Store:     store,
		Client:    client,
		Config:    cfg,
		StartTime: time.Now(),
		Input:     NewInputReader(),
	}
}

// =============================================================================
// REPL LOOP
// =============================================================================

// Run executes the REPL until the user quits or input reaches EOF.
func Run(client *assistant.Client, store *history.Store, cfg *config.Config) error {
	session := NewSession(client, store, cfg)
	defer session.Input.Close()

	printWelcome(session)

	for {
		input, err := session.Input.ReadInput(promptStyle.Render("shopchat> "))
		if err != nil {
			if err == liner.ErrPromptAborted {
				// Ctrl+C - exit gracefully
				fmt.Println()
				printExitSummary(session)
				return nil
			}
			// EOF (Ctrl+D) or terminal error - exit gracefully
			fmt.Println()
			printExitSummary(session)
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if !handleSlashCommand(input, session) {
				printExitSummary(session)
				return nil
			}
			continue
		}

		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			printExitSummary(session)
			return nil
		}

		session.processQuery(input)
	}
}

// processQuery runs one full turn: optimistic append, persist, request,
// settle, persist again, print. Errors surface as a printed line and the
// transcript rolls back, exactly as in the full-screen UI.
func (s *Session) processQuery(input string) {
	next := reconcile.Apply(s.State, reconcile.SubmitEvent{Query: input})
	if !next.Pending {
		return
	}
	s.State = next
	s.Store.Save(s.State.Transcript)

	ctx, cancel := context.WithTimeout(context.Background(), s.Client.Timeout())
	defer cancel()

	resp, err := s.Client.Chat(ctx, strings.TrimSpace(input), s.State.Prior)

	var ev reconcile.Event
	if err != nil {
		ev = reconcile.FailureEvent{Message: assistant.ErrorMessage(err)}
	} else {
		ev = reconcile.SuccessEvent{
			Response: resp.Response,
			History:  model.Transcript(resp.History),
		}
	}

	s.State = reconcile.Apply(s.State, ev)
	s.Store.Save(s.State.Transcript)
	s.Turns++

	if s.State.Err != "" {
		fmt.Fprintln(os.Stderr, styles.RenderError(s.State.Err))
		return
	}

	printLine(s.State.Transcript.LastLine(), s.Config.UI.Markdown)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand executes an interactive command. Returns false when
// the session should end.
func handleSlashCommand(input string, s *Session) bool {
	switch strings.ToLower(strings.Fields(input)[0]) {
	case "/help", "/h":
		printHelp()

	case "/history":
		printTranscript(s)

	case "/clear", "/c":
		s.State = reconcile.NewState(nil)
		s.Store.Save(nil)
		fmt.Println(infoStyle.Render("Conversation cleared."))

	case "/quit", "/q":
		return false

	default:
		fmt.Println(infoStyle.Render("Unknown command. Type /help for commands."))
	}
	return true
}

// =============================================================================
// OUTPUT
// =============================================================================

// printLine prints one transcript line with its role label styled and the
// text price-normalized. Assistant text optionally renders as markdown.
func printLine(line string, markdown bool) {
	bub := model.ParseBubble(line)
	text := price.Normalize(bub.Text)

	switch bub.Role {
	case model.RoleUser:
		fmt.Println(userLabelStyle.Render("You:") + " " + text)
	case model.RoleAssistant:
		if markdown {
			text = renderMarkdown(text)
		}
		fmt.Println(assistantLabelStyle.Render("Assistant:") + " " + text)
	default:
		fmt.Println(text)
	}
}

func printTranscript(s *Session) {
	if s.State.Transcript.IsEmpty() {
		fmt.Println(infoStyle.Render("No conversation yet."))
		return
	}
	for _, line := range s.State.Transcript {
		printLine(line, s.Config.UI.Markdown)
	}
}

func printWelcome(s *Session) {
	fmt.Println(welcomeStyle.Render("shopchat") + " " +
		infoStyle.Render("- product search assistant"))
	fmt.Println(infoStyle.Render("Service: " + s.Client.BaseURL()))
	if !s.State.Transcript.IsEmpty() {
		fmt.Println(infoStyle.Render(fmt.Sprintf(
			"Restored %d lines of conversation. Type /history to review.",
			len(s.State.Transcript))))
	}
	fmt.Println(infoStyle.Render("Type ") + commandStyle.Render("/help") +
		infoStyle.Render(" for commands, ") + commandStyle.Render("/quit") +
		infoStyle.Render(" to exit."))
	fmt.Println()
}

func printHelp() {
	rows := []struct{ cmd, desc string }{
		{"/help, /h", "Show this help"},
		{"/history", "Print the conversation so far"},
		{"/clear, /c", "Clear the conversation"},
		{"/quit, /q", "Exit"},
	}
	for _, row := range rows {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-12s", row.cmd)),
			infoStyle.Render(row.desc))
	}
}

func printExitSummary(s *Session) {
	elapsed := time.Since(s.StartTime).Round(time.Second)
	fmt.Println(infoStyle.Render(fmt.Sprintf(
		"%d turns in %s. Conversation saved.", s.Turns, elapsed)))
}
