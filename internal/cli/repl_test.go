// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jeranaias/shopchat-tui/internal/assistant"
	"github.com/jeranaias/shopchat-tui/internal/config"
	"github.com/jeranaias/shopchat-tui/internal/history"
	"github.com/jeranaias/shopchat-tui/internal/reconcile"
)

// newTestSession builds a session without an input reader, pointed at the
// given base URL.
func newTestSession(baseURL string) (*Session, *history.Store) {
	store := history.NewStore(history.NewMemorySlot())
	client := assistant.NewClientWithConfig(&assistant.ClientConfig{
		BaseURL:           baseURL,
		RequestsPerSecond: 1000,
	})
	cfg := config.Default()
	cfg.UI.Markdown = false

	return &Session{
		State:     reconcile.NewState(store.Load()),
		Store:     store,
		Client:    client,
		Config:    cfg,
		StartTime: time.Now(),
	}, store
}

func TestProcessQuery_SuccessfulTurn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req assistant.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(assistant.ChatResponse{
			Response: "We have three in stock.",
			History: []string{
				"User: " + req.Query,
				"Assistant: We have three in stock.",
			},
		})
	}))
	defer server.Close()

	s, store := newTestSession(server.URL)
	s.processQuery("any usb hubs?")

	if s.State.Pending {
		t.Error("Expected turn to be settled")
	}
	if len(s.State.Transcript) != 2 {
		t.Fatalf("Expected 2 transcript lines, got %d", len(s.State.Transcript))
	}
	if s.Turns != 1 {
		t.Errorf("Expected 1 turn counted, got %d", s.Turns)
	}

	saved := store.Load()
	if saved.LastLine() != "Assistant: We have three in stock." {
		t.Errorf("Expected settled transcript persisted, got %q", saved.LastLine())
	}
}

func TestProcessQuery_FailureRollsBack(t *testing.T) {
	// Nothing listens on port 1.
	s, store := newTestSession("http://127.0.0.1:1")
	s.processQuery("anything?")

	if !s.State.Transcript.IsEmpty() {
		t.Errorf("Expected rollback, got %v", s.State.Transcript)
	}
	if s.State.Err == "" {
		t.Error("Expected an error message after failed turn")
	}
	if !store.Load().IsEmpty() {
		t.Error("Expected rolled-back transcript persisted")
	}
}

func TestProcessQuery_BlankIsNoOp(t *testing.T) {
	s, _ := newTestSession("http://127.0.0.1:1")
	s.processQuery("   ")

	if s.Turns != 0 {
		t.Error("Expected no turn for blank input")
	}
	if !s.State.Transcript.IsEmpty() {
		t.Error("Expected transcript unchanged for blank input")
	}
}

func TestHandleSlashCommand_Clear(t *testing.T) {
	s, store := newTestSession("http://127.0.0.1:1")
	s.State = reconcile.NewState([]string{"User: hello", "Assistant: hi"})
	store.Save(s.State.Transcript)

	if !handleSlashCommand("/clear", s) {
		t.Error("Expected /clear to keep the session running")
	}
	if !s.State.Transcript.IsEmpty() {
		t.Error("Expected transcript cleared")
	}
	if !store.Load().IsEmpty() {
		t.Error("Expected persisted transcript cleared")
	}
}

func TestHandleSlashCommand_Quit(t *testing.T) {
	s, _ := newTestSession("http://127.0.0.1:1")

	if handleSlashCommand("/quit", s) {
		t.Error("Expected /quit to end the session")
	}
	if handleSlashCommand("/q", s) {
		t.Error("Expected /q to end the session")
	}
	if !handleSlashCommand("/unknown", s) {
		t.Error("Expected unknown command to keep the session running")
	}
}
