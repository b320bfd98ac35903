// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reconcile merges optimistic local transcript state with the
// authoritative state returned by the assistant service.
package reconcile

import (
	"strings"

	"github.com/jeranaias/shopchat-tui/internal/model"
)

// =============================================================================
// STATE
// =============================================================================

// State is the conversation state owned by one chat surface. It is a value:
// Apply returns a new State and never mutates its input, which makes rollback
// a matter of restoring a held copy.
type State struct {
	// Transcript is the currently displayed conversation.
	Transcript model.Transcript

	// Prior is the pre-optimistic transcript remembered while a send is in
	// flight. It is both the history payload for the outbound request and
	// the rollback target on failure.
	Prior model.Transcript

	// Pending is true exactly while one request is in flight.
	Pending bool

	// Err is the currently surfaced error message, or "" when none. At most
	// one error is visible at a time; the next submit clears it.
	Err string
}

// NewState returns the state for a freshly mounted surface, optionally
// restored from persistence.
func NewState(restored model.Transcript) State {
	return State{Transcript: restored.Clone()}
}

// =============================================================================
// EVENTS
// =============================================================================

// Event is a state transition input for Apply.
type Event interface {
	isEvent()
}

// SubmitEvent carries a user-submitted query. Blank queries and submits
// while a request is pending are no-ops.
type SubmitEvent struct {
	Query string
}

// SuccessEvent carries a settled successful response.
type SuccessEvent struct {
	// Response is the free-text reply from the service.
	Response string

	// History is the transcript the service claims is current. May be
	// empty, stale, or missing this turn entirely.
	History model.Transcript
}

// FailureEvent carries a settled failed request.
type FailureEvent struct {
	// Message is the user-facing error text.
	Message string
}

func (SubmitEvent) isEvent()  {}
func (SuccessEvent) isEvent() {}
func (FailureEvent) isEvent() {}

// =============================================================================
// REDUCER
// =============================================================================

// Apply computes the next state for an event. Settle events that arrive when
// no request is pending are ignored.
func Apply(s State, ev Event) State {
	switch e := ev.(type) {
	case SubmitEvent:
		return applySubmit(s, e)
	case SuccessEvent:
		return applySuccess(s, e)
	case FailureEvent:
		return applyFailure(s, e)
	}
	return s
}

// applySubmit performs the optimistic update: the trimmed query is appended
// as a user line immediately, before any network activity, and the
// pre-optimistic transcript is remembered for the request payload and for
// rollback.
func applySubmit(s State, e SubmitEvent) State {
	if s.Pending {
		// Busy: exactly one request in flight at a time, no queueing.
		return s
	}
	query := strings.TrimSpace(e.Query)
	if query == "" {
		return s
	}

	prior := s.Transcript.Clone()
	return State{
		Transcript: s.Transcript.Append(model.UserLine(query)),
		Prior:      prior,
		Pending:    true,
		Err:        "",
	}
}

// applySuccess merges the server's answer, in strict priority order:
//
//  1. The server's transcript is adopted verbatim when it is non-empty and
//     contains the optimistic user line - the server demonstrably
//     incorporated this turn, so it is authoritative.
//  2. Otherwise an assistant line is synthesized onto the optimistic
//     transcript, so the user's turn survives a stale or malformed history.
func applySuccess(s State, e SuccessEvent) State {
	if !s.Pending {
		return s
	}

	next := State{Pending: false}
	if !e.History.IsEmpty() && e.History.ContainsLine(s.Transcript.LastLine()) {
		next.Transcript = e.History.Clone()
	} else {
		next.Transcript = s.Transcript.Append(model.AssistantLine(e.Response))
	}
	return next
}

// applyFailure rolls back to the pre-optimistic transcript - dropping exactly
// the optimistically appended line, never earlier history - and surfaces the
// error message.
func applyFailure(s State, e FailureEvent) State {
	if !s.Pending {
		return s
	}

	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = "Request failed"
	}
	return State{
		Transcript: s.Prior.Clone(),
		Pending:    false,
		Err:        msg,
	}
}
