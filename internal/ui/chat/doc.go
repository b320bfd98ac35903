// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the full-screen chat view for shopchat.
//
// The view is a Bubble Tea model wrapping a viewport (the conversation),
// a textinput (the query line), and a spinner (shown while a request is
// in flight). All conversation semantics - optimistic sends, merge of
// server history, rollback on failure - live in the reconcile package;
// this package only translates terminal events into reconcile events and
// renders the resulting state.
//
// # Request Lifecycle
//
// Submitting a query appends it to the transcript immediately, persists
// the transcript, and launches a single tea.Cmd that performs the HTTP
// request with the pre-optimistic history. Exactly one request can be in
// flight: further submits while the spinner is visible are no-ops, and
// there is no cancellation - Esc does nothing to a pending request. The
// result message settles the turn through the reducer and persists again.
//
// # Rendering
//
// Transcript lines become role-styled bubbles. Assistant bubbles render
// through glamour when markdown is enabled; all bubble text passes
// through price.Normalize so malformed price strings display cleanly.
package chat
