// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

// =============================================================================
// WIRE TYPES
// =============================================================================

// ChatRequest is the body of POST /chat. History is the transcript as the
// client knew it before the current turn - the pre-optimistic transcript,
// not the one already showing the user's new line.
type ChatRequest struct {
	Query   string   `json:"query"`
	History []string `json:"history"`
}

// ChatResponse is the expected success body. Either field may be blank or
// missing; the caller's merge logic tolerates both.
type ChatResponse struct {
	Response string   `json:"response"`
	History  []string `json:"history"`
}
