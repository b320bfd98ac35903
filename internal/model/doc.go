// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and bubbles.
//
// The transcript is the sole unit of conversation state: an ordered list
// of role-prefixed text lines ("User: hi", "Assistant: hello"). It is the
// exact form that goes over the wire and into persistence. Bubbles are the
// derived per-line view used for rendering; they are recomputed from the
// transcript on every render and hold no identity of their own.
//
// # Key Types
//
//   - Transcript: ordered []string of role-prefixed lines
//   - Role: user, assistant, system, or other
//   - Bubble: {Role, Text} derived from one transcript line
//
// # Usage
//
//	t := model.Transcript{"User: how much are the air max?"}
//	t = t.Append(model.AssistantLine("They are $109.99."))
//	for _, b := range model.ParseBubbles(t) {
//	    render(b.Role, b.Text)
//	}
package model
