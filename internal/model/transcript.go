// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for transcripts and bubbles.
package model

import (
	"strings"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a transcript line.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleOther     Role = "other"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return "Note"
	}
}

// rolePrefixes maps the recognized line prefixes to roles. Matching is
// case-insensitive on the prefix before the first colon.
var rolePrefixes = []struct {
	prefix string
	role   Role
}{
	{"user", RoleUser},
	{"assistant", RoleAssistant},
	{"system", RoleSystem},
}

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is an ordered sequence of role-prefixed lines. Insertion order
// defines display order. The transcript is the wire format, the persistence
// format, and the in-memory conversation state; everything else is derived.
type Transcript []string

// Clone returns an independent copy of the transcript.
func (t Transcript) Clone() Transcript {
	if t == nil {
		return nil
	}
	out := make(Transcript, len(t))
	copy(out, t)
	return out
}

// Append returns a new transcript with the line added. The receiver is not
// modified, which keeps optimistic updates and rollback a matter of holding
// on to the prior value.
func (t Transcript) Append(line string) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, line)
}

// LastLine returns the most recent line, or "" if the transcript is empty.
func (t Transcript) LastLine() string {
	if len(t) == 0 {
		return ""
	}
	return t[len(t)-1]
}

// IsEmpty returns true if there are no lines.
func (t Transcript) IsEmpty() bool {
	return len(t) == 0
}

// ContainsLine reports whether the transcript contains a line equal to the
// given one under case-insensitive, whitespace-trimmed comparison. This is
// the membership check used to decide whether a server-returned transcript
// incorporated the current turn.
func (t Transcript) ContainsLine(line string) bool {
	want := foldLine(line)
	for _, l := range t {
		if foldLine(l) == want {
			return true
		}
	}
	return false
}

// foldLine normalizes a line for membership comparison.
func foldLine(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}

// =============================================================================
// LINE CONSTRUCTION
// =============================================================================

// UserLine builds the canonical user line for a query.
func UserLine(query string) string {
	return "User: " + strings.TrimSpace(query)
}

// AssistantLine builds the canonical assistant line for a response.
// A blank response becomes the "(no response)" placeholder so the user's
// turn is never answered by silence.
func AssistantLine(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "(no response)"
	}
	return "Assistant: " + text
}

// =============================================================================
// BUBBLE TYPE
// =============================================================================

// Bubble is the derived view of one transcript line. Bubbles are recomputed
// from the transcript on every render; they are never persisted and carry no
// identity or lifecycle of their own.
type Bubble struct {
	Role Role
	Text string
}

// ParseBubble derives the bubble for a single transcript line. The role is
// inferred from the prefix before the first colon, matched case-insensitively
// as a starts-with test against the known roles. Lines with no recognized
// prefix become RoleOther and keep the full original line as text.
func ParseBubble(line string) Bubble {
	head, tail, found := strings.Cut(line, ":")
	if found {
		trimmed := strings.ToLower(strings.TrimSpace(head))
		for _, rp := range rolePrefixes {
			if strings.HasPrefix(trimmed, rp.prefix) {
				return Bubble{Role: rp.role, Text: strings.TrimSpace(tail)}
			}
		}
	}
	return Bubble{Role: RoleOther, Text: line}
}

// ParseBubbles derives the bubble list for a whole transcript.
func ParseBubbles(t Transcript) []Bubble {
	bubbles := make([]Bubble, 0, len(t))
	for _, line := range t {
		bubbles = append(bubbles, ParseBubble(line))
	}
	return bubbles
}
