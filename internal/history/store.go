// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"encoding/json"

	"github.com/jeranaias/shopchat-tui/internal/model"
)

// transcriptKey is the slot key holding the persisted transcript.
const transcriptKey = "chat_history"

// Store layers write-through transcript persistence on top of a Slot.
// Load is called once at startup and Save after every transcript
// change. Both are best-effort: a missing, corrupted, or unwritable
// backend never surfaces an error, the session just runs memory-only.
type Store struct {
	slot Slot
}

// NewStore creates a transcript store over the given slot.
func NewStore(slot Slot) *Store {
	return &Store{slot: slot}
}

// Load reads the persisted transcript. Anything unreadable, including
// malformed JSON, loads as an empty transcript.
func (s *Store) Load() model.Transcript {
	raw, ok := s.slot.Get(transcriptKey)
	if !ok || raw == "" {
		return nil
	}

	var lines []string
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil
	}
	return model.Transcript(lines)
}

// Save writes the transcript through to the slot.
func (s *Store) Save(t model.Transcript) {
	if t == nil {
		t = model.Transcript{}
	}
	data, err := json.Marshal([]string(t))
	if err != nil {
		return
	}
	s.slot.Set(transcriptKey, string(data))
}
