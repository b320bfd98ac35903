// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jeranaias/shopchat-tui/internal/util"
)

// =============================================================================
// FILE SLOT
// =============================================================================

// FileSlot persists key-value pairs as a JSON object in one file per
// session. The file lives at <dir>/<session>.json.
type FileSlot struct {
	mu   sync.Mutex
	path string
}

// NewFileSlot creates a file-backed slot for the given session,
// ensuring the directory exists.
func NewFileSlot(dir, session string) (*FileSlot, error) {
	if session == "" {
		session = NewSessionID()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &FileSlot{path: filepath.Join(dir, session+".json")}, nil
}

// Path returns the backing file path.
func (s *FileSlot) Path() string {
	return s.path
}

// Get returns the value for key and whether it was present. A missing
// or unreadable file reads as empty.
func (s *FileSlot) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.read()
	v, ok := values[key]
	return v, ok
}

// Set stores value under key. Write failures are dropped; the next Get
// simply sees the old contents.
func (s *FileSlot) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.read()
	values[key] = value

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return
	}
	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	_ = util.AtomicWriteFile(s.path, data, 0600)
}

// read loads the backing file into a map, treating any failure as an
// empty slot. Caller must hold the mutex.
func (s *FileSlot) read() map[string]string {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		// Corrupted file reads as empty rather than failing the session.
		return make(map[string]string)
	}
	return values
}
