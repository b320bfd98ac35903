// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// =============================================================================
// SLOT INTERFACE
// =============================================================================

// Slot is a minimal string key-value capability. Implementations must be
// safe for concurrent use. Set is best-effort: backends report nothing,
// a failed write just means the value is not there on the next Get.
type Slot interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key.
	Set(key, value string)
}

// Open returns the Slot for the named backend. Backends that hold
// resources also implement io.Closer.
func Open(backend, dir, session string) (Slot, error) {
	switch strings.ToLower(backend) {
	case "memory":
		return NewMemorySlot(), nil
	case "sqlite":
		return NewSQLiteSlot(dir, session)
	default:
		return NewFileSlot(dir, session)
	}
}

// NewSessionID returns a fresh identifier for scoping a persisted
// transcript to one client instance.
func NewSessionID() string {
	return uuid.NewString()
}

// =============================================================================
// MEMORY SLOT
// =============================================================================

// MemorySlot is an in-process Slot. Values do not survive the process.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemorySlot creates an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *MemorySlot) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key.
func (s *MemorySlot) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
