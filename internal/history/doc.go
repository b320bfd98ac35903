// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides transcript persistence for shopchat.
//
// Persistence is built around the Slot interface, a small string
// key-value capability with three backends:
//
//   - MemorySlot: in-process map, used in tests and as the degraded
//     fallback when no durable backend is available
//   - FileSlot: JSON file per session under ~/.shopchat/history/
//   - SQLiteSlot: key-value table in a SQLite database
//
// Store layers write-through transcript persistence on top of a Slot:
// the transcript is read once at startup and written after every
// change. All storage errors are swallowed; a broken backend degrades
// the session to memory-only, it never breaks the conversation.
package history
