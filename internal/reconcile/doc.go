// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reconcile merges optimistic local transcript state with the
// authoritative state returned by the assistant service.
//
// The whole package is a pure reducer: Apply(state, event) returns the next
// state and performs no I/O. The caller (the chat view or the plain REPL)
// owns the request itself; this package only decides what the transcript
// looks like before the request goes out and after it settles.
//
// The merge on success is priority-ordered. When the server's returned
// transcript demonstrably incorporated the current turn - it contains a line
// equal to the optimistic user line under case-insensitive, trimmed
// comparison - the server is authoritative and its transcript replaces local
// state verbatim. When it did not (stale cache, different trimming, missing
// history), an assistant line is synthesized onto the optimistic transcript
// instead, so the user's message is never silently lost. On failure the
// optimistic line is rolled back exactly, leaving the transcript as it was
// before the send.
package reconcile
