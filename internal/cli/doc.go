// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the line-oriented REPL used when shopchat runs
// without a TTY or with --plain.
//
// The REPL shares everything below the surface with the full-screen UI:
// the same reconcile reducer, the same history store, the same assistant
// client. Only the input/output loop differs - liner for readline-style
// editing and input history, plain printed lines instead of bubbles.
//
// # Interactive Commands
//
//	/help, /h      Show available commands
//	/history       Print the conversation so far
//	/clear, /c     Clear the conversation (and its persisted copy)
//	/quit, /q      Exit
//	Ctrl+D         Exit
package cli
