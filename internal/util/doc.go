// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the shopchat application.
//
// This package contains common helper functions used throughout the
// application for terminal width math and crash-safe file writing.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation for terminal columns
//   - DisplayWidth: terminal column width of a string
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
