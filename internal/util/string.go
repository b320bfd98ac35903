// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the shopchat application.
package util

import (
	"github.com/mattn/go-runewidth"
)

// UNICODE: Width math counts terminal columns, not runes or bytes, so
// double-width characters (CJK, emoji) never break layout or truncate
// mid-character.

// TruncateWidth truncates a string to a maximum display width.
// Double-width characters (CJK) count as 2 columns. If the string is
// truncated, "..." is appended.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// DisplayWidth returns the terminal column width of a string.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
