// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package price normalizes price-looking tokens in display text.
package price

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// priceToken matches an optional leading currency mark followed by a maximal
// span of digits and grouping separators (comma, period, space), where every
// separator is immediately followed by more digits. Matching the maximal span
// and validating its shape in code - rather than letting the regex pick a
// partial match out of the middle of a digit run - is what keeps Normalize
// idempotent: a span either rewrites as a whole or is left untouched.
//
// Capture groups: 1 = currency mark, 2 = digit span.
var priceToken = regexp.MustCompile(`([$€£¥]?)\b(\d+(?:[,. ]\d+)*)\b`)

// grouper renders integers with English thousands separators ("1,099").
var grouper = message.NewPrinter(language.English)

// Normalize rewrites price-looking tokens into a consistent, grouped,
// cents-aware display form:
//
//   - A separated trailing "99" group reads as cents: "109.99" stays
//     "109.99", "54,99" becomes "54.99", "123,456.99" keeps its grouping.
//   - A bare run of five or more digits ending in "99" reads as whole cents:
//     "10999" becomes "109.99".
//   - Other bare runs of three or more digits, and conventionally grouped
//     runs, become grouped integers: "1099" becomes "1,099".
//   - The leading currency mark, when present, is preserved verbatim; one is
//     never invented.
//
// Spans that do not fit any of these shapes - short runs, decimals like
// "3.14159", digit runs with malformed grouping - are left exactly as
// written. The transform is pure, stateless, and idempotent:
// Normalize(Normalize(s)) == Normalize(s) for every input.
func Normalize(s string) string {
	return priceToken.ReplaceAllStringFunc(s, rewriteToken)
}

// rewriteToken rewrites a single matched span, or returns it unchanged when
// it does not fit a price shape.
func rewriteToken(token string) string {
	sub := priceToken.FindStringSubmatch(token)
	if sub == nil {
		return token
	}
	mark, run := sub[1], sub[2]

	parts := strings.FieldsFunc(run, isSeparator)
	digits := strings.Join(parts, "")
	if digits == "" || !isDigits(digits) {
		return token
	}

	var out string
	var ok bool
	if len(parts) == 1 {
		out, ok = rewriteBare(parts[0])
	} else {
		out, ok = rewriteGrouped(parts, digits)
	}
	if !ok {
		return token
	}
	return mark + out
}

// rewriteBare handles a run with no separators. Runs shorter than three
// digits are not prices ("2 of them", "42"). A run of five or more digits
// ending in "99" is whole cents from the catalog ("10999" is $109.99);
// "1099" stays an integer because "1,099" is a price point, not ten dollars
// and ninety-nine cents.
func rewriteBare(run string) (string, bool) {
	if len(run) < 3 {
		return "", false
	}
	if len(run) >= 5 && strings.HasSuffix(run, "99") {
		return groupCents(run)
	}
	return groupInt(run)
}

// rewriteGrouped handles a separated run. Two shapes are accepted:
//
//   - cents: the final group is exactly "99" and every group between the
//     first and the last has exactly three digits ("109.99", "123,456.99")
//   - grouped integer: every group after the first has exactly three digits
//     ("1,234,567", "1 234 567")
//
// Anything else - "3.14159", "12 34", "1.2" - is left unchanged rather than
// guessed at.
func rewriteGrouped(parts []string, digits string) (string, bool) {
	if len(parts[0]) > 3 {
		return "", false
	}

	last := parts[len(parts)-1]
	if last == "99" && uniformGroups(parts[1:len(parts)-1]) {
		return groupCents(digits)
	}
	if uniformGroups(parts[1:]) {
		return groupInt(digits)
	}
	return "", false
}

// uniformGroups reports whether every group has exactly three digits, the
// conventional thousands-grouping shape.
func uniformGroups(groups []string) bool {
	for _, g := range groups {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

// groupCents renders a whole-cents digit string: the head is grouped with
// thousands separators and ".99" is appended.
func groupCents(digits string) (string, bool) {
	n, err := strconv.ParseInt(digits[:len(digits)-2], 10, 64)
	if err != nil {
		return "", false
	}
	return grouper.Sprintf("%d", n) + ".99", true
}

// groupInt renders a digit string as a grouped integer.
func groupInt(digits string) (string, bool) {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return "", false
	}
	return grouper.Sprintf("%d", n), true
}

// isSeparator reports whether r is a grouping separator.
func isSeparator(r rune) bool {
	return r == ',' || r == '.' || r == ' '
}

// isDigits reports whether s consists solely of ASCII digits.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
