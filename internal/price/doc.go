// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package price normalizes price-looking tokens in display text.
//
// The product catalog behind the assistant stores prices as whole cents,
// and the service is not consistent about how it renders them back into
// prose. Normalize rewrites bare digit runs and loosely-grouped numbers
// into a single display form: thousands separators for the integer part
// and a trailing ".99" when the token carries a cents suffix.
//
// The transform is pure, stateless, and idempotent: applying it to its
// own output changes nothing.
//
// # Usage
//
//	price.Normalize("The Air Max are 10999.")  // "The Air Max are 109.99."
//	price.Normalize("$1099")                   // "$1,099"
package price
