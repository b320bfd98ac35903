// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/shopchat-tui/internal/assistant"
)

// =============================================================================
// REQUEST LIFECYCLE MESSAGES
// =============================================================================

// ChatResultMsg is delivered when the in-flight chat request settles,
// successfully or not. Exactly one of Response and Err is meaningful.
type ChatResultMsg struct {
	// Response is the decoded success body, nil on failure.
	Response *assistant.ChatResponse

	// Err is the request error, nil on success.
	Err error
}

// =============================================================================
// SERVICE STATUS MESSAGES
// =============================================================================

// ServiceStatusMsg reports the startup reachability probe of the
// assistant service. A probe failure is informational only; the user can
// still submit and get a proper error on the turn itself.
type ServiceStatusMsg struct {
	// Reachable is true when the service answered the probe.
	Reachable bool

	// Err is the probe error when Reachable is false.
	Err error
}
