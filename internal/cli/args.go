// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Argument parsing for the shopchat binary.
//
// Handles both --flag value and --flag=value forms.
package cli

import (
	"fmt"
	"strings"
)

// =============================================================================
// ARGUMENTS
// =============================================================================

// Args holds the parsed command-line arguments.
type Args struct {
	// Plain forces the line-oriented REPL even on a TTY.
	Plain bool

	// ConfigPath overrides the config file location.
	ConfigPath string

	// BaseURL overrides the assistant service URL.
	BaseURL string

	// Session overrides the session identifier.
	Session string

	// Backend overrides the history backend (file, sqlite, memory).
	Backend string

	// Version and Help request the respective printouts and exit.
	Version bool
	Help    bool
}

// valueFlags maps flag names to setters for flags that take a value.
func (a *Args) valueFlags() map[string]*string {
	return map[string]*string{
		"config":   &a.ConfigPath,
		"base-url": &a.BaseURL,
		"session":  &a.Session,
		"backend":  &a.Backend,
	}
}

// ParseArgs parses raw command-line arguments (without the program name).
func ParseArgs(raw []string) (Args, error) {
	var args Args
	setters := args.valueFlags()

	i := 0
	for i < len(raw) {
		arg := raw[i]
		if !strings.HasPrefix(arg, "-") {
			return args, fmt.Errorf("unexpected argument: %s", arg)
		}

		name := strings.TrimLeft(arg, "-")
		value := ""
		hasValue := false
		if eq := strings.Index(name, "="); eq >= 0 {
			name, value = name[:eq], name[eq+1:]
			hasValue = true
		}

		switch name {
		case "plain":
			args.Plain = true
		case "version", "v":
			args.Version = true
		case "help", "h":
			args.Help = true
		default:
			target, ok := setters[name]
			if !ok {
				return args, fmt.Errorf("unknown flag: %s", arg)
			}
			if !hasValue {
				if i+1 >= len(raw) {
					return args, fmt.Errorf("flag --%s requires a value", name)
				}
				i++
				value = raw[i]
			}
			*target = value
		}
		i++
	}

	return args, nil
}

// Usage returns the help text for the shopchat binary.
func Usage() string {
	return strings.TrimLeft(`
shopchat - terminal chat for product search

Usage:
  shopchat [flags]

Flags:
  --plain             Use the line-oriented REPL instead of the full-screen UI
  --config PATH       Use a specific config file
  --base-url URL      Assistant service URL (default http://127.0.0.1:8000)
  --session ID        Conversation session to open ("new" starts a fresh one)
  --backend NAME      History backend: file, sqlite, memory
  -v, --version       Print version and exit
  -h, --help          Show this help

Environment:
  SHOPCHAT_BASE_URL, SHOPCHAT_SESSION, SHOPCHAT_BACKEND,
  SHOPCHAT_HISTORY_DIR, SHOPCHAT_TIMEOUT_SECS, SHOPCHAT_THEME,
  SHOPCHAT_PLAIN
`, "\n")
}
