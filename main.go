// shopchat - terminal chat for a retail product-search assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopchat-tui/internal/assistant"
	"github.com/jeranaias/shopchat-tui/internal/cli"
	"github.com/jeranaias/shopchat-tui/internal/config"
	"github.com/jeranaias/shopchat-tui/internal/history"
	"github.com/jeranaias/shopchat-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", err, cli.Usage())
		os.Exit(2)
	}

	if args.Help {
		fmt.Print(cli.Usage())
		return
	}
	if args.Version {
		fmt.Printf("shopchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := assistant.NewClientWithConfig(&assistant.ClientConfig{
		BaseURL:           cfg.Assistant.BaseURL,
		Timeout:           time.Duration(cfg.Assistant.TimeoutSecs) * time.Second,
		RequestsPerSecond: cfg.Assistant.RequestsPerSecond,
	})

	historyDir, err := cfg.HistoryDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slot, err := history.Open(cfg.Session.Backend, historyDir, cfg.Session.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open history: %v\n", err)
		os.Exit(1)
	}
	if closer, ok := slot.(io.Closer); ok {
		defer closer.Close()
	}
	store := history.NewStore(slot)

	// The full-screen UI needs a real terminal on both ends; everything
	// else gets the plain REPL.
	if cfg.UI.Plain || !cli.IsTTY() || !cli.IsStdoutTTY() {
		if err := cli.Run(client, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(
		chat.New(client, store, cfg),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads the configuration and applies command-line overrides
// on top of file, env, and default values.
func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.BaseURL != "" {
		cfg.Assistant.BaseURL = args.BaseURL
	}
	if args.Session != "" {
		cfg.Session.ID = args.Session
	}
	// "new" is a sentinel for a fresh conversation alongside the default.
	if cfg.Session.ID == "new" {
		cfg.Session.ID = history.NewSessionID()
	}
	if args.Backend != "" {
		cfg.Session.Backend = args.Backend
	}
	if args.Plain {
		cfg.UI.Plain = true
	}

	// Re-validate after overrides so a bad flag fails the same way a bad
	// config file would.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
