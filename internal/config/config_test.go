// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Assistant.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("default base URL = %q", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.TimeoutSecs != 30 {
		t.Errorf("default timeout = %d, want 30", cfg.Assistant.TimeoutSecs)
	}
	if cfg.Session.Backend != "file" {
		t.Errorf("default backend = %q, want file", cfg.Session.Backend)
	}
	// A stable default session is what makes restore-on-start work for a
	// user who never passes --session.
	if cfg.Session.ID != "default" {
		t.Errorf("default session id = %q, want default", cfg.Session.ID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad base URL",
			mutate:  func(c *Config) { c.Assistant.BaseURL = "not a url" },
			wantErr: "assistant.base_url",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Assistant.TimeoutSecs = 0 },
			wantErr: "assistant.timeout_secs",
		},
		{
			name:    "timeout too large",
			mutate:  func(c *Config) { c.Assistant.TimeoutSecs = 3600 },
			wantErr: "assistant.timeout_secs",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Session.Backend = "redis" },
			wantErr: "session.backend",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: "ui.theme",
		},
		{
			name:    "negative rate",
			mutate:  func(c *Config) { c.Assistant.RequestsPerSecond = -1 },
			wantErr: "requests_per_second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SHOPCHAT_BASE_URL", "http://assistant.internal:9000")
	t.Setenv("SHOPCHAT_TIMEOUT_SECS", "15")
	t.Setenv("SHOPCHAT_SESSION", "review-session")
	t.Setenv("SHOPCHAT_BACKEND", "sqlite")
	t.Setenv("SHOPCHAT_PLAIN", "true")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Assistant.BaseURL != "http://assistant.internal:9000" {
		t.Errorf("base URL = %q", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.TimeoutSecs != 15 {
		t.Errorf("timeout = %d, want 15", cfg.Assistant.TimeoutSecs)
	}
	if cfg.Session.ID != "review-session" {
		t.Errorf("session id = %q", cfg.Session.ID)
	}
	if cfg.Session.Backend != "sqlite" {
		t.Errorf("backend = %q", cfg.Session.Backend)
	}
	if !cfg.UI.Plain {
		t.Error("plain mode should be enabled")
	}
}

func TestApplyEnvOverrides_IgnoresBadTimeout(t *testing.T) {
	t.Setenv("SHOPCHAT_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Assistant.TimeoutSecs != 30 {
		t.Errorf("timeout = %d, want default 30", cfg.Assistant.TimeoutSecs)
	}
}

func TestLoadFromPath_TOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[assistant]
base_url = "http://10.0.0.5:8000"
timeout_secs = 45

[session]
backend = "sqlite"

[ui]
theme = "light"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}

	if cfg.Assistant.BaseURL != "http://10.0.0.5:8000" {
		t.Errorf("base URL = %q", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.TimeoutSecs != 45 {
		t.Errorf("timeout = %d, want 45", cfg.Assistant.TimeoutSecs)
	}
	if cfg.Session.Backend != "sqlite" {
		t.Errorf("backend = %q", cfg.Session.Backend)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme)
	}
	// Unset fields fall back to defaults
	if cfg.Assistant.RequestsPerSecond != 4 {
		t.Errorf("rate = %v, want default 4", cfg.Assistant.RequestsPerSecond)
	}
}

func TestLoadFromPath_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"assistant": {"base_url": "http://10.0.0.6:8000"}}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Assistant.BaseURL != "http://10.0.0.6:8000" {
		t.Errorf("base URL = %q", cfg.Assistant.BaseURL)
	}
	if cfg.Assistant.TimeoutSecs != 30 {
		t.Errorf("timeout = %d, want default 30", cfg.Assistant.TimeoutSecs)
	}
}

func TestLoadFromPath_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[session]
backend = "redis"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("LoadFromPath() should reject unknown backend")
	}
}

func TestHistoryDir_Override(t *testing.T) {
	cfg := Default()
	cfg.Session.Dir = "/tmp/shopchat-histories"

	dir, err := cfg.HistoryDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/shopchat-histories" {
		t.Errorf("HistoryDir() = %q", dir)
	}
}

func TestHistoryDir_Default(t *testing.T) {
	cfg := Default()
	dir, err := cfg.HistoryDir()
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != "history" {
		t.Errorf("HistoryDir() = %q, want .../history", dir)
	}
	if filepath.Base(filepath.Dir(dir)) != ".shopchat" {
		t.Errorf("HistoryDir() = %q, want under .shopchat", dir)
	}
}

func TestLoad_FirstRunSeedsDefaultConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() on fresh home: %v", err)
	}
	if cfg.Assistant.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("base URL = %q, want default", cfg.Assistant.BaseURL)
	}

	// First run writes a default config file for the user to edit.
	path, err := ConfigPathTOML()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected seeded config file at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "# shopchat configuration file") {
		t.Error("seeded config missing header comment")
	}

	// The seeded file must load back cleanly.
	if _, err := LoadFromPath(path); err != nil {
		t.Errorf("seeded config does not round-trip: %v", err)
	}
}

func TestLoad_MalformedFileIsFatal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := os.MkdirAll(filepath.Join(home, ".shopchat"), 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(home, ".shopchat", "config.toml")
	if err := os.WriteFile(path, []byte("this is = not [toml"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Load() should fail on a malformed config file, not ignore it")
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.Assistant.BaseURL = "http://10.1.1.1:8000"
	cfg.UI.Theme = "light"

	path, err := ConfigPathTOML()
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveTOML(cfg, path); err != nil {
		t.Fatalf("SaveTOML() error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.Assistant.BaseURL != "http://10.1.1.1:8000" {
		t.Errorf("base URL = %q", loaded.Assistant.BaseURL)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme = %q", loaded.UI.Theme)
	}
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.Session.Backend = "sqlite"

	path, err := ConfigPathJSON()
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveJSON(cfg, path); err != nil {
		t.Fatalf("SaveJSON() error: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if loaded.Session.Backend != "sqlite" {
		t.Errorf("backend = %q", loaded.Session.Backend)
	}
}

func TestSetDefaults_FillsSessionID(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	if cfg.Session.ID != "default" {
		t.Errorf("session id = %q, want default", cfg.Session.ID)
	}
}
