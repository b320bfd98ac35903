// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for shopchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.shopchat/config.toml
//   - ~/.shopchat/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/shopchat-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete shopchat configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Assistant service configuration
	Assistant AssistantConfig `toml:"assistant" json:"assistant"`

	// Session / persistence configuration
	Session SessionConfig `toml:"session" json:"session"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// AssistantConfig contains assistant service settings.
type AssistantConfig struct {
	// BaseURL is the base URL of the assistant service
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RequestsPerSecond caps the outbound request rate
	RequestsPerSecond float64 `toml:"requests_per_second" json:"requests_per_second"`
}

// SessionConfig contains conversation persistence settings.
type SessionConfig struct {
	// ID scopes the persisted transcript. The default "default" keeps one
	// conversation per user so a relaunched shopchat restores it; pass
	// --session or SHOPCHAT_SESSION to keep several.
	ID string `toml:"id" json:"id"`
	// Backend selects the persistence backend: "file", "sqlite", "memory"
	Backend string `toml:"backend" json:"backend"`
	// Dir overrides the history directory (empty = ~/.shopchat/history)
	Dir string `toml:"dir" json:"dir"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// Markdown renders assistant replies as markdown when the terminal allows
	Markdown bool `toml:"markdown" json:"markdown"`
	// Plain forces the line-oriented REPL instead of the full-screen UI
	Plain bool `toml:"plain" json:"plain"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Assistant: AssistantConfig{
			BaseURL:           "http://127.0.0.1:8000",
			TimeoutSecs:       30,
			RequestsPerSecond: 4,
		},

		Session: SessionConfig{
			ID:      "default",
			Backend: "file",
		},

		UI: UIConfig{
			Theme:    "dark",
			Markdown: true,
			Plain:    false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the shopchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".shopchat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// HistoryDir returns the directory holding persisted transcripts,
// honoring the session.dir override.
func (c *Config) HistoryDir() (string, error) {
	if c.Session.Dir != "" {
		return c.Session.Dir, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON. A file that exists but cannot be parsed or
// validated is an error: a silently ignored config is worse than a
// startup failure. When no config file exists, defaults are used and a
// commented default TOML file is seeded for the user to edit (best
// effort; a read-only home is not an error). Environment overrides are
// applied last. Configuration is read once at startup; there is no file
// watching or live reload.
func Load() (*Config, error) {
	cfg := Default()

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				return nil, fmt.Errorf("failed to load TOML config: %w", err)
			}
			return finish(cfg)
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				return nil, fmt.Errorf("failed to load JSON config: %w", err)
			}
			return finish(cfg)
		}
	}

	// First run: seed the default config file. Pristine defaults, not the
	// env-overridden values, so the environment never becomes sticky.
	_ = Save(Default())

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The extension picks the format; anything that is not .json
// is treated as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish applies env overrides, defaults, and validation to a loaded config.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	fmt.Fprintln(file, "# shopchat configuration file")
	fmt.Fprintln(file, "# Generated by shopchat - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// RELIABILITY: Atomic write with fsync prevents data loss on crash
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Validate assistant base URL
	if c.Assistant.BaseURL != "" {
		u, err := url.Parse(c.Assistant.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "assistant.base_url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Assistant.BaseURL),
			})
		}
	}

	// Slow backends are tolerated up to 10 minutes; zero and negative
	// timeouts would make every request fail immediately.
	if c.Assistant.TimeoutSecs < 1 || c.Assistant.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "assistant.timeout_secs",
			Message: fmt.Sprintf("must be 1-600 seconds, got %d", c.Assistant.TimeoutSecs),
		})
	}

	if c.Assistant.RequestsPerSecond < 0 {
		errs = append(errs, ValidationError{
			Field:   "assistant.requests_per_second",
			Message: "must be non-negative",
		})
	}

	// Validate persistence backend
	validBackends := map[string]bool{"file": true, "sqlite": true, "memory": true}
	if !validBackends[strings.ToLower(c.Session.Backend)] {
		errs = append(errs, ValidationError{
			Field:   "session.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: file, sqlite, memory", c.Session.Backend),
		})
	}

	// Validate UI theme
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Assistant.BaseURL == "" {
		c.Assistant.BaseURL = defaults.Assistant.BaseURL
	}
	if c.Assistant.TimeoutSecs == 0 {
		c.Assistant.TimeoutSecs = defaults.Assistant.TimeoutSecs
	}
	if c.Assistant.RequestsPerSecond == 0 {
		c.Assistant.RequestsPerSecond = defaults.Assistant.RequestsPerSecond
	}

	if c.Session.ID == "" {
		c.Session.ID = defaults.Session.ID
	}
	if c.Session.Backend == "" {
		c.Session.Backend = defaults.Session.Backend
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - SHOPCHAT_BASE_URL: overrides assistant.base_url
//   - SHOPCHAT_TIMEOUT_SECS: overrides assistant.timeout_secs
//   - SHOPCHAT_SESSION: overrides session.id
//   - SHOPCHAT_BACKEND: overrides session.backend
//   - SHOPCHAT_HISTORY_DIR: overrides session.dir
//   - SHOPCHAT_THEME: overrides ui.theme
//   - SHOPCHAT_PLAIN: set to "1" or "true" to force the plain REPL
func (c *Config) ApplyEnvOverrides() {
	if baseURL := os.Getenv("SHOPCHAT_BASE_URL"); baseURL != "" {
		c.Assistant.BaseURL = baseURL
	}

	if secs := os.Getenv("SHOPCHAT_TIMEOUT_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil && n > 0 {
			c.Assistant.TimeoutSecs = n
		}
	}

	if session := os.Getenv("SHOPCHAT_SESSION"); session != "" {
		c.Session.ID = session
	}

	if backend := os.Getenv("SHOPCHAT_BACKEND"); backend != "" {
		c.Session.Backend = backend
	}

	if dir := os.Getenv("SHOPCHAT_HISTORY_DIR"); dir != "" {
		c.Session.Dir = dir
	}

	if theme := os.Getenv("SHOPCHAT_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if plain := os.Getenv("SHOPCHAT_PLAIN"); plain != "" {
		c.UI.Plain = plain == "1" || strings.ToLower(plain) == "true"
	}
}
