// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// workspace client.
//
// Configuration is TOML with built-in defaults and environment variable
// overrides:
//   - ~/.workspace/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/genailakes/workspace-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete workspace client configuration.
type Config struct {
	// API holds backend connection settings.
	API APIConfig `toml:"api"`

	// Storage holds local persistence settings.
	Storage StorageConfig `toml:"storage"`

	// UI holds terminal presentation settings.
	UI UIConfig `toml:"ui"`

	// LogLevel is the file log verbosity: "debug", "info", "warn", "error".
	LogLevel string `toml:"log_level"`
}

// APIConfig contains backend connection configuration.
type APIConfig struct {
	// BaseURL is the backend address.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs bounds each backend request, in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
}

// StorageConfig contains local persistence configuration.
type StorageConfig struct {
	// DataDir is where chats, prefs, logs and the archive live.
	// Empty means ~/.workspace.
	DataDir string `toml:"data_dir"`
	// WatchChats reloads the session when another process rewrites the
	// chat file.
	WatchChats bool `toml:"watch_chats"`
	// ArchiveEnabled mirrors every message into the sqlite archive.
	ArchiveEnabled bool `toml:"archive_enabled"`
}

// UIConfig contains terminal presentation configuration.
type UIConfig struct {
	// Theme selects the color scheme: "dark" or "light".
	Theme string `toml:"theme"`
	// SearchDebounceMs is the settle window for the chat finder, in
	// milliseconds.
	SearchDebounceMs int `toml:"search_debounce_ms"`
	// SyncNoticeSecs is how long the sync acknowledgement stays on
	// screen, in seconds.
	SyncNoticeSecs int `toml:"sync_notice_secs"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8000",
			TimeoutSecs: 60,
		},
		Storage: StorageConfig{
			DataDir:        "",
			WatchChats:     false,
			ArchiveEnabled: true,
		},
		UI: UIConfig{
			Theme:            "dark",
			SearchDebounceMs: 300,
			SyncNoticeSecs:   7,
		},
		LogLevel: "info",
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the configuration/data directory, ~/.workspace by default.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".workspace"), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ResolveDataDir returns the effective data directory for the config.
func (c *Config) ResolveDataDir() (string, error) {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir, nil
	}
	return Dir()
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from the default location. A missing file
// yields the defaults; a malformed file is an error the user needs to
// see, unlike corrupt state files which are silently discarded.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	fillDefaults(cfg)
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fillDefaults replaces zero values left by a partial file.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.TimeoutSecs == 0 {
		cfg.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = def.UI.Theme
	}
	if cfg.UI.SearchDebounceMs == 0 {
		cfg.UI.SearchDebounceMs = def.UI.SearchDebounceMs
	}
	if cfg.UI.SyncNoticeSecs == 0 {
		cfg.UI.SyncNoticeSecs = def.UI.SyncNoticeSecs
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
}

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported variables:
//   - WORKSPACE_API_URL: backend address
//   - WORKSPACE_TIMEOUT_SECS: request timeout in seconds
//   - WORKSPACE_DATA_DIR: data directory
//   - WORKSPACE_THEME: "dark" or "light"
//   - WORKSPACE_LOG_LEVEL: log verbosity
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("WORKSPACE_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("WORKSPACE_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.API.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("WORKSPACE_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("WORKSPACE_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("WORKSPACE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration to the default location atomically.
// Config files are user-private.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(buf.String()), 0600)
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
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("not a valid URL: %q", c.API.BaseURL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("scheme must be http or https, got %q", u.Scheme),
		})
	}

	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: "must be positive",
		})
	}

	switch c.UI.Theme {
	case "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("unknown theme %q (want dark or light)", c.UI.Theme),
		})
	}

	if c.UI.SearchDebounceMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.search_debounce_ms",
			Message: "must not be negative",
		})
	}
	if c.UI.SyncNoticeSecs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "ui.sync_notice_secs",
			Message: "must be positive",
		})
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level %q", c.LogLevel),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
